// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides customizations on use of viper for configuration loading.  Commands
build their Viper instance through New with a set of Options, typically StdOptions, so that
configuration files, environment variables, and command line flags are layered consistently.
*/
package xviper
