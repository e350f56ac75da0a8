// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package logging supplies the go-kit logging conventions used throughout lockguard:
// standard keys, level filtering driven by configuration, and rolling file output.
package logging
