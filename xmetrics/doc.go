// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides configurability for Prometheus-based metrics.  The more general go-kit interfaces
are used where possible: a Registry is both a Prometheus registry and a go-kit metrics provider, so it can
be handed directly to lockguard.WithMetrics.
*/
package xmetrics
