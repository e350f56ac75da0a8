// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides counting semaphores that optionally honor context semantics.

The default implementation is channel-based.  NewWeighted supplies an implementation
backed by golang.org/x/sync/semaphore, and Instrument decorates any semaphore with
go-kit metrics.  Every implementation reports its available slot count and refuses to
release more slots than it was created with.
*/
package semaphore
