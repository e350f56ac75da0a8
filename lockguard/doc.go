// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package lockguard provides scoped acquisition of locks.  Each acquisition returns a *Handle
that releases the lock exactly once, no matter how many times, or from how many goroutines,
Release is called:

	h, err := lockguard.EnterReadLock(l)
	if err != nil {
		return err
	}

	defer h.Release()

Reader-writer locks are acquired in read, write, or upgradeable-read mode.  Semaphores are
acquired synchronously, with a timeout, or with a context.  The With* functions wrap a
function call in an acquisition and always release, even when the function panics.

The package level functions use an uninstrumented Guard.  Use New to create a Guard that
logs and records metrics.
*/
package lockguard
