// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ReaderWriterLocker is a reader-writer lock with an upgradeable read mode.  *rwlock.RWLock
// implements this interface.
type ReaderWriterLocker interface {
	EnterReadLock() error
	ExitReadLock() error
	EnterWriteLock() error
	ExitWriteLock() error
	EnterUpgradeableReadLock() error
	ExitUpgradeableReadLock() error
}

// Semaphore is the subset of semaphore.Interface needed to acquire and release a slot.
type Semaphore interface {
	Acquire() error
	AcquireWait(<-chan time.Time) error
	AcquireCtx(context.Context) error
	Release() error
}

// Handle is a held lock.  The first call to Release releases the lock, and every later
// call does nothing.  A Handle is safe for concurrent use.
//
// Handles are produced by a Guard.  A zero Handle holds nothing, and releasing it
// does nothing.
type Handle struct {
	mode     Mode
	rw       ReaderWriterLocker
	s        Semaphore
	l        sync.Locker
	guard    *Guard
	released atomic.Bool
}

// Mode returns how this handle holds its lock.
func (h *Handle) Mode() Mode {
	return h.mode
}

// Released tests if Release has been called on this handle.
func (h *Handle) Released() bool {
	return h.released.Load()
}

// Release releases the lock held by this handle.  Only the first call has any effect, and
// it returns whatever error the underlying primitive returned.  Subsequent calls return nil.
func (h *Handle) Release() error {
	if h == nil || h.guard == nil {
		return nil
	}

	if !h.released.CompareAndSwap(false, true) {
		h.guard.redundantRelease(h.mode)
		return nil
	}

	err := h.exit()
	h.guard.released(h.mode, err)
	return err
}

// Close is an alias for Release, which makes a Handle an io.Closer.
func (h *Handle) Close() error {
	return h.Release()
}

func (h *Handle) exit() error {
	switch h.mode {
	case ModeUpgradeableRead:
		return h.rw.ExitUpgradeableReadLock()

	case ModeRead:
		return h.rw.ExitReadLock()

	case ModeWrite:
		return h.rw.ExitWriteLock()

	case ModeSlot:
		return h.s.Release()

	default:
		h.l.Unlock()
		return nil
	}
}
