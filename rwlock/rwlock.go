// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package rwlock provides a reader-writer lock that, unlike sync.RWMutex, supports an
upgradeable read mode and exposes its current state.

The lock enforces a no-recursion policy as far as it can see it.  Goroutines have no
identity, so ownership is tracked per lock rather than per caller: exiting a mode that
is not held is an error, but a goroutine that enters the same mode twice will simply
block or share just like any other caller would.
*/
package rwlock

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned when attempting to use a lock that has been closed
	ErrClosed = errors.New("the lock has been closed")

	// ErrNotHeld is returned when exiting a lock mode that is not currently held
	ErrNotHeld = errors.New("the lock is not held in the requested mode")

	// ErrLockHeld is returned when closing a lock that is held, or when exiting an upgradeable
	// read lock that is still upgraded to a write lock
	ErrLockHeld = errors.New("the lock is still held")

	// ErrRecursion is returned when upgrading an upgradeable read lock that has already been upgraded
	ErrRecursion = errors.New("recursive lock acquisition is not allowed")
)

// RWLock is a reader-writer lock with three modes:
//
//   - read: shared with any number of other readers and with the upgradeable holder
//   - upgradeable read: shared with readers, but at most one holder at a time
//   - write: exclusive
//
// The holder of the upgradeable read lock may call UpgradeToWriteLock to become the writer
// without giving up its place.  Waiting writers and pending upgrades take precedence over
// new readers.
//
// The zero value is an unlocked RWLock ready for use.  An RWLock must not be copied after first use.
type RWLock struct {
	mu   sync.Mutex
	cond *sync.Cond

	readers     int
	writer      bool
	upgradeable bool
	upgraded    bool
	pending     bool
	closed      bool

	waitingReaders   int
	waitingWriters   int
	waitingUpgraders int
}

// New returns an unlocked RWLock
func New() *RWLock {
	return new(RWLock)
}

// lock acquires the internal mutex.  The returned function releases it.
func (l *RWLock) lock() func() {
	l.mu.Lock()
	if l.cond == nil {
		l.cond = sync.NewCond(&l.mu)
	}

	return l.mu.Unlock
}

// EnterReadLock blocks until a read lock is granted.
func (l *RWLock) EnterReadLock() error {
	defer l.lock()()

	l.waitingReaders++
	for !l.closed && (l.writer || l.waitingWriters > 0 || l.pending) {
		l.cond.Wait()
	}

	l.waitingReaders--
	if l.closed {
		return ErrClosed
	}

	l.readers++
	return nil
}

// ExitReadLock releases one read lock.
func (l *RWLock) ExitReadLock() error {
	defer l.lock()()

	if l.readers == 0 {
		return ErrNotHeld
	}

	l.readers--
	l.cond.Broadcast()
	return nil
}

// EnterWriteLock blocks until the exclusive lock is granted.
func (l *RWLock) EnterWriteLock() error {
	defer l.lock()()

	l.waitingWriters++
	for !l.closed && (l.writer || l.upgradeable || l.readers > 0) {
		l.cond.Wait()
	}

	l.waitingWriters--
	if l.closed {
		l.cond.Broadcast()
		return ErrClosed
	}

	l.writer = true
	return nil
}

// ExitWriteLock releases the exclusive lock.  If the write lock was obtained through
// UpgradeToWriteLock, the caller goes back to holding only the upgradeable read lock.
func (l *RWLock) ExitWriteLock() error {
	defer l.lock()()

	if !l.writer {
		return ErrNotHeld
	}

	l.writer = false
	l.upgraded = false
	l.cond.Broadcast()
	return nil
}

// EnterUpgradeableReadLock blocks until the upgradeable read lock is granted.
func (l *RWLock) EnterUpgradeableReadLock() error {
	defer l.lock()()

	l.waitingUpgraders++
	for !l.closed && (l.writer || l.upgradeable || l.waitingWriters > 0) {
		l.cond.Wait()
	}

	l.waitingUpgraders--
	if l.closed {
		return ErrClosed
	}

	l.upgradeable = true
	return nil
}

// ExitUpgradeableReadLock releases the upgradeable read lock.  A lock that is currently
// upgraded must first have its write lock exited.
func (l *RWLock) ExitUpgradeableReadLock() error {
	defer l.lock()()

	if !l.upgradeable {
		return ErrNotHeld
	}

	if l.upgraded {
		return ErrLockHeld
	}

	l.upgradeable = false
	l.cond.Broadcast()
	return nil
}

// UpgradeToWriteLock promotes the upgradeable read lock to the write lock, blocking
// until the current readers have drained.  New readers are held back while the upgrade
// is pending.
func (l *RWLock) UpgradeToWriteLock() error {
	defer l.lock()()

	switch {
	case !l.upgradeable:
		return ErrNotHeld

	case l.upgraded:
		return ErrRecursion
	}

	l.pending = true
	for l.readers > 0 {
		l.cond.Wait()
	}

	l.pending = false
	l.writer = true
	l.upgraded = true
	l.cond.Broadcast()
	return nil
}

// Close disposes of this lock.  All subsequent attempts to enter return ErrClosed.
// A lock that is held cannot be closed.
func (l *RWLock) Close() error {
	defer l.lock()()

	switch {
	case l.closed:
		return ErrClosed

	case l.readers > 0 || l.writer || l.upgradeable:
		return ErrLockHeld
	}

	l.closed = true
	l.cond.Broadcast()
	return nil
}

// CurrentReadCount returns the number of read locks currently held, not counting the upgradeable read lock.
func (l *RWLock) CurrentReadCount() int {
	defer l.lock()()
	return l.readers
}

// IsReadLockHeld tests whether at least one read lock is held.
func (l *RWLock) IsReadLockHeld() bool {
	return l.CurrentReadCount() > 0
}

// IsWriteLockHeld tests whether the exclusive lock is held, whether entered directly or through an upgrade.
func (l *RWLock) IsWriteLockHeld() bool {
	defer l.lock()()
	return l.writer
}

// IsUpgradeableReadLockHeld tests whether the upgradeable read lock is held.
func (l *RWLock) IsUpgradeableReadLockHeld() bool {
	defer l.lock()()
	return l.upgradeable
}

// WaitingReadCount returns the number of goroutines blocked in EnterReadLock.
func (l *RWLock) WaitingReadCount() int {
	defer l.lock()()
	return l.waitingReaders
}

// WaitingWriteCount returns the number of goroutines blocked in EnterWriteLock.
func (l *RWLock) WaitingWriteCount() int {
	defer l.lock()()
	return l.waitingWriters
}

// WaitingUpgradeCount returns the number of goroutines blocked in EnterUpgradeableReadLock.
func (l *RWLock) WaitingUpgradeCount() int {
	defer l.lock()()
	return l.waitingUpgraders
}
