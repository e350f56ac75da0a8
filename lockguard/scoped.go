// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import "context"

// run invokes fn while h is held.  h is released on every path out of fn, including a panic,
// which is re-raised once the handle is released.  An error from fn takes precedence over
// an error from the release.
func run(h *Handle, fn func() error) (err error) {
	defer func() {
		releaseErr := h.Release()
		if err == nil {
			err = releaseErr
		}
	}()

	return fn()
}

// WithReadLock runs fn while holding a read lock on l.
func (g *Guard) WithReadLock(l ReaderWriterLocker, fn func() error) error {
	h, err := g.EnterReadLock(l)
	if err != nil {
		return err
	}

	return run(h, fn)
}

// WithWriteLock runs fn while holding a write lock on l.
func (g *Guard) WithWriteLock(l ReaderWriterLocker, fn func() error) error {
	h, err := g.EnterWriteLock(l)
	if err != nil {
		return err
	}

	return run(h, fn)
}

// WithUpgradeableReadLock runs fn while holding an upgradeable read lock on l.
func (g *Guard) WithUpgradeableReadLock(l ReaderWriterLocker, fn func() error) error {
	h, err := g.EnterUpgradeableReadLock(l)
	if err != nil {
		return err
	}

	return run(h, fn)
}

// WithSlot runs fn while holding a slot on s.  The slot is acquired as with WaitCtx.
func (g *Guard) WithSlot(ctx context.Context, s Semaphore, fn func() error) error {
	h, err := g.WaitCtx(ctx, s)
	if err != nil {
		return err
	}

	return run(h, fn)
}

// WithReadLock runs fn under a read lock on l using the default Guard.
func WithReadLock(l ReaderWriterLocker, fn func() error) error {
	return Default().WithReadLock(l, fn)
}

// WithWriteLock runs fn under a write lock on l using the default Guard.
func WithWriteLock(l ReaderWriterLocker, fn func() error) error {
	return Default().WithWriteLock(l, fn)
}

// WithUpgradeableReadLock runs fn under an upgradeable read lock on l using the default Guard.
func WithUpgradeableReadLock(l ReaderWriterLocker, fn func() error) error {
	return Default().WithUpgradeableReadLock(l, fn)
}

// WithSlot runs fn while holding a slot on s using the default Guard.
func WithSlot(ctx context.Context, s Semaphore, fn func() error) error {
	return Default().WithSlot(ctx, s, fn)
}
