// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/xmidt-org/lockguard/ensure"
	"github.com/xmidt-org/lockguard/semaphore"
)

// InfiniteTimeout is the millisecond timeout that waits forever
const InfiniteTimeout = -1

// millisBounds keeps millisecond timeouts within a 32-bit range, so converting to a
// time.Duration cannot overflow
var millisBounds = ensure.Between(InfiniteTimeout, math.MaxInt32)

func (g *Guard) acquireSlot(s Semaphore, acquire func(Semaphore) error) (*Handle, error) {
	if err := ensure.NotNil(s, "semaphore"); err != nil {
		return nil, err
	}

	h, err := g.enter(ModeSlot, func() error { return acquire(s) })
	if h != nil {
		h.s = s
	}

	return h, err
}

// Wait blocks until a slot on s is available.
func (g *Guard) Wait(s Semaphore) (*Handle, error) {
	return g.acquireSlot(s, Semaphore.Acquire)
}

// WaitTimeout waits up to d for a slot on s.  A negative d waits forever.  If the timeout
// elapses first, semaphore.ErrTimeout is returned with a nil handle.
func (g *Guard) WaitTimeout(s Semaphore, d time.Duration) (*Handle, error) {
	if d < 0 {
		return g.Wait(s)
	}

	return g.acquireSlot(s, func(s Semaphore) error {
		t := g.clock.NewTimer(d)
		defer t.Stop()
		return s.AcquireWait(t.C())
	})
}

// WaitMillis is WaitTimeout with a timeout in milliseconds.  InfiniteTimeout waits forever.
// Any value less than InfiniteTimeout or greater than math.MaxInt32 is rejected without
// touching s.
func (g *Guard) WaitMillis(s Semaphore, ms int) (*Handle, error) {
	if err := ensure.NotOutOfRange(ms, "millisecondsTimeout", millisBounds); err != nil {
		return nil, err
	}

	return g.WaitTimeout(s, time.Duration(ms)*time.Millisecond)
}

// WaitCtx waits for a slot on s until ctx is done, in which case ctx.Err() is returned.
// A context that is already done never acquires a slot.
func (g *Guard) WaitCtx(ctx context.Context, s Semaphore) (*Handle, error) {
	return g.acquireSlot(s, func(s Semaphore) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return s.AcquireCtx(ctx)
	})
}

// WaitTimeoutCtx waits for a slot on s until either d elapses or ctx is done.  A timeout
// produces semaphore.ErrTimeout, while cancellation produces ctx.Err().  A negative d
// is equivalent to WaitCtx.
func (g *Guard) WaitTimeoutCtx(ctx context.Context, s Semaphore, d time.Duration) (*Handle, error) {
	if d < 0 {
		return g.WaitCtx(ctx, s)
	}

	return g.acquireSlot(s, func(s Semaphore) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		t := g.clock.NewTimer(d)
		defer t.Stop()

		waitCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		var timedOut atomic.Bool

		go func() {
			select {
			case <-t.C():
				timedOut.Store(true)
				cancel()
			case <-waitCtx.Done():
			}
		}()

		err := s.AcquireCtx(waitCtx)
		if err != nil && ctx.Err() == nil && timedOut.Load() {
			err = semaphore.ErrTimeout
		}

		return err
	})
}

// WaitMillisCtx is WaitTimeoutCtx with a timeout in milliseconds.
func (g *Guard) WaitMillisCtx(ctx context.Context, s Semaphore, ms int) (*Handle, error) {
	if err := ensure.NotOutOfRange(ms, "millisecondsTimeout", millisBounds); err != nil {
		return nil, err
	}

	return g.WaitTimeoutCtx(ctx, s, time.Duration(ms)*time.Millisecond)
}

// Wait acquires a slot on s using the default Guard.
func Wait(s Semaphore) (*Handle, error) {
	return Default().Wait(s)
}

// WaitTimeout acquires a slot on s, waiting at most d, using the default Guard.
func WaitTimeout(s Semaphore, d time.Duration) (*Handle, error) {
	return Default().WaitTimeout(s, d)
}

// WaitMillis acquires a slot on s, waiting at most ms milliseconds, using the default Guard.
func WaitMillis(s Semaphore, ms int) (*Handle, error) {
	return Default().WaitMillis(s, ms)
}

// WaitCtx acquires a slot on s, honoring ctx, using the default Guard.
func WaitCtx(ctx context.Context, s Semaphore) (*Handle, error) {
	return Default().WaitCtx(ctx, s)
}

// WaitTimeoutCtx acquires a slot on s, honoring both d and ctx, using the default Guard.
func WaitTimeoutCtx(ctx context.Context, s Semaphore, d time.Duration) (*Handle, error) {
	return Default().WaitTimeoutCtx(ctx, s, d)
}

// WaitMillisCtx acquires a slot on s, honoring both ms and ctx, using the default Guard.
func WaitMillisCtx(ctx context.Context, s Semaphore, ms int) (*Handle, error) {
	return Default().WaitMillisCtx(ctx, s, ms)
}
