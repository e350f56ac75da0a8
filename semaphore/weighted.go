// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"sync/atomic"
	"time"

	xsemaphore "golang.org/x/sync/semaphore"
)

// NewWeighted constructs a semaphore backed by golang.org/x/sync/semaphore with count
// resources, all of which are initially available.  Waiters are served in FIFO order,
// unlike the channel-based semaphores in this package.  A nonpositive count panics.
func NewWeighted(count int) Interface {
	if count < 1 {
		panic("The count must be positive")
	}

	return &weighted{
		w:   xsemaphore.NewWeighted(int64(count)),
		max: int64(count),
	}
}

type weighted struct {
	w        *xsemaphore.Weighted
	max      int64
	acquired atomic.Int64
}

func (ws *weighted) Acquire() error {
	// cannot fail with a context that is never done
	ws.w.Acquire(context.Background(), 1) //nolint: errcheck
	ws.acquired.Add(1)
	return nil
}

func (ws *weighted) AcquireWait(t <-chan time.Time) error {
	if ws.TryAcquire() {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-t:
			cancel()
		case <-ctx.Done():
		}
	}()

	if ws.w.Acquire(ctx, 1) != nil {
		return ErrTimeout
	}

	ws.acquired.Add(1)
	return nil
}

func (ws *weighted) AcquireCtx(ctx context.Context) error {
	// the x/sync semaphore may succeed even with a done context
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ws.w.Acquire(ctx, 1); err != nil {
		return err
	}

	ws.acquired.Add(1)
	return nil
}

func (ws *weighted) TryAcquire() bool {
	if ws.w.TryAcquire(1) {
		ws.acquired.Add(1)
		return true
	}

	return false
}

func (ws *weighted) Release() error {
	for {
		n := ws.acquired.Load()
		if n < 1 {
			// the x/sync semaphore panics on this, so catch it here
			return ErrFull
		}

		if ws.acquired.CompareAndSwap(n, n-1) {
			break
		}
	}

	ws.w.Release(1)
	return nil
}

func (ws *weighted) Available() int {
	return int(ws.max - ws.acquired.Load())
}

func (ws *weighted) Max() int {
	return int(ws.max)
}
