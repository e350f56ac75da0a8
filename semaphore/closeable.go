// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"
)

var (
	// ErrClosed is returned when a closeable semaphore has been closed
	ErrClosed = errors.New("the semaphore has been closed")
)

// Closeable represents a semaphore than can be closed.  Once closed, a semaphore cannot be reopened.
//
// Any goroutines waiting for resources when a Closeable is closed will receive ErrClosed from the
// blocked acquire method.  Subsequent attempts to acquire resources will also result in ErrClosed.
//
// Both Close() and Release() are idempotent.  Once closed, both methods return ErrClosed without modifying
// the instance.
type Closeable interface {
	io.Closer
	Interface

	// Closed returns a channel that is closed when this semaphore has been closed.
	// This channel has similar use cases to context.Done().
	Closed() <-chan struct{}
}

// NewCloseable returns a semaphore which honors close-once semantics.  All count resources
// are initially available.
//
// Closing the semaphore signals any goroutines waiting for resources that those resources are
// no longer available, which is useful when the guarded resource is being shut down.  For more
// general use cases, use New() or Mutex() instead.
func NewCloseable(count int) Closeable {
	return &closeable{
		c:      newSlots(count, count),
		closed: make(chan struct{}),
	}
}

// CloseableMutex is syntactic sugar for NewCloseable(1)
func CloseableMutex() Closeable {
	return NewCloseable(1)
}

type closeable struct {
	c      chan struct{}
	state  atomic.Bool
	closed chan struct{}
}

func (cs *closeable) Close() error {
	if cs.state.CompareAndSwap(false, true) {
		close(cs.closed)
		return nil
	}

	return ErrClosed
}

func (cs *closeable) Closed() <-chan struct{} {
	return cs.closed
}

func (cs *closeable) isClosed() bool {
	return cs.state.Load()
}

// acquired handles a resource that was obtained while the semaphore may have been closed concurrently
func (cs *closeable) acquired() error {
	if cs.isClosed() {
		return ErrClosed
	}

	return nil
}

func (cs *closeable) Acquire() error {
	if cs.isClosed() {
		return ErrClosed
	}

	select {
	case cs.c <- struct{}{}:
		return cs.acquired()
	case <-cs.closed:
		return ErrClosed
	}
}

func (cs *closeable) AcquireWait(t <-chan time.Time) error {
	if cs.isClosed() {
		return ErrClosed
	}

	// a free slot wins over an expired timer
	select {
	case cs.c <- struct{}{}:
		return cs.acquired()
	default:
	}

	select {
	case cs.c <- struct{}{}:
		return cs.acquired()
	case <-t:
		return ErrTimeout
	case <-cs.closed:
		return ErrClosed
	}
}

func (cs *closeable) AcquireCtx(ctx context.Context) error {
	if cs.isClosed() {
		return ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case cs.c <- struct{}{}:
		return cs.acquired()
	case <-ctx.Done():
		return ctx.Err()
	case <-cs.closed:
		return ErrClosed
	}
}

func (cs *closeable) TryAcquire() bool {
	if cs.isClosed() {
		return false
	}

	select {
	case cs.c <- struct{}{}:
		return !cs.isClosed()
	default:
		return false
	}
}

func (cs *closeable) Release() error {
	if cs.isClosed() {
		return ErrClosed
	}

	select {
	case <-cs.c:
		return nil
	default:
		return ErrFull
	}
}

func (cs *closeable) Available() int {
	return cap(cs.c) - len(cs.c)
}

func (cs *closeable) Max() int {
	return cap(cs.c)
}
