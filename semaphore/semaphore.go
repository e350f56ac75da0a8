// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout is returned when a timeout occurs while waiting to acquire a semaphore resource.
	// This error does not apply when using a context.  ctx.Err() is returned in that case.
	ErrTimeout = errors.New("the semaphore could not be acquired within the timeout")

	// ErrFull is returned by Release when every slot is already available, i.e. there is
	// no outstanding acquisition to release.  The semaphore is left unchanged.
	ErrFull = errors.New("the semaphore is already at its maximum count")
)

// Interface represents a semaphore, either binary or counting.  When any acquire method is successful,
// Release *must* be called to return the resource to the semaphore.
type Interface interface {
	// Acquire acquires a resource.  Typically, this method will block forever.  Some semaphore implementations,
	// e.g. closeable semaphores, can immediately return an error from this method.
	Acquire() error

	// AcquireWait attempts to acquire a resource before the given time channel becomes signaled.
	// If the resource was acquired, this method returns nil.  If the time channel gets signaled
	// before a resource is available, ErrTimeout is returned.
	AcquireWait(<-chan time.Time) error

	// AcquireCtx attempts to acquire a resource before the given context is canceled.  If the resource
	// was acquired, this method returns nil.  Otherwise, this method returns ctx.Err().  A context
	// that is already done never acquires a resource.
	AcquireCtx(context.Context) error

	// TryAcquire attempts to acquire a resource, returning false immediately if a resource was unavailable.
	// This method returns true if the resource was acquired.
	TryAcquire() bool

	// Release relinquishes control of a resource.  It returns ErrFull if there is no outstanding
	// acquisition, leaving the count unchanged.  Closeable semaphores return ErrClosed once closed.
	Release() error

	// Available returns the number of resources that can currently be acquired without blocking.
	// The value may be stale by the time it is used.
	Available() int

	// Max returns the total number of resources managed by this semaphore.
	Max() int
}

// New constructs a semaphore with the given count, all of which are initially available.
// A nonpositive count will result in a panic.  A count of 1 is essentially a mutex, albeit
// with the ability to timeout or cancel the acquisition of the lock.
func New(count int) Interface {
	return NewCounting(count, count)
}

// NewCounting constructs a semaphore managing max resources, of which initial are available.
// This function panics if max is nonpositive or if initial is outside the range [0, max].
func NewCounting(initial, max int) Interface {
	return &semaphore{
		c: newSlots(initial, max),
	}
}

// Mutex is just syntactic sugar for New(1).  The returned object is a binary semaphore.
func Mutex() Interface {
	return New(1)
}

// newSlots creates the channel backing a semaphore.  Each element in the channel is an
// acquired resource, so the channel is prefilled with the resources that start out unavailable.
func newSlots(initial, max int) chan struct{} {
	if max < 1 {
		panic("The count must be positive")
	}

	if initial < 0 || initial > max {
		panic("The initial count must be between 0 and the maximum count")
	}

	c := make(chan struct{}, max)
	for i := initial; i < max; i++ {
		c <- struct{}{}
	}

	return c
}

// semaphore is the internal Interface implementation
type semaphore struct {
	c chan struct{}
}

func (s *semaphore) Acquire() error {
	s.c <- struct{}{}
	return nil
}

func (s *semaphore) AcquireWait(t <-chan time.Time) error {
	// a free slot wins over an expired timer
	if s.TryAcquire() {
		return nil
	}

	select {
	case s.c <- struct{}{}:
		return nil
	case <-t:
		return ErrTimeout
	}
}

func (s *semaphore) AcquireCtx(ctx context.Context) error {
	// select picks randomly among ready cases, so a done context has to be checked first
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case s.c <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) TryAcquire() bool {
	select {
	case s.c <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *semaphore) Release() error {
	select {
	case <-s.c:
		return nil
	default:
		return ErrFull
	}
}

func (s *semaphore) Available() int {
	return cap(s.c) - len(s.c)
}

func (s *semaphore) Max() int {
	return cap(s.c)
}
