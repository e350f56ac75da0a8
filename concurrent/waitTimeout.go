// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"time"
)

// Waiter is anything that blocks until a set of goroutines complete, e.g. *sync.WaitGroup.
type Waiter interface {
	Wait()
}

// ErrorWaiter is a Waiter that reports the first error of its goroutines, e.g. *errgroup.Group.
type ErrorWaiter interface {
	Wait() error
}

// WaitTimeout performs a timed wait on a given Waiter.  This function returns true if
// Wait returned within the timeout, false if the timeout elapsed.  The goroutine performing
// the wait is left running after a timeout.
func WaitTimeout(waiter Waiter, timeout time.Duration) bool {
	ok, _ := WaitErrorTimeout(
		waitFunc(func() error {
			waiter.Wait()
			return nil
		}),
		timeout,
	)

	return ok
}

// WaitErrorTimeout performs a timed wait on a given ErrorWaiter.  If the wait completes within the
// timeout, ok is true and err is whatever Wait returned.
func WaitErrorTimeout(waiter ErrorWaiter, timeout time.Duration) (ok bool, err error) {
	result := make(chan error, 1)
	go func() {
		result <- waiter.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err = <-result:
		return true, err
	case <-timer.C:
		return false, nil
	}
}

type waitFunc func() error

func (f waitFunc) Wait() error {
	return f()
}
