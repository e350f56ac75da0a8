// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/lockguard/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithResources establishes a metric that tracks the resource count of the semaphore.
// If a nil metric is supplied, resource counts are discarded.
func WithResources(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.resources = a
		} else {
			i.resources = discard.NewGauge()
		}
	}
}

// WithFailures establishes a metric that tracks how many failed resource acquisitions
// happen when attempting to acquire resources.  If a nil counter is supplied, failure counts
// are discarded.
func WithFailures(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.failures = a
		} else {
			i.failures = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.  This function panics
// if s is nil.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	if s == nil {
		panic("A semaphore is required")
	}

	is := &instrumentedSemaphore{
		Interface: s,
		resources: discard.NewGauge(),
		failures:  discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	resources xmetrics.Adder
	failures  xmetrics.Adder
}

func (is *instrumentedSemaphore) record(err error) error {
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.resources.Add(1.0)
	}

	return err
}

func (is *instrumentedSemaphore) Acquire() error {
	return is.record(is.Interface.Acquire())
}

func (is *instrumentedSemaphore) AcquireWait(t <-chan time.Time) error {
	return is.record(is.Interface.AcquireWait(t))
}

func (is *instrumentedSemaphore) AcquireCtx(ctx context.Context) error {
	return is.record(is.Interface.AcquireCtx(ctx))
}

func (is *instrumentedSemaphore) TryAcquire() bool {
	acquired := is.Interface.TryAcquire()
	if acquired {
		is.resources.Add(1.0)
	} else {
		is.failures.Add(1.0)
	}

	return acquired
}

func (is *instrumentedSemaphore) Release() error {
	err := is.Interface.Release()
	if err == nil {
		is.resources.Add(-1.0)
	}

	return err
}
