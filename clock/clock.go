// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the time operations used by lock acquisition timeouts
// so that tests can drive them deterministically.
package clock

import "time"

// Interface is the subset of the stdlib time package needed for bounded waits
// and periodic reporting.
type Interface interface {
	Now() time.Time
	Sleep(time.Duration)
	NewTimer(time.Duration) Timer
	NewTicker(time.Duration) Ticker
}

// Timer is the analog of time.Timer.  The channel returned by C is the one
// handed to semaphore.Interface.AcquireWait.
type Timer interface {
	C() <-chan time.Time
	Reset(time.Duration) bool
	Stop() bool
}

// Ticker is the analog of time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

type systemTimer struct {
	*time.Timer
}

func (st systemTimer) C() <-chan time.Time {
	return st.Timer.C
}

type systemTicker struct {
	*time.Ticker
}

func (st systemTicker) C() <-chan time.Time {
	return st.Ticker.C
}
