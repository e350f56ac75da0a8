// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import (
	"sync"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/xmidt-org/lockguard/clock"
	"github.com/xmidt-org/lockguard/ensure"
	"github.com/xmidt-org/lockguard/logging"
	"github.com/xmidt-org/lockguard/nullable"
)

// Option configures a Guard
type Option func(*Guard)

// WithLogger sets the go-kit logger for a Guard.  A nil logger leaves the default in place,
// which discards output.
func WithLogger(l log.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics creates the Guard's metrics from the given provider.  Metric names are the
// constants in this package.  A nil provider leaves the metrics discarded.
func WithMetrics(p provider.Provider) Option {
	return func(g *Guard) {
		nullable.DoIfNotNil(p, func(p provider.Provider) {
			g.acquired = p.NewCounter(AcquiredCounter)
			g.acquireFailures = p.NewCounter(AcquireFailuresCounter)
			g.releases = p.NewCounter(ReleasedCounter)
			g.redundantReleases = p.NewCounter(RedundantReleasesCounter)
			g.held = p.NewGauge(HeldGauge)
		})
	}
}

// WithClock sets the clock used to time bounded waits.  A nil clock leaves the system clock in place.
func WithClock(c clock.Interface) Option {
	return func(g *Guard) {
		if c != nil {
			g.clock = c
		}
	}
}

// Guard acquires locks and produces handles.  A Guard is safe for concurrent use.  The zero
// value is not usable; create a Guard with New.
type Guard struct {
	logger log.Logger
	clock  clock.Interface

	acquired          metrics.Counter
	acquireFailures   metrics.Counter
	releases          metrics.Counter
	redundantReleases metrics.Counter
	held              metrics.Gauge
}

// New creates a Guard.  With no options, the Guard neither logs nor records metrics, and it
// uses the system clock.
func New(o ...Option) *Guard {
	g := &Guard{
		logger: logging.DefaultLogger(),
		clock:  clock.System(),
	}

	WithMetrics(provider.NewDiscardProvider())(g)
	for _, f := range o {
		f(g)
	}

	return g
}

var (
	defaultGuard     *Guard
	defaultGuardOnce sync.Once
)

// Default returns the uninstrumented Guard used by the package level functions.
func Default() *Guard {
	defaultGuardOnce.Do(func() {
		defaultGuard = New()
	})

	return defaultGuard
}

func (g *Guard) newHandle(mode Mode) *Handle {
	g.acquired.Add(1)
	g.held.Add(1)
	return &Handle{
		mode:  mode,
		guard: g,
	}
}

func (g *Guard) acquireFailed(mode Mode, err error) {
	g.acquireFailures.Add(1)
	level.Debug(g.logger).Log(logging.MessageKey(), "lock acquisition failed", "mode", mode, logging.ErrorKey(), err)
}

func (g *Guard) released(mode Mode, err error) {
	g.releases.Add(1)
	g.held.Add(-1)
	if err != nil {
		level.Error(g.logger).Log(logging.MessageKey(), "lock release failed", "mode", mode, logging.ErrorKey(), err)
	}
}

func (g *Guard) redundantRelease(mode Mode) {
	g.redundantReleases.Add(1)
	level.Debug(g.logger).Log(logging.MessageKey(), "handle already released", "mode", mode)
}

// enter runs an acquisition function and produces a handle if it succeeds.  The primitive
// must already have been checked for nil.
func (g *Guard) enter(mode Mode, acquire func() error) (*Handle, error) {
	if err := acquire(); err != nil {
		g.acquireFailed(mode, err)
		return nil, err
	}

	return g.newHandle(mode), nil
}

func (g *Guard) enterRW(mode Mode, l ReaderWriterLocker, acquire func(ReaderWriterLocker) error) (*Handle, error) {
	if err := ensure.NotNil(l, "locker"); err != nil {
		return nil, err
	}

	h, err := g.enter(mode, func() error { return acquire(l) })
	if h != nil {
		h.rw = l
	}

	return h, err
}

// EnterReadLock blocks until a read lock on l is granted.
func (g *Guard) EnterReadLock(l ReaderWriterLocker) (*Handle, error) {
	return g.enterRW(ModeRead, l, ReaderWriterLocker.EnterReadLock)
}

// EnterWriteLock blocks until an exclusive write lock on l is granted.
func (g *Guard) EnterWriteLock(l ReaderWriterLocker) (*Handle, error) {
	return g.enterRW(ModeWrite, l, ReaderWriterLocker.EnterWriteLock)
}

// EnterUpgradeableReadLock blocks until an upgradeable read lock on l is granted.
func (g *Guard) EnterUpgradeableReadLock(l ReaderWriterLocker) (*Handle, error) {
	return g.enterRW(ModeUpgradeableRead, l, ReaderWriterLocker.EnterUpgradeableReadLock)
}

// Lock locks a plain sync.Locker and returns a handle that unlocks it.  This function panics
// if l is nil.
func (g *Guard) Lock(l sync.Locker) *Handle {
	if err := ensure.NotNil(l, "locker"); err != nil {
		panic(err)
	}

	l.Lock()
	h := g.newHandle(ModeExclusive)
	h.l = l
	return h
}

// EnterReadLock acquires a read lock using the default Guard.
func EnterReadLock(l ReaderWriterLocker) (*Handle, error) {
	return Default().EnterReadLock(l)
}

// EnterWriteLock acquires a write lock using the default Guard.
func EnterWriteLock(l ReaderWriterLocker) (*Handle, error) {
	return Default().EnterWriteLock(l)
}

// EnterUpgradeableReadLock acquires an upgradeable read lock using the default Guard.
func EnterUpgradeableReadLock(l ReaderWriterLocker) (*Handle, error) {
	return Default().EnterUpgradeableReadLock(l)
}

// Lock locks l using the default Guard.
func Lock(l sync.Locker) *Handle {
	return Default().Lock(l)
}
