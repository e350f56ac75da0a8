// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/log/level"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/lockguard/clock"
	"github.com/xmidt-org/lockguard/clock/clocktest"
	"github.com/xmidt-org/lockguard/concurrent"
	"github.com/xmidt-org/lockguard/ensure"
	"github.com/xmidt-org/lockguard/logging"
	"github.com/xmidt-org/lockguard/rwlock"
	"github.com/xmidt-org/lockguard/xmetrics"
)

func ExampleEnterReadLock() {
	l := rwlock.New()

	h, err := EnterReadLock(l)
	if err != nil {
		panic(err)
	}

	defer h.Release()

	// work with the guarded resource here
}

func TestNew(t *testing.T) {
	var (
		assert = assert.New(t)
		g      = New()
	)

	assert.Equal(logging.DefaultLogger(), g.logger)
	assert.Equal(clock.System(), g.clock)
	assert.NotNil(g.acquired)
	assert.NotNil(g.held)

	g = New(WithLogger(nil), WithClock(nil), WithMetrics(nil))
	assert.Equal(logging.DefaultLogger(), g.logger)
	assert.Equal(clock.System(), g.clock)
	assert.NotNil(g.acquired)

	c := new(clocktest.Mock)
	assert.Equal(c, New(WithClock(c)).clock)
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestGuardNilPrimitives(t *testing.T) {
	var (
		g         = New()
		assertNil = func(t *testing.T, h *Handle, err error, param string) {
			var ae *ensure.ArgumentError
			assert.Nil(t, h)
			require.ErrorAs(t, err, &ae)
			assert.ErrorIs(t, err, ensure.ErrNil)
			assert.Equal(t, param, ae.Param)
		}

		nilLock      *rwlock.RWLock
		nilSemaphore Semaphore
	)

	t.Run("EnterReadLock", func(t *testing.T) {
		h, err := g.EnterReadLock(nil)
		assertNil(t, h, err, "locker")
	})

	t.Run("TypedNil", func(t *testing.T) {
		h, err := g.EnterWriteLock(nilLock)
		assertNil(t, h, err, "locker")
	})

	t.Run("EnterUpgradeableReadLock", func(t *testing.T) {
		h, err := g.EnterUpgradeableReadLock(nil)
		assertNil(t, h, err, "locker")
	})

	t.Run("Wait", func(t *testing.T) {
		h, err := g.Wait(nilSemaphore)
		assertNil(t, h, err, "semaphore")
	})

	t.Run("Lock", func(t *testing.T) {
		assert.Panics(t, func() { g.Lock(nil) })
	})
}

func TestGuardAcquireFailure(t *testing.T) {
	var (
		assert   = assert.New(t)
		require  = require.New(t)
		expected = errors.New("expected")
		logger   = logging.NewCaptureLogger()
		p        = newTestProvider()
		g        = New(WithLogger(logger), WithMetrics(p))
		l        = new(mockReaderWriterLocker)
	)

	l.On("EnterReadLock").Return(expected).Once()

	h, err := g.EnterReadLock(l)
	assert.Nil(h)
	assert.Equal(expected, err)

	assert.Equal(1.0, p.counter(AcquireFailuresCounter))
	assert.Zero(p.counter(AcquiredCounter))
	assert.Zero(p.gauge(HeldGauge))

	require.Len(logger.Output(), 1)
	m := <-logger.Output()
	assert.Equal(level.DebugValue(), m[level.Key()])
	assert.Equal(expected, m[logging.ErrorKey()])
	assert.Equal(ModeRead, m["mode"])

	l.AssertExpectations(t)
}

func TestGuardReleaseLogging(t *testing.T) {
	var (
		assert   = assert.New(t)
		require  = require.New(t)
		expected = errors.New("expected")
		logger   = logging.NewCaptureLogger()
		g        = New(WithLogger(logger))
		l        = new(mockReaderWriterLocker)
	)

	l.On("EnterWriteLock").Return(nil).Once()
	l.On("ExitWriteLock").Return(expected).Once()

	h, err := g.EnterWriteLock(l)
	require.NoError(err)
	assert.Empty(logger.Output())

	assert.Equal(expected, h.Release())
	require.Len(logger.Output(), 1)
	m := <-logger.Output()
	assert.Equal(level.ErrorValue(), m[level.Key()])
	assert.Equal(expected, m[logging.ErrorKey()])

	assert.NoError(h.Release())
	require.Len(logger.Output(), 1)
	m = <-logger.Output()
	assert.Equal(level.DebugValue(), m[level.Key()])
	assert.Equal(ModeWrite, m["mode"])

	l.AssertExpectations(t)
}

func TestGuardMetrics(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		p       = newTestProvider()
		g       = New(WithMetrics(p))
		l       = rwlock.New()
	)

	r1, err := g.EnterReadLock(l)
	require.NoError(err)
	r2, err := g.EnterReadLock(l)
	require.NoError(err)

	assert.Equal(2.0, p.counter(AcquiredCounter))
	assert.Equal(2.0, p.gauge(HeldGauge))

	require.NoError(r1.Release())
	require.NoError(r1.Release())
	require.NoError(r2.Release())

	assert.Equal(2.0, p.counter(ReleasedCounter))
	assert.Equal(1.0, p.counter(RedundantReleasesCounter))
	assert.Zero(p.gauge(HeldGauge))
}

func TestGuardXMetrics(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		r = xmetrics.MustNewRegistry(
			&xmetrics.Options{DisableGoCollector: true, DisableProcessCollector: true},
			Metrics,
		)

		g = New(WithMetrics(r))
	)

	h := g.Lock(new(sync.Mutex))
	require.NoError(h.Release())
	require.NoError(h.Release())

	families, err := r.Gather()
	require.NoError(err)

	var output strings.Builder
	for _, mf := range families {
		_, err := expfmt.MetricFamilyToText(&output, mf)
		require.NoError(err)
	}

	text := output.String()
	assert.Contains(text, "lockguard_acquired 1")
	assert.Contains(text, "lockguard_released 1")
	assert.Contains(text, "lockguard_redundant_releases 1")
	assert.Contains(text, "lockguard_held 0")
}

func TestConcurrentReaders(t *testing.T) {
	const readers = 8

	var (
		assert  = assert.New(t)
		require = require.New(t)
		l       = rwlock.New()
		handles = make(chan *Handle, readers)
		wg      sync.WaitGroup
	)

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := EnterReadLock(l)
			if assert.NoError(err) {
				handles <- h
			}
		}()
	}

	require.True(concurrent.WaitTimeout(&wg, 5*time.Second))
	close(handles)
	assert.Equal(readers, l.CurrentReadCount())

	for h := range handles {
		assert.NoError(h.Release())
		assert.NoError(h.Release())
	}

	assert.Zero(l.CurrentReadCount())
	assert.False(l.IsReadLockHeld())
}

func TestWriteLockScenario(t *testing.T) {
	var (
		assert = assert.New(t)
		l      = rwlock.New()
	)

	assert.False(l.IsWriteLockHeld())

	h, err := EnterWriteLock(l)
	require.NoError(t, err)
	assert.True(l.IsWriteLockHeld())

	assert.NoError(h.Release())
	assert.False(l.IsWriteLockHeld())

	assert.NoError(h.Release())
	assert.False(l.IsWriteLockHeld())
}

func TestUpgradeableReadLockScenario(t *testing.T) {
	var (
		assert = assert.New(t)
		l      = rwlock.New()
	)

	h, err := EnterUpgradeableReadLock(l)
	require.NoError(t, err)
	assert.True(l.IsUpgradeableReadLockHeld())

	// plain readers share the lock with an upgradeable reader
	r, err := EnterReadLock(l)
	require.NoError(t, err)
	assert.Equal(1, l.CurrentReadCount())

	assert.NoError(h.Release())
	assert.False(l.IsUpgradeableReadLockHeld())
	assert.Equal(1, l.CurrentReadCount())

	assert.NoError(h.Release())
	assert.Equal(1, l.CurrentReadCount())

	assert.NoError(r.Release())
	assert.Zero(l.CurrentReadCount())

	w, err := EnterWriteLock(l)
	require.NoError(t, err)
	assert.NoError(w.Release())
}

func TestUpgradeWhileHeld(t *testing.T) {
	var (
		assert = assert.New(t)
		l      = rwlock.New()
	)

	h, err := EnterUpgradeableReadLock(l)
	require.NoError(t, err)

	require.NoError(t, l.UpgradeToWriteLock())
	assert.True(l.IsWriteLockHeld())

	// the upgradeable read cannot be released while it is upgraded
	assert.ErrorIs(h.Release(), rwlock.ErrLockHeld)
	assert.True(h.Released())

	require.NoError(t, l.ExitWriteLock())
	require.NoError(t, l.ExitUpgradeableReadLock())
	assert.NoError(h.Release())
	assert.NoError(l.Close())
}

func TestLockExclusive(t *testing.T) {
	var (
		assert   = assert.New(t)
		m        sync.Mutex
		h        = Lock(&m)
		acquired = make(chan struct{})
	)

	go func() {
		defer close(acquired)
		Lock(&m).Release()
	}()

	select {
	case <-acquired:
		assert.Fail("the mutex should be held")
	case <-time.After(50 * time.Millisecond):
	}

	assert.NoError(h.Release())

	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		assert.Fail("the mutex was not released")
	}

	assert.NoError(h.Release())
	assert.True(m.TryLock())
	m.Unlock()
}
