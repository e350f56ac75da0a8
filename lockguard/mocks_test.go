// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/mock"
)

type mockReaderWriterLocker struct {
	mock.Mock
}

func (m *mockReaderWriterLocker) EnterReadLock() error {
	return m.Called().Error(0)
}

func (m *mockReaderWriterLocker) ExitReadLock() error {
	return m.Called().Error(0)
}

func (m *mockReaderWriterLocker) EnterWriteLock() error {
	return m.Called().Error(0)
}

func (m *mockReaderWriterLocker) ExitWriteLock() error {
	return m.Called().Error(0)
}

func (m *mockReaderWriterLocker) EnterUpgradeableReadLock() error {
	return m.Called().Error(0)
}

func (m *mockReaderWriterLocker) ExitUpgradeableReadLock() error {
	return m.Called().Error(0)
}

type mockSemaphore struct {
	mock.Mock
}

func (m *mockSemaphore) Acquire() error {
	return m.Called().Error(0)
}

func (m *mockSemaphore) AcquireWait(t <-chan time.Time) error {
	return m.Called(t).Error(0)
}

func (m *mockSemaphore) AcquireCtx(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSemaphore) Release() error {
	return m.Called().Error(0)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) Lock() {
	m.Called()
}

func (m *mockLocker) Unlock() {
	m.Called()
}

// testProvider is a go-kit provider.Provider backed by generic metrics, so tests can read values
type testProvider struct {
	lock       sync.Mutex
	counters   map[string]*generic.Counter
	gauges     map[string]*generic.Gauge
	histograms map[string]*generic.Histogram
}

func newTestProvider() *testProvider {
	return &testProvider{
		counters:   make(map[string]*generic.Counter),
		gauges:     make(map[string]*generic.Gauge),
		histograms: make(map[string]*generic.Histogram),
	}
}

func (tp *testProvider) NewCounter(name string) metrics.Counter {
	tp.lock.Lock()
	defer tp.lock.Unlock()

	c, ok := tp.counters[name]
	if !ok {
		c = generic.NewCounter(name)
		tp.counters[name] = c
	}

	return c
}

func (tp *testProvider) NewGauge(name string) metrics.Gauge {
	tp.lock.Lock()
	defer tp.lock.Unlock()

	g, ok := tp.gauges[name]
	if !ok {
		g = generic.NewGauge(name)
		tp.gauges[name] = g
	}

	return g
}

func (tp *testProvider) NewHistogram(name string, buckets int) metrics.Histogram {
	tp.lock.Lock()
	defer tp.lock.Unlock()

	h, ok := tp.histograms[name]
	if !ok {
		h = generic.NewHistogram(name, buckets)
		tp.histograms[name] = h
	}

	return h
}

func (tp *testProvider) Stop() {
}

func (tp *testProvider) counter(name string) float64 {
	return tp.NewCounter(name).(*generic.Counter).Value()
}

func (tp *testProvider) gauge(name string) float64 {
	return tp.NewGauge(name).(*generic.Gauge).Value()
}
