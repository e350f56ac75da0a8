// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider is a Prometheus-specific version of go-kit's metrics.Provider.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// The Provider implementation works slightly differently than the go-kit implementation.  For any metric that is already defined
// the provider returns a new go-kit wrapper for that metric.  Additionally, new metrics (including ad hoc metrics) are cached
// and returned by subsequent calls to the Provider methods.
type Registry interface {
	PrometheusProvider
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

// registry is the internal Registry implementation
type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// collector returns the cached collector for name, creating and registering one through
// factory when none exists yet.
func (r *registry) collector(name string, factory func() prometheus.Collector) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c := factory()
	if err := r.Registry.Register(c); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(err)
		}

		c = already.ExistingCollector
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	c := r.collector(name, func() prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      name,
		}, []string{})
	})

	counterVec, ok := c.(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a counter", name))
	}

	return counterVec
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	c := r.collector(name, func() prometheus.Collector {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      name,
		}, []string{})
	})

	gaugeVec, ok := c.(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a gauge", name))
	}

	return gaugeVec
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	c := r.collector(name, func() prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      name,
		}, []string{})
	})

	histogramVec, ok := c.(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a histogram", name))
	}

	return histogramVec
}

// NewHistogram will return a Histogram for either a Summary or Histogram.  This is different
// behavior from metrics.Provider.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	return gokitprometheus.NewHistogram(r.NewHistogramVec(name))
}

// Stop is a nop.  The underlying prometheus registry has no resources to release.
func (r *registry) Stop() {
}

// NewRegistry creates an xmetrics.Registry from an externally supplied set of Options and a set
// of modules, which are invoked after the Options metrics are registered.  Either parameter
// may be nil.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	var (
		logger = o.logger()
		r      = &registry{
			Registry:  o.registry(),
			namespace: o.namespace(),
			subsystem: o.subsystem(),
			cache:     make(map[string]prometheus.Collector),
		}

		all = append([]Metric{}, o.metrics()...)
	)

	for _, m := range modules {
		all = append(all, m()...)
	}

	for _, m := range all {
		c, err := newCollector(m, r.namespace, r.subsystem)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("unable to register metric %s: %w", m.Name, err)
		}

		level.Debug(logger).Log("msg", "registered metric", "name", m.Name, "type", m.Type)
		r.cache[m.Name] = c
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry, except that it panics when NewRegistry would return an error.
func MustNewRegistry(o *Options, modules ...Module) Registry {
	r, err := NewRegistry(o, modules...)
	if err != nil {
		panic(err)
	}

	return r
}
