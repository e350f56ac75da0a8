// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
)

// Module is a function type that returns prebuilt metrics.
type Module func() []Metric

// Metric describes a single metric that will be preregistered.  This type loosely
// corresponds with Prometheus' Opts struct.
type Metric struct {
	// Name is the required name of this metric.
	Name string `mapstructure:"name"`

	// Type is the required type of metric.  This value must be one of the constants defined in this package.
	Type string `mapstructure:"type"`

	// Namespace is the namespace of this metric.  This value is optional.  The enclosing Options' Namespace
	// field is used if this is not supplied.
	Namespace string `mapstructure:"namespace"`

	// Subsystem is the subsystem of this metric.  This value is optional.  The enclosing Options' Subsystem
	// field is used if this is not supplied.
	Subsystem string `mapstructure:"subsystem"`

	// Help is the help string for this metric.  If not supplied, the metric's name is used
	Help string `mapstructure:"help"`

	// ConstLabels are the Prometheus ConstLabels for this metric.  This field is optional.
	ConstLabels map[string]string `mapstructure:"constLabels"`

	// Buckets describes the observation buckets for a histogram.  This field is only valid for histogram metrics
	// and is ignored for other metric types.
	Buckets []float64 `mapstructure:"buckets"`
}

// newCollector creates a Prometheus metric from a Metric descriptor, using the given
// namespace and subsystem when the metric doesn't define its own.
func newCollector(m Metric, namespace, subsystem string) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errors.New("a name is required for a metric")
	}

	if len(m.Namespace) > 0 {
		namespace = m.Namespace
	}

	if len(m.Subsystem) > 0 {
		subsystem = m.Subsystem
	}

	help := m.Help
	if len(help) == 0 {
		help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, []string{}), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, []string{}), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			Buckets:     m.Buckets,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, []string{}), nil

	default:
		return nil, fmt.Errorf("unsupported metric type: %s", m.Type)
	}
}
