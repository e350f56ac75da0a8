// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
)

const (
	DefaultNamespace = "lockguard"

	// MetricsKey is the Viper subkey under which metrics configuration is stored
	MetricsKey = "metrics"
)

// Options is the configurable options for creating a Prometheus registry
type Options struct {
	// Logger is the go-kit logger to use for metrics output.  If unset, a NOP logger is used.
	Logger log.Logger `mapstructure:"-"`

	// Namespace is the global default namespace for metrics which don't define a namespace (or for ad hoc metrics).
	// If not supplied, DefaultNamespace is used.
	Namespace string `mapstructure:"namespace"`

	// Subsystem is the global default subsystem for metrics which don't define a subsystem (or for ad hoc metrics).
	// This value is optional.
	Subsystem string `mapstructure:"subsystem"`

	// Pedantic indicates whether the registry is created via NewPedanticRegistry().  By default, this is false.  Set
	// to true for testing or development.
	Pedantic bool `mapstructure:"pedantic"`

	// DisableGoCollector controls whether the Go Collector is registered with the Registry.  By default this is false,
	// meaning that a GoCollector is registered.
	DisableGoCollector bool `mapstructure:"disableGoCollector"`

	// DisableProcessCollector controls whether the Process Collector is registered with the Registry.  By default this is false,
	// meaning that a ProcessCollector is registered.
	DisableProcessCollector bool `mapstructure:"disableProcessCollector"`

	// Metrics defines the set of predefined metrics.  These metrics will be defined immediately by a Registry
	// created using this Options instance.  This field is optional.
	Metrics []Metric `mapstructure:"metrics"`
}

// FromViper produces an Options from a (possibly nil) Viper instance.  Callers typically
// pass v.Sub(MetricsKey).
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		if err := v.Unmarshal(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (o *Options) logger() log.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return log.NewNopLogger()
}

func (o *Options) namespace() string {
	if o != nil && len(o.Namespace) > 0 {
		return o.Namespace
	}

	return DefaultNamespace
}

func (o *Options) subsystem() string {
	if o != nil {
		return o.Subsystem
	}

	return ""
}

func (o *Options) registry() *prometheus.Registry {
	var pr *prometheus.Registry
	if o != nil && o.Pedantic {
		pr = prometheus.NewPedanticRegistry()
	} else {
		pr = prometheus.NewRegistry()
	}

	if o == nil || !o.DisableGoCollector {
		pr.MustRegister(collectors.NewGoCollector())
	}

	if o == nil || !o.DisableProcessCollector {
		pr.MustRegister(collectors.NewProcessCollector(
			collectors.ProcessCollectorOpts{
				Namespace: o.namespace(),
			},
		))
	}

	return pr
}

func (o *Options) metrics() []Metric {
	if o != nil {
		return o.Metrics
	}

	return nil
}
