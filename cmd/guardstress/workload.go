// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/lockguard/ensure"
	"github.com/xmidt-org/lockguard/xviper"
)

const (
	ReadersKey     = "readers"
	WritersKey     = "writers"
	UpgradersKey   = "upgraders"
	SlotsKey       = "slots"
	CapacityKey    = "capacity"
	IterationsKey  = "iterations"
	DurationKey    = "duration"
	SlotTimeoutKey = "slot-timeout"

	DefaultCapacity    = 2
	DefaultIterations  = 100
	DefaultDuration    = 30 * time.Second
	DefaultSlotTimeout = 50 * time.Millisecond
)

// Workload describes the goroutines a stress run starts.  Each worker performs Iterations
// acquisitions unless Duration elapses first.
type Workload struct {
	Readers     int           `mapstructure:"readers"`
	Writers     int           `mapstructure:"writers"`
	Upgraders   int           `mapstructure:"upgraders"`
	Slots       int           `mapstructure:"slots"`
	Capacity    int           `mapstructure:"capacity"`
	Iterations  int           `mapstructure:"iterations"`
	Duration    time.Duration `mapstructure:"duration"`
	SlotTimeout time.Duration `mapstructure:"slot-timeout"`
}

// Validate checks each field of the workload, returning all the problems found.
func (w Workload) Validate() error {
	nonNegative := ensure.AtLeast(0)
	return errors.Join(
		ensure.NotOutOfRange(w.Readers, ReadersKey, nonNegative),
		ensure.NotOutOfRange(w.Writers, WritersKey, nonNegative),
		ensure.NotOutOfRange(w.Upgraders, UpgradersKey, nonNegative),
		ensure.NotOutOfRange(w.Slots, SlotsKey, nonNegative),
		ensure.NotOutOfRange(w.Capacity, CapacityKey, ensure.AtLeast(1)),
		ensure.NotOutOfRange(w.Iterations, IterationsKey, ensure.AtLeast(1)),
		ensure.NotOutOfRange(w.Duration, DurationKey, ensure.AtLeast(time.Millisecond)),
		ensure.NotOutOfRange(w.SlotTimeout, SlotTimeoutKey, nonNegativeDuration),
	)
}

var nonNegativeDuration = ensure.AtLeast(time.Duration(0))

// newFlagSet defines the command line for guardstress.  Every workload flag is bound to viper
// under its own name.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP(xviper.DefaultFileFlag, "f", "", "the configuration file to use.  Overrides --name.")
	fs.StringP(xviper.DefaultNameFlag, "n", applicationName, "the configuration file name, searched for in the standard locations")
	fs.Int(ReadersKey, 4, "the number of goroutines taking read locks")
	fs.Int(WritersKey, 2, "the number of goroutines taking write locks")
	fs.Int(UpgradersKey, 1, "the number of goroutines taking upgradeable read locks and upgrading them")
	fs.Int(SlotsKey, 4, "the number of goroutines acquiring semaphore slots")
	fs.Int(CapacityKey, DefaultCapacity, "the number of semaphore slots")
	fs.Int(IterationsKey, DefaultIterations, "the number of acquisitions each goroutine performs")
	fs.Duration(DurationKey, DefaultDuration, "the maximum duration of the run")
	fs.Duration(SlotTimeoutKey, DefaultSlotTimeout, "the timeout for each slot acquisition")
	return fs
}

// newViper parses the command line and layers it over configuration files and the environment.
func newViper(fs *pflag.FlagSet, arguments []string) (*viper.Viper, error) {
	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}

	return xviper.New(
		xviper.StdOptions(applicationName, fs),
		xviper.ReadInConfig(true),
	)
}

func workloadFromViper(v *viper.Viper) (Workload, error) {
	var w Workload
	if err := v.Unmarshal(&w); err != nil {
		return Workload{}, err
	}

	return w, w.Validate()
}
