// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// guardstress drives a reader-writer lock and a semaphore through lockguard from many
// goroutines, verifies that both end up idle, and prints the resulting metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/lockguard/concurrent"
	"github.com/xmidt-org/lockguard/lockguard"
	"github.com/xmidt-org/lockguard/logging"
	"github.com/xmidt-org/lockguard/rwlock"
	"github.com/xmidt-org/lockguard/semaphore"
	"github.com/xmidt-org/lockguard/xmetrics"
	"golang.org/x/sync/errgroup"
)

const (
	applicationName = "guardstress"

	// SlotsInUseGauge and SlotFailuresCounter instrument the stress semaphore itself
	SlotsInUseGauge     = "slots_in_use"
	SlotFailuresCounter = "slot_failures"

	// shutdownGrace is how long past the configured duration workers may take to stop
	shutdownGrace = 5 * time.Second
)

const (
	exitOK = iota
	exitConfiguration
	exitFailure
)

var errWorkersStuck = errors.New("workers did not finish within the allotted time")

func newLogger(v *viper.Viper) (log.Logger, error) {
	o, err := logging.FromViper(
		logging.Sub(v),
		logging.Options{File: logging.StderrFile, Level: "info"},
	)

	if err != nil {
		return nil, err
	}

	return logging.New(o), nil
}

func newRegistry(v *viper.Viper, logger log.Logger) (xmetrics.Registry, error) {
	o, err := xmetrics.FromViper(v.Sub(xmetrics.MetricsKey))
	if err != nil {
		return nil, err
	}

	o.Logger = logger
	return xmetrics.NewRegistry(o, lockguard.Metrics, stressMetrics)
}

func stressMetrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: SlotsInUseGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of stress semaphore slots currently held",
		},
		{
			Name: SlotFailuresCounter,
			Type: xmetrics.CounterType,
			Help: "The number of failed stress semaphore operations",
		},
	}
}

// writeMetrics prints every gathered metric family in the prometheus text exposition format
func writeMetrics(w io.Writer, r xmetrics.Registry) error {
	families, err := r.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

// execute performs one stress run of the workload
func execute(ctx context.Context, w Workload, logger log.Logger, r xmetrics.Registry) (Results, error) {
	s := &stress{
		workload: w,
		guard: lockguard.New(
			lockguard.WithLogger(logger),
			lockguard.WithMetrics(r),
		),
		lock: rwlock.New(),
		slots: semaphore.Instrument(
			semaphore.New(w.Capacity),
			semaphore.WithResources(r.NewGauge(SlotsInUseGauge)),
			semaphore.WithFailures(r.NewCounter(SlotFailuresCounter)),
		),
	}

	runCtx, cancel := context.WithTimeout(ctx, w.Duration)
	defer cancel()

	g, groupCtx := errgroup.WithContext(runCtx)
	s.start(groupCtx, g, logger)

	finished, err := concurrent.WaitErrorTimeout(g, w.Duration+shutdownGrace)
	if !finished {
		return Results{}, errWorkersStuck
	}

	results, verifyErr := s.verify()
	return results, errors.Join(err, verifyErr)
}

func run(ctx context.Context, arguments []string, stdout io.Writer) int {
	fs := newFlagSet()
	v, err := newViper(fs, arguments)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to initialize viper: %s\n", err)
		return exitConfiguration
	}

	logger, err := newLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to initialize logging: %s\n", err)
		return exitConfiguration
	}

	logger = log.With(logger, "run", uuid.New())

	workload, err := workloadFromViper(v)
	if err != nil {
		logging.Error(logger).Log(logging.MessageKey(), "invalid workload", logging.ErrorKey(), err)
		return exitConfiguration
	}

	registry, err := newRegistry(v, logger)
	if err != nil {
		logging.Error(logger).Log(logging.MessageKey(), "unable to create metrics registry", logging.ErrorKey(), err)
		return exitConfiguration
	}

	logging.Info(logger).Log(
		logging.MessageKey(), "starting stress run",
		"configFile", v.ConfigFileUsed(),
		ReadersKey, workload.Readers,
		WritersKey, workload.Writers,
		UpgradersKey, workload.Upgraders,
		SlotsKey, workload.Slots,
		CapacityKey, workload.Capacity,
		IterationsKey, workload.Iterations,
	)

	start := time.Now()
	results, err := execute(ctx, workload, logger, registry)
	if err != nil {
		logging.Error(logger).Log(logging.MessageKey(), "stress run failed", logging.ErrorKey(), err)
		return exitFailure
	}

	logging.Info(logger).Log(
		logging.MessageKey(), "stress run complete",
		"elapsed", time.Since(start),
		"reads", results.Reads,
		"writes", results.Writes,
		"upgrades", results.Upgrades,
		"slots", results.Slots,
		"slotTimeouts", results.SlotTimeouts,
		"counter", results.Counter,
	)

	if err := writeMetrics(stdout, registry); err != nil {
		logging.Error(logger).Log(logging.MessageKey(), "unable to write metrics", logging.ErrorKey(), err)
		return exitFailure
	}

	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
