// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/lockguard/ensure"
)

func validWorkload() Workload {
	return Workload{
		Readers:     1,
		Writers:     1,
		Upgraders:   1,
		Slots:       1,
		Capacity:    1,
		Iterations:  1,
		Duration:    time.Second,
		SlotTimeout: 0,
	}
}

func TestWorkloadValidate(t *testing.T) {
	testData := []struct {
		name   string
		modify func(*Workload)
		param  string
	}{
		{"NegativeReaders", func(w *Workload) { w.Readers = -1 }, ReadersKey},
		{"NegativeWriters", func(w *Workload) { w.Writers = -1 }, WritersKey},
		{"NegativeUpgraders", func(w *Workload) { w.Upgraders = -1 }, UpgradersKey},
		{"NegativeSlots", func(w *Workload) { w.Slots = -1 }, SlotsKey},
		{"ZeroCapacity", func(w *Workload) { w.Capacity = 0 }, CapacityKey},
		{"ZeroIterations", func(w *Workload) { w.Iterations = 0 }, IterationsKey},
		{"ShortDuration", func(w *Workload) { w.Duration = time.Microsecond }, DurationKey},
		{"NegativeSlotTimeout", func(w *Workload) { w.SlotTimeout = -time.Second }, SlotTimeoutKey},
	}

	require.NoError(t, validWorkload().Validate())

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			var (
				w  = validWorkload()
				ae *ensure.ArgumentError
			)

			record.modify(&w)
			err := w.Validate()
			assert.ErrorIs(t, err, ensure.ErrOutOfRange)
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, record.param, ae.Param)
		})
	}
}

func TestWorkloadFromViper(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = newFlagSet()
	)

	t.Setenv("GUARDSTRESS_READERS", "9")

	v, err := newViper(fs, []string{"--writers", "3", "--slot-timeout", "2s"})
	require.NoError(err)

	w, err := workloadFromViper(v)
	require.NoError(err)

	assert.Equal(9, w.Readers)
	assert.Equal(3, w.Writers)
	assert.Equal(1, w.Upgraders)
	assert.Equal(4, w.Slots)
	assert.Equal(DefaultCapacity, w.Capacity)
	assert.Equal(DefaultIterations, w.Iterations)
	assert.Equal(DefaultDuration, w.Duration)
	assert.Equal(2*time.Second, w.SlotTimeout)
}
