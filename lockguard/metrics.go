// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import "github.com/xmidt-org/lockguard/xmetrics"

const (
	// AcquiredCounter counts handles produced by a Guard
	AcquiredCounter = "acquired"

	// AcquireFailuresCounter counts acquisitions that returned an error
	AcquireFailuresCounter = "acquire_failures"

	// ReleasedCounter counts first releases of a handle, successful or not
	ReleasedCounter = "released"

	// RedundantReleasesCounter counts releases of a handle that was already released
	RedundantReleasesCounter = "redundant_releases"

	// HeldGauge is the number of handles currently held
	HeldGauge = "held"
)

// Metrics is the xmetrics.Module for the metrics a Guard records.  With the default
// xmetrics namespace, these are exposed as lockguard_acquired, lockguard_held, etc.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: AcquiredCounter,
			Type: xmetrics.CounterType,
			Help: "The total number of locks acquired through a guard",
		},
		{
			Name: AcquireFailuresCounter,
			Type: xmetrics.CounterType,
			Help: "The total number of lock acquisitions that failed, including timeouts and cancellations",
		},
		{
			Name: ReleasedCounter,
			Type: xmetrics.CounterType,
			Help: "The total number of handles released",
		},
		{
			Name: RedundantReleasesCounter,
			Type: xmetrics.CounterType,
			Help: "The total number of release calls on handles that were already released",
		},
		{
			Name: HeldGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of handles currently held",
		},
	}
}
