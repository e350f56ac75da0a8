// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import "strconv"

// Mode describes how a Handle holds its lock, and therefore how that lock is released.
type Mode uint8

const (
	ModeRead Mode = 1 << iota
	ModeWrite
	ModeSlot
	ModeExclusive

	// ModeUpgradeableRead is an upgradeable read lock.  It is released with
	// ExitUpgradeableReadLock, never with ExitReadLock.
	ModeUpgradeableRead = ModeRead | ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeUpgradeableRead:
		return "upgradeable-read"
	case ModeSlot:
		return "slot"
	case ModeExclusive:
		return "exclusive"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}
