// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lockguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeString(t *testing.T) {
	testData := []struct {
		mode     Mode
		expected string
	}{
		{ModeRead, "read"},
		{ModeWrite, "write"},
		{ModeUpgradeableRead, "upgradeable-read"},
		{ModeSlot, "slot"},
		{ModeExclusive, "exclusive"},
		{Mode(0), "Mode(0)"},
		{ModeSlot | ModeRead, "Mode(5)"},
	}

	for _, record := range testData {
		t.Run(record.expected, func(t *testing.T) {
			assert.Equal(t, record.expected, record.mode.String())
		})
	}
}

func TestModeUpgradeableRead(t *testing.T) {
	assert := assert.New(t)
	assert.NotZero(ModeUpgradeableRead & ModeRead)
	assert.NotZero(ModeUpgradeableRead & ModeWrite)
	assert.Zero(ModeUpgradeableRead & (ModeSlot | ModeExclusive))
}
