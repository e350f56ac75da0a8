// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(DefaultNameFlag, "", "this is the config name")
	fs.String(DefaultFileFlag, "", "this is the config file")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestAddStandardConfigPaths(t *testing.T) {
	configer := new(mockConfiger)
	configer.On("AddConfigPath", "/etc/test").Once()
	configer.On("AddConfigPath", "$HOME/.test").Once()
	configer.On("AddConfigPath", ".").Once()

	AddStandardConfigPaths(configer, "test")

	configer.AssertExpectations(t)
}

func TestBindConfigName(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		configer := new(mockConfiger)
		configer.On("SetConfigName", "test").Once()

		assert.True(t, BindConfigName(configer, newFlagSet(t, "--name", "test"), DefaultNameFlag))
		configer.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			configer = new(mockConfiger)
			fs       = newFlagSet(t)
		)

		assert.False(BindConfigName(configer, fs, DefaultNameFlag))
		assert.False(BindConfigName(configer, fs, "nosuch"))
		assert.False(BindConfigName(configer, nil, DefaultNameFlag))
		configer.AssertExpectations(t)
	})
}

func TestBindConfigFile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		configer := new(mockConfiger)
		configer.On("SetConfigFile", "test.yaml").Once()

		assert.True(t, BindConfigFile(configer, newFlagSet(t, "--file", "test.yaml"), DefaultFileFlag))
		configer.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			configer = new(mockConfiger)
			fs       = newFlagSet(t)
		)

		assert.False(BindConfigFile(configer, fs, DefaultFileFlag))
		assert.False(BindConfigFile(configer, fs, "nosuch"))
		configer.AssertExpectations(t)
	})
}

func TestBindConfig(t *testing.T) {
	t.Run("FilePreferred", func(t *testing.T) {
		configer := new(mockConfiger)
		configer.On("SetConfigFile", "test.yaml").Once()

		assert.True(t, BindConfig(configer, newFlagSet(t, "--file", "test.yaml", "--name", "ignored"), DefaultFileFlag, DefaultNameFlag))
		configer.AssertExpectations(t)
	})

	t.Run("UsingName", func(t *testing.T) {
		configer := new(mockConfiger)
		configer.On("SetConfigName", "test").Once()

		assert.True(t, BindConfig(configer, newFlagSet(t, "--name", "test"), DefaultFileFlag, DefaultNameFlag))
		configer.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		configer := new(mockConfiger)

		assert.False(t, BindConfig(configer, newFlagSet(t), DefaultFileFlag, DefaultNameFlag))
		assert.False(t, BindConfig(configer, newFlagSet(t), "nosuch", "nosuch"))
		configer.AssertExpectations(t)
	})
}
