// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("caller", CallerKey())
	assert.Equal("msg", MessageKey())
	assert.Equal("error", ErrorKey())
	assert.Equal("ts", TimestampKey())
}

func TestDefaultLogger(t *testing.T) {
	logger := DefaultLogger()
	require.NotNil(t, logger)
	assert.NoError(t, logger.Log("key", "value"))
}

func TestNew(t *testing.T) {
	for _, o := range []*Options{nil, new(Options), {JSON: true}, {Format: LogfmtFormat, Level: "debug"}} {
		logger := New(o)
		require.NotNil(t, logger)
		assert.NotPanics(t, func() {
			logger.Log(level.Key(), level.ErrorValue(), MessageKey(), "expected output: this shouldn't panic")
		})
	}
}

func TestNewFilter(t *testing.T) {
	testData := []struct {
		level    string
		expected []string
	}{
		{"", []string{"error"}},
		{"bogus", []string{"error"}},
		{"error", []string{"error"}},
		{"warn", []string{"warn", "error"}},
		{"INFO", []string{"info", "warn", "error"}},
		{"debug", []string{"debug", "info", "warn", "error"}},
	}

	for _, record := range testData {
		t.Run(record.level, func(t *testing.T) {
			var (
				assert = assert.New(t)
				output = NewCaptureLogger(4)
				logger = NewFilter(output, &Options{Level: record.level})
			)

			Debug(logger).Log(MessageKey(), "debug")
			Info(logger).Log(MessageKey(), "info")
			Warn(logger).Log(MessageKey(), "warn")
			Error(logger).Log(MessageKey(), "error")

			var actual []string
			for len(output.Output()) > 0 {
				actual = append(actual, (<-output.Output())[MessageKey()].(string))
			}

			assert.Equal(record.expected, actual)
		})
	}
}

func TestLevelLoggers(t *testing.T) {
	testData := []struct {
		name     string
		factory  func(log.Logger, ...interface{}) log.Logger
		expected level.Value
	}{
		{"Debug", Debug, level.DebugValue()},
		{"Info", Info, level.InfoValue()},
		{"Warn", Warn, level.WarnValue()},
		{"Error", Error, level.ErrorValue()},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			var (
				assert  = assert.New(t)
				require = require.New(t)
				output  = NewCaptureLogger()
			)

			record.factory(output, "component", "test").Log(MessageKey(), "message")
			m := <-output.Output()
			require.NotNil(m)

			assert.Equal(record.expected, m[level.Key()])
			assert.Equal("test", m["component"])
			assert.Equal("message", m[MessageKey()])
			assert.Contains(m, CallerKey())
		})
	}
}

func TestDefaultCaller(t *testing.T) {
	var (
		assert = assert.New(t)
		output = NewCaptureLogger()
	)

	DefaultCaller(output, "key", "value").Log(MessageKey(), "message")
	m := <-output.Output()

	assert.Equal("value", m["key"])
	assert.Contains(m[CallerKey()], "logger_test.go")
}

func TestNewTestLoggerSink(t *testing.T) {
	var (
		assert = assert.New(t)
		sink   = new(bufferSink)
	)

	logger := NewTestLogger(sink, nil)
	logger.Log(level.Key(), level.DebugValue(), MessageKey(), "debug message")
	assert.Contains(sink.String(), "debug message")

	sink.Reset()
	logger = NewTestLogger(sink, &Options{JSON: true, Level: "error"})
	logger.Log(level.Key(), level.DebugValue(), MessageKey(), "filtered")
	assert.Empty(sink.String())

	logger.Log(level.Key(), level.ErrorValue(), MessageKey(), "kept")
	assert.Contains(sink.String(), `"msg":"kept"`)
}

// bufferSink is a testLogger that accumulates everything logged
type bufferSink struct {
	bytes.Buffer
}

func (b *bufferSink) Helper() {}

func (b *bufferSink) Log(v ...interface{}) {
	for _, e := range v {
		b.WriteString(e.(string))
	}
}
