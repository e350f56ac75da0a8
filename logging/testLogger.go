// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
)

// TB is the part of testing.TB that test logging needs.
type TB interface {
	Helper()
	Log(...interface{})
}

type tbWriter struct {
	tb TB
}

// Write emits one test log line per write, without the encoder's trailing newline.
func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// NewTestWriter returns an io.Writer that sends each write to tb.Log.
func NewTestWriter(tb TB) io.Writer {
	return tbWriter{tb: tb}
}

// NewTestLogger produces a logger that writes through tb.Log, so output only shows up
// for failing or verbose tests.  A nil o shows everything down to debug.
func NewTestLogger(tb TB, o *Options) log.Logger {
	if o == nil {
		o = &Options{Level: "debug"}
	}

	return NewFilter(
		log.WithPrefix(
			o.loggerFactory()(NewTestWriter(tb)),
			TimestampKey(), log.DefaultTimestampUTC,
		),
		o,
	)
}
