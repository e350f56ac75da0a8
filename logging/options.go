// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	StdoutFile = "stdout"
	StderrFile = "stderr"

	JSONFormat   = "json"
	LogfmtFormat = "logfmt"
)

// Options stores the configuration of a Logger.  Lumberjack is used for rolling files.
type Options struct {
	// File is the system file path for the log file.  If set to "stdout" or "stderr", this will
	// log to the corresponding stream.  Otherwise, a lumberjack.Logger is created.
	File string `json:"file"`

	// MaxSize is the lumberjack MaxSize
	MaxSize int `json:"maxsize"`

	// MaxAge is the lumberjack MaxAge
	MaxAge int `json:"maxage"`

	// MaxBackups is the lumberjack MaxBackups
	MaxBackups int `json:"maxbackups"`

	// Compress is the lumberjack Compress
	Compress bool `json:"compress"`

	// JSON is a flag indicating whether JSON logging output is used.  It takes precedence over Format.
	JSON bool `json:"json"`

	// Format selects the output encoding, either "json" or "logfmt".  The default is logfmt.
	Format string `json:"format"`

	// Level is the error level to output: ERROR, INFO, WARN, or DEBUG.  Any unrecognized string,
	// including the empty string, is equivalent to passing ERROR.
	Level string `json:"level"`
}

func (o *Options) output() io.Writer {
	if o != nil {
		switch o.File {
		case "", StdoutFile:
		case StderrFile:
			return log.NewSyncWriter(os.Stderr)

		default:
			return &lumberjack.Logger{
				Filename:   o.File,
				MaxSize:    o.MaxSize,
				MaxAge:     o.MaxAge,
				MaxBackups: o.MaxBackups,
				Compress:   o.Compress,
			}
		}
	}

	return log.NewSyncWriter(os.Stdout)
}

func (o *Options) loggerFactory() func(io.Writer) log.Logger {
	if o != nil && (o.JSON || strings.EqualFold(o.Format, JSONFormat)) {
		return log.NewJSONLogger
	}

	return log.NewLogfmtLogger
}

func (o *Options) level() string {
	if o != nil {
		return o.Level
	}

	return ""
}
