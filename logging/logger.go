// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	defaultLogger = log.NewNopLogger()

	callerKey    interface{} = "caller"
	messageKey   interface{} = "msg"
	errorKey     interface{} = "error"
	timestampKey interface{} = "ts"
)

// CallerKey returns the logging key to be used for the stack location of the logging call
func CallerKey() interface{} {
	return callerKey
}

// MessageKey returns the logging key to be used for the textual message of the log entry
func MessageKey() interface{} {
	return messageKey
}

// ErrorKey returns the logging key to be used for error instances
func ErrorKey() interface{} {
	return errorKey
}

// TimestampKey returns the logging key to be used for the timestamp
func TimestampKey() interface{} {
	return timestampKey
}

// DefaultLogger returns a global singleton NOP logger.
// This returned instance is safe for concurrent access.
func DefaultLogger() log.Logger {
	return defaultLogger
}

// New creates a go-kit Logger from a set of options.  The options object can be nil,
// in which case a default logger that logs to os.Stdout is returned.  The returned logger
// includes the timestamp in UTC format and will filter according to the Level field.
//
// Caller information is not inserted.  Use DefaultCaller to add it.
func New(o *Options) log.Logger {
	return NewFilter(
		log.WithPrefix(
			o.loggerFactory()(o.output()),
			TimestampKey(), log.DefaultTimestampUTC,
		),
		o,
	)
}

// NewFilter applies the Options filtering rules in the package to an arbitrary go-kit Logger.
func NewFilter(next log.Logger, o *Options) log.Logger {
	switch strings.ToUpper(o.level()) {
	case "DEBUG":
		return level.NewFilter(next, level.AllowDebug())

	case "INFO":
		return level.NewFilter(next, level.AllowInfo())

	case "WARN":
		return level.NewFilter(next, level.AllowWarn())

	default:
		return level.NewFilter(next, level.AllowError())
	}
}

// DefaultCaller produces a contextual logger as with log.With, but automatically prepends the
// caller under the CallerKey.
//
// The logger returned by this function should not be further decorated, or the caller
// will point at the decorator.
func DefaultCaller(next log.Logger, keyvals ...interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{CallerKey(), log.DefaultCaller}, keyvals...)...,
	)
}

func withLevel(next log.Logger, value level.Value, keyvals []interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{CallerKey(), log.DefaultCaller, level.Key(), value}, keyvals...)...,
	)
}

// Error places both the caller and a constant error level into the prefix of the returned logger.
func Error(next log.Logger, keyvals ...interface{}) log.Logger {
	return withLevel(next, level.ErrorValue(), keyvals)
}

// Info places both the caller and a constant info level into the prefix of the returned logger.
func Info(next log.Logger, keyvals ...interface{}) log.Logger {
	return withLevel(next, level.InfoValue(), keyvals)
}

// Warn places both the caller and a constant warn level into the prefix of the returned logger.
func Warn(next log.Logger, keyvals ...interface{}) log.Logger {
	return withLevel(next, level.WarnValue(), keyvals)
}

// Debug places both the caller and a constant debug level into the prefix of the returned logger.
func Debug(next log.Logger, keyvals ...interface{}) log.Logger {
	return withLevel(next, level.DebugValue(), keyvals)
}
