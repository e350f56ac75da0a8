// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"

	"github.com/go-kit/log"
)

type contextKey uint32

const loggerKey contextKey = 1

// WithLogger adds the given Logger to the context so that it can be retrieved with GetLogger
func WithLogger(parent context.Context, logger log.Logger) context.Context {
	return context.WithValue(parent, loggerKey, logger)
}

// LoggerFrom returns the go-kit logger associated with the context, if any.
func LoggerFrom(ctx context.Context) (log.Logger, bool) {
	if ctx == nil {
		return nil, false
	}

	logger, ok := ctx.Value(loggerKey).(log.Logger)
	return logger, ok && logger != nil
}

// GetLogger retrieves the go-kit logger associated with the context.  If no logger is
// present in the context, DefaultLogger is returned instead.
func GetLogger(ctx context.Context) log.Logger {
	if logger, ok := LoggerFrom(ctx); ok {
		return logger
	}

	return DefaultLogger()
}
