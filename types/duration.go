// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"strconv"
	"time"
)

var errEmptyDuration = errors.New("empty duration")

// Duration is an extension of time.Duration that provides prettier JSON support
type Duration time.Duration

// String delegates to time.Duration.String()
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON produces a formatted string of the form
// produced by time.Duration.String()
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON permits either: (1) strings of the form accepted by time.ParseDuration(),
// or (2) numeric time values, which are assumed to be nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return errEmptyDuration
	}

	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}

		parsed, err := time.ParseDuration(unquoted)
		if err != nil {
			return err
		}

		*d = Duration(parsed)
		return nil
	}

	nanos, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}

	*d = Duration(nanos)
	return nil
}
