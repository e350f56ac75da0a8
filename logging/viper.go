// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingKey is the conventional configuration key holding logging Options.
const LoggingKey = "log"

var (
	// ErrUnknownFormat indicates a configured format other than json or logfmt
	ErrUnknownFormat = errors.New("unknown log format")

	// ErrUnknownLevel indicates a configured level other than error, warn, info, or debug
	ErrUnknownLevel = errors.New("unknown log level")
)

// Sub returns the LoggingKey child of v, or nil if v is nil or has no logging section.
func Sub(v *viper.Viper) *viper.Viper {
	if v == nil {
		return nil
	}

	return v.Sub(LoggingKey)
}

// FromViper unmarshals Options from v on top of defaults.  Keys absent from v keep their
// default values, and a nil v yields the defaults unchanged.  Unlike New, which treats an
// unrecognized level as error, FromViper rejects unknown formats and levels so that a
// typo in configuration is reported rather than silently hiding output.
func FromViper(v *viper.Viper, defaults Options) (*Options, error) {
	o := defaults
	if v != nil {
		if err := v.Unmarshal(&o); err != nil {
			return nil, err
		}
	}

	if err := o.validate(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (o *Options) validate() error {
	switch strings.ToLower(o.Format) {
	case "", JSONFormat, LogfmtFormat:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
	}

	switch strings.ToUpper(o.Level) {
	case "", "ERROR", "WARN", "INFO", "DEBUG":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLevel, o.Level)
	}

	return nil
}
