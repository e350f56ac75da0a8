// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ensure

import (
	"errors"
	"fmt"
)

var (
	// ErrNil is the kind of error returned when a required value is nil.
	ErrNil = errors.New("argument is nil")

	// ErrEmpty is the kind of error returned when a value has no content.
	ErrEmpty = errors.New("argument is empty")

	// ErrBlank is the kind of error returned when a string consists solely of whitespace.
	ErrBlank = errors.New("argument is blank")

	// ErrOutOfRange is the kind of error returned when a value falls outside its permitted bounds.
	ErrOutOfRange = errors.New("argument is out of range")
)

// ArgumentError describes an argument that failed validation.
type ArgumentError struct {
	// Param is the name of the parameter that was validated
	Param string

	// Message is the human readable description of the failure
	Message string

	// Value is the offending value, when it is meaningful to report it.  Only out of range
	// failures set this field.
	Value interface{}

	// Kind is one of the sentinel errors in this package
	Kind error
}

func (ae *ArgumentError) Error() string {
	if ae.Value != nil {
		return fmt.Sprintf("%s (Parameter '%s') Actual value was %v.", ae.Message, ae.Param, ae.Value)
	}

	return fmt.Sprintf("%s (Parameter '%s')", ae.Message, ae.Param)
}

// Unwrap exposes Kind so that errors.Is works against the sentinels.
func (ae *ArgumentError) Unwrap() error {
	return ae.Kind
}

// Option customizes the error produced by a failed validation.
type Option func(*ArgumentError)

// WithMessage replaces the default message of the produced error.  An empty message is ignored.
func WithMessage(m string) Option {
	return func(ae *ArgumentError) {
		if len(m) > 0 {
			ae.Message = m
		}
	}
}

func newArgumentError(kind error, param, message string, value interface{}, o []Option) *ArgumentError {
	ae := &ArgumentError{
		Param:   param,
		Message: message,
		Value:   value,
		Kind:    kind,
	}

	for _, f := range o {
		f(ae)
	}

	return ae
}
