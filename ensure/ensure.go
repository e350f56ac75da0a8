// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ensure

import (
	"strings"

	"github.com/google/uuid"
	"github.com/xmidt-org/lockguard/types"
)

const (
	defaultNilMessage   = "Value cannot be nil."
	defaultEmptyMessage = "Value cannot be empty."
	defaultBlankMessage = "Value cannot be whitespace."
)

// NotNil fails when value is nil.  Typed nils, e.g. a nil pointer or map passed as an
// interface{}, are treated as nil.
func NotNil(value interface{}, param string, o ...Option) error {
	if types.IsNil(value) {
		return newArgumentError(ErrNil, param, defaultNilMessage, nil, o)
	}

	return nil
}

// NotEmpty fails when value is the empty string.
func NotEmpty(value string, param string, o ...Option) error {
	if len(value) == 0 {
		return newArgumentError(ErrEmpty, param, defaultEmptyMessage, nil, o)
	}

	return nil
}

// NotBlank fails when value is empty or consists only of whitespace.
func NotBlank(value string, param string, o ...Option) error {
	if err := NotEmpty(value, param, o...); err != nil {
		return err
	}

	if len(strings.TrimSpace(value)) == 0 {
		return newArgumentError(ErrBlank, param, defaultBlankMessage, nil, o)
	}

	return nil
}

// NotNilOrEmptyUUID fails when id is nil or points to uuid.Nil.
func NotNilOrEmptyUUID(id *uuid.UUID, param string, o ...Option) error {
	if id == nil {
		return newArgumentError(ErrNil, param, defaultNilMessage, nil, o)
	}

	if *id == uuid.Nil {
		return newArgumentError(ErrEmpty, param, defaultEmptyMessage, nil, o)
	}

	return nil
}

// NotNilOrEmptySlice fails when value is a nil slice or has no elements.
func NotNilOrEmptySlice[T any](value []T, param string, o ...Option) error {
	if value == nil {
		return newArgumentError(ErrNil, param, defaultNilMessage, nil, o)
	}

	if len(value) == 0 {
		return newArgumentError(ErrEmpty, param, defaultEmptyMessage, nil, o)
	}

	return nil
}
