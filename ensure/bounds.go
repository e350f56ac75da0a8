// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ensure

import (
	"cmp"
	"fmt"
	"strings"
)

// Bounds is an optionally open interval.  A nil Min or Max leaves that side unbounded.
type Bounds[T cmp.Ordered] struct {
	Min *T
	Max *T
}

// AtLeast produces Bounds with only a lower limit.
func AtLeast[T cmp.Ordered](min T) Bounds[T] {
	return Bounds[T]{Min: &min}
}

// AtMost produces Bounds with only an upper limit.
func AtMost[T cmp.Ordered](max T) Bounds[T] {
	return Bounds[T]{Max: &max}
}

// Between produces Bounds with both limits, inclusive.
func Between[T cmp.Ordered](min, max T) Bounds[T] {
	return Bounds[T]{Min: &min, Max: &max}
}

// Contains tests whether v lies within these bounds.
func (b Bounds[T]) Contains(v T) bool {
	if b.Min != nil && cmp.Less(v, *b.Min) {
		return false
	}

	if b.Max != nil && cmp.Less(*b.Max, v) {
		return false
	}

	return true
}

// message builds the default out of range text, e.g. "Value cannot be less than 1 or greater than 5."
func (b Bounds[T]) message() string {
	var m strings.Builder
	m.WriteString("Value cannot be")
	if b.Min != nil {
		fmt.Fprintf(&m, " less than %v", *b.Min)
	}

	if b.Max != nil {
		if b.Min != nil {
			m.WriteString(" or")
		}

		fmt.Fprintf(&m, " greater than %v", *b.Max)
	}

	m.WriteString(".")
	return m.String()
}

// NotOutOfRange fails when value lies outside of b.  The produced error carries the value.
func NotOutOfRange[T cmp.Ordered](value T, param string, b Bounds[T], o ...Option) error {
	if !b.Contains(value) {
		return newArgumentError(ErrOutOfRange, param, b.message(), value, o)
	}

	return nil
}
