// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package nullable provides helpers for optional values, modelled as pointers or
// other nilable types.
package nullable

import "github.com/xmidt-org/lockguard/types"

// IsNilOrZero tests whether v is nil or points to the zero value of T.
func IsNilOrZero[T comparable](v *T) bool {
	var zero T
	return v == nil || *v == zero
}

// IfNotNil invokes f with target and returns its result, unless target is nil, in
// which case the zero value of R is returned and f is not invoked.  Typed nils count as nil.
func IfNotNil[T, R any](target T, f func(T) R) R {
	if types.IsNil(target) {
		var zero R
		return zero
	}

	return f(target)
}

// DoIfNotNil invokes f with target unless target is nil.
func DoIfNotNil[T any](target T, f func(T)) {
	if !types.IsNil(target) {
		f(target)
	}
}
