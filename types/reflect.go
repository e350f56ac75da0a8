// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"reflect"
	"strings"
)

// IsNil tests whether v is nil, including typed nils such as a nil *T stored in an interface{}.
// Values of kinds that can never be nil return false.
func IsNil(v interface{}) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// IsConcrete returns true if t can describe an actual value, i.e. it is not an interface type.
func IsConcrete(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Interface
}

// InterfaceOf returns the reflect.Type of the interface type I.  This function panics
// if I is not an interface.
func InterfaceOf[I any]() reflect.Type {
	t := reflect.TypeOf((*I)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Errorf("%s is not an interface type", t))
	}

	return t
}

// Implements tests whether t, or a pointer to t, implements iface.  Checking the pointer
// type as well means that methods declared with pointer receivers are taken into account.
func Implements(t, iface reflect.Type) bool {
	if t == nil || iface == nil || iface.Kind() != reflect.Interface {
		return false
	}

	if t.Implements(iface) {
		return true
	}

	if t.Kind() != reflect.Ptr && t.Kind() != reflect.Interface {
		return reflect.PointerTo(t).Implements(iface)
	}

	return false
}

// ImplementedInterfaces filters candidates down to the interfaces that t implements, in
// the order they were supplied.  Go cannot enumerate the interfaces a type satisfies, so
// the set of interest must be given explicitly.
func ImplementedInterfaces(t reflect.Type, candidates ...reflect.Type) []reflect.Type {
	var implemented []reflect.Type
	for _, c := range candidates {
		if Implements(t, c) {
			implemented = append(implemented, c)
		}
	}

	return implemented
}

// genericBase splits an instantiated generic type's name, e.g. Box[int], into its
// package path and unparameterized name.  The last return is false for nongeneric types.
func genericBase(t reflect.Type) (string, string, bool) {
	if t == nil {
		return "", "", false
	}

	name := t.Name()
	i := strings.IndexByte(name, '[')
	if i < 1 {
		return "", "", false
	}

	return t.PkgPath(), name[:i], true
}

// SameGeneric tests whether a and b are instantiations of the same generic type,
// regardless of their type arguments.  Box[int] and Box[string] are the same generic.
func SameGeneric(a, b reflect.Type) bool {
	aPath, aName, aOk := genericBase(a)
	bPath, bName, bOk := genericBase(b)
	return aOk && bOk && aPath == bPath && aName == bName
}

// EmbedsGeneric tests whether t is, or embeds at any depth, an instantiation of the same
// generic type as definition.  Pointers are followed.  This is the closest analog to
// deriving from a generic parent that Go's type system offers.
func EmbedsGeneric(t, definition reflect.Type) bool {
	return embedsGeneric(t, definition, make(map[reflect.Type]bool))
}

func embedsGeneric(t, definition reflect.Type, visited map[reflect.Type]bool) bool {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || visited[t] {
		return false
	}

	visited[t] = true
	if SameGeneric(t, definition) {
		return true
	}

	if t.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Anonymous && embedsGeneric(f.Type, definition, visited) {
			return true
		}
	}

	return false
}
