// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package enums provides common interfaces for enums
// and utilities for using them.
package enums

import (
	"fmt"
	"reflect"
)

// Enum is the interface that all enum types satisfy.
// Enum types must be convertable to strings and int64s,
// and must be able to return all possible enum values.
type Enum interface {
	fmt.Stringer

	// Int64 returns the enum value as an int64.
	Int64() int64

	// Values returns all possible values this
	// enum type has, in declaration order.
	Values() []Enum
}

// EnumSetter is an expanded interface that all pointers
// to enum types satisfy. Pointers to enum types must
// satisfy all of the methods of [Enum], and must also
// be settable from strings and int64s.
type EnumSetter interface {
	Enum

	// SetString sets the enum value from its
	// string representation, and returns an
	// error if the string is invalid.
	SetString(s string) error

	// SetInt64 sets the enum value from an int64.
	SetInt64(i int64)
}

var enumType = reflect.TypeFor[Enum]()

// IsEnum returns whether the given type is an enum type.
func IsEnum(typ reflect.Type) bool {
	if typ == nil || typ.Kind() == reflect.Interface {
		return false
	}
	return typ.Implements(enumType)
}

// Strings returns the string representations of all of
// the values of the given enum, in order.
func Strings(e Enum) []string {
	vals := e.Values()
	res := make([]string, len(vals))
	for i, v := range vals {
		res[i] = v.String()
	}
	return res
}

// Index returns the index of the given enum value within its
// [Enum.Values], or -1 if it is not a valid value.
func Index(e Enum) int {
	for i, v := range e.Values() {
		if v.Int64() == e.Int64() {
			return i
		}
	}
	return -1
}

// SetStringFromValues sets the given enum from the given string
// by searching its values. It is a helper for implementing
// [EnumSetter.SetString].
func SetStringFromValues(e EnumSetter, s string) error {
	for _, v := range e.Values() {
		if v.String() == s {
			e.SetInt64(v.Int64())
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type %T", s, e)
}
