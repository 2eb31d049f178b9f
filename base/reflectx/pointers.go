// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides a set of helper functions for the
// [reflect] package, used throughout the inspector for member
// discovery and value conversion.
package reflectx

import (
	"reflect"
)

// NonPointerType returns a non-pointer version of the given type.
func NonPointerType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return typ
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// PointerValue returns a pointer to the given value if it is not already
// a pointer. Values that can not be addressed are copied into a new pointer.
func PointerValue(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.Kind() == reflect.Pointer {
		return v
	}
	if v.CanAddr() {
		return v.Addr()
	}
	pv := reflect.New(v.Type())
	pv.Elem().Set(v)
	return pv
}

// Addressable returns an addressable copy of the given value,
// or the value itself if it is already addressable.
func Addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanAddr() {
		return v
	}
	return PointerValue(v).Elem()
}

// IsNilable returns whether values of the given type can be nil.
func IsNilable(typ reflect.Type) bool {
	if typ == nil {
		return true
	}
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// IsNil returns whether the given value is invalid or a nil value
// of a nilable kind. It is safe to call on any value.
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	if IsNilable(v.Type()) {
		return v.IsNil()
	}
	return false
}

// AnyIsNil checks if an interface value is nil. The interface itself
// could be nil, or the value pointed to by the interface could be nil.
func AnyIsNil(v any) bool {
	if v == nil {
		return true
	}
	return IsNil(reflect.ValueOf(v))
}

// Underlying returns the value held by the given value, going through
// any interfaces. It does not go through pointers.
func Underlying(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

// RuntimeType returns the dynamic type of the given value, going through
// interfaces, or nil if the value holds nothing.
func RuntimeType(v reflect.Value) reflect.Type {
	v = Underlying(v)
	if IsNil(v) {
		return nil
	}
	return v.Type()
}
