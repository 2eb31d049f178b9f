// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/types"
)

// DefaultValueProvider constructs default instances of types.
type DefaultValueProvider interface {

	// New returns a new default value of the given type,
	// or an error wrapping [ErrConstructionFailed].
	New(typ reflect.Type) (reflect.Value, error)
}

// Defaulter is implemented by types that set their own default
// values after construction.
type Defaulter interface {
	SetDefaults()
}

// RegistryDefaults is a [DefaultValueProvider] that uses the
// constructors of a [types.Registry], and otherwise makes zero values
// with the `default:` struct tags applied.
type RegistryDefaults struct {

	// Types is the registry of constructors. If it is nil, [types.Default] is used.
	Types *types.Registry
}

// New implements [DefaultValueProvider].
func (rd *RegistryDefaults) New(typ reflect.Type) (reflect.Value, error) {
	if typ == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil type", ErrConstructionFailed)
	}
	reg := rd.Types
	if reg == nil {
		reg = types.Default
	}
	if t := reg.TypeByReflect(typ); t != nil && t.New != nil {
		obj, err := t.New()
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v: %w", ErrConstructionFailed, typ, err)
		}
		v := reflect.ValueOf(obj)
		if !v.IsValid() || !v.Type().AssignableTo(typ) {
			return reflect.Value{}, fmt.Errorf("%w: constructor of %v returned %T", ErrConstructionFailed, typ, obj)
		}
		return v, nil
	}
	var v reflect.Value
	switch typ.Kind() {
	case reflect.Interface, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return reflect.Value{}, fmt.Errorf("%w: can not make a default %v", ErrConstructionFailed, typ)
	case reflect.Pointer:
		v = reflect.New(typ.Elem())
	case reflect.Map:
		v = reflect.MakeMap(typ)
	default:
		v = reflect.New(typ).Elem()
	}
	pv := reflectx.PointerValue(v)
	if pv.Elem().Kind() == reflect.Struct {
		if err := reflectx.SetFromDefaultTags(pv.Interface()); err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrConstructionFailed, err)
		}
	}
	if d, ok := pv.Interface().(Defaulter); ok {
		d.SetDefaults()
	}
	return v, nil
}
