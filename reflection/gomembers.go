// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflection

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspector/base/reflectx"
)

// deref goes through interfaces and pointers to the underlying
// non-pointer value of the given owner.
func deref(owner reflect.Value) (reflect.Value, error) {
	for owner.IsValid() && (owner.Kind() == reflect.Interface || owner.Kind() == reflect.Pointer) {
		if owner.IsNil() {
			return reflect.Value{}, ErrNilOwner
		}
		owner = owner.Elem()
	}
	if !owner.IsValid() {
		return reflect.Value{}, ErrNilOwner
	}
	return owner, nil
}

// assign sets dst to the given value, converting it as needed.
func assign(dst, value reflect.Value) error {
	if !dst.CanSet() {
		return ErrNotAddressable
	}
	cv, err := reflectx.ConvertTo(value, dst.Type())
	if err != nil {
		return err
	}
	dst.Set(cv)
	return nil
}

type fieldMember struct {
	field reflect.StructField
}

func (m *fieldMember) Name() string           { return m.field.Name }
func (m *fieldMember) Kind() MemberKind       { return Field }
func (m *fieldMember) Type() reflect.Type     { return m.field.Type }
func (m *fieldMember) IsStatic() bool         { return false }
func (m *fieldMember) CanWrite() bool         { return m.field.Tag.Get("edit") != "-" }
func (m *fieldMember) Tag() reflect.StructTag { return m.field.Tag }

func (m *fieldMember) Get(owner reflect.Value) (reflect.Value, error) {
	s, err := deref(owner)
	if err != nil {
		return reflect.Value{}, err
	}
	fv, err := s.FieldByIndexErr(m.field.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", ErrNilOwner, err)
	}
	return fv, nil
}

func (m *fieldMember) Set(owner, value reflect.Value) error {
	if !m.CanWrite() {
		return ErrNotSettable
	}
	fv, err := m.Get(owner)
	if err != nil {
		return err
	}
	return assign(fv, value)
}

type propertyMember struct {
	name   string
	typ    reflect.Type
	getter reflect.Method
	setter reflect.Method
	hasSet bool
}

func (m *propertyMember) Name() string           { return m.name }
func (m *propertyMember) Kind() MemberKind       { return Property }
func (m *propertyMember) Type() reflect.Type     { return m.typ }
func (m *propertyMember) IsStatic() bool         { return false }
func (m *propertyMember) CanWrite() bool         { return m.hasSet }
func (m *propertyMember) Tag() reflect.StructTag { return "" }

// receiver returns the pointer receiver for the given owner.
func (m *propertyMember) receiver(owner reflect.Value) (reflect.Value, error) {
	s, err := deref(owner)
	if err != nil {
		return reflect.Value{}, err
	}
	if !s.CanAddr() {
		return reflect.Value{}, ErrNotAddressable
	}
	return s.Addr(), nil
}

func (m *propertyMember) Get(owner reflect.Value) (reflect.Value, error) {
	rv, err := m.receiver(owner)
	if err != nil {
		if err != ErrNotAddressable {
			return reflect.Value{}, err
		}
		s, _ := deref(owner)
		rv = reflectx.PointerValue(s)
	}
	out := m.getter.Func.Call([]reflect.Value{rv})
	return out[0], nil
}

func (m *propertyMember) Set(owner, value reflect.Value) error {
	if !m.hasSet {
		return ErrNotSettable
	}
	rv, err := m.receiver(owner)
	if err != nil {
		return err
	}
	cv, err := reflectx.ConvertTo(value, m.typ)
	if err != nil {
		return err
	}
	out := m.setter.Func.Call([]reflect.Value{rv, cv})
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

type staticMember struct {
	name string
	ptr  reflect.Value
}

func (m *staticMember) Name() string           { return m.name }
func (m *staticMember) Kind() MemberKind       { return Field }
func (m *staticMember) Type() reflect.Type     { return m.ptr.Type().Elem() }
func (m *staticMember) IsStatic() bool         { return true }
func (m *staticMember) CanWrite() bool         { return true }
func (m *staticMember) Tag() reflect.StructTag { return "" }

func (m *staticMember) Get(owner reflect.Value) (reflect.Value, error) {
	return m.ptr.Elem(), nil
}

func (m *staticMember) Set(owner, value reflect.Value) error {
	return assign(m.ptr.Elem(), value)
}

type elementMember struct {
	typ   reflect.Type
	index int
}

func (m *elementMember) Name() string           { return fmt.Sprintf("[%d]", m.index) }
func (m *elementMember) Kind() MemberKind       { return Element }
func (m *elementMember) Type() reflect.Type     { return m.typ.Elem() }
func (m *elementMember) IsStatic() bool         { return false }
func (m *elementMember) CanWrite() bool         { return true }
func (m *elementMember) Tag() reflect.StructTag { return "" }

func (m *elementMember) Get(owner reflect.Value) (reflect.Value, error) {
	s, err := deref(owner)
	if err != nil {
		return reflect.Value{}, err
	}
	if m.index >= s.Len() {
		return reflect.Value{}, ErrOutOfRange
	}
	return s.Index(m.index), nil
}

func (m *elementMember) Set(owner, value reflect.Value) error {
	ev, err := m.Get(owner)
	if err != nil {
		return err
	}
	return assign(ev, value)
}

type mapEntryMember struct {
	typ reflect.Type
	key reflect.Value
}

func (m *mapEntryMember) Name() string           { return fmt.Sprint(m.key.Interface()) }
func (m *mapEntryMember) Kind() MemberKind       { return MapEntry }
func (m *mapEntryMember) Type() reflect.Type     { return m.typ.Elem() }
func (m *mapEntryMember) IsStatic() bool         { return false }
func (m *mapEntryMember) CanWrite() bool         { return true }
func (m *mapEntryMember) Tag() reflect.StructTag { return "" }

func (m *mapEntryMember) Get(owner reflect.Value) (reflect.Value, error) {
	mv, err := deref(owner)
	if err != nil {
		return reflect.Value{}, err
	}
	if mv.IsNil() {
		return reflect.Value{}, ErrNilOwner
	}
	v := mv.MapIndex(m.key)
	if !v.IsValid() {
		return reflect.Value{}, ErrOutOfRange
	}
	return v, nil
}

// Set sets the map entry. Maps are reference types, so this works
// even when the owner is not addressable.
func (m *mapEntryMember) Set(owner, value reflect.Value) error {
	mv, err := deref(owner)
	if err != nil {
		return err
	}
	if mv.IsNil() {
		return ErrNilOwner
	}
	cv, err := reflectx.ConvertTo(value, m.typ.Elem())
	if err != nil {
		return err
	}
	mv.SetMapIndex(m.key, cv)
	return nil
}

type methodMember struct {
	method reflect.Method
}

func (m *methodMember) Name() string           { return m.method.Name }
func (m *methodMember) Kind() MemberKind       { return Method }
func (m *methodMember) Type() reflect.Type     { return m.method.Type }
func (m *methodMember) IsStatic() bool         { return false }
func (m *methodMember) CanWrite() bool         { return false }
func (m *methodMember) Tag() reflect.StructTag { return "" }

// Get returns a new [Invocation] of the method on the given owner.
// Member paths keep the invocation so that arguments persist.
func (m *methodMember) Get(owner reflect.Value) (reflect.Value, error) {
	s, err := deref(owner)
	if err != nil {
		return reflect.Value{}, err
	}
	rv := s
	if m.method.Type.In(0).Kind() == reflect.Pointer {
		rv = reflectx.PointerValue(s)
	}
	return reflect.ValueOf(NewInvocation(rv, m.method)), nil
}

func (m *methodMember) Set(owner, value reflect.Value) error {
	return ErrNotSettable
}

type parameterMember struct {
	method *methodMember
	index  int
}

func (m *parameterMember) Name() string           { return fmt.Sprintf("arg%d", m.index) }
func (m *parameterMember) Kind() MemberKind       { return Parameter }
func (m *parameterMember) Type() reflect.Type     { return m.method.method.Type.In(m.index + 1) }
func (m *parameterMember) IsStatic() bool         { return false }
func (m *parameterMember) CanWrite() bool         { return true }
func (m *parameterMember) Tag() reflect.StructTag { return "" }

func (m *parameterMember) invocation(owner reflect.Value) (*Invocation, error) {
	if !owner.IsValid() || !owner.CanInterface() {
		return nil, ErrNilOwner
	}
	iv, ok := owner.Interface().(*Invocation)
	if !ok || iv == nil {
		return nil, fmt.Errorf("reflection: parameter owner is %v, not an invocation", owner.Type())
	}
	if m.index >= len(iv.Args) {
		return nil, ErrOutOfRange
	}
	return iv, nil
}

func (m *parameterMember) Get(owner reflect.Value) (reflect.Value, error) {
	iv, err := m.invocation(owner)
	if err != nil {
		return reflect.Value{}, err
	}
	return iv.Args[m.index], nil
}

func (m *parameterMember) Set(owner, value reflect.Value) error {
	iv, err := m.invocation(owner)
	if err != nil {
		return err
	}
	cv, err := reflectx.ConvertTo(value, m.Type())
	if err != nil {
		return err
	}
	nv := reflect.New(m.Type()).Elem()
	nv.Set(cv)
	iv.Args[m.index] = nv
	return nil
}
