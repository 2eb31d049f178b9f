// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflection defines the reflection capability that drawers
// use to discover and access the members of inspected values, and
// provides [GoProvider], its implementation on top of [reflect].
package reflection

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspector/base/errors"
)

// MemberKind is the kind of a [Member].
type MemberKind int32

const (
	// Field is a struct field, or a static variable.
	Field MemberKind = iota

	// Property is a getter and setter method pair.
	Property

	// Element is an element of a slice or array.
	Element

	// MapEntry is the value of a map entry.
	MapEntry

	// Method is an invocable method.
	Method

	// Parameter is a parameter of a [Method].
	Parameter
)

var kindNames = [...]string{"field", "property", "element", "map-entry", "method", "parameter"}

func (k MemberKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("MemberKind(%d)", int32(k))
	}
	return kindNames[k]
}

var (
	// ErrNilOwner is returned when a member is accessed on a nil owner.
	ErrNilOwner = errors.New("reflection: owner is nil")

	// ErrNotAddressable is returned when a member is set on an owner
	// that can not be modified in place. Callers should set the member
	// on an addressable copy and write the copy back to its own owner.
	ErrNotAddressable = errors.New("reflection: owner is not addressable")

	// ErrNotSettable is returned when a member can not be written.
	ErrNotSettable = errors.New("reflection: member is not settable")

	// ErrOutOfRange is returned when an element index is out of range
	// or a map key is no longer present.
	ErrOutOfRange = errors.New("reflection: element out of range")
)

// Member is a handle to one reflected member of a type. Handles are
// stable: a [Provider] returns the same handle for the same member,
// so handles can be compared by identity.
type Member interface {

	// Name returns the name of the member.
	Name() string

	// Kind returns the kind of the member.
	Kind() MemberKind

	// Type returns the declared type of the member.
	Type() reflect.Type

	// IsStatic returns whether the member ignores its owner.
	IsStatic() bool

	// CanWrite returns whether the member can be set.
	CanWrite() bool

	// Tag returns the struct tag of the member, if any.
	Tag() reflect.StructTag

	// Get returns the current value of the member in the given owner.
	Get(owner reflect.Value) (reflect.Value, error)

	// Set sets the member in the given owner, which must be a pointer
	// or addressable; otherwise it returns [ErrNotAddressable].
	Set(owner, value reflect.Value) error
}

// HostObject is the interface implemented by host-reference-like types:
// externally managed objects that are referenced rather than inlined,
// and that can be destroyed out from under an inspector.
type HostObject interface {

	// InstanceID returns the unique identifier of the object.
	InstanceID() int64

	// Destroyed returns whether the object has been destroyed.
	Destroyed() bool
}

var hostObjectType = reflect.TypeFor[HostObject]()

// IsHostReference returns whether the given type is host-reference-like.
func IsHostReference(typ reflect.Type) bool {
	return typ != nil && typ.Implements(hostObjectType)
}

// IsDestroyed returns whether the given value holds a destroyed [HostObject].
func IsDestroyed(v reflect.Value) bool {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) || !v.CanInterface() {
		return false
	}
	if ho, ok := v.Interface().(HostObject); ok {
		return ho.Destroyed()
	}
	return false
}

// Invocation holds a receiver, a method, and the current arguments
// for calling it. It is the owner value of [Parameter] members.
type Invocation struct {

	// Receiver is the value the method is called on.
	Receiver reflect.Value

	// Method is the method to call.
	Method reflect.Method

	// Args are the current argument values, not including the receiver.
	Args []reflect.Value
}

// NewInvocation returns a new [Invocation] with zero arguments
// for the given receiver and method.
func NewInvocation(receiver reflect.Value, method reflect.Method) *Invocation {
	mt := method.Type
	iv := &Invocation{Receiver: receiver, Method: method}
	for i := 1; i < mt.NumIn(); i++ {
		iv.Args = append(iv.Args, reflect.New(mt.In(i)).Elem())
	}
	return iv
}

var errorType = reflect.TypeFor[error]()

// Call calls the method with the current arguments. A trailing error
// result is returned as the error; other results are returned as values.
// A panic in the method is returned as an error.
func (iv *Invocation) Call() (out []reflect.Value, err error) {
	if !iv.Receiver.IsValid() || (iv.Receiver.Kind() == reflect.Pointer && iv.Receiver.IsNil()) {
		return nil, ErrNilOwner
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("reflection: %s panicked: %v", iv.Method.Name, r)
		}
	}()
	in := append([]reflect.Value{iv.Receiver}, iv.Args...)
	out = iv.Method.Func.Call(in)
	if n := len(out); n > 0 && iv.Method.Type.Out(n-1) == errorType {
		err, _ = out[n-1].Interface().(error)
		return out[:n-1], err
	}
	return out, nil
}
