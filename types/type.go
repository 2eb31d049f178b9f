// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types provides a type registry that records the concrete
// types an inspector can instantiate. Go can not enumerate the
// implementations of an interface at runtime, so the registry is the
// universe of candidate types that polymorphic drawers choose from.
package types

import (
	"reflect"
	"strings"

	"cogentcore.org/inspector/base/labels"
	"cogentcore.org/inspector/base/reflectx"
)

// Type represents a registered type.
type Type struct {

	// Name is the fully package-path-qualified name of the type
	// (eg: cogentcore.org/inspector/drawers.Struct). Pointer types
	// have a leading *.
	Name string

	// IDName is the short, package-unqualified, kebab-case name of the type
	// that is suitable for use in an ID (eg: struct)
	IDName string

	// Doc has the documentation for the type.
	Doc string

	// Reflect is the [reflect.Type] of values of this type, as they
	// are assigned to fields (eg: *Light for a pointer receiver type).
	Reflect reflect.Type

	// New is an optional constructor for default values of the type.
	// If it is nil, the zero value (or a pointer to a new zero value
	// for pointer types) is used.
	New func() (any, error)

	// Statics are the package-level variables associated with the type,
	// which are exposed as static members.
	Statics []Static

	// Methods are the names of the methods of the type that
	// can be invoked from an inspector.
	Methods []string

	// ID is the unique type ID number.
	ID uint64
}

// Static is a package-level variable exposed as a static member of a type.
type Static struct {

	// Name is the name of the static member.
	Name string

	// Doc has the documentation for the static member.
	Doc string

	// Pointer is a pointer to the variable.
	Pointer any
}

func (tp *Type) String() string {
	return tp.Name
}

// ShortName returns the short name of the type (package.Type).
func (tp *Type) ShortName() string {
	li := strings.LastIndex(tp.Name, "/")
	return strings.TrimPrefix(tp.Name[li+1:], "*")
}

// Label returns a user-friendly label for the type.
func (tp *Type) Label() string {
	return labels.FriendlyTypeName(tp.Reflect)
}

// TypeName returns the long, full package-path qualified type name.
// This is guaranteed to be unique and used for the type registry.
func TypeName(typ reflect.Type) string {
	if typ == nil {
		return ""
	}
	prefix := ""
	for typ.Kind() == reflect.Pointer && typ.Name() == "" {
		prefix += "*"
		typ = typ.Elem()
	}
	if typ.PkgPath() == "" || typ.Name() == "" {
		return prefix + typ.String()
	}
	return prefix + typ.PkgPath() + "." + typ.Name()
}

// idName returns the kebab-case id name for the given type.
func idName(typ reflect.Type) string {
	nm := reflectx.NonPointerType(typ).Name()
	if nm == "" {
		nm = reflectx.NonPointerType(typ).Kind().String()
	}
	return labels.ToKebab(nm)
}
