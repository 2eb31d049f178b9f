// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"log/slog"
	"reflect"

	"cogentcore.org/inspector/base/labels"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/enums"
	"cogentcore.org/inspector/members"
	"cogentcore.org/inspector/reflection"
)

// DrawerType describes a concrete drawer variant. It can be queried
// without constructing a drawer.
type DrawerType struct {

	// Name is the unique name of the drawer type.
	Name string

	// Type is the [reflect.Type] of the drawers made by New.
	Type reflect.Type

	// New returns a new drawer of this type.
	New func() Drawer
}

func (dt *DrawerType) String() string {
	return dt.Name
}

// NewDrawerType returns a new [DrawerType] with the given name for
// drawers of type *T.
func NewDrawerType[T any, PT interface {
	*T
	Drawer
}](name string) *DrawerType {
	return &DrawerType{
		Name: name,
		Type: reflect.TypeFor[PT](),
		New:  func() Drawer { return PT(new(T)) },
	}
}

// The built-in drawer types.
var (
	StructType      = NewDrawerType[Struct]("struct")
	CollectionType  = NewDrawerType[Collection]("collection")
	MapType         = NewDrawerType[Map]("map")
	MethodType      = NewDrawerType[Method]("method")
	PolymorphicType = NewDrawerType[Polymorphic]("polymorphic")
	NullToggleType  = NewDrawerType[NullToggle]("null-toggle")
	ReferenceType   = NewDrawerType[Reference]("reference")
	TextType        = NewDrawerType[Text]("text")
	NumberType      = NewDrawerType[Number]("number")
	BoolType        = NewDrawerType[Bool]("bool")
	EnumType        = NewDrawerType[Enum]("enum")
	FuncType        = NewDrawerType[Func]("func")
)

// OverrideSource is an external source of drawer types, such as a
// plugin compatibility layer, that is consulted after the exact
// overrides of a [Registry] and before its capabilities.
type OverrideSource interface {

	// DrawerFor returns the drawer type for the given declared and
	// runtime types, or nil to fall back on the built-in rules.
	DrawerFor(declared, runtime reflect.Type) *DrawerType
}

// OverrideFunc is an [OverrideSource] function.
type OverrideFunc func(declared, runtime reflect.Type) *DrawerType

// DrawerFor implements [OverrideSource].
func (f OverrideFunc) DrawerFor(declared, runtime reflect.Type) *DrawerType {
	return f(declared, runtime)
}

// Capability is a capability-based fallback rule of a [Registry].
type Capability struct {

	// Name is the name of the capability.
	Name string

	// Match returns whether values of the given declared type have the capability.
	Match func(pr reflection.Provider, typ reflect.Type) bool

	// Drawer is the drawer type for values with the capability.
	Drawer *DrawerType
}

// Registry maps value types to drawer types. Resolution never fails:
// a type that matches nothing else gets the [Registry.Fallback].
type Registry struct {

	// Provider answers host reference queries for capabilities.
	Provider reflection.Provider

	// Override is the external override source, if any.
	Override OverrideSource

	// Fallback is the generic structural drawer type.
	Fallback *DrawerType

	exact        map[reflect.Type]*DrawerType
	capabilities []Capability
	byName       map[string]*DrawerType
}

// NewRegistry returns a new [Registry] with the built-in capabilities.
func NewRegistry(pr reflection.Provider) *Registry {
	r := &Registry{
		Provider: pr,
		Fallback: StructType,
		exact:    map[reflect.Type]*DrawerType{},
		byName:   map[string]*DrawerType{},
	}
	for _, dt := range []*DrawerType{StructType, CollectionType, MapType, MethodType, PolymorphicType, NullToggleType, ReferenceType, TextType, NumberType, BoolType, EnumType, FuncType} {
		r.byName[dt.Name] = dt
	}
	r.RegisterCapability("polymorphic", isPolymorphic, PolymorphicType)
	r.RegisterCapability("host-reference", func(pr reflection.Provider, typ reflect.Type) bool {
		return pr.IsHostReference(typ)
	}, ReferenceType)
	r.RegisterCapability("enum", func(pr reflection.Provider, typ reflect.Type) bool {
		return enums.IsEnum(typ)
	}, EnumType)
	r.RegisterCapability("bool", kindIn(reflect.Bool), BoolType)
	r.RegisterCapability("number", kindIn(reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64), NumberType)
	r.RegisterCapability("text", kindIn(reflect.String), TextType)
	r.RegisterCapability("collection", kindIn(reflect.Slice, reflect.Array), CollectionType)
	r.RegisterCapability("map", kindIn(reflect.Map), MapType)
	r.RegisterCapability("func", kindIn(reflect.Func), FuncType)
	return r
}

// isPolymorphic returns whether the type needs runtime type selection:
// interfaces, and pointers to plain structs, which can be null.
func isPolymorphic(pr reflection.Provider, typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Interface:
		return true
	case reflect.Pointer:
		return typ.Elem().Kind() == reflect.Struct && !pr.IsHostReference(typ)
	}
	return false
}

// kindIn returns a capability match for non-pointer types of the given kinds.
func kindIn(kinds ...reflect.Kind) func(pr reflection.Provider, typ reflect.Type) bool {
	return func(pr reflection.Provider, typ reflect.Type) bool {
		k := reflectx.NonPointerType(typ).Kind()
		for _, kind := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}
}

// Register registers the given drawer type as the exact
// override for values of the given type.
func (r *Registry) Register(typ reflect.Type, dt *DrawerType) {
	r.exact[typ] = dt
	r.byName[dt.Name] = dt
}

// RegisterCapability adds a capability rule, which is checked
// after all previously added capabilities.
func (r *Registry) RegisterCapability(name string, match func(pr reflection.Provider, typ reflect.Type) bool, dt *DrawerType) {
	r.capabilities = append(r.capabilities, Capability{Name: name, Match: match, Drawer: dt})
	r.byName[dt.Name] = dt
}

// SetOverrideSource sets the external override source.
func (r *Registry) SetOverrideSource(src OverrideSource) {
	r.Override = src
}

// DrawerTypeByName returns the known drawer type with the given name, or nil.
func (r *Registry) DrawerTypeByName(name string) *DrawerType {
	return r.byName[name]
}

// Resolve returns the drawer type for a value with the given declared
// type and runtime type, which may be nil. The order is: the exact override
// for the runtime type, the exact override for the declared type, the
// [OverrideSource], the capabilities in order on the declared type, and
// finally the [Registry.Fallback].
func (r *Registry) Resolve(declared, runtime reflect.Type) *DrawerType {
	if runtime != nil {
		if dt := r.exact[runtime]; dt != nil {
			return dt
		}
	}
	if declared != nil {
		if dt := r.exact[declared]; dt != nil {
			return dt
		}
	}
	if r.Override != nil {
		if dt := r.Override.DrawerFor(declared, runtime); dt != nil {
			return dt
		}
	}
	typ := declared
	if typ == nil {
		typ = runtime
	}
	if typ != nil {
		for _, c := range r.capabilities {
			if c.Match(r.Provider, typ) {
				return c.Drawer
			}
		}
	}
	if r.Fallback == nil {
		slog.Error("drawers.Registry.Resolve: no fallback drawer type", "declared", declared, "runtime", runtime)
		return StructType
	}
	return r.Fallback
}

// ResolveMember returns the drawer type for the given member path:
// methods get [MethodType], and other members are resolved from
// their declared type and the runtime type of their current value.
func (r *Registry) ResolveMember(lm *members.LinkedMemberInfo) *DrawerType {
	if lm.Kind() == reflection.Method {
		return MethodType
	}
	var rt reflect.Type
	if v, err := lm.Value(); err == nil {
		rt = reflectx.RuntimeType(v)
	}
	return r.Resolve(lm.Type, rt)
}

// typeLabel returns the user-facing label of the given type.
func typeLabel(typ reflect.Type) string {
	if typ == nil {
		return "None"
	}
	return labels.FriendlyTypeName(typ)
}
