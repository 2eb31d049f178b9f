// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflection

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/types"
)

// Provider is the reflection capability used by drawers to discover
// the members of types and the candidate implementations of declared
// types. All returned [Member] handles must be stable across calls.
type Provider interface {

	// Members returns the visible fields, properties and statics
	// of the given type, in declaration order.
	Members(typ reflect.Type) ([]Member, error)

	// Methods returns the invocable methods of the given type.
	Methods(typ reflect.Type) []Member

	// Parameters returns the parameter members of the given method member.
	Parameters(method Member) []Member

	// Element returns the member for the element at the given
	// index of the given slice or array type.
	Element(typ reflect.Type, index int) Member

	// MapEntry returns the member for the value at the given key
	// of the given map type.
	MapEntry(typ reflect.Type, key reflect.Value) Member

	// Implementations returns the concrete types that can be assigned
	// to the given declared type.
	Implementations(declared reflect.Type) []reflect.Type

	// IsHostReference returns whether the given type is host-reference-like.
	IsHostReference(typ reflect.Type) bool
}

type elementKey struct {
	typ   reflect.Type
	index int
}

type mapKey struct {
	typ reflect.Type
	key any
}

// GoProvider is a [Provider] implemented with the [reflect] package.
// Candidate implementations and static members come from a [types.Registry].
// It caches member handles per type, and it is not safe for concurrent use.
type GoProvider struct {

	// Types is the registry of known types. If it is nil, [types.Default] is used.
	Types *types.Registry

	// Properties is whether getter and setter method pairs are exposed as members.
	Properties bool

	// Statics is whether registered static variables are exposed as members.
	Statics bool

	members  map[reflect.Type][]Member
	methods  map[reflect.Type][]Member
	params   map[Member][]Member
	elements map[elementKey]Member
	entries  map[mapKey]Member
}

// NewGoProvider returns a new [GoProvider] using the given registry,
// with properties and statics enabled.
func NewGoProvider(reg *types.Registry) *GoProvider {
	return &GoProvider{Types: reg, Properties: true, Statics: true}
}

func (gp *GoProvider) registry() *types.Registry {
	if gp.Types == nil {
		return types.Default
	}
	return gp.Types
}

func (gp *GoProvider) init() {
	if gp.members != nil {
		return
	}
	gp.members = map[reflect.Type][]Member{}
	gp.methods = map[reflect.Type][]Member{}
	gp.params = map[Member][]Member{}
	gp.elements = map[elementKey]Member{}
	gp.entries = map[mapKey]Member{}
}

// Members implements [Provider.Members].
func (gp *GoProvider) Members(typ reflect.Type) ([]Member, error) {
	gp.init()
	typ = reflectx.NonPointerType(typ)
	if typ == nil {
		return nil, fmt.Errorf("reflection.GoProvider.Members: nil type")
	}
	if ms, ok := gp.members[typ]; ok {
		return ms, nil
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("reflection.GoProvider.Members: type %v is a %v, not a struct", typ, typ.Kind())
	}
	var ms []Member
	fieldNames := map[string]bool{}
	for _, f := range reflect.VisibleFields(typ) {
		fieldNames[f.Name] = true
		if !f.IsExported() || f.Tag.Get("display") == "-" {
			continue
		}
		if f.Anonymous && reflectx.NonPointerType(f.Type).Kind() == reflect.Struct {
			continue // promoted fields are visited on their own
		}
		ms = append(ms, &fieldMember{field: f})
	}
	if gp.Properties {
		ms = append(ms, properties(typ, fieldNames)...)
	}
	if gp.Statics {
		ms = append(ms, gp.statics(typ)...)
	}
	gp.members[typ] = ms
	return ms, nil
}

// properties returns the getter and setter method pairs of the given
// struct type that do not shadow a field.
func properties(typ reflect.Type, fieldNames map[string]bool) []Member {
	ptyp := reflect.PointerTo(typ)
	var res []Member
	for i := range ptyp.NumMethod() {
		get := ptyp.Method(i)
		if fieldNames[get.Name] || strings.HasPrefix(get.Name, "Set") {
			continue
		}
		gt := get.Type
		if gt.NumIn() != 1 || gt.NumOut() != 1 {
			continue
		}
		set, ok := ptyp.MethodByName("Set" + get.Name)
		if !ok {
			continue
		}
		st := set.Type
		if st.NumIn() != 2 || st.In(1) != gt.Out(0) {
			continue
		}
		if st.NumOut() > 1 || (st.NumOut() == 1 && st.Out(0) != errorType) {
			continue
		}
		res = append(res, &propertyMember{name: get.Name, typ: gt.Out(0), getter: get, setter: set, hasSet: true})
	}
	return res
}

// statics returns the static members registered for the given type.
func (gp *GoProvider) statics(typ reflect.Type) []Member {
	var res []Member
	for _, t := range []reflect.Type{typ, reflect.PointerTo(typ)} {
		rt := gp.registry().TypeByReflect(t)
		if rt == nil {
			continue
		}
		for _, st := range rt.Statics {
			pv := reflect.ValueOf(st.Pointer)
			if pv.Kind() != reflect.Pointer || pv.IsNil() {
				continue
			}
			res = append(res, &staticMember{name: st.Name, ptr: pv})
		}
	}
	return res
}

// Methods implements [Provider.Methods]. Only the methods listed on
// the registered type are exposed.
func (gp *GoProvider) Methods(typ reflect.Type) []Member {
	gp.init()
	typ = reflectx.NonPointerType(typ)
	if ms, ok := gp.methods[typ]; ok {
		return ms
	}
	var ms []Member
	ptyp := reflect.PointerTo(typ)
	for _, t := range []reflect.Type{typ, ptyp} {
		rt := gp.registry().TypeByReflect(t)
		if rt == nil {
			continue
		}
		for _, name := range rt.Methods {
			m, ok := ptyp.MethodByName(name)
			if !ok {
				continue
			}
			if slices.ContainsFunc(ms, func(e Member) bool { return e.Name() == name }) {
				continue
			}
			ms = append(ms, &methodMember{method: m})
		}
	}
	gp.methods[typ] = ms
	return ms
}

// Parameters implements [Provider.Parameters].
func (gp *GoProvider) Parameters(method Member) []Member {
	gp.init()
	mm, ok := method.(*methodMember)
	if !ok {
		return nil
	}
	if ps, ok := gp.params[method]; ok {
		return ps
	}
	var ps []Member
	for i := 1; i < mm.method.Type.NumIn(); i++ {
		ps = append(ps, &parameterMember{method: mm, index: i - 1})
	}
	gp.params[method] = ps
	return ps
}

// Element implements [Provider.Element].
func (gp *GoProvider) Element(typ reflect.Type, index int) Member {
	gp.init()
	typ = reflectx.NonPointerType(typ)
	k := elementKey{typ, index}
	if m, ok := gp.elements[k]; ok {
		return m
	}
	m := &elementMember{typ: typ, index: index}
	gp.elements[k] = m
	return m
}

// MapEntry implements [Provider.MapEntry].
func (gp *GoProvider) MapEntry(typ reflect.Type, key reflect.Value) Member {
	gp.init()
	typ = reflectx.NonPointerType(typ)
	k := mapKey{typ, key.Interface()}
	if m, ok := gp.entries[k]; ok {
		return m
	}
	m := &mapEntryMember{typ: typ, key: key}
	gp.entries[k] = m
	return m
}

// Implementations implements [Provider.Implementations].
// Interface types use the registered types assignable to them;
// any other type is its own single implementation.
func (gp *GoProvider) Implementations(declared reflect.Type) []reflect.Type {
	if declared == nil {
		return nil
	}
	if declared.Kind() != reflect.Interface {
		return []reflect.Type{declared}
	}
	var res []reflect.Type
	for _, t := range gp.registry().Assignable(declared) {
		res = append(res, t.Reflect)
	}
	return res
}

// IsHostReference implements [Provider.IsHostReference].
func (gp *GoProvider) IsHostReference(typ reflect.Type) bool {
	return IsHostReference(typ)
}
