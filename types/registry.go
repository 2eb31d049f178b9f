// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Registry records registered types by name and by [reflect.Type].
// It is safe for concurrent use, since registration typically
// happens in init functions.
type Registry struct {
	mu        sync.RWMutex
	byName    map[string]*Type
	byReflect map[reflect.Type]*Type
	idCounter uint64
}

// NewRegistry returns a new empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		byName:    map[string]*Type{},
		byReflect: map[reflect.Type]*Type{},
	}
}

// Default is the default registry used by the package-level functions.
var Default = NewRegistry()

// AddType adds a constructed [Type] to the registry and returns it.
// It sets the ID, and fills in the Name and IDName if they are empty.
// If a type with the same name is already registered, the existing
// type is returned.
func (r *Registry) AddType(typ *Type) *Type {
	if typ.Name == "" {
		typ.Name = TypeName(typ.Reflect)
	}
	if typ.IDName == "" {
		typ.IDName = idName(typ.Reflect)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ex, has := r.byName[typ.Name]; has {
		slog.Debug("types.AddType: Type already exists", "Type.Name", typ.Name)
		return ex
	}
	r.idCounter++
	typ.ID = r.idCounter
	r.byName[typ.Name] = typ
	if typ.Reflect != nil {
		r.byReflect[typ.Reflect] = typ
	}
	return typ
}

// TypeByName returns the type with the given name, or nil if it is not registered.
func (r *Registry) TypeByName(name string) *Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// TypeByReflect returns the type registered for the given [reflect.Type],
// or nil if it is not registered.
func (r *Registry) TypeByReflect(typ reflect.Type) *Type {
	if typ == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byReflect[typ]
}

// TypeByValue returns the type registered for the dynamic type of the given value.
func (r *Registry) TypeByValue(v any) *Type {
	return r.TypeByReflect(reflect.TypeOf(v))
}

// All returns all of the registered types, sorted by name.
func (r *Registry) All() []*Type {
	r.mu.RLock()
	res := make([]*Type, 0, len(r.byName))
	for _, t := range r.byName {
		res = append(res, t)
	}
	r.mu.RUnlock()
	sortTypes(res)
	return res
}

// Assignable returns all of the registered concrete types whose values
// can be assigned to the given declared type, sorted by name.
func (r *Registry) Assignable(declared reflect.Type) []*Type {
	if declared == nil {
		return nil
	}
	r.mu.RLock()
	var res []*Type
	for rt, t := range r.byReflect {
		if rt.Kind() == reflect.Interface {
			continue
		}
		if rt.AssignableTo(declared) {
			res = append(res, t)
		}
	}
	r.mu.RUnlock()
	sortTypes(res)
	return res
}

func sortTypes(ts []*Type) {
	slices.SortFunc(ts, func(a, b *Type) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// AddType adds the given type to the [Default] registry.
func AddType(typ *Type) *Type {
	return Default.AddType(typ)
}

// TypeByName returns the type with the given name from the [Default] registry.
func TypeByName(name string) *Type {
	return Default.TypeByName(name)
}

// TypeByReflect returns the type for the given [reflect.Type] from the [Default] registry.
func TypeByReflect(typ reflect.Type) *Type {
	return Default.TypeByReflect(typ)
}

// For registers the type T in the given registry (the [Default] registry
// if it is nil) with the given optional configuration functions applied,
// and returns it. It is typically called in init functions or package-level
// variable declarations.
func For[T any](r *Registry, config ...func(t *Type)) *Type {
	if r == nil {
		r = Default
	}
	t := &Type{Reflect: reflect.TypeFor[T]()}
	for _, c := range config {
		c(t)
	}
	return r.AddType(t)
}

// WithNew returns a configuration function for [For] that sets [Type.New].
func WithNew(fun func() (any, error)) func(t *Type) {
	return func(t *Type) { t.New = fun }
}

// WithDoc returns a configuration function for [For] that sets [Type.Doc].
func WithDoc(doc string) func(t *Type) {
	return func(t *Type) { t.Doc = doc }
}

// WithStatic returns a configuration function for [For] that adds a [Static]
// member for the package-level variable pointed to by the given pointer.
func WithStatic(name string, pointer any) func(t *Type) {
	return func(t *Type) {
		t.Statics = append(t.Statics, Static{Name: name, Pointer: pointer})
	}
}

// WithMethod returns a configuration function for [For] that adds the
// method with the given name to [Type.Methods].
func WithMethod(name string) func(t *Type) {
	return func(t *Type) {
		t.Methods = append(t.Methods, name)
	}
}
