// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/jinzhu/copier"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/clipboard"
	"cogentcore.org/inspector/members"
)

// EqualityPolicy decides whether a cached value and a
// source value are the same.
type EqualityPolicy func(cached, source reflect.Value) bool

// DefaultEquality compares host objects and functions by identity
// and everything else structurally. It is the default policy.
func DefaultEquality(cached, source reflect.Value) bool {
	return members.Equal(cached, source)
}

// DeepEquality compares values structurally with [reflect.DeepEqual].
func DeepEquality(cached, source reflect.Value) bool {
	a, b := reflectx.Underlying(cached), reflectx.Underlying(source)
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if !a.CanInterface() || !b.CanInterface() {
		return false
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// ReferenceEquality compares values of reference kinds by identity,
// and other values structurally. Two nil values are equal.
func ReferenceEquality(cached, source reflect.Value) bool {
	a, b := reflectx.Underlying(cached), reflectx.Underlying(source)
	an, bn := reflectx.IsNil(a), reflectx.IsNil(b)
	if an || bn {
		return an == bn
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	}
	return DeepEquality(a, b)
}

// Value returns the cached value of the drawer.
func (b *Base) Value() reflect.Value {
	return b.value
}

// HasValue returns whether the cached value has been read from the source.
func (b *Base) HasValue() bool {
	return b.hasValue
}

// IsNull returns whether the cached value is a null value.
func (b *Base) IsNull() bool {
	return reflectx.IsNil(b.value)
}

// IsMixed returns whether the targets disagree on the value.
func (b *Base) IsMixed() bool {
	return b.mixed
}

// IsDirty returns whether the cached value has changed since [Base.ClearDirty].
func (b *Base) IsDirty() bool {
	return b.dirty
}

// ClearDirty clears the dirty flag.
func (b *Base) ClearDirty() {
	b.dirty = false
}

func (b *Base) equal(cached, source reflect.Value) bool {
	switch {
	case b.Equality != nil:
		return b.Equality(cached, source)
	case b.byReference:
		return ReferenceEquality(cached, source)
	}
	return DefaultEquality(cached, source)
}

// snapshot returns the value to cache for the given source value:
// a detached copy of the value itself for references, and an owned
// deep copy otherwise. The cache never aliases the source location.
func (b *Base) snapshot(v reflect.Value) reflect.Value {
	u := reflectx.Underlying(v)
	if !u.IsValid() {
		return u
	}
	if b.byReference || isReferenceType(b.Inspector.provider(), u.Type()) {
		return detach(u)
	}
	switch u.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return detach(u)
	case reflect.Pointer:
		if u.IsNil() {
			return detach(u)
		}
		cp := reflect.New(u.Type().Elem())
		if u.Elem().Kind() == reflect.Struct && acyclic(u) {
			deepCopy(cp, u)
			keepUnexported(cp.Elem(), u.Elem())
		} else {
			cp.Elem().Set(u.Elem())
		}
		return cp
	case reflect.Struct:
		cp := reflect.New(u.Type())
		if acyclic(u) {
			deepCopy(cp, u)
			keepUnexported(cp.Elem(), u)
		} else {
			cp.Elem().Set(u)
		}
		return cp.Elem()
	case reflect.Slice, reflect.Map:
		cp := reflect.New(u.Type())
		switch {
		case u.IsNil():
		case acyclic(u):
			deepCopy(cp, u)
		default:
			cp.Elem().Set(u)
		}
		return cp.Elem()
	}
	return detach(u)
}

// detach returns a copy of the given value in a new location, so that
// later writes to the location of v do not show through it.
func detach(v reflect.Value) reflect.Value {
	if !v.CanInterface() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

// maxCopyDepth is the nesting depth above which values are copied shallowly.
const maxCopyDepth = 64

// visit is a reference on the current path of [acyclic].
type visit struct {
	ptr uintptr
	typ reflect.Type
}

// acyclic returns whether the given value can be deep copied: no
// reference on it leads back to itself, and it is not nested deeper
// than [maxCopyDepth].
func acyclic(v reflect.Value) bool {
	return walkAcyclic(v, map[visit]bool{}, 0)
}

func walkAcyclic(v reflect.Value, path map[visit]bool, depth int) bool {
	if depth > maxCopyDepth {
		return false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return true
		}
		k := visit{v.Pointer(), v.Type()}
		if path[k] {
			return false
		}
		path[k] = true
		defer delete(path, k)
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return walkAcyclic(v.Elem(), path, depth+1)
	case reflect.Struct:
		for i := range v.NumField() {
			if !walkAcyclic(v.Field(i), path, depth+1) {
				return false
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if !walkAcyclic(v.Index(i), path, depth+1) {
				return false
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if !walkAcyclic(iter.Value(), path, depth+1) {
				return false
			}
		}
	}
	return true
}

// deepCopy deep copies from into the pointer to, which points to a zero value.
func deepCopy(to, from reflect.Value) {
	if !from.CanInterface() {
		to.Elem().Set(reflect.Indirect(from))
		return
	}
	err := copier.CopyWithOption(to.Interface(), from.Interface(), copier.Option{CaseSensitive: true, DeepCopy: true, IgnoreEmpty: true})
	if err != nil {
		slog.Debug("drawers: falling back to a shallow snapshot", "type", from.Type(), "err", err)
		to.Elem().Set(reflect.Indirect(from))
	}
}

// keepUnexported copies the unexported fields of the struct from
// into the struct to, which are not visible to the deep copy.
func keepUnexported(to, from reflect.Value) {
	tmp := reflect.New(to.Type()).Elem()
	tmp.Set(from)
	for i := range to.NumField() {
		if tmp.Field(i).CanSet() {
			tmp.Field(i).Set(to.Field(i))
		}
	}
	to.Set(tmp)
}

// store updates the cached value and mixed state, and returns
// the previous value and whether anything changed.
func (b *Base) store(v reflect.Value, mixed bool) (reflect.Value, bool) {
	old := b.value
	if b.hasValue && mixed == b.mixed && b.equal(old, v) {
		return old, false
	}
	b.value = b.snapshot(v)
	b.hasValue = true
	b.mixed = mixed
	b.dirty = true
	return old, true
}

// afterStore lets parent drawers react to a change of their cached value.
func (b *Base) afterStore(old reflect.Value, immediate bool) {
	if p, ok := b.This.(Parent); ok {
		p.AsParent().sync(old, immediate)
	}
}

// RefreshFromSource implements [Drawer.RefreshFromSource]. A member path
// that no longer resolves marks the drawer stale and asks the nearest valid
// ancestor to rebuild; it is never reported as an error.
func (b *Base) RefreshFromSource() bool {
	if b.Member == nil {
		return false
	}
	vs, err := b.Member.Values()
	if err != nil {
		if errors.Is(err, ErrStaleReference) {
			if !b.stale {
				slog.Info("drawers: stale member path", "path", b.Member.Path())
				b.stale = true
				b.requestAncestorRebuild()
			}
			return false
		}
		slog.Debug("drawers: refresh failed", "path", b.Member.Path(), "err", err)
		return false
	}
	b.stale = false
	if len(vs) == 0 {
		return false
	}
	mixed := false
	for _, v := range vs[1:] {
		if !b.equal(vs[0], v) {
			mixed = true
			break
		}
	}
	old, changed := b.store(vs[0], mixed)
	if changed {
		b.afterStore(old, true)
	}
	return changed
}

// SetValue sets the value of the member in every target, updates the
// cached value, and notifies the parent drawer with
// [Parent.OnMemberValueChanged]. Structural changes that result are
// deferred to the next cycle while the tree is being traversed.
// Every target gets the same value; use [Base.SetEach] for values
// that must not be shared.
func (b *Base) SetValue(v reflect.Value) error {
	return b.set(func(lm *members.LinkedMemberInfo) error {
		return lm.SetValue(v)
	})
}

// SetEach is like [Base.SetValue], but sets each target to the value
// returned by the given function for the index and current value of
// that target.
func (b *Base) SetEach(fun func(i int, cur reflect.Value) (reflect.Value, error)) error {
	return b.set(func(lm *members.LinkedMemberInfo) error {
		return lm.SetEach(fun)
	})
}

// SetNew is like [Base.SetValue], but gives each target its own
// value made by the given function.
func (b *Base) SetNew(fun func() (reflect.Value, error)) error {
	return b.SetEach(func(i int, cur reflect.Value) (reflect.Value, error) {
		return fun()
	})
}

// set runs the given setter on the member path and updates the cached value.
func (b *Base) set(setter func(lm *members.LinkedMemberInfo) error) error {
	if b.Member == nil {
		return ErrNotSettable
	}
	if b.ReadOnly {
		return fmt.Errorf("%s: %w", b.Member.Path(), ErrReadOnly)
	}
	if err := setter(b.Member); err != nil {
		return err
	}
	vs, err := b.Member.Values()
	if err != nil {
		return err
	}
	if len(vs) == 0 {
		return nil
	}
	mixed := false
	for _, v := range vs[1:] {
		if !b.equal(vs[0], v) {
			mixed = true
			break
		}
	}
	old, changed := b.store(vs[0], mixed)
	if !changed {
		return nil
	}
	b.afterStore(old, false)
	if b.Parent != nil {
		b.Parent.OnMemberValueChanged(b.Index, b.value)
	}
	return nil
}

// SetValueFromString parses the given string into a value of the
// type of the member and sets it with [Base.SetNew].
func (b *Base) SetValueFromString(s string) error {
	if b.Member == nil {
		return ErrNotSettable
	}
	typ := b.Member.Type
	if rt := reflectx.RuntimeType(b.value); rt != nil && typ.Kind() == reflect.Interface {
		typ = rt
	}
	if _, err := parseValue(typ, s); err != nil {
		return fmt.Errorf("%s: %w: %w", b.Member.Path(), ErrTypeMismatch, err)
	}
	return b.SetNew(func() (reflect.Value, error) {
		return parseValue(typ, s)
	})
}

// parseValue returns a new value of the given type parsed from the given string.
// Pointers to basic types get a new pointee.
func parseValue(typ reflect.Type, s string) (reflect.Value, error) {
	if typ.Kind() == reflect.Pointer {
		pv := reflect.New(typ.Elem())
		if err := reflectx.SetFromString(pv.Elem(), s); err != nil {
			return reflect.Value{}, err
		}
		return pv, nil
	}
	nv := reflect.New(typ).Elem()
	if err := reflectx.SetFromString(nv, s); err != nil {
		return reflect.Value{}, err
	}
	return nv, nil
}

// ValueText implements [Drawer.ValueText].
func (b *Base) ValueText() string {
	switch {
	case b.mixed:
		return MixedText
	case !b.hasValue:
		return ""
	case reflectx.IsNil(b.value):
		return "None"
	}
	v := b.value
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if !v.CanInterface() {
		return v.Type().String()
	}
	return fmt.Sprint(v.Interface())
}

// CopyValue writes the cached value to the given clipboard.
func (b *Base) CopyValue(cb clipboard.Clipboard) error {
	if cb == nil {
		return clipboard.ErrUnavailable
	}
	if !b.hasValue || reflectx.IsNil(b.value) {
		return fmt.Errorf("drawers: nothing to copy")
	}
	text, err := clipboard.Encode(b.value.Interface())
	if err != nil {
		return err
	}
	return cb.WriteText(text)
}

// PasteValue sets the value from the contents of the given clipboard.
// Contents that can not be decoded as the type of the member fail
// with [ErrTypeMismatch] and leave the value unchanged.
func (b *Base) PasteValue(cb clipboard.Clipboard) error {
	if cb == nil {
		return clipboard.ErrUnavailable
	}
	if b.Member == nil {
		return ErrNotSettable
	}
	text, err := cb.ReadText()
	if err != nil {
		return err
	}
	typ := b.Member.Type
	if typ.Kind() == reflect.Interface {
		typ = reflectx.RuntimeType(b.value)
		if typ == nil {
			return fmt.Errorf("%s: %w: no concrete type to paste into", b.Member.Path(), ErrTypeMismatch)
		}
	}
	if _, err := clipboard.Decode(text, typ); err != nil {
		return fmt.Errorf("%s: %w: %w", b.Member.Path(), ErrTypeMismatch, err)
	}
	return b.SetNew(func() (reflect.Value, error) {
		return clipboard.Decode(text, typ)
	})
}
