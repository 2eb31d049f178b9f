// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/reflectx"
)

// Map is a parent drawer for maps, with a child for each entry
// in sorted key order. Entries can be added and deleted.
type Map struct {
	ParentBase
}

// SortedKeys returns the keys of the given map in a stable order:
// numbers and strings by value, and everything else by their text.
func SortedKeys(m reflect.Value) []reflect.Value {
	m = scalar(m)
	if !m.IsValid() || m.Kind() != reflect.Map {
		return nil
	}
	keys := m.MapKeys()
	slices.SortFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	switch k := a.Kind(); {
	case k >= reflect.Int && k <= reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case k == reflect.Float32 || k == reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case k == reflect.String:
		return cmp.Compare(a.String(), b.String())
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

// Len returns the number of entries of the cached value.
func (mp *Map) Len() int {
	m := scalar(mp.value)
	if !m.IsValid() {
		return 0
	}
	return m.Len()
}

// LateSetup implements [Drawer.LateSetup]. Maps with more entries
// than the inline length start folded.
func (mp *Map) LateSetup() {
	in := mp.Inspector
	if in == nil || in.Settings == nil || mp.Member == nil {
		return
	}
	v, err := mp.Member.Value()
	if err != nil {
		return
	}
	if m := scalar(v); m.IsValid() && m.Len() > in.Settings.InlineCollectionLength {
		mp.Folded = true
	}
}

// DoGenerateMemberBuildList implements [Parent.DoGenerateMemberBuildList]
// with a child for each entry.
func (mp *Map) DoGenerateMemberBuildList() {
	m := scalar(mp.value)
	if !m.IsValid() {
		return
	}
	in := mp.Inspector
	for _, k := range SortedKeys(m) {
		e := in.Provider.MapEntry(m.Type(), k)
		mp.AddBuildItem(in.Hierarchy.Get(mp.Member, e, -1), nil)
	}
}

// NeedsRebuild implements [Parent.NeedsRebuild]. The children change
// with the runtime type and the set of keys.
func (mp *Map) NeedsRebuild(old, new reflect.Value) bool {
	if mp.ParentBase.NeedsRebuild(old, new) {
		return true
	}
	mo, mn := scalar(old), scalar(new)
	if mo.IsValid() != mn.IsValid() {
		return true
	}
	if !mo.IsValid() {
		return false
	}
	if mo.Len() != mn.Len() {
		return true
	}
	for _, k := range mo.MapKeys() {
		if !mn.MapIndex(k).IsValid() {
			return true
		}
	}
	return false
}

// mapType returns the map type of the member.
func (mp *Map) mapType() (reflect.Type, error) {
	if mp.Member == nil {
		return nil, ErrNotSettable
	}
	typ := mp.Member.Type
	if typ.Kind() == reflect.Interface {
		typ = reflectx.RuntimeType(mp.value)
	}
	if typ == nil || reflectx.NonPointerType(typ).Kind() != reflect.Map {
		return nil, fmt.Errorf("%s: %w: not a map", mp.Member.Path(), ErrTypeMismatch)
	}
	return typ, nil
}

// editEach sets each target to a copy of its map with the given edit applied.
func (mp *Map) editEach(typ reflect.Type, edit func(m reflect.Value)) error {
	mt := reflectx.NonPointerType(typ)
	return mp.SetEach(func(i int, cur reflect.Value) (reflect.Value, error) {
		nm := reflect.MakeMap(mt)
		if m := scalar(cur); m.IsValid() {
			iter := m.MapRange()
			for iter.Next() {
				nm.SetMapIndex(iter.Key(), iter.Value())
			}
		}
		edit(nm)
		if typ.Kind() == reflect.Pointer {
			pv := reflect.New(mt)
			pv.Elem().Set(nm)
			return pv, nil
		}
		return nm, nil
	})
}

// AddKey adds an entry with the key parsed from the given text and a
// default value to the map in every target. Existing keys are kept.
func (mp *Map) AddKey(key string) error {
	typ, err := mp.mapType()
	if err != nil {
		return err
	}
	mt := reflectx.NonPointerType(typ)
	kv, err := parseValue(mt.Key(), key)
	if err != nil {
		return fmt.Errorf("%s: key %q: %w: %w", mp.Member.Path(), key, ErrTypeMismatch, err)
	}
	if m := scalar(mp.value); m.IsValid() && m.MapIndex(kv).IsValid() {
		return nil
	}
	in := mp.Inspector
	return mp.editEach(typ, func(m reflect.Value) {
		if m.MapIndex(kv).IsValid() {
			return
		}
		ev := reflect.Zero(mt.Elem())
		if in.Defaults != nil && mt.Elem().Kind() != reflect.Interface && !in.provider().IsHostReference(mt.Elem()) {
			if v, err := in.Defaults.New(mt.Elem()); err == nil {
				ev = v
			}
		}
		m.SetMapIndex(kv, ev)
	})
}

// DeleteKey deletes the entry with the given key from the map in every target.
func (mp *Map) DeleteKey(key reflect.Value) error {
	typ, err := mp.mapType()
	if err != nil {
		return err
	}
	return mp.editEach(typ, func(m reflect.Value) {
		m.SetMapIndex(key, reflect.Value{})
	})
}

// ValueText implements [Drawer.ValueText] with the number of entries.
func (mp *Map) ValueText() string {
	switch {
	case mp.mixed:
		return MixedText
	case mp.stale:
		return "Missing"
	case reflectx.IsNil(scalar(mp.value)):
		return "None"
	}
	return fmt.Sprintf("%s (%d)", typeLabel(reflectx.RuntimeType(mp.value)), mp.Len())
}

// HandleInput implements [Drawer.HandleInput]. Submit adds the key in
// the text of the event, and remove deletes the entry of the child at
// the index of the event.
func (mp *Map) HandleInput(e InputEvent) bool {
	switch e.Kind {
	case Submit:
		return errors.Log(mp.AddKey(e.Text)) == nil
	case Remove:
		keys := SortedKeys(mp.value)
		if e.Index < 0 || e.Index >= len(keys) {
			errors.Log(fmt.Errorf("drawers.Map: remove %d: %w", e.Index, ErrOutOfRange))
			return false
		}
		return errors.Log(mp.DeleteKey(keys[e.Index])) == nil
	}
	return mp.ParentBase.HandleInput(e)
}
