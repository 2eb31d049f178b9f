// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/reflectx"
)

// Collection is a parent drawer for slices and arrays, with a child for
// each element. Slices can be resized, appended to and removed from.
type Collection struct {
	ParentBase
}

// sequence returns the slice or array held by the given value, going
// through interfaces and pointers, or an invalid value for nil.
func sequence(v reflect.Value) reflect.Value {
	return scalar(v)
}

// Len returns the length of the cached value.
func (cl *Collection) Len() int {
	s := sequence(cl.value)
	if !s.IsValid() {
		return 0
	}
	return s.Len()
}

// LateSetup implements [Drawer.LateSetup]. Collections longer than
// the inline length start folded.
func (cl *Collection) LateSetup() {
	in := cl.Inspector
	if in == nil || in.Settings == nil || cl.Member == nil {
		return
	}
	v, err := cl.Member.Value()
	if err != nil {
		return
	}
	if s := sequence(v); s.IsValid() && s.Len() > in.Settings.InlineCollectionLength {
		cl.Folded = true
	}
}

// DoGenerateMemberBuildList implements [Parent.DoGenerateMemberBuildList]
// with a child for each element.
func (cl *Collection) DoGenerateMemberBuildList() {
	s := sequence(cl.value)
	if !s.IsValid() {
		return
	}
	in := cl.Inspector
	for i := range s.Len() {
		m := in.Provider.Element(s.Type(), i)
		cl.AddBuildItem(in.Hierarchy.Get(cl.Member, m, i), nil)
	}
}

// NeedsRebuild implements [Parent.NeedsRebuild]. The children change
// with the runtime type and the length.
func (cl *Collection) NeedsRebuild(old, new reflect.Value) bool {
	if cl.ParentBase.NeedsRebuild(old, new) {
		return true
	}
	so, sn := sequence(old), sequence(new)
	if so.IsValid() != sn.IsValid() {
		return true
	}
	return so.IsValid() && so.Len() != sn.Len()
}

// resizable returns the slice type of the member, or an error if its
// length can not be changed.
func (cl *Collection) resizable() (reflect.Type, error) {
	if cl.Member == nil {
		return nil, ErrNotSettable
	}
	typ := cl.Member.Type
	if typ.Kind() == reflect.Interface {
		typ = reflectx.RuntimeType(cl.value)
	}
	if typ == nil || reflectx.NonPointerType(typ).Kind() != reflect.Slice {
		return nil, fmt.Errorf("%s: %w: only slices can be resized", cl.Member.Path(), ErrNotSettable)
	}
	return typ, nil
}

// newElement returns a new element of the given type for a resize.
func (cl *Collection) newElement(typ reflect.Type) reflect.Value {
	in := cl.Inspector
	if in != nil && in.Defaults != nil && typ.Kind() != reflect.Interface && !in.provider().IsHostReference(typ) {
		if v, err := in.Defaults.New(typ); err == nil {
			return v
		}
	}
	return reflect.Zero(typ)
}

// editEach sets each target to a new slice made by the given
// function from its current slice.
func (cl *Collection) editEach(typ reflect.Type, edit func(cur reflect.Value) reflect.Value) error {
	return cl.SetEach(func(i int, cur reflect.Value) (reflect.Value, error) {
		s := sequence(cur)
		if !s.IsValid() {
			s = reflect.Zero(reflectx.NonPointerType(typ))
		}
		ns := edit(s)
		if typ.Kind() == reflect.Pointer {
			pv := reflect.New(typ.Elem())
			pv.Elem().Set(ns)
			return pv, nil
		}
		return ns, nil
	})
}

// Resize sets the length of the slice in every target. New elements
// get default values.
func (cl *Collection) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("drawers.Collection.Resize: negative length %d", n)
	}
	typ, err := cl.resizable()
	if err != nil {
		return err
	}
	return cl.editEach(typ, func(s reflect.Value) reflect.Value {
		ns := reflect.MakeSlice(s.Type(), n, n)
		reflect.Copy(ns, s)
		for i := s.Len(); i < n; i++ {
			ns.Index(i).Set(cl.newElement(s.Type().Elem()))
		}
		return ns
	})
}

// Append adds a new default element to the end of the slice.
func (cl *Collection) Append() error {
	return cl.Resize(cl.Len() + 1)
}

// RemoveAt removes the element at the given index from the slice in every target.
func (cl *Collection) RemoveAt(index int) error {
	typ, err := cl.resizable()
	if err != nil {
		return err
	}
	if index < 0 || index >= cl.Len() {
		return fmt.Errorf("%s: remove %d: %w", cl.Member.Path(), index, ErrOutOfRange)
	}
	return cl.editEach(typ, func(s reflect.Value) reflect.Value {
		if index >= s.Len() {
			return s
		}
		ns := reflect.MakeSlice(s.Type(), 0, s.Len()-1)
		ns = reflect.AppendSlice(ns, s.Slice(0, index))
		return reflect.AppendSlice(ns, s.Slice(index+1, s.Len()))
	})
}

// ValueText implements [Drawer.ValueText] with the length.
func (cl *Collection) ValueText() string {
	switch {
	case cl.mixed:
		return MixedText
	case cl.stale:
		return "Missing"
	case !sequence(cl.value).IsValid():
		return "None"
	}
	typ := reflectx.RuntimeType(cl.value)
	if typ == nil && cl.Member != nil {
		typ = cl.Member.Type
	}
	return fmt.Sprintf("%s (%d)", typeLabel(typ), cl.Len())
}

// HandleInput implements [Drawer.HandleInput], adding resizing and removal.
func (cl *Collection) HandleInput(e InputEvent) bool {
	switch e.Kind {
	case Resize:
		return errors.Log(cl.Resize(e.Index)) == nil
	case Remove:
		return errors.Log(cl.RemoveAt(e.Index)) == nil
	}
	return cl.ParentBase.HandleInput(e)
}
