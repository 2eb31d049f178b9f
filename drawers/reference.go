// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"reflect"
	"strconv"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/labels"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/reflection"
)

// HostSource lists the live host objects that can be assigned
// to reference members.
type HostSource interface {

	// Objects returns the live host objects assignable to the given type.
	Objects(typ reflect.Type) []reflection.HostObject
}

// Reference is a leaf drawer for host-reference-like values, which
// are assigned by reference from a picker rather than edited inline.
type Reference struct {
	Base
}

// LateSetup implements [Drawer.LateSetup].
func (rf *Reference) LateSetup() {
	rf.byReference = true
}

// Object returns the referenced host object, or nil.
func (rf *Reference) Object() reflection.HostObject {
	v := reflectx.Underlying(rf.value)
	if reflectx.IsNil(v) || !v.CanInterface() {
		return nil
	}
	ho, _ := v.Interface().(reflection.HostObject)
	return ho
}

// TargetType returns the type of the objects that can be assigned:
// the type selected in a polymorphic parent, or the declared type.
func (rf *Reference) TargetType() reflect.Type {
	if pm, ok := rf.Parent.(*Polymorphic); ok && pm.Member == rf.Member {
		if ut := pm.UserSelectedType(); ut != nil && rf.Inspector.provider().IsHostReference(ut) {
			return ut
		}
		if it := pm.InstanceType(); it != nil {
			return it
		}
	}
	if rf.Member == nil {
		return nil
	}
	return rf.Member.Type
}

// Candidates returns the live host objects that can be assigned.
func (rf *Reference) Candidates() []reflection.HostObject {
	in := rf.Inspector
	typ := rf.TargetType()
	if in == nil || in.Hosts == nil || typ == nil {
		return nil
	}
	var res []reflection.HostObject
	for _, obj := range in.Hosts.Objects(typ) {
		if obj != nil && !obj.Destroyed() && reflect.TypeOf(obj).AssignableTo(typ) {
			res = append(res, obj)
		}
	}
	return res
}

// Assign assigns the given host object to the member in every target,
// or clears the reference if it is nil.
func (rf *Reference) Assign(obj reflection.HostObject) error {
	if rf.Member == nil {
		return ErrNotSettable
	}
	if obj == nil {
		return rf.SetValue(reflect.Zero(rf.Member.Type))
	}
	ov := reflect.ValueOf(obj)
	if tt := rf.TargetType(); tt != nil && !ov.Type().AssignableTo(tt) {
		return fmt.Errorf("%s: %w: %v is not assignable to %v", rf.Member.Path(), ErrTypeMismatch, ov.Type(), tt)
	}
	if !ov.Type().AssignableTo(rf.Member.Type) {
		return fmt.Errorf("%s: %w: %v is not assignable to %v", rf.Member.Path(), ErrTypeMismatch, ov.Type(), rf.Member.Type)
	}
	return rf.SetValue(ov)
}

// Pick assigns the candidate with the given instance ID.
func (rf *Reference) Pick(id int64) error {
	for _, obj := range rf.Candidates() {
		if obj.InstanceID() == id {
			return rf.Assign(obj)
		}
	}
	return fmt.Errorf("drawers.Reference: no candidate with id %d", id)
}

// ValueText implements [Drawer.ValueText] with the name and instance ID
// of the object. Destroyed objects are shown as missing.
func (rf *Reference) ValueText() string {
	if rf.mixed {
		return MixedText
	}
	obj := rf.Object()
	switch {
	case rf.stale || (obj != nil && obj.Destroyed()):
		return "Missing"
	case obj == nil:
		return "None"
	}
	name := labels.FriendlyTypeName(reflect.TypeOf(obj))
	if st, ok := obj.(fmt.Stringer); ok {
		name = st.String()
	}
	return fmt.Sprintf("%s #%d", name, obj.InstanceID())
}

// HandleInput implements [Drawer.HandleInput]. Select and submit pick the
// candidate with the instance ID in the text of the event, and remove
// clears the reference.
func (rf *Reference) HandleInput(e InputEvent) bool {
	switch e.Kind {
	case Select, Submit:
		id, err := strconv.ParseInt(e.Text, 10, 64)
		if err != nil {
			errors.Log(fmt.Errorf("drawers.Reference: invalid instance id %q: %w", e.Text, err))
			return false
		}
		return errors.Log(rf.Pick(id)) == nil
	case Remove:
		return errors.Log(rf.Assign(nil)) == nil
	case Copy, Paste:
		return false
	}
	return rf.Base.HandleInput(e)
}
