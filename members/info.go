// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package members

import (
	"fmt"
	"reflect"
	"strings"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/labels"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/reflection"
)

// LinkedMemberInfo describes one reflective path from the inspected
// targets to a member. It resolves to one value per target.
type LinkedMemberInfo struct {

	// ID is unique among all descriptors of the hierarchy, across generations.
	ID uint64

	// Parent is the descriptor of the owner of the member,
	// or nil for the root descriptor of the targets.
	Parent *LinkedMemberInfo

	// Member is the reflected member, or nil for the root descriptor.
	Member reflection.Member

	// Type is the declared type of the member.
	Type reflect.Type

	// Static is whether the member ignores its owner.
	Static bool

	// CollectionIndex is the element index for collection elements, and -1 otherwise.
	CollectionIndex int

	hierarchy  *Hierarchy
	generation uint64

	// invocations are the persistent invocations of a method member, per target.
	invocations []reflect.Value
}

// Hierarchy returns the hierarchy that owns the descriptor.
func (lm *LinkedMemberInfo) Hierarchy() *Hierarchy {
	return lm.hierarchy
}

// IsRoot returns whether this is the root descriptor of the targets.
func (lm *LinkedMemberInfo) IsRoot() bool {
	return lm.Member == nil
}

// Kind returns the kind of the member. The root is reported as a field.
func (lm *LinkedMemberInfo) Kind() reflection.MemberKind {
	if lm.Member == nil {
		return reflection.Field
	}
	return lm.Member.Kind()
}

// Name returns the name of the member, or "" for the root.
func (lm *LinkedMemberInfo) Name() string {
	if lm.Member == nil {
		return ""
	}
	return lm.Member.Name()
}

// Label returns the user-facing label of the member.
func (lm *LinkedMemberInfo) Label() string {
	if lm.Member == nil {
		return labels.FriendlyTypeName(lm.Type)
	}
	if lbl, ok := lm.Member.Tag().Lookup("label"); ok {
		return lbl
	}
	switch lm.Member.Kind() {
	case reflection.Element, reflection.MapEntry:
		return lm.Member.Name()
	}
	return labels.FriendlyMemberName(lm.Member.Name())
}

// Path returns the dotted path from the targets to the member,
// such as Lights[2].Color.
func (lm *LinkedMemberInfo) Path() string {
	if lm.Member == nil {
		return ""
	}
	pp := lm.Parent.Path()
	nm := lm.Member.Name()
	switch {
	case lm.Member.Kind() == reflection.Element:
		return pp + nm
	case lm.Member.Kind() == reflection.MapEntry:
		return pp + "[" + nm + "]"
	case pp == "":
		return nm
	}
	return pp + "." + nm
}

func (lm *LinkedMemberInfo) String() string {
	var b strings.Builder
	b.WriteString(lm.Path())
	if b.Len() == 0 {
		b.WriteString("<root>")
	}
	fmt.Fprintf(&b, " (%v)", lm.Type)
	return b.String()
}

// Valid returns [ErrStaleReference] if the descriptor no longer resolves:
// the targets have changed since it was created, or a host object
// on its path has been destroyed.
func (lm *LinkedMemberInfo) Valid() error {
	_, err := lm.Values()
	return err
}

// Values returns the current value of the member for each target.
// Method members return their persistent [reflection.Invocation]s.
func (lm *LinkedMemberInfo) Values() ([]reflect.Value, error) {
	h := lm.hierarchy
	if lm.generation != h.generation {
		return nil, ErrStaleReference
	}
	if lm.Member == nil {
		for _, t := range h.targets {
			if reflection.IsDestroyed(t) {
				return nil, ErrStaleReference
			}
		}
		return h.targets, nil
	}
	if lm.Static {
		v, err := lm.Member.Get(reflect.Value{})
		if err != nil {
			return nil, err
		}
		return []reflect.Value{v}, nil
	}
	pvs, err := lm.Parent.Values()
	if err != nil {
		return nil, err
	}
	for _, pv := range pvs {
		if reflection.IsDestroyed(pv) {
			return nil, ErrStaleReference
		}
	}
	if lm.Member.Kind() == reflection.Method {
		return lm.methodValues(pvs)
	}
	res := make([]reflect.Value, len(pvs))
	for i, pv := range pvs {
		v, err := lm.Member.Get(pv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", lm.Path(), err)
		}
		res[i] = v
	}
	return res, nil
}

// methodValues returns the persistent invocations, recreating them
// when the receivers have changed.
func (lm *LinkedMemberInfo) methodValues(pvs []reflect.Value) ([]reflect.Value, error) {
	if len(lm.invocations) == len(pvs) {
		same := true
		for i, pv := range pvs {
			iv := lm.invocations[i].Interface().(*reflection.Invocation)
			if !sameReceiver(iv.Receiver, pv) {
				same = false
				break
			}
		}
		if same {
			return lm.invocations, nil
		}
	}
	invs := make([]reflect.Value, len(pvs))
	for i, pv := range pvs {
		v, err := lm.Member.Get(pv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", lm.Path(), err)
		}
		invs[i] = v
	}
	lm.invocations = invs
	return invs, nil
}

func sameReceiver(recv, owner reflect.Value) bool {
	owner = reflectx.Underlying(owner)
	if recv.Kind() == reflect.Pointer && owner.Kind() == reflect.Pointer {
		return recv.Pointer() == owner.Pointer()
	}
	if recv.Kind() == reflect.Pointer && owner.CanAddr() {
		return recv.Pointer() == owner.Addr().Pointer()
	}
	return false
}

// Value returns the value of the member for the first target.
func (lm *LinkedMemberInfo) Value() (reflect.Value, error) {
	vs, err := lm.Values()
	if err != nil {
		return reflect.Value{}, err
	}
	if len(vs) == 0 {
		return reflect.Value{}, reflection.ErrNilOwner
	}
	return vs[0], nil
}

// IsMixed returns whether the targets have differing values for the member.
func (lm *LinkedMemberInfo) IsMixed() bool {
	vs, err := lm.Values()
	if err != nil || len(vs) < 2 {
		return false
	}
	for _, v := range vs[1:] {
		if !Equal(vs[0], v) {
			return true
		}
	}
	return false
}

// Equal returns whether the two member values are equal. Host objects
// and functions are compared by identity, and everything else deeply,
// with nested functions also compared by identity.
func Equal(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	ua, ub := reflectx.Underlying(a), reflectx.Underlying(b)
	if !ua.IsValid() || !ub.IsValid() {
		return ua.IsValid() == ub.IsValid()
	}
	if ua.Type() != ub.Type() {
		return false
	}
	if reflection.IsHostReference(ua.Type()) && ua.Kind() == reflect.Pointer {
		return ua.Pointer() == ub.Pointer()
	}
	return deepEqual(ua, ub, map[visit]bool{}, 0)
}

// maxEqualDepth bounds the recursion of [deepEqual].
const maxEqualDepth = 64

type visit struct {
	a, b uintptr
	typ  reflect.Type
}

// deepEqual is like [reflect.DeepEqual] for values of the same type,
// except that non-nil functions are equal when they are the same function.
func deepEqual(a, b reflect.Value, seen map[visit]bool, depth int) bool {
	if depth > maxEqualDepth {
		return false
	}
	switch a.Kind() {
	case reflect.Func:
		return a.IsNil() == b.IsNil() && (a.IsNil() || a.Pointer() == b.Pointer())
	case reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		return ea.Type() == eb.Type() && deepEqual(ea, eb, seen, depth+1)
	case reflect.Pointer:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		if a.Pointer() == b.Pointer() {
			return true
		}
		v := visit{a.Pointer(), b.Pointer(), a.Type()}
		if seen[v] {
			return true
		}
		seen[v] = true
		return deepEqual(a.Elem(), b.Elem(), seen, depth+1)
	case reflect.Struct:
		for i := range a.NumField() {
			if !deepEqual(a.Field(i), b.Field(i), seen, depth+1) {
				return false
			}
		}
		return true
	case reflect.Slice:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		if a.Pointer() == b.Pointer() {
			return true
		}
		fallthrough
	case reflect.Array:
		for i := range a.Len() {
			if !deepEqual(a.Index(i), b.Index(i), seen, depth+1) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		if a.Pointer() == b.Pointer() {
			return true
		}
		it := a.MapRange()
		for it.Next() {
			bv := b.MapIndex(it.Key())
			if !bv.IsValid() || !deepEqual(it.Value(), bv, seen, depth+1) {
				return false
			}
		}
		return true
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	}
	return false
}

// SetValue sets the member to the given value in every target. When
// an owner can not be modified in place (a struct held by value in a
// map or an interface), the member is set on a copy of the owner,
// and the copy is written back to the owner's own owner.
func (lm *LinkedMemberInfo) SetValue(v reflect.Value) error {
	vs, err := lm.Values()
	if err != nil {
		return err
	}
	if lm.Static {
		return lm.Member.Set(reflect.Value{}, v)
	}
	var errs []error
	for i := range vs {
		errs = append(errs, lm.setAt(i, v))
	}
	return errors.Join(errs...)
}

// SetEach sets the member in every target to the value that the given
// function returns for the index and current value of that target.
// It is used to give each target its own instance of reference values.
func (lm *LinkedMemberInfo) SetEach(fun func(i int, cur reflect.Value) (reflect.Value, error)) error {
	vs, err := lm.Values()
	if err != nil {
		return err
	}
	var errs []error
	for i, cur := range vs {
		v, err := fun(i, cur)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, lm.setAt(i, v))
	}
	return errors.Join(errs...)
}

// setAt sets the member for the target with the given index.
func (lm *LinkedMemberInfo) setAt(i int, v reflect.Value) error {
	if lm.Member == nil {
		t := lm.hierarchy.targets[i]
		if t.Kind() != reflect.Pointer || t.IsNil() {
			return reflection.ErrNotSettable
		}
		cv, err := reflectx.ConvertTo(v, t.Type().Elem())
		if err != nil {
			return err
		}
		t.Elem().Set(cv)
		return nil
	}
	if lm.Static {
		return lm.Member.Set(reflect.Value{}, v)
	}
	if !lm.Member.CanWrite() {
		return fmt.Errorf("%s: %w", lm.Path(), reflection.ErrNotSettable)
	}
	pvs, err := lm.Parent.Values()
	if err != nil {
		return err
	}
	pv := pvs[i]
	err = lm.Member.Set(pv, v)
	if !errors.Is(err, reflection.ErrNotAddressable) {
		return err
	}
	u := reflectx.Underlying(pv)
	cp := reflect.New(u.Type()).Elem()
	cp.Set(u)
	if err := lm.Member.Set(cp, v); err != nil {
		return err
	}
	return lm.Parent.setAt(i, cp)
}
