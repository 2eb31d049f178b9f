// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drawers implements the reflected-object drawer tree: a tree of
// stateful, pooled drawer nodes that mirrors the members of one or more
// target values, picks a drawer variant per member, and reconciles itself
// incrementally across draw cycles driven by an [Inspector].
package drawers

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/plan"
	"cogentcore.org/inspector/members"
	"cogentcore.org/inspector/pool"
	"cogentcore.org/inspector/reflection"
)

var (
	// ErrStaleReference is returned when the member path of a drawer no longer resolves.
	ErrStaleReference = members.ErrStaleReference

	// ErrNotSettable is returned when a drawer has no settable member.
	ErrNotSettable = reflection.ErrNotSettable

	// ErrOutOfRange is returned when an element index or map key does not exist.
	ErrOutOfRange = reflection.ErrOutOfRange

	// ErrReadOnly is returned when setting the value of a read-only drawer.
	ErrReadOnly = errors.New("drawers: drawer is read-only")

	// ErrConstructionFailed is returned when a default value can not be constructed.
	ErrConstructionFailed = errors.New("drawers: construction failed")

	// ErrTypeMismatch is returned when a value of an incompatible type is assigned.
	ErrTypeMismatch = errors.New("drawers: type mismatch")
)

// MixedText is shown in place of a value when the targets disagree.
const MixedText = "(mixed)"

// Drawer is the interface that all drawers satisfy. The core functionality
// of a drawer is defined on [Base], which all drawer types must embed.
// This interface contains the functionality that drawer types may override.
// You can call [Drawer.AsBase] to get the [Base] of a Drawer.
type Drawer interface {
	plan.Namer
	pool.Resetter

	// AsBase returns the [Base] of this Drawer.
	AsBase() *Base

	// LateSetup is called after the drawer has been set up with its
	// parent and member, before its first refresh. It is where drawer
	// types check their configuration for consistency.
	LateSetup()

	// RefreshFromSource reads the current value from the member path,
	// updates the cached value if it has drifted, and returns whether it changed.
	RefreshFromSource() bool

	// ValueText returns the display text of the cached value.
	ValueText() string

	// ShouldShow returns whether the drawer is shown for the given filter text.
	ShouldShow(filter string) bool

	// Height returns the preferred height of the drawer.
	Height() float32

	// Draw paints the drawer within the given bounds.
	Draw(b Bounds, p Painter)

	// HandleInput handles the given input event and returns whether it was consumed.
	HandleInput(e InputEvent) bool
}

// Base implements the [Drawer] interface and provides the core
// functionality of all drawers. It must be embedded in all drawer types.
type Base struct {

	// This is the value of this Drawer as its true underlying type. It allows
	// methods defined on base types to call methods defined on higher-level types.
	This Drawer

	// Inspector is the session that owns the drawer.
	Inspector *Inspector

	// Parent is the non-owning back-reference to the parent drawer,
	// or nil for the root drawer.
	Parent Parent

	// Index is the index of the drawer in the children of its parent.
	Index int

	// Member is the member path that the drawer represents.
	Member *members.LinkedMemberInfo

	// DrawerType is the type the drawer was created for, which is the
	// free list it returns to when released.
	DrawerType *DrawerType

	// Label is the label of the drawer.
	Label string

	// ReadOnly is whether the value can not be edited.
	ReadOnly bool

	// Equality is the policy used to decide whether the value has changed.
	// If it is nil, [DefaultEquality] is used.
	Equality EqualityPolicy

	// value is the cached value: an owned copy for plain data,
	// or the value itself for references.
	value       reflect.Value
	hasValue    bool
	mixed       bool
	dirty       bool
	stale       bool
	byReference bool

	// planName is the reconciliation key of the drawer.
	planName string

	// lease is incremented every time the drawer is acquired.
	lease  uint64
	active bool
}

// AsBase returns the [Base] for this Drawer.
func (b *Base) AsBase() *Base {
	return b
}

// PlanName implements [plan.Namer].
func (b *Base) PlanName() string {
	return b.planName
}

func (b *Base) String() string {
	name := "drawer"
	if b.DrawerType != nil {
		name = b.DrawerType.Name
	}
	if b.Member == nil {
		return name + " <unset>"
	}
	return fmt.Sprintf("%s %s", name, b.Member)
}

// ResetPooled implements [pool.Resetter]. It clears all per-lease state,
// keeping only the self-reference, the drawer type and the lease counter.
func (b *Base) ResetPooled() {
	*b = Base{This: b.This, DrawerType: b.DrawerType, lease: b.lease}
}

// Lease returns the lease generation of the drawer, which
// changes every time it is acquired from the pool.
func (b *Base) Lease() uint64 {
	return b.lease
}

// IsActive returns whether the drawer is in use, and not in the pool.
func (b *Base) IsActive() bool {
	return b.active
}

// IsStale returns whether the member path of the drawer
// failed to resolve on the last refresh.
func (b *Base) IsStale() bool {
	return b.stale
}

// LateSetup implements [Drawer.LateSetup].
func (b *Base) LateSetup() {}

// Depth returns the number of ancestors of the drawer.
func (b *Base) Depth() int {
	d := 0
	for p := b.Parent; p != nil; p = p.AsBase().Parent {
		d++
	}
	return d
}

// setup does the cheap configuration of a newly acquired drawer.
func (b *Base) setup(in *Inspector, parent Parent, item *BuildItem) {
	b.Inspector = in
	b.Parent = parent
	b.Member = item.Member
	b.planName = item.Key
	b.Label = item.Label
	if b.Label == "" && item.Member != nil {
		b.Label = item.Member.Label()
	}
	b.ReadOnly = item.ReadOnly
	if m := item.Member; m != nil && m.Member != nil && !m.Member.CanWrite() {
		b.ReadOnly = true
	}
	if parent != nil && parent.AsBase().ReadOnly {
		b.ReadOnly = true
	}
	b.byReference = b.Member != nil && isReferenceType(in.provider(), b.Member.Type)
}

// OnNextLayout schedules the given function to run at the start of the
// next cycle. It does not run if the drawer has been released or
// acquired again by then.
func (b *Base) OnNextLayout(fun func()) {
	in := b.Inspector
	if in == nil {
		return
	}
	d := b.This
	lease := b.lease
	in.Defer(func() {
		db := d.AsBase()
		if !db.active || db.lease != lease {
			return
		}
		fun()
	})
}

// requestAncestorRebuild asks the nearest ancestor whose member path still
// resolves to rebuild its subtree on the next cycle. If there is none, the
// inspector drops the targets that are no longer valid.
func (b *Base) requestAncestorRebuild() {
	in := b.Inspector
	if in == nil {
		return
	}
	for p := b.Parent; p != nil; p = p.AsBase().Parent {
		pb := p.AsParent()
		if pb.Member == nil || pb.Member.Valid() != nil {
			continue
		}
		pb.OnNextLayout(pb.Rebuild)
		return
	}
	in.Defer(in.pruneTargets)
}

// ShouldShow implements [Drawer.ShouldShow].
func (b *Base) ShouldShow(filter string) bool {
	if filter == "" {
		return true
	}
	return b.Inspector.matches(b.Label, filter)
}

// Height implements [Drawer.Height].
func (b *Base) Height() float32 {
	return b.Inspector.rowHeight()
}

// Draw implements [Drawer.Draw] by drawing the label and the value text.
func (b *Base) Draw(bd Bounds, p Painter) {
	lb, vb := bd.SplitColumn(labelFraction)
	p.Label(lb, b.Label)
	p.Value(vb, b.This.ValueText(), b.valueState())
}

func (b *Base) valueState() ValueState {
	return ValueState{Mixed: b.mixed, ReadOnly: b.ReadOnly, Missing: b.stale}
}

// HandleInput implements [Drawer.HandleInput]. It handles clipboard
// events, and text submission through [Base.SetValueFromString].
func (b *Base) HandleInput(e InputEvent) bool {
	switch e.Kind {
	case Copy:
		return errors.Log(b.CopyValue(b.Inspector.Clipboard)) == nil
	case Paste:
		return errors.Log(b.PasteValue(b.Inspector.Clipboard)) == nil
	case Submit:
		return errors.Log(b.SetValueFromString(e.Text)) == nil
	}
	return false
}

// isReferenceType returns whether values of the given type
// are compared by identity.
func isReferenceType(pr reflection.Provider, typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	if typ.Kind() == reflect.Func {
		return true
	}
	if pr != nil {
		return pr.IsHostReference(typ)
	}
	return reflection.IsHostReference(typ)
}
