// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"cmp"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/types"
)

// Variants is the set of candidate concrete types of a [Polymorphic] drawer.
type Variants struct {

	// HostTypes are the host-reference-like candidates,
	// which are assigned by reference.
	HostTypes []reflect.Type

	// PlainTypes are the plain data candidates,
	// which are constructed and edited inline.
	PlainTypes []reflect.Type

	// Nullable is whether the declared type can hold a null value.
	Nullable bool
}

// Has returns whether the given type is one of the candidates.
func (vs *Variants) Has(typ reflect.Type) bool {
	return slices.Contains(vs.HostTypes, typ) || slices.Contains(vs.PlainTypes, typ)
}

// TypeMenuItem is one entry of the type selection menu of a [Polymorphic] drawer.
type TypeMenuItem struct {

	// Type is the candidate type.
	Type reflect.Type

	// Label is the user-facing label of the type.
	Label string

	// Drawer is the drawer type that values of the type get.
	Drawer *DrawerType

	// Host is whether the type is host-reference-like.
	Host bool
}

// Polymorphic is a parent drawer for members whose declared type needs
// runtime type selection: interfaces and nullable pointers to structs.
// Its children depend entirely on the type of the current value, so
// the subtree is rebuilt exactly when that type changes.
type Polymorphic struct {
	ParentBase

	// Variants are the candidate types, classified on setup.
	Variants Variants

	// userSelectedType is the type last chosen by the user. It is kept
	// while the value is null, so that toggling back is sticky.
	userSelectedType reflect.Type
}

// ResetPooled implements [pool.Resetter].
func (pm *Polymorphic) ResetPooled() {
	pm.ParentBase.ResetPooled()
	*pm = Polymorphic{ParentBase: pm.ParentBase}
}

// LateSetup implements [Drawer.LateSetup] by classifying the candidate
// types of the declared type into host references and plain data.
func (pm *Polymorphic) LateSetup() {
	pm.Folded = true
	if pm.Member == nil {
		return
	}
	pr := pm.Inspector.provider()
	decl := pm.Member.Type
	pm.Variants = Variants{Nullable: reflectx.IsNilable(decl)}
	for _, t := range pr.Implementations(decl) {
		if pr.IsHostReference(t) {
			pm.Variants.HostTypes = append(pm.Variants.HostTypes, t)
		} else {
			pm.Variants.PlainTypes = append(pm.Variants.PlainTypes, t)
		}
	}
	slog.Debug("drawers: polymorphic variants", "path", pm.Member.Path(), "host", len(pm.Variants.HostTypes), "plain", len(pm.Variants.PlainTypes))
}

// InstanceType returns the type of the current value, or nil if it is null.
func (pm *Polymorphic) InstanceType() reflect.Type {
	return reflectx.RuntimeType(pm.value)
}

// UserSelectedType returns the type last selected by the user, or nil.
func (pm *Polymorphic) UserSelectedType() reflect.Type {
	return pm.userSelectedType
}

// ShowNullToggle returns whether the null toggle is shown: there are
// plain data candidates, and the value is null or not a host reference.
// Host references have their own none state.
func (pm *Polymorphic) ShowNullToggle() bool {
	if len(pm.Variants.PlainTypes) == 0 {
		return false
	}
	it := pm.InstanceType()
	return it == nil || !pm.Inspector.provider().IsHostReference(it)
}

// DoGenerateMemberBuildList implements [Parent.DoGenerateMemberBuildList].
// The children are the null toggle if it is shown, followed by a reference
// picker for host references or the members of plain data.
func (pm *Polymorphic) DoGenerateMemberBuildList() {
	in := pm.Inspector
	pr := in.provider()
	if pm.ShowNullToggle() {
		pm.buildList = append(pm.buildList, BuildItem{Key: NullToggleType.Name, Type: NullToggleType, Label: "None"})
	}
	it := pm.InstanceType()
	switch {
	case it == nil:
		if ut := pm.userSelectedType; ut != nil && pr.IsHostReference(ut) {
			pm.AddBuildItem(pm.Member, ReferenceType)
		}
	case pr.IsHostReference(it):
		pm.AddBuildItem(pm.Member, ReferenceType)
	case reflectx.NonPointerType(it).Kind() == reflect.Struct:
		pm.AddMembers(it)
	default:
		pm.AddBuildItem(pm.Member, in.Registry.Resolve(it, it))
	}
}

// Reference returns the reference picker child, or nil.
func (pm *Polymorphic) Reference() *Reference {
	for _, c := range pm.Children {
		if rf, ok := c.(*Reference); ok {
			return rf
		}
	}
	return nil
}

// StructuralRebuilds returns the number of rebuild passes of the drawer.
func (pm *Polymorphic) StructuralRebuilds() int {
	return pm.rebuilds
}

// SelectType selects the given candidate type. Host reference types
// are remembered until an object is assigned; plain data types get a
// new default value in every target. If the default value can not be
// made, the selection is aborted and the previous value is kept.
func (pm *Polymorphic) SelectType(typ reflect.Type) error {
	if pm.Member == nil {
		return ErrNotSettable
	}
	if pm.ReadOnly {
		return fmt.Errorf("%s: %w", pm.Member.Path(), ErrReadOnly)
	}
	if typ == nil || !typ.AssignableTo(pm.Member.Type) {
		return fmt.Errorf("%s: %w: %v is not assignable to %v", pm.Member.Path(), ErrTypeMismatch, typ, pm.Member.Type)
	}
	in := pm.Inspector
	if in.provider().IsHostReference(typ) {
		prev := pm.userSelectedType
		pm.userSelectedType = typ
		switch it := pm.InstanceType(); {
		case it == nil:
			if prev != typ {
				pm.RequestRebuild()
			}
		case it != typ:
			// the instance type changes, which rebuilds the children
			if err := pm.SetValue(reflect.Zero(pm.Member.Type)); err != nil {
				pm.userSelectedType = prev
				return err
			}
		}
		pm.unfold()
		return nil
	}
	if in.Defaults == nil {
		return fmt.Errorf("%s: %w: no default value provider", pm.Member.Path(), ErrConstructionFailed)
	}
	if _, err := in.Defaults.New(typ); err != nil {
		slog.Error("drawers: could not construct selected type", "path", pm.Member.Path(), "type", typ, "err", err)
		return fmt.Errorf("%s: %w", pm.Member.Path(), err)
	}
	err := pm.SetNew(func() (reflect.Value, error) {
		return in.Defaults.New(typ)
	})
	if err != nil {
		return err
	}
	pm.userSelectedType = typ
	pm.unfold()
	return nil
}

// unfold unfolds the drawer on the next cycle, if configured.
func (pm *Polymorphic) unfold() {
	if in := pm.Inspector; in.Settings != nil && !in.Settings.UnfoldOnTypeSelect {
		return
	}
	pm.OnNextLayout(func() { pm.SetFolded(false) })
}

// ToggleNull switches between a null value and a value of the user
// selected type, or the first plain data candidate.
func (pm *Polymorphic) ToggleNull() error {
	if pm.Member == nil {
		return ErrNotSettable
	}
	if it := pm.InstanceType(); it != nil {
		if !pm.Inspector.provider().IsHostReference(it) {
			pm.userSelectedType = it
		}
		return pm.SetValue(reflect.Zero(pm.Member.Type))
	}
	typ := pm.userSelectedType
	if typ == nil || !slices.Contains(pm.Variants.PlainTypes, typ) {
		if len(pm.Variants.PlainTypes) == 0 {
			return fmt.Errorf("%s: %w: no plain data types", pm.Member.Path(), ErrConstructionFailed)
		}
		typ = pm.Variants.PlainTypes[0]
	}
	return pm.SelectType(typ)
}

// TypeMenu returns the candidate types for the type selection menu.
// With a filter, only matching types are returned, best match first.
func (pm *Polymorphic) TypeMenu(filter string) []TypeMenuItem {
	in := pm.Inspector
	type scored struct {
		item  TypeMenuItem
		score float64
	}
	var items []scored
	add := func(typ reflect.Type, host bool) {
		it := TypeMenuItem{Type: typ, Label: typeLabel(typ), Drawer: in.Registry.Resolve(typ, typ), Host: host}
		if filter == "" {
			items = append(items, scored{item: it})
			return
		}
		if !in.matches(it.Label, filter) {
			return
		}
		items = append(items, scored{item: it, score: in.similarity(it.Label, filter)})
	}
	for _, t := range pm.Variants.HostTypes {
		add(t, true)
	}
	for _, t := range pm.Variants.PlainTypes {
		add(t, false)
	}
	if filter != "" {
		slices.SortStableFunc(items, func(a, b scored) int {
			return cmp.Compare(b.score, a.score)
		})
	}
	res := make([]TypeMenuItem, len(items))
	for i, s := range items {
		res[i] = s.item
	}
	return res
}

// typeByName returns the candidate type with the given label or type name.
func (pm *Polymorphic) typeByName(name string) reflect.Type {
	for _, it := range pm.TypeMenu("") {
		if it.Label == name || types.TypeName(it.Type) == name {
			return it.Type
		}
	}
	return nil
}

// ValueText implements [Drawer.ValueText].
func (pm *Polymorphic) ValueText() string {
	if pm.InstanceType() == nil && !pm.mixed && !pm.stale {
		if ut := pm.userSelectedType; ut != nil && pm.Inspector.provider().IsHostReference(ut) {
			return typeLabel(ut) + ": None"
		}
	}
	return pm.ParentBase.ValueText()
}

// HandleInput implements [Drawer.HandleInput], adding type selection
// by name and null toggling.
func (pm *Polymorphic) HandleInput(e InputEvent) bool {
	switch e.Kind {
	case Select:
		typ := pm.typeByName(e.Text)
		if typ == nil {
			errors.Log(fmt.Errorf("%s: %w: unknown type %q", pm.Member.Path(), ErrTypeMismatch, e.Text))
			return false
		}
		return errors.Log(pm.SelectType(typ)) == nil
	case ToggleNull:
		return errors.Log(pm.ToggleNull()) == nil
	case Submit, Remove:
		// the picker shares the member, so it is addressed through here
		if rf := pm.Reference(); rf != nil {
			return rf.HandleInput(e)
		}
	}
	return pm.ParentBase.HandleInput(e)
}
