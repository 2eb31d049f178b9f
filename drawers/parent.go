// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"cogentcore.org/inspector/base/plan"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/members"
	"cogentcore.org/inspector/reflection"
)

// BuildState is the progress of a parent drawer through a rebuild pass.
type BuildState int32

const (
	// Unstarted is the state at the start of a rebuild pass.
	Unstarted BuildState = iota

	// BuildListGenerated is the state after [Parent.DoGenerateMemberBuildList].
	BuildListGenerated

	// MembersBuilt is the state after [Parent.DoBuildMembers].
	MembersBuilt
)

func (s BuildState) String() string {
	switch s {
	case Unstarted:
		return "Unstarted"
	case BuildListGenerated:
		return "BuildListGenerated"
	case MembersBuilt:
		return "MembersBuilt"
	}
	return fmt.Sprintf("BuildState(%d)", int32(s))
}

// BuildItem is one child that a parent drawer should have.
type BuildItem struct {

	// Key is the reconciliation key of the child. Children whose key
	// survives a rebuild are kept in place.
	Key string

	// Member is the member path of the child.
	Member *members.LinkedMemberInfo

	// Type is the drawer type of the child.
	Type *DrawerType

	// Label overrides the label of the member, if set.
	Label string

	// ReadOnly makes the child read-only.
	ReadOnly bool
}

// Parent is the interface satisfied by drawers that own children.
// The build hooks are called through [Base.This], so drawer types
// embedding [ParentBase] can override them.
type Parent interface {
	Drawer

	// AsParent returns the [ParentBase] of this Parent.
	AsParent() *ParentBase

	// DoGenerateMemberBuildList fills the build list with [ParentBase.AddBuildItem].
	DoGenerateMemberBuildList()

	// DoBuildMembers creates, reuses and releases children to match the build list.
	DoBuildMembers()

	// UpdateVisibleMembers recomputes the visible subset of the children.
	UpdateVisibleMembers()

	// NeedsRebuild returns whether a change of the cached value from
	// old to new changes the shape of the children.
	NeedsRebuild(old, new reflect.Value) bool

	// OnMemberValueChanged is called by the child at the given index
	// after its value has been set to the given value.
	OnMemberValueChanged(index int, v reflect.Value)
}

// ParentBase implements [Parent], and provides the three-phase build
// of children shared by all parent drawers.
type ParentBase struct {
	Base

	// Children are the owned child drawers. They are only changed by
	// [ParentBase.Rebuild]; never keep a reference across a rebuild.
	Children []Drawer

	// BuildState is the progress of the current rebuild pass.
	BuildState BuildState

	// Folded is whether the children are hidden.
	Folded bool

	buildList []BuildItem
	visible   []Drawer
	rebuilds  int

	// rebuildPending is set while a deferred rebuild is scheduled.
	rebuildPending bool
}

// AsParent returns the [ParentBase] of this Parent.
func (pb *ParentBase) AsParent() *ParentBase {
	return pb
}

// ResetPooled implements [pool.Resetter].
func (pb *ParentBase) ResetPooled() {
	pb.Base.ResetPooled()
	*pb = ParentBase{Base: pb.Base}
}

// Rebuilds returns the number of rebuild passes run since the drawer was acquired.
func (pb *ParentBase) Rebuilds() int {
	return pb.rebuilds
}

// BuildList returns the build list of the last rebuild pass.
func (pb *ParentBase) BuildList() []BuildItem {
	return pb.buildList
}

// Visible returns the visible subset of the children.
func (pb *ParentBase) Visible() []Drawer {
	return pb.visible
}

// AddBuildItem adds a child for the given member path with the given
// drawer type to the build list. If the drawer type is nil, it is resolved.
func (pb *ParentBase) AddBuildItem(lm *members.LinkedMemberInfo, dt *DrawerType) *BuildItem {
	if dt == nil {
		dt = pb.Inspector.Registry.ResolveMember(lm)
	}
	pb.buildList = append(pb.buildList, BuildItem{Key: fmt.Sprintf("%d:%s", lm.ID, dt.Name), Member: lm, Type: dt})
	return &pb.buildList[len(pb.buildList)-1]
}

// AddMembers adds build items for the members of the given type
// reached through the member path of the drawer: the fields,
// properties and statics, then the methods. Discovery failures are
// logged and result in no items.
func (pb *ParentBase) AddMembers(typ reflect.Type) {
	in := pb.Inspector
	pr := in.Provider
	ms, err := pr.Members(typ)
	if err != nil {
		slog.Warn("drawers: member discovery failed", "path", pb.Member.Path(), "type", typ, "err", err)
		return
	}
	h := in.Hierarchy
	for _, m := range ms {
		if m.IsStatic() && !in.Settings.ShowStaticMembers {
			continue
		}
		if m.Kind() == reflection.Property && !in.Settings.ShowProperties {
			continue
		}
		pb.AddBuildItem(h.Get(pb.Member, m, -1), nil)
	}
	for _, m := range pr.Methods(typ) {
		pb.AddBuildItem(h.Get(pb.Member, m, -1), nil)
	}
}

// DoGenerateMemberBuildList implements [Parent.DoGenerateMemberBuildList]
// by adding the members of the runtime type of the value.
func (pb *ParentBase) DoGenerateMemberBuildList() {
	typ := reflectx.RuntimeType(pb.value)
	if typ == nil {
		return
	}
	pb.AddMembers(typ)
}

// DoBuildMembers implements [Parent.DoBuildMembers]. Children whose key is
// still in the build list are kept; the others are released to the pool
// after they are unlinked.
func (pb *ParentBase) DoBuildMembers() {
	in := pb.Inspector
	this := pb.This.(Parent)
	items := pb.buildList
	ed := plan.Update(&pb.Children, len(items),
		func(i int) string { return items[i].Key },
		func(name string, i int) Drawer {
			d := in.acquire(items[i].Type)
			d.AsBase().setup(in, this, &items[i])
			return d
		},
		func(d Drawer, i int) {
			d.AsBase().Index = i
			in.activate(d)
		},
		func(d Drawer) {
			in.release(d)
		})
	for i, c := range pb.Children {
		c.AsBase().Index = i
	}
	if ed.Changed() {
		slog.Debug("drawers: built members", "drawer", pb, "added", ed.Added, "removed", ed.Removed, "moved", ed.Moved)
	}
}

// Rebuild runs a full rebuild pass: it generates the build list, builds
// the children, and updates the visible subset. If the member path of the
// drawer no longer resolves, it asks the nearest valid ancestor to rebuild
// instead. Callers must re-fetch the children after calling Rebuild.
func (pb *ParentBase) Rebuild() {
	pb.rebuildPending = false
	if pb.Member != nil {
		if err := pb.Member.Valid(); err != nil {
			slog.Info("drawers: not rebuilding invalid drawer", "path", pb.Member.Path(), "err", err)
			pb.stale = true
			pb.requestAncestorRebuild()
			return
		}
	}
	this := pb.This.(Parent)
	pb.BuildState = Unstarted
	pb.buildList = pb.buildList[:0]
	if d := pb.Depth(); d < pb.Inspector.maxDepth() {
		this.DoGenerateMemberBuildList()
	} else {
		slog.Debug("drawers: not building members past the maximum depth", "path", pb.Member.Path(), "depth", d)
	}
	pb.buildList = slices.DeleteFunc(pb.buildList, func(it BuildItem) bool {
		return it.Member != nil && it.Member != pb.Member && it.Member.Valid() != nil
	})
	pb.BuildState = BuildListGenerated
	this.DoBuildMembers()
	pb.BuildState = MembersBuilt
	pb.rebuilds++
	this.UpdateVisibleMembers()
}

// RequestRebuild rebuilds the drawer now, or on the next cycle if the
// tree is being traversed.
func (pb *ParentBase) RequestRebuild() {
	in := pb.Inspector
	if in == nil || !in.Traversing() {
		pb.Rebuild()
		return
	}
	if pb.rebuildPending {
		return
	}
	pb.rebuildPending = true
	pb.OnNextLayout(pb.Rebuild)
}

// UpdateVisibleMembers implements [Parent.UpdateVisibleMembers]. It depends
// only on the fold state, the filter and the children, and it never changes
// the children themselves.
func (pb *ParentBase) UpdateVisibleMembers() {
	pb.visible = pb.visible[:0]
	if pb.Folded || pb.BuildState != MembersBuilt {
		return
	}
	filter := pb.Inspector.Filter
	for _, c := range pb.Children {
		if c.ShouldShow(filter) {
			pb.visible = append(pb.visible, c)
		}
	}
}

// SetFolded sets whether the children are hidden.
func (pb *ParentBase) SetFolded(folded bool) {
	pb.Folded = folded
	pb.This.(Parent).UpdateVisibleMembers()
}

// ShouldShow implements [Drawer.ShouldShow]. A parent is shown if its
// label or any of its descendants match.
func (pb *ParentBase) ShouldShow(filter string) bool {
	if pb.Base.ShouldShow(filter) {
		return true
	}
	for _, c := range pb.Children {
		if c.ShouldShow(filter) {
			return true
		}
	}
	return false
}

// NeedsRebuild implements [Parent.NeedsRebuild] by comparing the runtime types.
func (pb *ParentBase) NeedsRebuild(old, new reflect.Value) bool {
	return reflectx.RuntimeType(old) != reflectx.RuntimeType(new)
}

// sync reacts to a change of the cached value: the children are rebuilt
// if their shape changed, and otherwise receive their new values.
func (pb *ParentBase) sync(old reflect.Value, immediate bool) {
	if pb.BuildState != MembersBuilt {
		return
	}
	if pb.This.(Parent).NeedsRebuild(old, pb.value) {
		if immediate {
			pb.Rebuild()
		} else {
			pb.RequestRebuild()
		}
		return
	}
	pb.pushToChildren(immediate)
}

// pushToChildren gives each child its sub-value of the cached value, by position.
// Children that hold references read them from the source instead, since the
// cached value only has copies of them.
func (pb *ParentBase) pushToChildren(immediate bool) {
	for _, c := range pb.Children {
		cb := c.AsBase()
		cm := cb.Member
		if cm == nil || cb.byReference {
			continue
		}
		var sub reflect.Value
		switch {
		case cm == pb.Member:
			sub = pb.value
		case cm.Parent == pb.Member && !cm.Static && cm.Kind() != reflection.Method:
			v, err := cm.Member.Get(pb.value)
			if err != nil {
				continue
			}
			sub = v
		default:
			continue
		}
		old, changed := cb.store(sub, cb.mixed)
		if changed {
			cb.afterStore(old, immediate)
		}
	}
}

// OnMemberValueChanged implements [Parent.OnMemberValueChanged]. It applies
// the value of the child into the cached value, and notifies its own parent.
func (pb *ParentBase) OnMemberValueChanged(index int, v reflect.Value) {
	if index < 0 || index >= len(pb.Children) {
		slog.Debug("drawers: member value changed for unknown child", "path", pb.Member.Path(), "index", index)
		return
	}
	cm := pb.Children[index].AsBase().Member
	old := pb.value
	switch {
	case cm == nil:
	case cm == pb.Member:
		pb.value = pb.snapshot(v)
	case cm.Parent == pb.Member && !cm.Static && pb.hasValue && !reflectx.IsNil(pb.value):
		if err := cm.Member.Set(pb.value, v); err != nil {
			slog.Debug("drawers: could not apply member value", "path", cm.Path(), "err", err)
		}
	}
	pb.dirty = true
	if pb.This.(Parent).NeedsRebuild(old, pb.value) {
		pb.RequestRebuild()
	}
	if pb.Parent != nil {
		pb.Parent.OnMemberValueChanged(pb.Index, pb.value)
	}
}

// Height implements [Drawer.Height]: the header row plus the visible children.
func (pb *ParentBase) Height() float32 {
	h := pb.Inspector.rowHeight()
	if pb.Folded || pb.stale {
		return h
	}
	for _, c := range pb.visible {
		h += c.Height()
	}
	return h
}

// Draw implements [Drawer.Draw]: the header row, then the visible children
// stacked and indented below it.
func (pb *ParentBase) Draw(b Bounds, p Painter) {
	header, body := b.SplitRow(pb.Inspector.rowHeight())
	p.Indent(header, pb.Depth())
	fw := pb.Inspector.indentWidth()
	p.Fold(Bounds{X: header.X, Y: header.Y, Width: fw, Height: header.Height}, !pb.Folded)
	lb, vb := header.Indent(fw).SplitColumn(labelFraction)
	p.Label(lb, pb.Label)
	if hp, ok := pb.This.(headerPainter); ok {
		hp.drawHeader(vb, p)
	} else {
		p.Value(vb, pb.This.ValueText(), pb.valueState())
	}
	if pb.Folded || pb.stale {
		return
	}
	body = body.Indent(fw)
	for _, c := range pb.visible {
		var row Bounds
		row, body = body.SplitRow(c.Height())
		if _, ok := c.(Parent); !ok {
			p.Indent(row, c.AsBase().Depth())
		}
		c.Draw(row, p)
	}
}

// headerPainter is implemented by parent drawers that paint
// something other than their value text in the header row.
type headerPainter interface {
	drawHeader(b Bounds, p Painter)
}

// HandleInput implements [Drawer.HandleInput], adding fold toggling.
func (pb *ParentBase) HandleInput(e InputEvent) bool {
	if e.Kind == ToggleFold {
		pb.SetFolded(!pb.Folded)
		return true
	}
	return pb.Base.HandleInput(e)
}

// ValueText implements [Drawer.ValueText] with the friendly name of the runtime type.
func (pb *ParentBase) ValueText() string {
	switch {
	case pb.mixed:
		return MixedText
	case pb.stale:
		return "Missing"
	case reflectx.IsNil(pb.value):
		return "None"
	}
	return typeLabel(reflectx.RuntimeType(pb.value))
}

// WalkDown calls the given function on the given drawer and all of its
// descendants in depth-first order, with their depth relative to d.
// If the function returns false, the children of that drawer are skipped.
func WalkDown(d Drawer, fun func(d Drawer, depth int) bool) {
	walkDown(d, 0, fun)
}

func walkDown(d Drawer, depth int, fun func(d Drawer, depth int) bool) {
	if !fun(d, depth) {
		return
	}
	p, ok := d.(Parent)
	if !ok {
		return
	}
	for _, c := range p.AsParent().Children {
		walkDown(c, depth+1, fun)
	}
}
