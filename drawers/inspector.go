// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"log/slog"

	"cogentcore.org/inspector/base/fifo"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/clipboard"
	"cogentcore.org/inspector/config"
	"cogentcore.org/inspector/members"
	"cogentcore.org/inspector/pool"
	"cogentcore.org/inspector/reflection"
	"cogentcore.org/inspector/types"
)

// Inspector is one inspector session: it owns the drawer tree for a set
// of targets, and all of the state that the tree shares, which is the
// drawer pool, the member path cache and the deferred callback queue.
// Independent inspectors do not share any state.
//
// An Inspector is driven by calling [Inspector.Cycle] once per redraw.
// It is not safe for concurrent use.
type Inspector struct {

	// Settings are the settings of the session.
	Settings *config.Settings

	// Types is the registry of candidate types and constructors.
	Types *types.Registry

	// Provider is the reflection capability.
	Provider reflection.Provider

	// Registry resolves the drawer types of values.
	Registry *Registry

	// Defaults makes the default values of selected types.
	Defaults DefaultValueProvider

	// Pool holds the released drawers for reuse.
	Pool *pool.Pool[Drawer]

	// Hierarchy is the member path cache of the targets.
	Hierarchy *members.Hierarchy

	// Clipboard is the clipboard for copying and pasting values.
	Clipboard clipboard.Clipboard

	// Hosts lists the host objects for reference pickers, if any.
	Hosts HostSource

	// Filter is the current filter text for member labels.
	Filter string

	root       Drawer
	deferred   fifo.Queue
	traversing int
	cycles     int
}

// New returns a new [Inspector] with the given settings, which
// may be nil for the defaults, and the given type registry, which
// may be nil for [types.Default].
func New(settings *config.Settings, reg *types.Registry) *Inspector {
	if settings == nil {
		settings = config.Default()
	}
	if reg == nil {
		reg = types.Default
	}
	gp := reflection.NewGoProvider(reg)
	in := &Inspector{
		Settings:  settings,
		Types:     reg,
		Provider:  gp,
		Registry:  NewRegistry(gp),
		Defaults:  &RegistryDefaults{Types: reg},
		Pool:      pool.New[Drawer](settings.MaxPooledPerType),
		Hierarchy: members.New(gp),
		Clipboard: &clipboard.Memory{},
	}
	return in
}

// Root returns the root drawer, or nil if there are no targets.
func (in *Inspector) Root() Drawer {
	return in.root
}

// Cycles returns the number of cycles run.
func (in *Inspector) Cycles() int {
	return in.cycles
}

// Traversing returns whether the drawer tree is being traversed by
// [Inspector.Cycle]. Structural changes requested while traversing
// are deferred to the next cycle.
func (in *Inspector) Traversing() bool {
	return in.traversing > 0
}

// Defer schedules the given function to run at the start of the next
// cycle, before anything is refreshed or drawn. Functions run in the
// order in which they were deferred.
func (in *Inspector) Defer(fun func()) {
	in.deferred.Push(fun)
}

// SetTargets sets the targets to inspect, which should be pointers of
// the same type, and builds a new drawer tree for them. Every existing
// drawer is released and every member path becomes stale. While
// traversing, this is deferred to the next cycle.
func (in *Inspector) SetTargets(targets ...any) {
	if in.Traversing() {
		in.Defer(func() { in.SetTargets(targets...) })
		return
	}
	if in.root != nil {
		in.release(in.root)
		in.root = nil
	}
	in.Hierarchy.SetTargets(targets...)
	rm := in.Hierarchy.Root()
	if rm == nil {
		return
	}
	dt := in.Registry.Resolve(reflectx.NonPointerType(rm.Type), rm.Type)
	d := in.acquire(dt)
	d.AsBase().setup(in, nil, &BuildItem{Key: "root", Member: rm, Type: dt})
	in.root = d
	in.activate(d)
	slog.Debug("drawers: set targets", "type", rm.Type, "targets", len(in.Hierarchy.Targets()), "drawer", dt.Name)
}

// pruneTargets drops the targets that have been destroyed and rebuilds
// the tree for the rest.
func (in *Inspector) pruneTargets() {
	var alive []any
	for _, t := range in.Hierarchy.Targets() {
		if !reflection.IsDestroyed(t) {
			alive = append(alive, t.Interface())
		}
	}
	slog.Info("drawers: pruning targets", "alive", len(alive), "targets", len(in.Hierarchy.Targets()))
	in.SetTargets(alive...)
}

// Cycle runs one cycle: it runs the deferred callbacks, refreshes every
// drawer from its source top-down, recomputes the visible subsets, and
// draws the tree with the given painter, which may be nil.
func (in *Inspector) Cycle(p Painter) {
	in.cycles++
	in.deferred.Drain()
	if in.root == nil {
		return
	}
	in.traversing++
	defer func() { in.traversing-- }()
	in.refresh()
	in.updateVisible()
	if p != nil {
		in.draw(p)
	}
}

// refresh refreshes every active drawer from its source, parents first.
// Parents rebuild their children as they drift, before the walk
// reaches them.
func (in *Inspector) refresh() {
	WalkDown(in.root, func(d Drawer, depth int) bool {
		b := d.AsBase()
		if !b.active {
			return false
		}
		d.RefreshFromSource()
		return b.active && !b.stale
	})
}

// updateVisible recomputes the visible subsets of all parent drawers.
func (in *Inspector) updateVisible() {
	WalkDown(in.root, func(d Drawer, depth int) bool {
		if p, ok := d.(Parent); ok {
			p.UpdateVisibleMembers()
		}
		return true
	})
}

func (in *Inspector) draw(p Painter) {
	w := float32(80)
	if in.Settings != nil && in.Settings.Width > 0 {
		w = in.Settings.Width
	}
	in.root.Draw(Bounds{Width: w, Height: in.root.Height()}, p)
}

// Height returns the height of the whole tree.
func (in *Inspector) Height() float32 {
	if in.root == nil {
		return 0
	}
	return in.root.Height()
}

// SetFilter sets the filter text and recomputes the visible subsets.
func (in *Inspector) SetFilter(filter string) {
	if in.Traversing() {
		in.Defer(func() { in.SetFilter(filter) })
		return
	}
	in.Filter = filter
	if in.root != nil {
		in.updateVisible()
	}
}

// Walk calls the given function on every drawer in depth-first order.
// If it returns false, the children of that drawer are skipped.
func (in *Inspector) Walk(fun func(d Drawer, depth int) bool) {
	if in.root == nil {
		return
	}
	WalkDown(in.root, fun)
}

// FindPath returns the drawer for the member path with the given
// [members.LinkedMemberInfo.Path], or nil. The root has the empty path.
// Drawers that share the member of their parent are not returned.
func (in *Inspector) FindPath(path string) Drawer {
	var res Drawer
	in.Walk(func(d Drawer, depth int) bool {
		if res != nil {
			return false
		}
		b := d.AsBase()
		if b.Member != nil && b.Member.Path() == path {
			if p := b.Parent; p == nil || p.AsBase().Member != b.Member {
				res = d
				return false
			}
		}
		return true
	})
	return res
}

// HandleInput delivers the given input event to the drawer for the given
// member path, and returns whether it was consumed. While traversing,
// delivery is deferred to the next cycle.
func (in *Inspector) HandleInput(path string, e InputEvent) bool {
	if in.Traversing() {
		in.Defer(func() { in.HandleInput(path, e) })
		return true
	}
	d := in.FindPath(path)
	if d == nil {
		slog.Debug("drawers: input for unknown path", "path", path, "kind", e.Kind)
		return false
	}
	return d.HandleInput(e)
}

// Close releases the drawer tree and drops the targets
// and all pending deferred callbacks.
func (in *Inspector) Close() {
	if in.root != nil {
		in.release(in.root)
		in.root = nil
	}
	in.Hierarchy.SetTargets()
	in.deferred.Clear()
}

// acquire returns a drawer of the given type from the pool, or a new one,
// with a new lease.
func (in *Inspector) acquire(dt *DrawerType) Drawer {
	d, ok := in.Pool.Acquire(dt.Type)
	if !ok {
		d = dt.New()
	}
	b := d.AsBase()
	if b.active {
		defect("acquired drawer %v is still active", b)
	}
	b.This = d
	b.DrawerType = dt
	b.lease++
	b.active = true
	return d
}

// activate runs the late setup of a drawer that has been set up, reads
// its value, and builds its children.
func (in *Inspector) activate(d Drawer) {
	d.LateSetup()
	d.RefreshFromSource()
	p, ok := d.(Parent)
	if !ok {
		return
	}
	pb := p.AsParent()
	if pb.BuildState == Unstarted && !pb.stale {
		pb.Rebuild()
	}
}

// release releases the given drawer and all of its descendants to the
// pool. The drawer must already be unlinked from its parent.
func (in *Inspector) release(d Drawer) {
	b := d.AsBase()
	if !b.active {
		defect("release of inactive drawer %v", b)
		return
	}
	if p, ok := d.(Parent); ok {
		pb := p.AsParent()
		children := pb.Children
		pb.Children = nil
		for _, c := range children {
			in.release(c)
		}
	}
	b.active = false
	if err := in.Pool.Release(d); err != nil {
		defect("%v", err)
	}
}

// provider returns the reflection capability, or nil.
func (in *Inspector) provider() reflection.Provider {
	if in == nil {
		return nil
	}
	return in.Provider
}

func (in *Inspector) rowHeight() float32 {
	if in == nil || in.Settings == nil || in.Settings.RowHeight <= 0 {
		return 1
	}
	return in.Settings.RowHeight
}

func (in *Inspector) indentWidth() float32 {
	if in == nil || in.Settings == nil {
		return 2
	}
	return in.Settings.IndentWidth
}

// maxDepth returns the depth at which parent drawers stop building children.
func (in *Inspector) maxDepth() int {
	if in == nil || in.Settings == nil || in.Settings.MaxDepth <= 0 {
		return 32
	}
	return in.Settings.MaxDepth
}
