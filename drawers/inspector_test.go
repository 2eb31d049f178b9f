// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/config"
	"cogentcore.org/inspector/enums"
	"cogentcore.org/inspector/reflection"
	"cogentcore.org/inspector/types"
)

type shape interface {
	Area() float32
}

type square struct {
	Side float32
}

func (s *square) Area() float32      { return s.Side * s.Side }
func (s *square) Perimeter() float32 { return 4 * s.Side }

type circle struct {
	Radius float32
}

func (c *circle) Area() float32 { return 3 * c.Radius * c.Radius }

type sprite struct {
	Name      string
	id        int64
	destroyed bool
}

func (s *sprite) InstanceID() int64 { return s.id }
func (s *sprite) Destroyed() bool   { return s.destroyed }
func (s *sprite) Area() float32     { return 1 }

type hostList []*sprite

func (hl hostList) Objects(typ reflect.Type) []reflection.HostObject {
	res := make([]reflection.HostObject, len(hl))
	for i, s := range hl {
		res[i] = s
	}
	return res
}

type vec struct {
	X, Y float32
}

type mode int32

const (
	modeFill mode = iota
	modeLine
	modePoint
)

var modeNames = []string{"fill", "line", "point"}

func (m mode) String() string       { return modeNames[m] }
func (m mode) Int64() int64         { return int64(m) }
func (m mode) Values() []enums.Enum { return []enums.Enum{modeFill, modeLine, modePoint} }

func (m *mode) SetInt64(i int64)         { *m = mode(i) }
func (m *mode) SetString(s string) error { return enums.SetStringFromValues(m, s) }

type scene struct {
	Title   string
	Count   int
	Visible bool
	Mode    mode
	ID      int `edit:"-"`
	Shape   shape
	Tags    []string
	Sizes   map[string]int
	Target  *sprite
	Origin  *vec
	OnDone  func()
}

func (s *scene) Scale(factor int) int {
	s.Count *= factor
	return s.Count
}

type gadget interface {
	Use()
}

type lamp struct {
	Watts int
}

func (l *lamp) Use() {}

type broken struct{}

func (b *broken) Use() {}

type workshop struct {
	Gadget gadget
}

type link struct {
	Name string
	Next *link
}

func newTestRegistry() *types.Registry {
	reg := types.NewRegistry()
	types.For[*square](reg)
	types.For[*circle](reg)
	types.For[*sprite](reg)
	types.For[*lamp](reg)
	types.For[*broken](reg, types.WithNew(func() (any, error) {
		return nil, errors.New("no broken gadgets")
	}))
	types.For[*scene](reg, types.WithMethod("Scale"))
	return reg
}

func newTestInspector() *Inspector {
	return New(nil, newTestRegistry())
}

// find returns the drawer for the given path as a T.
func find[T Drawer](t *testing.T, in *Inspector, path string) T {
	t.Helper()
	d := in.FindPath(path)
	require.NotNil(t, d, "no drawer for %q", path)
	res, ok := d.(T)
	require.True(t, ok, "drawer for %q is a %T", path, d)
	return res
}

// childTypes returns the drawer type names of the children of the given parent.
func childTypes(p Parent) []string {
	var res []string
	for _, c := range p.AsParent().Children {
		res = append(res, c.AsBase().DrawerType.Name)
	}
	return res
}

// recorder is a [Painter] that records what is painted.
type recorder struct {
	painted []string

	// onPaint is called before anything is painted.
	onPaint func()
}

func (r *recorder) paint(kind, text string) {
	if r.onPaint != nil {
		r.onPaint()
	}
	r.painted = append(r.painted, kind+":"+text)
}

func (r *recorder) Indent(b Bounds, depth int)   {}
func (r *recorder) Fold(b Bounds, open bool)     { r.paint("fold", strconv.FormatBool(open)) }
func (r *recorder) Label(b Bounds, text string)  { r.paint("label", text) }
func (r *recorder) Button(b Bounds, text string) { r.paint("button", text) }

func (r *recorder) Value(b Bounds, text string, state ValueState) {
	r.paint("value", text)
}

func (r *recorder) Toggle(b Bounds, text string, on bool) {
	r.paint("toggle", text)
}

func TestSetTargets(t *testing.T) {
	in := newTestInspector()
	assert.Nil(t, in.Root())
	in.SetTargets(&scene{Title: "stage"})
	root, ok := in.Root().(*Struct)
	require.True(t, ok, "root is a %T", in.Root())
	assert.Equal(t, []string{"text", "number", "bool", "enum", "number", "polymorphic", "collection", "map", "reference", "polymorphic", "func", "method"}, childTypes(root))
	assert.Equal(t, "stage", find[*Text](t, in, "Title").ValueText())
	assert.True(t, find[*Number](t, in, "ID").ReadOnly)
	for i, c := range root.Children {
		assert.Equal(t, i, c.AsBase().Index)
		assert.Same(t, root, c.AsBase().Parent)
	}

	in.SetTargets()
	assert.Nil(t, in.Root())
	assert.False(t, root.IsActive())
}

func TestCycleStable(t *testing.T) {
	in := newTestInspector()
	sc := &scene{Title: "stage", Shape: &square{Side: 1}, Tags: []string{"a", "b"}}
	in.SetTargets(sc)
	in.Cycle(nil)
	root := in.Root().(*Struct)
	children := append([]Drawer(nil), root.Children...)
	visible := append([]Drawer(nil), root.Visible()...)
	rebuilds := root.Rebuilds()

	for range 3 {
		in.Cycle(nil)
	}
	assert.Equal(t, children, root.Children)
	assert.Equal(t, visible, root.Visible())
	assert.Equal(t, rebuilds, root.Rebuilds())
	assert.Equal(t, 4, in.Cycles())

	root.UpdateVisibleMembers()
	root.UpdateVisibleMembers()
	assert.Equal(t, visible, root.Visible())
}

func TestDeferredRunsBeforeNextDraw(t *testing.T) {
	in := newTestInspector()
	in.SetTargets(&scene{})
	ran := false
	r := &recorder{}
	r.onPaint = func() {
		if r.painted == nil {
			in.Defer(func() { ran = true })
		}
	}
	in.Cycle(r)
	assert.NotEmpty(t, r.painted)
	assert.False(t, ran)

	var ranAtFirstPaint *bool
	r.painted = nil
	r.onPaint = func() {
		if ranAtFirstPaint == nil {
			v := ran
			ranAtFirstPaint = &v
		}
	}
	in.Cycle(r)
	require.NotNil(t, ranAtFirstPaint)
	assert.True(t, *ranAtFirstPaint)
}

func TestInputDuringCycleIsDeferred(t *testing.T) {
	in := newTestInspector()
	sc := &scene{Count: 1}
	in.SetTargets(sc)
	r := &recorder{}
	r.onPaint = func() {
		r.onPaint = nil
		assert.True(t, in.HandleInput("Count", InputEvent{Kind: Submit, Text: "7"}))
	}
	in.Cycle(r)
	assert.Equal(t, 1, sc.Count)
	in.Cycle(nil)
	assert.Equal(t, 7, sc.Count)
}

func TestDraw(t *testing.T) {
	in := newTestInspector()
	in.SetTargets(&scene{Title: "stage", Count: 3})
	r := &recorder{}
	in.Cycle(r)
	assert.Contains(t, r.painted, "label:Title")
	assert.Contains(t, r.painted, "value:stage")
	assert.Contains(t, r.painted, "value:3")
	assert.Contains(t, r.painted, "button:Scale")
	assert.Contains(t, r.painted, "toggle:false")
	assert.Equal(t, float32(14), in.Height())
}

func TestFilter(t *testing.T) {
	in := newTestInspector()
	in.SetTargets(&scene{Shape: &circle{Radius: 1}})
	in.Cycle(nil)
	root := in.Root().(*Struct)

	in.SetFilter("count")
	require.Len(t, root.Visible(), 1)
	assert.Equal(t, "Count", root.Visible()[0].AsBase().Label)

	in.SetFilter("cuont")
	assert.Contains(t, root.Visible(), in.FindPath("Count"))
	assert.NotContains(t, root.Visible(), in.FindPath("Title"))

	in.SetFilter("radius")
	assert.Equal(t, []Drawer{in.FindPath("Shape")}, root.Visible())

	in.SetFilter("")
	assert.Len(t, root.Visible(), len(root.Children))
}

func TestSetValuePropagatesUp(t *testing.T) {
	in := newTestInspector()
	sc := &scene{Shape: &square{Side: 1}}
	in.SetTargets(sc)
	in.Cycle(nil)
	root := in.Root().AsBase()
	root.ClearDirty()
	pm := find[*Polymorphic](t, in, "Shape")
	rebuilds := pm.Rebuilds()

	require.NoError(t, find[*Number](t, in, "Shape.Side").SetValueFromString("4"))
	assert.Equal(t, float32(4), sc.Shape.(*square).Side)
	assert.Equal(t, float32(4), pm.Value().Interface().(*square).Side)
	assert.True(t, root.IsDirty())

	in.Cycle(nil)
	assert.Equal(t, rebuilds, pm.Rebuilds())
}

func TestPoolReuse(t *testing.T) {
	in := newTestInspector()
	first := map[Drawer]bool{}
	var acquired []Drawer
	for range 3 {
		d := in.acquire(TextType)
		d.AsBase().Label = "used"
		first[d] = true
		acquired = append(acquired, d)
	}
	for _, d := range acquired {
		in.release(d)
		assert.False(t, d.AsBase().IsActive())
	}
	for range 3 {
		d := in.acquire(TextType)
		assert.True(t, first[d])
		delete(first, d)
		assert.Empty(t, d.AsBase().Label)
		assert.Equal(t, uint64(2), d.AsBase().Lease())
		assert.True(t, d.AsBase().IsActive())
	}
	assert.Equal(t, 3, in.Pool.Stats(TextType.Type).Reuses)
}

func TestRetargetReusesDrawers(t *testing.T) {
	in := newTestInspector()
	in.SetTargets(&scene{Title: "a"})
	old := in.Root()
	in.SetTargets(&scene{Title: "b"})
	assert.Same(t, old, in.Root())
	assert.Equal(t, "b", find[*Text](t, in, "Title").ValueText())
	assert.Positive(t, in.Pool.Stats(TextType.Type).Reuses)
}

func TestNextLayoutSkipsReleased(t *testing.T) {
	in := newTestInspector()
	in.SetTargets(&scene{})
	ran := false
	find[*Text](t, in, "Title").OnNextLayout(func() { ran = true })
	in.SetTargets(&scene{})
	in.Cycle(nil)
	assert.False(t, ran)
}

func TestDestroyedReferenceIsMissing(t *testing.T) {
	in := newTestInspector()
	sp := &sprite{Name: "hero", id: 3}
	in.Hosts = hostList{sp}
	in.SetTargets(&scene{Target: sp})
	in.Cycle(nil)
	rf := find[*Reference](t, in, "Target")
	assert.Equal(t, "Sprite #3", rf.ValueText())
	assert.Len(t, rf.Candidates(), 1)

	sp.destroyed = true
	in.Cycle(nil)
	assert.Equal(t, "Missing", rf.ValueText())
	assert.Empty(t, rf.Candidates())
}

func TestDestroyedTargetIsPruned(t *testing.T) {
	in := newTestInspector()
	a, b := &sprite{Name: "a", id: 1}, &sprite{Name: "b", id: 2}
	in.SetTargets(a, b)
	in.Cycle(nil)
	assert.Equal(t, "(mixed)", find[*Text](t, in, "Name").ValueText())

	a.destroyed = true
	in.Cycle(nil)
	assert.True(t, in.Root().AsBase().IsStale())

	in.Cycle(nil)
	require.NotNil(t, in.Root())
	assert.False(t, in.Root().AsBase().IsStale())
	assert.Len(t, in.Hierarchy.Targets(), 1)
	assert.Equal(t, "b", find[*Text](t, in, "Name").ValueText())
}

func TestMaxDepth(t *testing.T) {
	settings := config.Default()
	settings.MaxDepth = 6
	in := New(settings, newTestRegistry())
	l := &link{Name: "loop"}
	l.Next = l
	in.SetTargets(l)
	in.Cycle(nil)
	deepest := 0
	in.Walk(func(d Drawer, depth int) bool {
		deepest = max(deepest, depth)
		return true
	})
	assert.Equal(t, 6, deepest)
	assert.Equal(t, "loop", find[*Text](t, in, "Next.Next.Name").ValueText())
}

func TestClose(t *testing.T) {
	in := newTestInspector()
	in.SetTargets(&scene{})
	root := in.Root()
	in.Defer(func() { t.Error("deferred function ran after close") })
	in.Close()
	assert.Nil(t, in.Root())
	assert.False(t, root.AsBase().IsActive())
	in.Cycle(nil)
}
