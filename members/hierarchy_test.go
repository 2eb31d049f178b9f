// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package members

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/inspector/reflection"
	"cogentcore.org/inspector/types"
)

type point struct {
	X, Y float32
}

type node struct {
	id        int64
	destroyed bool
}

func (n *node) InstanceID() int64 { return n.id }
func (n *node) Destroyed() bool   { return n.destroyed }

type scene struct {
	Name    string
	Origin  point
	Points  []point
	Anchors map[string]point
	Shape   any
	Owner   *node
}

func (s *scene) Translate(dx float32) int {
	for i := range s.Points {
		s.Points[i].X += dx
	}
	return len(s.Points)
}

func newHierarchy() *Hierarchy {
	reg := types.NewRegistry()
	types.For[*scene](reg, types.WithMethod("Translate"))
	return New(reflection.NewGoProvider(reg))
}

func member(t *testing.T, h *Hierarchy, typ reflect.Type, name string) reflection.Member {
	ms, err := h.Provider().Members(typ)
	require.NoError(t, err)
	for _, m := range ms {
		if m.Name() == name {
			return m
		}
	}
	t.Fatalf("no member %q", name)
	return nil
}

func TestGetIdentity(t *testing.T) {
	h := newHierarchy()
	s := &scene{Name: "a"}
	h.SetTargets(s)
	root := h.Root()
	require.NotNil(t, root)
	assert.True(t, root.IsRoot())

	name := member(t, h, root.Type, "Name")
	a := h.Get(root, name, -1)
	b := h.Get(root, name, -1)
	assert.Same(t, a, b)
	assert.Equal(t, 1, h.Len())

	origin := h.Get(root, member(t, h, root.Type, "Origin"), -1)
	assert.NotEqual(t, a.ID, origin.ID)
	x := h.Get(origin, member(t, h, origin.Type, "X"), -1)
	assert.Equal(t, "Origin.X", x.Path())
	assert.Equal(t, "X", x.Label())
}

func TestSetTargetsClears(t *testing.T) {
	h := newHierarchy()
	h.SetTargets(&scene{})
	root := h.Root()
	name := h.Get(root, member(t, h, root.Type, "Name"), -1)
	require.NoError(t, name.Valid())

	h.SetTargets(&scene{})
	assert.Equal(t, 0, h.Len())
	assert.ErrorIs(t, name.Valid(), ErrStaleReference)
	assert.NotSame(t, root, h.Root())
	again := h.Get(h.Root(), member(t, h, root.Type, "Name"), -1)
	assert.NotSame(t, name, again)
	assert.Greater(t, again.ID, name.ID)

	h.SetTargets(&scene{}, &point{})
	assert.Len(t, h.Targets(), 1)
	h.SetTargets()
	assert.Nil(t, h.Root())
}

func TestValuesAndMixed(t *testing.T) {
	h := newHierarchy()
	s1, s2 := &scene{Name: "a"}, &scene{Name: "a"}
	h.SetTargets(s1, s2)
	root := h.Root()
	name := h.Get(root, member(t, h, root.Type, "Name"), -1)
	vs, err := name.Values()
	require.NoError(t, err)
	assert.Len(t, vs, 2)
	assert.False(t, name.IsMixed())

	s2.Name = "b"
	assert.True(t, name.IsMixed())

	require.NoError(t, name.SetValue(reflect.ValueOf("c")))
	assert.Equal(t, "c", s1.Name)
	assert.Equal(t, "c", s2.Name)
	assert.False(t, name.IsMixed())
}

func TestSetValueWriteBack(t *testing.T) {
	h := newHierarchy()
	s := &scene{
		Points:  []point{{1, 2}},
		Anchors: map[string]point{"top": {3, 4}},
		Shape:   point{5, 6},
	}
	h.SetTargets(s)
	root := h.Root()
	gp := h.Provider()

	points := h.Get(root, member(t, h, root.Type, "Points"), -1)
	p0 := h.Get(points, gp.Element(points.Type, 0), 0)
	px := h.Get(p0, member(t, h, p0.Type, "X"), -1)
	assert.Equal(t, "Points[0].X", px.Path())
	require.NoError(t, px.SetValue(reflect.ValueOf(float32(9))))
	assert.Equal(t, float32(9), s.Points[0].X)

	anchors := h.Get(root, member(t, h, root.Type, "Anchors"), -1)
	top := h.Get(anchors, gp.MapEntry(anchors.Type, reflect.ValueOf("top")), -1)
	ty := h.Get(top, member(t, h, top.Type, "Y"), -1)
	assert.Equal(t, "Anchors[top].Y", ty.Path())
	require.NoError(t, ty.SetValue(reflect.ValueOf(float32(7))))
	assert.Equal(t, point{3, 7}, s.Anchors["top"])

	shape := h.Get(root, member(t, h, root.Type, "Shape"), -1)
	sx := h.Get(shape, member(t, h, reflect.TypeFor[point](), "X"), -1)
	require.NoError(t, sx.SetValue(reflect.ValueOf(float32(8))))
	assert.Equal(t, point{8, 6}, s.Shape)
}

func TestStaleHostObject(t *testing.T) {
	h := newHierarchy()
	n := &node{id: 1}
	h.SetTargets(n)
	root := h.Root()
	require.NoError(t, root.Valid())
	n.destroyed = true
	assert.ErrorIs(t, root.Valid(), ErrStaleReference)
}

func TestMethodInvocationPersists(t *testing.T) {
	h := newHierarchy()
	s := &scene{Points: []point{{1, 1}, {2, 2}}}
	h.SetTargets(s)
	root := h.Root()
	gp := h.Provider()
	ms := gp.Methods(root.Type)
	require.Len(t, ms, 1)
	tr := h.Get(root, ms[0], -1)
	arg := h.Get(tr, gp.Parameters(ms[0])[0], -1)
	require.NoError(t, arg.SetValue(reflect.ValueOf(float32(2))))

	v, err := arg.Value()
	require.NoError(t, err)
	assert.Equal(t, float32(2), v.Interface())

	iv, err := tr.Value()
	require.NoError(t, err)
	out, err := iv.Interface().(*reflection.Invocation).Call()
	require.NoError(t, err)
	assert.Equal(t, 2, out[0].Interface())
	assert.Equal(t, float32(3), s.Points[0].X)
}

func TestEqual(t *testing.T) {
	n1, n2 := &node{id: 1}, &node{id: 1}
	assert.True(t, Equal(reflect.ValueOf(n1), reflect.ValueOf(n1)))
	assert.False(t, Equal(reflect.ValueOf(n1), reflect.ValueOf(n2)))
	assert.True(t, Equal(reflect.ValueOf(point{1, 2}), reflect.ValueOf(point{1, 2})))
	assert.False(t, Equal(reflect.ValueOf(1), reflect.ValueOf(int64(1))))
	assert.True(t, Equal(reflect.Value{}, reflect.Value{}))

	type handler struct {
		Name string
		On   func()
		Tags []string
	}
	fn := func() {}
	h1, h2 := handler{Name: "a", On: fn}, handler{Name: "a", On: fn}
	assert.True(t, Equal(reflect.ValueOf(h1), reflect.ValueOf(h2)))
	h2.On = func() {}
	assert.False(t, Equal(reflect.ValueOf(h1), reflect.ValueOf(h2)))
	h2.On, h2.Tags = fn, []string{}
	assert.False(t, Equal(reflect.ValueOf(h1), reflect.ValueOf(h2)))
}
