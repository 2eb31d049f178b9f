// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/inspector/config"
)

func TestCollectionResize(t *testing.T) {
	in := newTestInspector()
	a, b := &scene{}, &scene{}
	in.SetTargets(a, b)
	cl := find[*Collection](t, in, "Tags")
	assert.Equal(t, "Texts (0)", cl.ValueText())

	require.NoError(t, cl.Resize(2))
	assert.Equal(t, []string{"", ""}, a.Tags)
	assert.Equal(t, []string{"", ""}, b.Tags)
	assert.NotEqual(t, reflect.ValueOf(a.Tags).Pointer(), reflect.ValueOf(b.Tags).Pointer())
	assert.Equal(t, []string{"text", "text"}, childTypes(cl))
	assert.Equal(t, "Texts (2)", cl.ValueText())

	require.NoError(t, find[*Text](t, in, "Tags[1]").SetValueFromString("b"))
	assert.Equal(t, "b", a.Tags[1])
	assert.Equal(t, "b", b.Tags[1])
	a.Tags[0] = "x"
	assert.Empty(t, b.Tags[0])

	in.Cycle(nil)
	assert.True(t, cl.IsMixed())
	assert.True(t, find[*Text](t, in, "Tags[0]").IsMixed())
	assert.False(t, find[*Text](t, in, "Tags[1]").IsMixed())

	require.NoError(t, cl.RemoveAt(0))
	assert.Equal(t, []string{"b"}, a.Tags)
	assert.Equal(t, []string{"b"}, b.Tags)
	assert.Len(t, cl.Children, 1)
	assert.ErrorIs(t, cl.RemoveAt(3), ErrOutOfRange)

	assert.True(t, in.HandleInput("Tags", InputEvent{Kind: Resize, Index: 3}))
	assert.Len(t, a.Tags, 3)
	assert.Len(t, cl.Children, 3)
	assert.True(t, in.HandleInput("Tags", InputEvent{Kind: Remove, Index: 2}))
	assert.Len(t, b.Tags, 2)
}

func TestCollectionExternalChange(t *testing.T) {
	in := newTestInspector()
	sc := &scene{Tags: []string{"a"}}
	in.SetTargets(sc)
	cl := find[*Collection](t, in, "Tags")
	n := cl.Rebuilds()

	sc.Tags[0] = "z"
	in.Cycle(nil)
	assert.Equal(t, n, cl.Rebuilds())
	assert.Equal(t, "z", find[*Text](t, in, "Tags[0]").ValueText())

	sc.Tags = append(sc.Tags, "b", "c")
	in.Cycle(nil)
	assert.Equal(t, n+1, cl.Rebuilds())
	assert.Equal(t, "c", find[*Text](t, in, "Tags[2]").ValueText())
}

type grid struct {
	Cells [4]int
	Rows  []int
}

func TestCollectionFolding(t *testing.T) {
	settings := config.Default()
	settings.InlineCollectionLength = 3
	in := New(settings, newTestRegistry())
	g := &grid{Rows: []int{1, 2}}
	in.SetTargets(g)
	in.Cycle(nil)

	cells := find[*Collection](t, in, "Cells")
	assert.True(t, cells.Folded)
	assert.Len(t, cells.Children, 4)
	assert.Empty(t, cells.Visible())
	assert.ErrorIs(t, cells.Resize(2), ErrNotSettable)

	rows := find[*Collection](t, in, "Rows")
	assert.False(t, rows.Folded)
	assert.Len(t, rows.Visible(), 2)

	assert.True(t, in.HandleInput("Cells", InputEvent{Kind: ToggleFold}))
	assert.Len(t, cells.Visible(), 4)
	require.NoError(t, find[*Number](t, in, "Cells[3]").SetValueFromString("9"))
	assert.Equal(t, 9, g.Cells[3])
}

func TestMapAddDeleteKey(t *testing.T) {
	in := newTestInspector()
	a, b := &scene{}, &scene{}
	in.SetTargets(a, b)
	mp := find[*Map](t, in, "Sizes")

	require.NoError(t, mp.AddKey("wide"))
	assert.Equal(t, map[string]int{"wide": 0}, a.Sizes)
	assert.Equal(t, map[string]int{"wide": 0}, b.Sizes)
	assert.NotEqual(t, reflect.ValueOf(a.Sizes).Pointer(), reflect.ValueOf(b.Sizes).Pointer())
	assert.Equal(t, []string{"number"}, childTypes(mp))

	require.NoError(t, find[*Number](t, in, "Sizes[wide]").SetValueFromString("3"))
	assert.Equal(t, 3, a.Sizes["wide"])
	assert.Equal(t, 3, b.Sizes["wide"])

	require.NoError(t, mp.AddKey("wide"))
	assert.Equal(t, 3, a.Sizes["wide"])

	assert.True(t, in.HandleInput("Sizes", InputEvent{Kind: Submit, Text: "tall"}))
	assert.Len(t, mp.Children, 2)
	assert.Equal(t, "Sizes[tall]", mp.Children[0].AsBase().Member.Path())

	assert.True(t, in.HandleInput("Sizes", InputEvent{Kind: Remove, Index: 1}))
	assert.Equal(t, map[string]int{"tall": 0}, a.Sizes)
	assert.Equal(t, map[string]int{"tall": 0}, b.Sizes)
	assert.False(t, in.HandleInput("Sizes", InputEvent{Kind: Remove, Index: 5}))
}

type ledger struct {
	Totals map[int]float64
}

func TestMapKeys(t *testing.T) {
	in := newTestInspector()
	l := &ledger{Totals: map[int]float64{10: 1, 2: 2, 33: 3}}
	in.SetTargets(l)
	mp := find[*Map](t, in, "Totals")
	assert.Equal(t, 3, mp.Len())

	var keys []int
	for _, k := range SortedKeys(mp.Value()) {
		keys = append(keys, int(k.Int()))
	}
	assert.Equal(t, []int{2, 10, 33}, keys)
	assert.Equal(t, "Totals[2]", mp.Children[0].AsBase().Member.Path())

	assert.ErrorIs(t, mp.AddKey("two"), ErrTypeMismatch)
	require.NoError(t, mp.DeleteKey(reflect.ValueOf(10)))
	assert.Equal(t, map[int]float64{2: 2, 33: 3}, l.Totals)
	assert.Len(t, mp.Children, 2)

	l.Totals[4] = 4
	in.Cycle(nil)
	assert.Len(t, mp.Children, 3)
	assert.Equal(t, "4", find[*Number](t, in, "Totals[4]").ValueText())
}
