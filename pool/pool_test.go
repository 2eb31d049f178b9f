// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item interface {
	Resetter
	state() string
}

type widget struct {
	value    string
	children []int
	resets   int
}

func (w *widget) ResetPooled() {
	w.value = ""
	w.children = nil
	w.resets++
}

func (w *widget) state() string { return w.value }

type gadget struct{ on bool }

func (g *gadget) ResetPooled()  { g.on = false }
func (g *gadget) state() string { return "" }

var widgetType = reflect.TypeFor[*widget]()

func acquireWidget(p *Pool[item]) *widget {
	if v, ok := p.Acquire(widgetType); ok {
		return v.(*widget)
	}
	return &widget{}
}

func TestAcquireEmpty(t *testing.T) {
	p := New[item](0)
	v, ok := p.Acquire(widgetType)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 1, p.Stats(widgetType).Acquires)
}

func TestReuseSameInstances(t *testing.T) {
	p := New[item](0)
	first := map[*widget]bool{}
	var ws []*widget
	for i := range 3 {
		w := acquireWidget(p)
		w.value = "lease"
		w.children = []int{i}
		first[w] = true
		ws = append(ws, w)
	}
	for _, w := range ws {
		require.NoError(t, p.Release(w))
	}
	assert.Equal(t, 3, p.Len(widgetType))

	for range 3 {
		w := acquireWidget(p)
		assert.True(t, first[w], "expected a pooled instance")
		assert.Empty(t, w.value)
		assert.Nil(t, w.children)
		assert.Equal(t, 1, w.resets)
		delete(first, w)
	}
	assert.Empty(t, first)
	st := p.Stats(widgetType)
	assert.Equal(t, 6, st.Acquires)
	assert.Equal(t, 3, st.Reuses)
	assert.Equal(t, 3, st.Releases)
	assert.Equal(t, 0, st.Free)
}

func TestExactType(t *testing.T) {
	p := New[item](0)
	require.NoError(t, p.Release(&gadget{on: true}))
	_, ok := p.Acquire(widgetType)
	assert.False(t, ok)
	g, ok := p.Acquire(reflect.TypeFor[*gadget]())
	require.True(t, ok)
	assert.False(t, g.(*gadget).on)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[*gadget](), widgetType}, p.Types())
}

func TestLIFO(t *testing.T) {
	p := New[item](0)
	a, b := &widget{}, &widget{}
	require.NoError(t, p.Release(a))
	require.NoError(t, p.Release(b))
	v, _ := p.Acquire(widgetType)
	assert.Same(t, b, v)
}

func TestDoubleRelease(t *testing.T) {
	p := New[item](0)
	w := &widget{}
	require.NoError(t, p.Release(w))
	assert.True(t, p.IsPooled(w))
	assert.ErrorIs(t, p.Release(w), ErrDoubleRelease)
	assert.Equal(t, 1, p.Len(widgetType))

	acquireWidget(p)
	assert.False(t, p.IsPooled(w))
	assert.NoError(t, p.Release(w))
}

func TestMaxPerType(t *testing.T) {
	p := New[item](2)
	for range 3 {
		require.NoError(t, p.Release(&widget{}))
	}
	assert.Equal(t, 2, p.Len(widgetType))
	assert.Equal(t, 1, p.Stats(widgetType).Dropped)

	p.Clear()
	assert.Equal(t, 0, p.Len(widgetType))
	assert.Equal(t, 3, p.Stats(widgetType).Releases)
}
