// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspector/enums"
	"cogentcore.org/inspector/reflection"
	"cogentcore.org/inspector/types"
)

// Shape is implemented by the plain shapes and by [Actor]s.
type Shape interface {
	Area() float32
}

// Box is a plain data shape.
type Box struct {
	Width, Height float32
}

func (b *Box) Area() float32 { return b.Width * b.Height }

// Disc is a plain data shape.
type Disc struct {
	Radius float32 `default:"1"`
}

func (d *Disc) Area() float32 { return 3.14159 * d.Radius * d.Radius }

// Actor is a host object living in a [World].
type Actor struct {
	Name      string
	id        int64
	destroyed bool
}

func (a *Actor) InstanceID() int64 { return a.id }
func (a *Actor) Destroyed() bool   { return a.destroyed }
func (a *Actor) Area() float32     { return 0 }
func (a *Actor) String() string    { return a.Name }

// Blend is how a [Scene] is composited.
type Blend int32

const (
	BlendNormal Blend = iota
	BlendAdd
	BlendMultiply
)

var blendNames = []string{"Normal", "Add", "Multiply"}

func (b Blend) String() string       { return blendNames[b] }
func (b Blend) Int64() int64         { return int64(b) }
func (b Blend) Values() []enums.Enum { return []enums.Enum{BlendNormal, BlendAdd, BlendMultiply} }

func (b *Blend) SetInt64(i int64)         { *b = Blend(i) }
func (b *Blend) SetString(s string) error { return enums.SetStringFromValues(b, s) }

// Point is a position.
type Point struct {
	X, Y float32
}

// Scene is the demo target.
type Scene struct {
	Title    string
	Layer    int
	Visible  bool
	Blend    Blend
	Serial   int `edit:"-"`
	Shape    Shape
	Tags     []string
	Weights  map[string]float32
	Focus    *Actor
	Anchor   *Point
	Children []Point
}

// Grow scales the layer by the given factor and returns the new layer.
func (s *Scene) Grow(factor int) int {
	s.Layer *= factor
	return s.Layer
}

// World owns the [Actor]s and lists them for reference pickers.
type World struct {
	Actors []*Actor
}

// NewWorld returns a world with the given actors.
func NewWorld(names ...string) *World {
	w := &World{}
	for i, n := range names {
		w.Actors = append(w.Actors, &Actor{Name: n, id: int64(i + 1)})
	}
	return w
}

// Objects implements [drawers.HostSource].
func (w *World) Objects(typ reflect.Type) []reflection.HostObject {
	var res []reflection.HostObject
	for _, a := range w.Actors {
		if reflect.TypeOf(a).AssignableTo(typ) {
			res = append(res, a)
		}
	}
	return res
}

// registerTypes registers the demo types in the given registry.
func registerTypes(reg *types.Registry) {
	types.For[*Box](reg, types.WithDoc("a rectangle"))
	types.For[*Disc](reg, types.WithDoc("a circle"))
	types.For[*Actor](reg, types.WithNew(func() (any, error) {
		return nil, fmt.Errorf("actors are created by the world")
	}))
	types.For[*Scene](reg, types.WithMethod("Grow"))
}

// newScenes returns n scenes that differ only in their layer, so
// that inspecting more than one shows mixed values.
func newScenes(w *World, n int) []any {
	res := make([]any, n)
	for i := range res {
		res[i] = &Scene{
			Title:    "main",
			Layer:    i + 1,
			Visible:  true,
			Blend:    BlendAdd,
			Serial:   1000,
			Shape:    &Disc{Radius: 2},
			Tags:     []string{"demo", "inspector"},
			Weights:  map[string]float32{"near": 1, "far": 0.25},
			Focus:    w.Actors[0],
			Children: []Point{{1, 2}, {3, 4}},
		}
	}
	return res
}
