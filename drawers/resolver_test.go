// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/inspector/reflection"
)

func TestResolveCapabilities(t *testing.T) {
	r := NewRegistry(reflection.NewGoProvider(newTestRegistry()))
	tests := []struct {
		typ  reflect.Type
		want *DrawerType
	}{
		{reflect.TypeFor[string](), TextType},
		{reflect.TypeFor[*string](), TextType},
		{reflect.TypeFor[float32](), NumberType},
		{reflect.TypeFor[uint8](), NumberType},
		{reflect.TypeFor[bool](), BoolType},
		{reflect.TypeFor[mode](), EnumType},
		{reflect.TypeFor[shape](), PolymorphicType},
		{reflect.TypeFor[*vec](), PolymorphicType},
		{reflect.TypeFor[*sprite](), ReferenceType},
		{reflect.TypeFor[[]int](), CollectionType},
		{reflect.TypeFor[[3]int](), CollectionType},
		{reflect.TypeFor[map[string]int](), MapType},
		{reflect.TypeFor[func()](), FuncType},
		{reflect.TypeFor[vec](), StructType},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Same(t, tt.want, r.Resolve(tt.typ, nil))
		})
	}
}

func TestResolveOrder(t *testing.T) {
	r := NewRegistry(reflection.NewGoProvider(newTestRegistry()))
	shapeType, circleType := reflect.TypeFor[shape](), reflect.TypeFor[*circle]()
	assert.Same(t, PolymorphicType, r.Resolve(shapeType, circleType))

	r.Register(shapeType, TextType)
	assert.Same(t, TextType, r.Resolve(shapeType, circleType))
	r.Register(circleType, NumberType)
	assert.Same(t, NumberType, r.Resolve(shapeType, circleType))
	assert.Same(t, TextType, r.Resolve(shapeType, nil))

	vecType := reflect.TypeFor[vec]()
	r.SetOverrideSource(OverrideFunc(func(declared, runtime reflect.Type) *DrawerType {
		if declared == vecType || declared == shapeType {
			return BoolType
		}
		return nil
	}))
	assert.Same(t, BoolType, r.Resolve(vecType, nil))
	assert.Same(t, TextType, r.Resolve(shapeType, nil))
	assert.Same(t, NumberType, r.Resolve(reflect.TypeFor[int](), nil))

	r.SetOverrideSource(nil)
	r.Fallback = nil
	assert.Same(t, StructType, r.Resolve(vecType, nil))
	assert.Same(t, StructType, r.Resolve(nil, nil))

	assert.Same(t, EnumType, r.DrawerTypeByName("enum"))
	assert.Nil(t, r.DrawerTypeByName("slider"))
}

type badge struct {
	Text string
}

type badgeDrawer struct {
	Base
}

func (bd *badgeDrawer) ValueText() string {
	v := scalar(bd.value)
	if !v.IsValid() {
		return ""
	}
	return "badge: " + v.Interface().(badge).Text
}

type badgeHolder struct {
	Badge badge
	Other vec
}

func TestRegisteredDrawer(t *testing.T) {
	in := newTestInspector()
	badgeType := NewDrawerType[badgeDrawer]("badge")
	in.Registry.Register(reflect.TypeFor[badge](), badgeType)
	assert.Same(t, badgeType, in.Registry.DrawerTypeByName("badge"))

	in.SetTargets(&badgeHolder{Badge: badge{Text: "hi"}})
	bd := find[*badgeDrawer](t, in, "Badge")
	assert.Equal(t, "badge: hi", bd.ValueText())
	assert.Same(t, badgeType, bd.DrawerType)
	find[*Struct](t, in, "Other")

	r := &recorder{}
	in.Cycle(r)
	assert.Contains(t, r.painted, "value:badge: hi")
}
