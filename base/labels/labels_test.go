// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package labels

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type myStruct struct{}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"Max", "Pooled", "Per", "Type"}, Words("MaxPooledPerType"))
	assert.Equal(t, []string{"HTTP", "Server"}, Words("HTTPServer"))
	assert.Equal(t, []string{"snake", "case"}, Words("snake_case"))
	assert.Equal(t, []string{"my", "ID"}, Words("myID"))
	assert.Nil(t, Words(""))
}

func TestToKebab(t *testing.T) {
	assert.Equal(t, "polymorphic-drawer", ToKebab("PolymorphicDrawer"))
	assert.Equal(t, "http-server", ToKebab("HTTPServer"))
}

func TestToSentence(t *testing.T) {
	assert.Equal(t, "Row height", ToSentence("RowHeight"))
	assert.Equal(t, "HTTP server", ToSentence("HTTPServer"))
	assert.Equal(t, "Name", ToSentence("name"))
}

func TestFriendlyTypeName(t *testing.T) {
	assert.Equal(t, "Number", FriendlyTypeName(reflect.TypeFor[int]()))
	assert.Equal(t, "Text", FriendlyTypeName(reflect.TypeFor[*string]()))
	assert.Equal(t, "My struct", FriendlyTypeName(reflect.TypeFor[myStruct]()))
	assert.Equal(t, "Numbers", FriendlyTypeName(reflect.TypeFor[[]float32]()))
	assert.Equal(t, "List of Numbers", FriendlyTypeName(reflect.TypeFor[[][]int]()))
	assert.Equal(t, "Value", FriendlyTypeName(reflect.TypeFor[any]()))
	assert.Equal(t, "None", FriendlyTypeName(nil))
}
