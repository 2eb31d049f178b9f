// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enums

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fruit int32

const (
	apple fruit = iota
	pear
	plum
)

var fruitNames = []string{"apple", "pear", "plum"}

func (f fruit) String() string { return fruitNames[f] }
func (f fruit) Int64() int64   { return int64(f) }
func (f fruit) Values() []Enum { return []Enum{apple, pear, plum} }

func (f *fruit) SetInt64(i int64)         { *f = fruit(i) }
func (f *fruit) SetString(s string) error { return SetStringFromValues(f, s) }

func TestIsEnum(t *testing.T) {
	assert.True(t, IsEnum(reflect.TypeFor[fruit]()))
	assert.True(t, IsEnum(reflect.TypeFor[*fruit]()))
	assert.False(t, IsEnum(reflect.TypeFor[int32]()))
	assert.False(t, IsEnum(reflect.TypeFor[Enum]()))
	assert.False(t, IsEnum(nil))
}

func TestStringsIndex(t *testing.T) {
	assert.Equal(t, fruitNames, Strings(pear))
	assert.Equal(t, 2, Index(plum))
}

func TestSetString(t *testing.T) {
	f := apple
	assert.NoError(t, f.SetString("plum"))
	assert.Equal(t, plum, f)
	assert.Error(t, f.SetString("kiwi"))
	assert.Equal(t, plum, f)
}
