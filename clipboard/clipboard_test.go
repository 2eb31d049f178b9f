// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clipboard

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y float32
}

func TestMemory(t *testing.T) {
	m := &Memory{}
	_, err := m.ReadText()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, m.WriteText("x: 1"))
	text, err := m.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "x: 1", text)
}

func TestEncodeDecode(t *testing.T) {
	text, err := Encode(point{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Contains(t, text, "x: 1")

	v, err := Decode(text, reflect.TypeFor[point]())
	require.NoError(t, err)
	assert.Equal(t, point{X: 1, Y: 2}, v.Interface())

	v, err = Decode("5", reflect.TypeFor[*int]())
	require.NoError(t, err)
	assert.Equal(t, 5, *v.Interface().(*int))
}

func TestDecodeMismatch(t *testing.T) {
	_, err := Decode("x: 1\n", reflect.TypeFor[int]())
	assert.Error(t, err)

	_, err = Decode("z: 1\n", reflect.TypeFor[point]())
	assert.Error(t, err)

	_, err = Decode("  ", reflect.TypeFor[point]())
	assert.ErrorIs(t, err, ErrEmpty)
}
