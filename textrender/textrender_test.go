// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textrender

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/inspector/drawers"
)

func TestRows(t *testing.T) {
	r := New(termenv.Ascii, 1)
	r.Label(drawers.Bounds{X: 2, Y: 0, Width: 8, Height: 1}, "Name")
	r.Value(drawers.Bounds{X: 10, Y: 0, Width: 10, Height: 1}, "gopher", drawers.ValueState{})
	r.Fold(drawers.Bounds{X: 0, Y: 0, Width: 2, Height: 1}, true)
	r.Toggle(drawers.Bounds{X: 2, Y: 2, Width: 20, Height: 1}, "None", true)

	lines := r.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "▾ Name    gopher", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "  [x] None", lines[2])
}

func TestTruncate(t *testing.T) {
	r := New(termenv.Ascii, 1)
	r.Value(drawers.Bounds{Width: 6, Height: 1}, "a long value", drawers.ValueState{})
	r.Button(drawers.Bounds{Y: 1, Width: 0, Height: 1}, "hidden")
	assert.Equal(t, "a lon…", r.String())
}

func TestRowHeight(t *testing.T) {
	r := New(termenv.Ascii, 20)
	r.Label(drawers.Bounds{Y: 0, Width: 4, Height: 20}, "A")
	r.Label(drawers.Bounds{Y: 20, Width: 4, Height: 20}, "B")
	assert.Equal(t, []string{"A", "B"}, r.Lines())

	r.Reset()
	assert.Empty(t, r.Lines())
}

func TestStyles(t *testing.T) {
	r := New(termenv.ANSI, 1)
	r.Value(drawers.Bounds{Width: 20, Height: 1}, "Missing", drawers.ValueState{Missing: true})
	s := r.String()
	assert.Contains(t, s, "Missing")
	assert.Contains(t, s, "\x1b[")
}

type point struct {
	X, Y int
	Name string
}

func TestInspector(t *testing.T) {
	in := drawers.New(nil, nil)
	in.SetTargets(&point{X: 3, Y: 4, Name: "origin"})
	r := New(termenv.Ascii, in.Settings.RowHeight)
	in.Cycle(r)

	var b bytes.Buffer
	_, err := r.WriteTo(&b)
	require.NoError(t, err)
	out := b.String()
	assert.Equal(t, 4, strings.Count(out, "\n"))
	assert.Contains(t, out, "origin")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "Name")
}
