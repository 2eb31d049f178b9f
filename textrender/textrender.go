// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textrender provides a drawers.Painter that renders a drawer
// tree as styled terminal text, with one line per row.
package textrender

import (
	"bytes"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"cogentcore.org/inspector/drawers"
)

// segment is one painted piece of a row.
type segment struct {
	col  int
	text string
}

// Renderer is a [drawers.Painter] that collects painted text by row.
// Bounds are in units of columns and rows of [Renderer.RowHeight].
type Renderer struct {

	// RowHeight is the height of one row in the coordinates of the bounds.
	RowHeight float32

	// Ellipsis is appended to text that is cut off.
	Ellipsis string

	out  *termenv.Output
	rows map[int][]segment
}

// New returns a new [Renderer] that styles text with the given profile.
func New(profile termenv.Profile, rowHeight float32) *Renderer {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return &Renderer{
		RowHeight: rowHeight,
		Ellipsis:  "…",
		out:       termenv.NewOutput(io.Discard, termenv.WithProfile(profile)),
		rows:      map[int][]segment{},
	}
}

// Reset drops everything painted so far.
func (r *Renderer) Reset() {
	clear(r.rows)
}

func (r *Renderer) row(b drawers.Bounds) int {
	return int(math.Floor(float64(b.Y / r.RowHeight)))
}

func (r *Renderer) add(b drawers.Bounds, s termenv.Style) {
	w := int(b.Width)
	if w <= 0 {
		return
	}
	text := s.String()
	if ansi.PrintableRuneWidth(text) > w {
		text = truncate.StringWithTail(text, uint(w), r.Ellipsis)
	}
	y := r.row(b)
	r.rows[y] = append(r.rows[y], segment{col: int(b.X), text: text})
}

// Indent implements [drawers.Painter]. Rows are indented by their bounds.
func (r *Renderer) Indent(b drawers.Bounds, depth int) {
	y := r.row(b)
	if _, ok := r.rows[y]; !ok {
		r.rows[y] = nil
	}
}

// Fold implements [drawers.Painter].
func (r *Renderer) Fold(b drawers.Bounds, open bool) {
	mark := "▸"
	if open {
		mark = "▾"
	}
	r.add(b, r.out.String(mark).Faint())
}

// Label implements [drawers.Painter].
func (r *Renderer) Label(b drawers.Bounds, text string) {
	r.add(b, r.out.String(text).Bold())
}

// Value implements [drawers.Painter].
func (r *Renderer) Value(b drawers.Bounds, text string, state drawers.ValueState) {
	s := r.out.String(text)
	switch {
	case state.Missing:
		s = s.Foreground(termenv.ANSIRed)
	case state.Mixed:
		s = s.Italic().Foreground(termenv.ANSIYellow)
	case state.ReadOnly:
		s = s.Faint()
	}
	r.add(b, s)
}

// Toggle implements [drawers.Painter].
func (r *Renderer) Toggle(b drawers.Bounds, text string, on bool) {
	box := "[ ] "
	if on {
		box = "[x] "
	}
	r.add(b, r.out.String(box+text).Foreground(termenv.ANSICyan))
}

// Button implements [drawers.Painter].
func (r *Renderer) Button(b drawers.Bounds, text string) {
	r.add(b, r.out.String("("+text+")").Underline())
}

// Lines returns the painted rows as lines, with trailing spaces removed.
// Rows that were not painted are empty lines.
func (r *Renderer) Lines() []string {
	if len(r.rows) == 0 {
		return nil
	}
	ys := make([]int, 0, len(r.rows))
	for y := range r.rows {
		ys = append(ys, y)
	}
	slices.Sort(ys)
	first, last := ys[0], ys[len(ys)-1]
	lines := make([]string, last-first+1)
	for _, y := range ys {
		segs := slices.Clone(r.rows[y])
		slices.SortStableFunc(segs, func(a, b segment) int { return a.col - b.col })
		var sb strings.Builder
		col := 0
		for _, sg := range segs {
			if sg.col > col {
				sb.WriteString(strings.Repeat(" ", sg.col-col))
				col = sg.col
			}
			sb.WriteString(sg.text)
			col += ansi.PrintableRuneWidth(sg.text)
		}
		lines[y-first] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// String returns the painted rows joined by newlines.
func (r *Renderer) String() string {
	return strings.Join(r.Lines(), "\n")
}

// WriteTo writes the painted rows to the given writer, one per line.
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	for _, l := range r.Lines() {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.WriteTo(w)
}
