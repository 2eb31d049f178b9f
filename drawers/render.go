// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"

	"github.com/chewxy/math32"
)

// labelFraction is the fraction of the row width used by labels.
const labelFraction = 0.4

// Bounds is a rectangle in the coordinate space of a [Painter].
type Bounds struct {
	X, Y, Width, Height float32
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%g, %g) %gx%g", b.X, b.Y, b.Width, b.Height)
}

// SplitRow returns the top row of the given height and the rest below it.
func (b Bounds) SplitRow(height float32) (row, rest Bounds) {
	h := math32.Min(height, b.Height)
	row = Bounds{X: b.X, Y: b.Y, Width: b.Width, Height: h}
	rest = Bounds{X: b.X, Y: b.Y + h, Width: b.Width, Height: math32.Max(0, b.Height-h)}
	return
}

// SplitColumn splits the bounds into a left part with the given
// fraction of the width, and the right part.
func (b Bounds) SplitColumn(fraction float32) (left, right Bounds) {
	w := math32.Floor(b.Width * fraction)
	left = Bounds{X: b.X, Y: b.Y, Width: w, Height: b.Height}
	right = Bounds{X: b.X + w, Y: b.Y, Width: math32.Max(0, b.Width-w), Height: b.Height}
	return
}

// Indent returns the bounds moved right by the given width.
func (b Bounds) Indent(width float32) Bounds {
	w := math32.Min(width, b.Width)
	return Bounds{X: b.X + w, Y: b.Y, Width: b.Width - w, Height: b.Height}
}

// ValueState describes how a value is painted.
type ValueState struct {

	// Mixed is whether the targets disagree on the value.
	Mixed bool

	// ReadOnly is whether the value can not be edited.
	ReadOnly bool

	// Missing is whether the value no longer resolves.
	Missing bool
}

// Painter is the rendering collaborator that drawers paint through.
// Drawers never do any drawing themselves.
type Painter interface {

	// Indent starts a row at the given depth in the tree.
	Indent(b Bounds, depth int)

	// Fold paints the fold affordance of a parent drawer.
	Fold(b Bounds, open bool)

	// Label paints a member label.
	Label(b Bounds, text string)

	// Value paints the text of a value.
	Value(b Bounds, text string, state ValueState)

	// Toggle paints an on/off control with the given text.
	Toggle(b Bounds, text string, on bool)

	// Button paints a button with the given text.
	Button(b Bounds, text string)
}

// InputKind is the kind of an [InputEvent].
type InputKind int32

const (
	// Click is a primary click on the drawer.
	Click InputKind = iota

	// Submit submits the text of an edit.
	Submit

	// ToggleFold folds or unfolds a parent drawer.
	ToggleFold

	// Select selects the type or object named by the text of the event.
	Select

	// ToggleNull switches a nullable value between null and a value.
	ToggleNull

	// Invoke invokes a method.
	Invoke

	// Resize resizes a collection to the length in the index of the event.
	Resize

	// Remove removes the element or entry at the index of the event.
	Remove

	// Copy copies the value to the clipboard.
	Copy

	// Paste pastes the value from the clipboard.
	Paste
)

var inputKindNames = [...]string{"click", "submit", "toggle-fold", "select", "toggle-null", "invoke", "resize", "remove", "copy", "paste"}

func (k InputKind) String() string {
	if k < 0 || int(k) >= len(inputKindNames) {
		return fmt.Sprintf("InputKind(%d)", int32(k))
	}
	return inputKindNames[k]
}

// InputEvent is an input event delivered to [Drawer.HandleInput].
type InputEvent struct {
	Kind InputKind

	// Text is the text of [Submit] and [Select] events.
	Text string

	// Index is the length of [Resize] events and the index of [Remove] events.
	Index int
}
