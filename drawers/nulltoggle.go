// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import "cogentcore.org/inspector/base/errors"

// NullToggle is the child of a [Polymorphic] drawer that switches
// its value between null and a value of a plain data type.
type NullToggle struct {
	Base
}

// owner returns the polymorphic parent of the toggle, or nil.
func (nt *NullToggle) owner() *Polymorphic {
	pm, _ := nt.Parent.(*Polymorphic)
	return pm
}

// IsNull returns whether the value of the parent is null.
func (nt *NullToggle) IsNull() bool {
	pm := nt.owner()
	return pm == nil || pm.InstanceType() == nil
}

// ShouldShow implements [Drawer.ShouldShow]. The toggle is shown with
// the label of its parent, since it is the only way back from a null value.
func (nt *NullToggle) ShouldShow(filter string) bool {
	if filter == "" {
		return true
	}
	pm := nt.owner()
	return pm != nil && pm.Base.ShouldShow(filter)
}

// ValueText implements [Drawer.ValueText].
func (nt *NullToggle) ValueText() string {
	if nt.IsNull() {
		return "None"
	}
	return "Value"
}

// Draw implements [Drawer.Draw].
func (nt *NullToggle) Draw(b Bounds, p Painter) {
	lb, vb := b.SplitColumn(labelFraction)
	p.Label(lb, nt.Label)
	p.Toggle(vb, nt.ValueText(), nt.IsNull())
}

// HandleInput implements [Drawer.HandleInput]. A click toggles the
// value of the parent between null and a value.
func (nt *NullToggle) HandleInput(e InputEvent) bool {
	if e.Kind != Click && e.Kind != ToggleNull {
		return false
	}
	pm := nt.owner()
	if pm == nil {
		return false
	}
	return errors.Log(pm.ToggleNull()) == nil
}
