// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

// Struct is the generic structural drawer, which has a child for each
// field, property, static and method of the runtime type of its value.
// It is the fallback for types that match no other drawer type.
type Struct struct {
	ParentBase
}

// LateSetup implements [Drawer.LateSetup]. Nested structs start folded
// past the configured depth.
func (st *Struct) LateSetup() {
	in := st.Inspector
	if in == nil || in.Settings == nil || st.Parent == nil {
		return
	}
	st.Folded = in.Settings.FoldDepth > 0 && st.Depth() >= in.Settings.FoldDepth
}
