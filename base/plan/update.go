// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan reconciles a slice of named elements with a target list
// of names, keeping the elements whose names are still wanted and
// creating and destroying only the ones that differ. Names must be
// unique within a plan.
package plan

import (
	"log/slog"
)

// Namer is an interface that types can implement to specify their name in a plan context.
type Namer interface {

	// PlanName returns the name of the object in a plan context.
	PlanName() string
}

// Edits counts the edits made by [Update].
type Edits struct {

	// Added is the number of elements created.
	Added int

	// Removed is the number of elements destroyed.
	Removed int

	// Moved is the number of kept elements whose index changed.
	Moved int
}

// Changed returns whether any edits were made.
func (e Edits) Changed() bool {
	return e.Added > 0 || e.Removed > 0 || e.Moved > 0
}

// Update reconciles the slice with the n target names returned by name,
// in order. Elements whose names are wanted are kept, new is called for
// every missing name, and destroy, if non-nil, is called on every element
// that is no longer wanted after the slice has been updated. Then init,
// if non-nil, is called on every new element with its final index.
// Duplicate target names are logged and only the first one is used.
func Update[T Namer](s *[]T, n int, name func(i int) string, new func(name string, i int) T, init func(e T, i int), destroy func(e T)) Edits {
	var ed Edits
	names := make([]string, 0, n)
	want := make(map[string]bool, n)
	for i := range n {
		nm := name(i)
		if want[nm] {
			slog.Error("plan.Update: duplicate name", "name", nm)
			continue
		}
		want[nm] = true
		names = append(names, nm)
	}

	type kept struct {
		e   T
		pos int
	}
	have := make(map[string]kept, len(*s))
	var removed []T
	pos := 0
	for _, e := range *s {
		nm := e.PlanName()
		if _, dup := have[nm]; dup || !want[nm] {
			removed = append(removed, e)
			continue
		}
		have[nm] = kept{e, pos}
		pos++
	}

	res := make([]T, len(names))
	var added []int
	for i, nm := range names {
		if k, ok := have[nm]; ok {
			res[i] = k.e
			if k.pos != i {
				ed.Moved++
			}
			continue
		}
		res[i] = new(nm, i)
		added = append(added, i)
	}
	*s = res
	ed.Added, ed.Removed = len(added), len(removed)

	if destroy != nil {
		for _, e := range removed {
			destroy(e)
		}
	}
	if init != nil {
		for _, i := range added {
			init(res[i], i)
		}
	}
	return ed
}
