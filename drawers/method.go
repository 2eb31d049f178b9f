// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/reflection"
)

// Method is a parent drawer for an invocable method, with a child for
// each parameter. The value of a method drawer is the persistent
// [reflection.Invocation] of its member path, so parameter values
// are kept across cycles until the method is invoked.
type Method struct {
	ParentBase

	// Results are the results of the last invocation on the first target.
	Results []reflect.Value

	// Err is the error of the last invocation, if any.
	Err error

	// Invocations is the number of times the method has been invoked.
	Invocations int
}

// ResetPooled implements [pool.Resetter].
func (md *Method) ResetPooled() {
	md.ParentBase.ResetPooled()
	*md = Method{ParentBase: md.ParentBase}
}

// LateSetup implements [Drawer.LateSetup]. The method itself can not be
// written, but its parameters can unless the parent is read-only.
func (md *Method) LateSetup() {
	md.byReference = true
	md.ReadOnly = md.Parent != nil && md.Parent.AsBase().ReadOnly
}

// DoGenerateMemberBuildList implements [Parent.DoGenerateMemberBuildList]
// with a child for each parameter.
func (md *Method) DoGenerateMemberBuildList() {
	in := md.Inspector
	for i, pm := range in.Provider.Parameters(md.Member.Member) {
		md.AddBuildItem(in.Hierarchy.Get(md.Member, pm, i), nil)
	}
}

// Invoke calls the method on every target with the current
// parameter values, and records the results of the first target.
func (md *Method) Invoke() error {
	if md.Member == nil {
		return ErrNotSettable
	}
	vs, err := md.Member.Values()
	if err != nil {
		return err
	}
	var errs []error
	md.Results = nil
	for i, v := range vs {
		iv, ok := v.Interface().(*reflection.Invocation)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w: not an invocation", md.Member.Path(), ErrTypeMismatch))
			continue
		}
		res, err := iv.Call()
		if err != nil {
			errs = append(errs, err)
		}
		if i == 0 {
			md.Results = res
		}
	}
	md.Invocations++
	md.Err = errors.Join(errs...)
	if md.Err != nil {
		slog.Warn("drawers: method invocation failed", "path", md.Member.Path(), "err", md.Err)
	}
	return md.Err
}

// ValueText implements [Drawer.ValueText] with the results of the last invocation.
func (md *Method) ValueText() string {
	switch {
	case md.stale:
		return "Missing"
	case md.Err != nil:
		return "error: " + md.Err.Error()
	case md.Invocations == 0:
		return ""
	}
	parts := make([]string, len(md.Results))
	for i, r := range md.Results {
		if r.CanInterface() {
			parts[i] = fmt.Sprint(r.Interface())
		} else {
			parts[i] = r.Type().String()
		}
	}
	return strings.Join(parts, ", ")
}

func (md *Method) drawHeader(b Bounds, p Painter) {
	bb, rb := b.SplitColumn(labelFraction)
	p.Button(bb, md.Label)
	p.Value(rb, md.ValueText(), md.valueState())
}

// HandleInput implements [Drawer.HandleInput], adding invocation.
func (md *Method) HandleInput(e InputEvent) bool {
	switch e.Kind {
	case Invoke, Click:
		md.Invoke() // logged
		return true
	case Copy, Paste, Submit:
		return false
	}
	return md.ParentBase.HandleInput(e)
}
