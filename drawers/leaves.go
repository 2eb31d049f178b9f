// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/enums"
)

// scalar returns the basic value held by the given value, going
// through interfaces and pointers, or an invalid value for nil.
func scalar(v reflect.Value) reflect.Value {
	v = reflectx.Underlying(v)
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// newScalar returns a new value of the given type and its settable basic
// value, which is the pointee for pointer types.
func newScalar(typ reflect.Type) (v, elem reflect.Value) {
	if typ.Kind() == reflect.Pointer {
		v = reflect.New(typ.Elem())
		return v, v.Elem()
	}
	v = reflect.New(typ).Elem()
	return v, v
}

// setScalar sets the value to a new value of the given type, with the
// basic value set by the given function. Pointer types get a new
// pointee for each target.
func (b *Base) setScalar(typ reflect.Type, set func(elem reflect.Value)) error {
	return b.SetNew(func() (reflect.Value, error) {
		v, elem := newScalar(typ)
		set(elem)
		return v, nil
	})
}

// Text is a leaf drawer for string values.
type Text struct {
	Base
}

// Number is a leaf drawer for integer and floating point values.
type Number struct {
	Base

	// Step is the amount added by [Number.Increment].
	Step float64
}

// ResetPooled implements [pool.Resetter].
func (n *Number) ResetPooled() {
	n.Base.ResetPooled()
	n.Step = 0
}

// LateSetup implements [Drawer.LateSetup] with a default step of 1.
func (n *Number) LateSetup() {
	if n.Step == 0 {
		n.Step = 1
	}
}

// Increment adds the given number of steps to the value.
func (n *Number) Increment(steps int) error {
	v := scalar(n.value)
	if !v.IsValid() {
		return fmt.Errorf("%w: no value to increment", ErrNotSettable)
	}
	typ := n.Member.Type
	if typ.Kind() == reflect.Interface {
		typ = v.Type()
	}
	delta := n.Step * float64(steps)
	switch k := v.Kind(); {
	case k >= reflect.Int && k <= reflect.Int64:
		return n.setScalar(typ, func(nv reflect.Value) { nv.SetInt(v.Int() + int64(delta)) })
	case k >= reflect.Uint && k <= reflect.Uintptr:
		u := max(int64(v.Uint())+int64(delta), 0)
		return n.setScalar(typ, func(nv reflect.Value) { nv.SetUint(uint64(u)) })
	case k == reflect.Float32 || k == reflect.Float64:
		return n.setScalar(typ, func(nv reflect.Value) { nv.SetFloat(v.Float() + delta) })
	}
	return fmt.Errorf("%w: %v is not a number", ErrTypeMismatch, v.Type())
}

// HandleInput implements [Drawer.HandleInput]. A click increments the
// value by the step count in the index of the event.
func (n *Number) HandleInput(e InputEvent) bool {
	if e.Kind == Click && e.Index != 0 {
		return errors.Log(n.Increment(e.Index)) == nil
	}
	return n.Base.HandleInput(e)
}

// Bool is a leaf drawer for bool values, painted as a toggle.
type Bool struct {
	Base
}

// On returns whether the cached value is true.
func (b *Bool) On() bool {
	v := scalar(b.value)
	return v.IsValid() && v.Kind() == reflect.Bool && v.Bool()
}

// Draw implements [Drawer.Draw].
func (b *Bool) Draw(bd Bounds, p Painter) {
	lb, vb := bd.SplitColumn(labelFraction)
	p.Label(lb, b.Label)
	if b.mixed {
		p.Value(vb, MixedText, b.valueState())
		return
	}
	p.Toggle(vb, b.ValueText(), b.On())
}

// HandleInput implements [Drawer.HandleInput]. A click toggles the value;
// mixed values become true.
func (b *Bool) HandleInput(e InputEvent) bool {
	if e.Kind == Click {
		on := !b.On() || b.mixed
		typ := b.Member.Type
		if typ.Kind() == reflect.Interface {
			typ = reflect.TypeFor[bool]()
		}
		return errors.Log(b.setScalar(typ, func(nv reflect.Value) { nv.SetBool(on) })) == nil
	}
	return b.Base.HandleInput(e)
}

// Enum is a leaf drawer for values of types implementing [enums.Enum].
type Enum struct {
	Base
}

// enum returns the cached value as an [enums.Enum].
func (en *Enum) enum() enums.Enum {
	v := scalar(en.value)
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	e, _ := v.Interface().(enums.Enum)
	return e
}

// Options returns the string values of the enum type, in order.
func (en *Enum) Options() []string {
	if e := en.enum(); e != nil {
		return enums.Strings(e)
	}
	return nil
}

// SetString sets the value to the enum value with the given string.
func (en *Enum) SetString(s string) error {
	typ := en.Member.Type
	if typ.Kind() == reflect.Interface {
		typ = reflectx.RuntimeType(en.value)
	}
	if typ == nil {
		return fmt.Errorf("%w: no enum type", ErrTypeMismatch)
	}
	_, nv := newScalar(typ)
	es, ok := nv.Addr().Interface().(enums.EnumSetter)
	if !ok {
		return fmt.Errorf("%w: %v is not settable from a string", ErrTypeMismatch, typ)
	}
	if err := es.SetString(s); err != nil {
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	return en.setScalar(typ, func(ev reflect.Value) { ev.Set(nv) })
}

// Next sets the value to the enum value after the current one, wrapping around.
func (en *Enum) Next() error {
	e := en.enum()
	if e == nil {
		return fmt.Errorf("%w: no enum value", ErrNotSettable)
	}
	vals := e.Values()
	if len(vals) == 0 {
		return nil
	}
	i := (enums.Index(e) + 1) % len(vals)
	return en.SetString(vals[i].String())
}

// HandleInput implements [Drawer.HandleInput]. A click selects the next
// value, and submit and select set the value by name.
func (en *Enum) HandleInput(e InputEvent) bool {
	switch e.Kind {
	case Click:
		return errors.Log(en.Next()) == nil
	case Submit, Select:
		return errors.Log(en.SetString(e.Text)) == nil
	}
	return en.Base.HandleInput(e)
}

// Func is a read-only leaf drawer for function values,
// which are compared by identity.
type Func struct {
	Base
}

// LateSetup implements [Drawer.LateSetup].
func (f *Func) LateSetup() {
	f.ReadOnly = true
	f.byReference = true
}

// ValueText implements [Drawer.ValueText] with the name of the function.
func (f *Func) ValueText() string {
	switch {
	case f.mixed:
		return MixedText
	case reflectx.IsNil(f.value):
		return "None"
	}
	fn := runtime.FuncForPC(reflectx.Underlying(f.value).Pointer())
	if fn == nil {
		return "func"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// HandleInput implements [Drawer.HandleInput]. Invoking a function
// without parameters calls it.
func (f *Func) HandleInput(e InputEvent) bool {
	if e.Kind != Invoke {
		return false
	}
	v := reflectx.Underlying(f.value)
	if reflectx.IsNil(v) || v.Type().NumIn() != 0 {
		return false
	}
	v.Call(nil)
	return true
}
