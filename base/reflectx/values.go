// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeFor[time.Duration]()

// SetFromString sets the given settable value from its string
// representation. Basic kinds are parsed with [strconv]; types
// implementing [encoding.TextUnmarshaler] use that; composite
// values starting with { or [ are decoded as JSON, with single
// quotes allowed in place of double quotes.
func SetFromString(v reflect.Value, s string) error {
	if !v.CanSet() {
		return fmt.Errorf("reflectx.SetFromString: value of type %v is not settable", v.Type())
	}
	if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(s))
	}
	if v.Type() == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	switch k := v.Kind(); {
	case k == reflect.String:
		v.SetString(s)
	case k == reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case k >= reflect.Int && k <= reflect.Int64:
		i, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case k >= reflect.Uint && k <= reflect.Uintptr:
		u, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case k == reflect.Float32 || k == reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		if s != "" && (s[0] == '{' || s[0] == '[') {
			return json.Unmarshal([]byte(strings.ReplaceAll(s, `'`, `"`)), v.Addr().Interface())
		}
		return fmt.Errorf("reflectx.SetFromString: unsupported kind %v for %q", k, s)
	}
	return nil
}

// SetFromDefaultTags sets the values of fields in the given struct
// pointer based on `default:` struct field tags. Nested structs without
// a default tag are processed recursively.
func SetFromDefaultTags(obj any) error {
	if AnyIsNil(obj) {
		return nil
	}
	val := reflect.ValueOf(obj)
	if val.Kind() != reflect.Pointer {
		return fmt.Errorf("reflectx.SetFromDefaultTags: must pass a pointer, not %T", obj)
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: must pass a struct pointer, not %T", obj)
	}
	typ := val.Type()
	var errs []error
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok || def == "" {
			if f.Type.Kind() == reflect.Struct {
				if err := SetFromDefaultTags(fv.Addr().Interface()); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}
		if err := SetFromString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("field %s.%s: %w", typ.Name(), f.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("reflectx.SetFromDefaultTags: %v", errs)
	}
	return nil
}

// ConvertTo returns the given value converted to the given type,
// if it is assignable or convertible to it. Invalid values become
// the zero value of the type.
func ConvertTo(v reflect.Value, typ reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(typ), nil
	}
	if v.Type().AssignableTo(typ) {
		return v, nil
	}
	if u := Underlying(v); u.IsValid() && u.Type().AssignableTo(typ) {
		return u, nil
	}
	if v.Type().ConvertibleTo(typ) && v.Kind() != reflect.String && typ.Kind() != reflect.String {
		return v.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("reflectx.ConvertTo: can not use %v as %v", v.Type(), typ)
}
