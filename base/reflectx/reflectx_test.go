// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Depth int `default:"3"`
}

type settings struct {
	Name    string        `default:"inspector"`
	Height  float32       `default:"20"`
	Enabled bool          `default:"true"`
	Count   uint8         `default:"7"`
	Tags    []string      `default:"['a', 'b']"`
	Wait    time.Duration `default:"2s"`
	Inner   inner
	None    int
	private int `default:"5"`
}

func TestNonPointerType(t *testing.T) {
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[**int]()))
	assert.Equal(t, reflect.TypeFor[any](), NonPointerType(reflect.TypeFor[*any]()))
	assert.Nil(t, NonPointerType(nil))
}

func TestPointerValue(t *testing.T) {
	v := 1
	pv := PointerValue(reflect.ValueOf(v))
	assert.Equal(t, reflect.TypeFor[*int](), pv.Type())
	assert.Equal(t, 1, pv.Elem().Interface())

	rp := reflect.ValueOf(&v)
	assert.True(t, PointerValue(rp.Elem()).Equal(rp))
	assert.True(t, Addressable(reflect.ValueOf(v)).CanAddr())
}

func TestIsNil(t *testing.T) {
	var p *int
	var a any = p
	assert.True(t, AnyIsNil(nil))
	assert.True(t, AnyIsNil(p))
	assert.True(t, AnyIsNil(a))
	assert.False(t, AnyIsNil(3))
	assert.True(t, IsNil(reflect.Value{}))
	assert.False(t, IsNilable(reflect.TypeFor[int]()))
	assert.True(t, IsNilable(reflect.TypeFor[[]int]()))
}

func TestRuntimeType(t *testing.T) {
	var a any = 3.5
	v := reflect.ValueOf(&a).Elem()
	assert.Equal(t, reflect.TypeFor[float64](), RuntimeType(v))

	var b any
	assert.Nil(t, RuntimeType(reflect.ValueOf(&b).Elem()))
}

func TestSetFromDefaultTags(t *testing.T) {
	s := &settings{}
	require.NoError(t, SetFromDefaultTags(s))
	assert.Equal(t, "inspector", s.Name)
	assert.Equal(t, float32(20), s.Height)
	assert.True(t, s.Enabled)
	assert.Equal(t, uint8(7), s.Count)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	assert.Equal(t, 2*time.Second, s.Wait)
	assert.Equal(t, 3, s.Inner.Depth)
	assert.Equal(t, 0, s.None)
	assert.Equal(t, 0, s.private)

	assert.Error(t, SetFromDefaultTags(settings{}))
	assert.NoError(t, SetFromDefaultTags(nil))
}

func TestSetFromString(t *testing.T) {
	var i int16
	assert.Error(t, SetFromString(reflect.ValueOf(&i).Elem(), "100000"))
	assert.NoError(t, SetFromString(reflect.ValueOf(&i).Elem(), "0x10"))
	assert.Equal(t, int16(16), i)

	var c chan int
	assert.Error(t, SetFromString(reflect.ValueOf(&c).Elem(), "x"))
	assert.Error(t, SetFromString(reflect.ValueOf(i), "1"))
}

func TestConvertTo(t *testing.T) {
	v, err := ConvertTo(reflect.ValueOf(3), reflect.TypeFor[float64]())
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Interface())

	v, err = ConvertTo(reflect.Value{}, reflect.TypeFor[*int]())
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	_, err = ConvertTo(reflect.ValueOf(3), reflect.TypeFor[string]())
	assert.Error(t, err)
}
