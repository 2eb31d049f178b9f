// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clipboard provides the clipboard that drawers copy values to
// and paste values from, with values encoded as YAML text.
package clipboard

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"cogentcore.org/inspector/base/errors"
)

var (
	// ErrUnavailable is returned when there is no clipboard.
	ErrUnavailable = errors.New("clipboard: unavailable")

	// ErrEmpty is returned when reading from an empty clipboard.
	ErrEmpty = errors.New("clipboard: empty")
)

// Clipboard is a text clipboard.
type Clipboard interface {

	// ReadText returns the text on the clipboard.
	ReadText() (string, error)

	// WriteText puts the given text on the clipboard.
	WriteText(text string) error
}

// Memory is an in-process [Clipboard].
type Memory struct {
	text string
	has  bool
}

// ReadText implements [Clipboard].
func (m *Memory) ReadText() (string, error) {
	if !m.has {
		return "", ErrEmpty
	}
	return m.text, nil
}

// WriteText implements [Clipboard].
func (m *Memory) WriteText(text string) error {
	m.text = text
	m.has = true
	return nil
}

// Encode returns the YAML encoding of the given value.
func Encode(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("clipboard.Encode: %w", err)
	}
	return string(b), nil
}

// Decode returns a new value of the given type decoded from the given
// YAML text. Fields that the type does not have are an error.
func Decode(text string, typ reflect.Type) (reflect.Value, error) {
	if strings.TrimSpace(text) == "" {
		return reflect.Value{}, fmt.Errorf("clipboard.Decode: %w", ErrEmpty)
	}
	pv := reflect.New(typ)
	dec := yaml.NewDecoder(bytes.NewReader([]byte(text)))
	dec.KnownFields(true)
	if err := dec.Decode(pv.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("clipboard.Decode: %v: %w", typ, err)
	}
	return pv.Elem(), nil
}
