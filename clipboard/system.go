// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// System is the [Clipboard] of the operating system.
type System struct{}

// Available returns whether the system clipboard can be used.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// ReadText implements [Clipboard].
func (s System) ReadText() (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// WriteText implements [Clipboard].
func (s System) WriteText(text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Default returns the system clipboard if it is available,
// and a new [Memory] clipboard otherwise.
func Default() Clipboard {
	if (System{}).Available() {
		return System{}
	}
	return &Memory{}
}
