// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the settings of an inspector session,
// which are loaded from TOML files with `default:` tag values.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/reflectx"
	"cogentcore.org/inspector/base/tomlx"
)

// Settings are the settings of an inspector session.
type Settings struct {

	// RowHeight is the height of one row of a drawer.
	RowHeight float32 `default:"1"`

	// IndentWidth is the width of one level of indentation.
	IndentWidth float32 `default:"2"`

	// Width is the width of the drawing area.
	Width float32 `default:"80"`

	// FilterThreshold is the minimum similarity in [0, 1] of a label
	// to the filter text for it to match, when it does not contain it.
	FilterThreshold float64 `default:"0.85"`

	// MaxPooledPerType is the maximum number of released drawers kept
	// per drawer type. Zero means no limit.
	MaxPooledPerType int `default:"256"`

	// InlineCollectionLength is the length above which collections and
	// maps start folded.
	InlineCollectionLength int `default:"8"`

	// FoldDepth is the depth at and below which nested structs start
	// folded. Zero means that they start unfolded.
	FoldDepth int `default:"0"`

	// MaxDepth is the depth at which drawers stop building children,
	// which bounds the tree for cyclic object graphs.
	MaxDepth int `default:"32"`

	// UnfoldOnTypeSelect is whether selecting a type in a polymorphic
	// drawer unfolds it.
	UnfoldOnTypeSelect bool `default:"true"`

	// ShowStaticMembers is whether static members are shown.
	ShowStaticMembers bool `default:"true"`

	// ShowProperties is whether getter and setter properties are shown.
	ShowProperties bool `default:"true"`

	// LogLevel is the minimum level of log messages: debug, info, warn or error.
	LogLevel string `default:"warn"`
}

// Default returns new [Settings] with the default values.
func Default() *Settings {
	s := &Settings{}
	errors.Log(reflectx.SetFromDefaultTags(s))
	return s
}

// Validate returns an error if the settings are not usable.
func (s *Settings) Validate() error {
	switch {
	case s.RowHeight <= 0:
		return fmt.Errorf("config: row height must be positive, not %g", s.RowHeight)
	case s.IndentWidth < 0:
		return fmt.Errorf("config: indent width must not be negative, not %g", s.IndentWidth)
	case s.FilterThreshold < 0 || s.FilterThreshold > 1:
		return fmt.Errorf("config: filter threshold must be in [0, 1], not %g", s.FilterThreshold)
	case s.MaxPooledPerType < 0:
		return fmt.Errorf("config: max pooled per type must not be negative, not %d", s.MaxPooledPerType)
	}
	return nil
}

// Open returns the default settings overridden by the given TOML files,
// in order. A leading ~ in a filename is the home directory.
func Open(filenames ...string) (*Settings, error) {
	s := Default()
	files := make([]string, len(filenames))
	for i, f := range filenames {
		fe, err := homedir.Expand(f)
		if err != nil {
			return s, err
		}
		files[i] = fe
	}
	if err := tomlx.OpenFiles(s, files...); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Save saves the settings to the given TOML file.
func (s *Settings) Save(filename string) error {
	fe, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	return tomlx.Save(s, fe)
}

// Watch calls the given function with the newly opened settings every
// time the given file is written, until the context is done. The
// function is called on the watching goroutine; callers that use the
// settings in an inspector must hand them to the goroutine driving
// its cycles. Files that fail to load are logged and skipped.
func Watch(ctx context.Context, filename string, fun func(s *Settings)) error {
	filename, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// editors often replace files, so the directory is watched
	if err := w.Add(filepath.Dir(filename)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		target := filepath.Clean(filename)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				s, err := Open(filename)
				if err != nil {
					slog.Warn("config: could not reload settings", "file", filename, "err", err)
					continue
				}
				fun(s)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Info("config: watch error", "err", err)
			}
		}
	}()
	return nil
}
