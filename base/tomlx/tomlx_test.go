// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name  string
	Value int
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.toml")
	require.NoError(t, Save(&testStruct{Name: "a", Value: 3}, file))

	var ts testStruct
	require.NoError(t, Open(&ts, file))
	assert.Equal(t, testStruct{Name: "a", Value: 3}, ts)
}

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	over := filepath.Join(dir, "over.toml")
	require.NoError(t, os.WriteFile(base, []byte("Name = \"base\"\nValue = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(over, []byte("Value = 2\n"), 0o644))

	var ts testStruct
	require.NoError(t, OpenFiles(&ts, base, over))
	assert.Equal(t, testStruct{Name: "base", Value: 2}, ts)

	assert.Error(t, OpenFiles(&ts, filepath.Join(dir, "missing.toml")))
}

func TestBytes(t *testing.T) {
	b, err := WriteBytes(&testStruct{Name: "x"})
	require.NoError(t, err)
	var ts testStruct
	require.NoError(t, ReadBytes(&ts, b))
	assert.Equal(t, "x", ts.Name)
}
