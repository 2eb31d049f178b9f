// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"-q"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	out, err := execute(t, "--set", "Title=hello", "--set", "Blend=Multiply")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "Multiply")
	assert.Contains(t, out, "Camera #1")
	assert.NotContains(t, out, "(mixed)")
}

func TestRenderMixed(t *testing.T) {
	out, err := execute(t, "--targets", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "(mixed)")
}

func TestRenderFilter(t *testing.T) {
	out, err := execute(t, "--filter", "title")
	require.NoError(t, err)
	assert.Contains(t, out, "main")
	assert.NotContains(t, out, "Weights")
}

func TestRenderConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inspector.toml")
	require.NoError(t, os.WriteFile(file, []byte("Width = 30\nLogLevel = \"error\"\n"), 0o644))
	out, err := execute(t, "--config", file)
	require.NoError(t, err)
	for _, line := range bytes.Split([]byte(out), []byte("\n")) {
		assert.LessOrEqual(t, len([]rune(string(line))), 30, string(line))
	}
}

func TestInvalidSet(t *testing.T) {
	_, err := execute(t, "--set", "Title")
	assert.ErrorContains(t, err, "path=value")

	_, err = execute(t, "--set", "Nothing=1")
	assert.ErrorContains(t, err, "could not set")

	_, err = execute(t, "--targets", "0")
	assert.ErrorContains(t, err, "at least one target")
}
