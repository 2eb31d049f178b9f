// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBase = New("base")

func TestLog(t *testing.T) {
	assert.Nil(t, Log(nil))
	err := fmt.Errorf("wrapped: %w", errBase)
	assert.Equal(t, err, Log(err))
	assert.True(t, Is(Log(err), errBase))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 0, Log1(0, errBase))
	assert.Equal(t, 5, Ignore1(5, errBase))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(errBase) })
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.Contains(t, info, "errors_test.go")
}
