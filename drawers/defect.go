// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"fmt"
	"log/slog"

	"cogentcore.org/inspector/base/errors"
)

// defect reports a violated internal invariant of the drawer tree, such
// as releasing a drawer twice. It panics in debug builds, and is
// logged and skipped otherwise.
func defect(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if debugBuild {
		panic("drawers: defect: " + msg)
	}
	slog.Error("drawers: defect", "msg", msg, "at", errors.CallerInfo())
}
