// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawers

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// similarity returns the Jaro-Winkler similarity of the given label
// and filter text, ignoring case, in [0, 1].
func (in *Inspector) similarity(label, filter string) float64 {
	l, f := strings.ToLower(label), strings.ToLower(filter)
	if strings.Contains(l, f) {
		return 1
	}
	return strutil.Similarity(l, f, metrics.NewJaroWinkler())
}

// matches returns whether the given label matches the given filter text:
// it contains the filter ignoring case, or it is similar enough to it.
func (in *Inspector) matches(label, filter string) bool {
	if filter == "" {
		return true
	}
	threshold := 1.0
	if in != nil && in.Settings != nil {
		threshold = in.Settings.FilterThreshold
	}
	if threshold <= 0 {
		threshold = 1
	}
	return in.similarity(label, filter) >= threshold
}
