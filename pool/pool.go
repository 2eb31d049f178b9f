// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool provides a free-list allocator that reuses instances
// of exact concrete types across cycles.
package pool

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"cogentcore.org/inspector/base/errors"
)

// ErrDoubleRelease is returned by [Pool.Release] when the instance
// is already in the pool.
var ErrDoubleRelease = errors.New("pool: instance released twice")

// Resetter is the interface that pooled instances implement.
// ResetPooled must clear all per-lease state, so that an acquired
// instance is indistinguishable from a freshly constructed one.
type Resetter interface {
	ResetPooled()
}

// TypeStats are the statistics for one concrete type in a [Pool].
type TypeStats struct {

	// Free is the number of instances currently in the free list.
	Free int

	// Acquires is the number of calls to [Pool.Acquire] for the type.
	Acquires int

	// Reuses is the number of acquires that returned a pooled instance.
	Reuses int

	// Releases is the number of successful releases.
	Releases int

	// Dropped is the number of released instances that were not kept
	// because the free list was full.
	Dropped int
}

func (ts TypeStats) String() string {
	return fmt.Sprintf("free: %d acquires: %d reuses: %d releases: %d dropped: %d", ts.Free, ts.Acquires, ts.Reuses, ts.Releases, ts.Dropped)
}

// Pool is a set of per-concrete-type LIFO free lists. It is owned by
// a single session and is not safe for concurrent use.
//
// It does not use [sync.Pool], which may drop instances at any time,
// since callers rely on getting back exactly the released instances.
type Pool[T Resetter] struct {

	// MaxPerType is the maximum number of free instances kept per type.
	// Zero means no limit.
	MaxPerType int

	free   map[reflect.Type][]T
	pooled map[any]bool
	stats  map[reflect.Type]*TypeStats
}

// New returns a new [Pool] that keeps at most maxPerType free
// instances of each type, with zero meaning no limit.
func New[T Resetter](maxPerType int) *Pool[T] {
	return &Pool[T]{MaxPerType: maxPerType}
}

func (p *Pool[T]) init() {
	if p.free != nil {
		return
	}
	p.free = map[reflect.Type][]T{}
	p.pooled = map[any]bool{}
	p.stats = map[reflect.Type]*TypeStats{}
}

func (p *Pool[T]) typeStats(typ reflect.Type) *TypeStats {
	ts := p.stats[typ]
	if ts == nil {
		ts = &TypeStats{}
		p.stats[typ] = ts
	}
	return ts
}

// Acquire returns the most recently released instance of exactly
// the given type, or false if there is none, in which case the
// caller should construct a new instance.
func (p *Pool[T]) Acquire(typ reflect.Type) (T, bool) {
	p.init()
	ts := p.typeStats(typ)
	ts.Acquires++
	fl := p.free[typ]
	if len(fl) == 0 {
		var zero T
		return zero, false
	}
	n := len(fl) - 1
	v := fl[n]
	var zero T
	fl[n] = zero
	p.free[typ] = fl[:n]
	delete(p.pooled, any(v))
	ts.Reuses++
	ts.Free = n
	return v, true
}

// Release resets the given instance and makes it available to
// [Pool.Acquire]. The caller must have fully unlinked the instance.
// It returns [ErrDoubleRelease] if the instance is already pooled.
func (p *Pool[T]) Release(v T) error {
	p.init()
	if p.pooled[any(v)] {
		return fmt.Errorf("%w: %T", ErrDoubleRelease, v)
	}
	typ := reflect.TypeOf(v)
	ts := p.typeStats(typ)
	v.ResetPooled()
	ts.Releases++
	fl := p.free[typ]
	if p.MaxPerType > 0 && len(fl) >= p.MaxPerType {
		ts.Dropped++
		slog.Debug("pool.Pool.Release: free list full, dropping instance", "type", typ)
		return nil
	}
	p.free[typ] = append(fl, v)
	p.pooled[any(v)] = true
	ts.Free = len(fl) + 1
	return nil
}

// IsPooled returns whether the given instance is currently in the pool.
func (p *Pool[T]) IsPooled(v T) bool {
	return p.pooled[any(v)]
}

// Len returns the number of free instances of the given type.
func (p *Pool[T]) Len(typ reflect.Type) int {
	return len(p.free[typ])
}

// Stats returns a snapshot of the statistics for the given type.
func (p *Pool[T]) Stats(typ reflect.Type) TypeStats {
	if ts := p.stats[typ]; ts != nil {
		return *ts
	}
	return TypeStats{}
}

// Types returns the types that have been acquired or released, sorted by name.
func (p *Pool[T]) Types() []reflect.Type {
	res := make([]reflect.Type, 0, len(p.stats))
	for t := range p.stats {
		res = append(res, t)
	}
	slices.SortFunc(res, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return res
}

// Clear drops every free instance, keeping the statistics.
func (p *Pool[T]) Clear() {
	clear(p.free)
	clear(p.pooled)
	for _, ts := range p.stats {
		ts.Free = 0
	}
}
