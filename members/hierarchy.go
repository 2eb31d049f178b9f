// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package members provides the member path cache: deduplicated
// descriptors of the reflective paths from the inspected targets
// down to individual fields, properties, elements and parameters.
package members

import (
	"log/slog"
	"reflect"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/reflection"
)

// ErrStaleReference is returned when a descriptor no longer resolves,
// because the targets changed or a host object on its path was destroyed.
var ErrStaleReference = errors.New("members: stale reference")

// key is the deduplication key of a [LinkedMemberInfo].
type key struct {
	parent *LinkedMemberInfo
	member reflection.Member
	index  int
	static bool
}

// Hierarchy is a cache of [LinkedMemberInfo] descriptors for one set of
// inspected targets. Requests for the same member through the same parent
// always return the same descriptor, until the targets change.
type Hierarchy struct {
	provider   reflection.Provider
	targets    []reflect.Value
	root       *LinkedMemberInfo
	cache      map[key]*LinkedMemberInfo
	generation uint64
	nextID     uint64
}

// New returns a new [Hierarchy] using the given reflection provider.
func New(provider reflection.Provider) *Hierarchy {
	return &Hierarchy{provider: provider, cache: map[key]*LinkedMemberInfo{}}
}

// Provider returns the reflection provider of the hierarchy.
func (h *Hierarchy) Provider() reflection.Provider {
	return h.provider
}

// Generation returns the number of times the targets have been set.
// Descriptors from an older generation are stale.
func (h *Hierarchy) Generation() uint64 {
	return h.generation
}

// Len returns the number of cached descriptors, not including the root.
func (h *Hierarchy) Len() int {
	return len(h.cache)
}

// Targets returns the inspected targets.
func (h *Hierarchy) Targets() []reflect.Value {
	return h.targets
}

// SetTargets sets the inspected targets, which should be pointers.
// It clears the whole cache, making every existing descriptor stale.
// Targets whose type differs from the first target are dropped.
func (h *Hierarchy) SetTargets(targets ...any) {
	h.generation++
	clear(h.cache)
	h.targets = h.targets[:0]
	h.root = nil
	var typ reflect.Type
	for _, t := range targets {
		v := reflect.ValueOf(t)
		if !v.IsValid() {
			continue
		}
		if typ == nil {
			typ = v.Type()
		} else if v.Type() != typ {
			slog.Warn("members.Hierarchy.SetTargets: dropping target of different type", "type", v.Type(), "want", typ)
			continue
		}
		h.targets = append(h.targets, v)
	}
	if typ == nil {
		return
	}
	h.nextID++
	h.root = &LinkedMemberInfo{
		ID:              h.nextID,
		Type:            typ,
		CollectionIndex: -1,
		hierarchy:       h,
		generation:      h.generation,
	}
}

// Root returns the descriptor of the targets themselves,
// or nil if there are no targets.
func (h *Hierarchy) Root() *LinkedMemberInfo {
	return h.root
}

// Get returns the descriptor for the given member reached through the
// given parent descriptor, creating and caching it if needed. The index
// is the collection index for elements, and -1 otherwise.
func (h *Hierarchy) Get(parent *LinkedMemberInfo, member reflection.Member, index int) *LinkedMemberInfo {
	k := key{parent: parent, member: member, index: index, static: member.IsStatic()}
	if lm, ok := h.cache[k]; ok {
		return lm
	}
	h.nextID++
	lm := &LinkedMemberInfo{
		ID:              h.nextID,
		Parent:          parent,
		Member:          member,
		Type:            member.Type(),
		Static:          member.IsStatic(),
		CollectionIndex: index,
		hierarchy:       h,
		generation:      h.generation,
	}
	h.cache[k] = lm
	return lm
}
