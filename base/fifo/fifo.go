// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fifo provides a single-goroutine first-in first-out
// queue of deferred callbacks that is drained once per cycle.
package fifo

// Queue is an ordered queue of zero-argument callbacks.
// It is not safe for concurrent use; it is meant to be owned
// by a single cycle driver.
type Queue struct {
	pending []func()

	// draining is set while [Queue.Drain] is running.
	draining bool
}

// Push adds the given function to the end of the queue.
// Functions pushed while the queue is draining are kept
// for the next call to [Queue.Drain].
func (q *Queue) Push(fun func()) {
	if fun == nil {
		return
	}
	q.pending = append(q.pending, fun)
}

// Len returns the number of pending functions.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Draining returns whether the queue is currently being drained.
func (q *Queue) Draining() bool {
	return q.draining
}

// Drain runs every function that was pending when Drain was called,
// in the order in which they were pushed, and returns how many ran.
// It is a no-op if called reentrantly from one of the functions.
func (q *Queue) Drain() int {
	if q.draining || len(q.pending) == 0 {
		return 0
	}
	q.draining = true
	batch := q.pending
	q.pending = nil
	for i, fun := range batch {
		batch[i] = nil
		fun()
	}
	q.draining = false
	return len(batch)
}

// Clear drops all pending functions without running them.
func (q *Queue) Clear() {
	q.pending = nil
}
