// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame coalesces high-frequency update requests into
// frames: a [Scheduler] keeps at most one pending task per key,
// and a [Loop] runs frames on a single goroutine at a fixed rate
// while delivering work posted from other goroutines.
package frame

import (
	"log/slog"
	"sync"

	"cogentcore.org/figure/base/keylist"
)

// Scheduler holds the tasks pending for the next frame. Requesting
// a key that is already pending replaces its task without moving it,
// so any number of requests within a frame run once. It is safe for
// concurrent use; tasks run on the goroutine calling RunFrame.
type Scheduler struct {

	// Requested is called, without the lock held, when the first
	// task is requested while nothing is pending.
	Requested func()

	mu      sync.Mutex
	pending keylist.List[any, func()]
	frames  int
}

// Request schedules fun to run in the next frame under key,
// returning false if a task for key was already pending.
func (s *Scheduler) Request(key any, fun func()) bool {
	s.mu.Lock()
	if s.pending.Has(key) {
		s.pending.Set(key, fun)
		s.mu.Unlock()
		return false
	}
	first := s.pending.Len() == 0
	s.pending.Add(key, fun)
	notify := s.Requested
	s.mu.Unlock()
	if first && notify != nil {
		notify()
	}
	return true
}

// Cancel removes the pending task for key, returning whether
// there was one.
func (s *Scheduler) Cancel(key any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending.Has(key) {
		return false
	}
	s.pending.DeleteByKey(key)
	return true
}

// IsPending returns whether a task for key is pending.
func (s *Scheduler) IsPending(key any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Has(key)
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Len()
}

// Frames returns the number of frames run so far that ran a task.
func (s *Scheduler) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// RunFrame runs the pending tasks in request order and returns how
// many ran. Tasks requested while running go to the next frame.
// A panicking task is logged and does not stop the others.
func (s *Scheduler) RunFrame() int {
	s.mu.Lock()
	tasks := s.pending.Values
	s.pending.Reset()
	if len(tasks) > 0 {
		s.frames++
	}
	s.mu.Unlock()
	for _, t := range tasks {
		run(t)
	}
	return len(tasks)
}

func run(fun func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("frame: task panicked", "panic", r)
		}
	}()
	fun()
}
