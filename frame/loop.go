// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"context"
	"time"
)

// DefaultInterval is the default time between frames.
const DefaultInterval = time.Second / 60

// Loop owns the goroutine on which all model, layout and paint work
// runs. Other goroutines hand work to it with [Loop.Post], and the
// tasks of its [Scheduler] run at most once per Interval.
type Loop struct {
	Scheduler

	// Interval is the minimum time between frames.
	Interval time.Duration

	posts chan func()
	wake  chan struct{}
}

// NewLoop returns a new loop running frames at the given interval,
// or [DefaultInterval] if it is zero.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	l := &Loop{Interval: interval, posts: make(chan func(), 64), wake: make(chan struct{}, 1)}
	l.Requested = l.notify
	return l
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Post runs fun on the loop goroutine. It may be called from any
// goroutine, and blocks only when the queue is full.
func (l *Loop) Post(fun func()) {
	l.posts <- fun
}

// Run processes posted functions and frames until ctx is done,
// returning the context error.
func (l *Loop) Run(ctx context.Context) error {
	var last time.Time
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case fun := <-l.posts:
			run(fun)
		case <-l.wake:
		case <-timerC:
			timerC = nil
			last = time.Now()
			l.RunFrame()
		}
		if timerC == nil && l.Len() > 0 {
			wait := max(l.Interval-time.Since(last), 0)
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			timerC = timer.C
		}
	}
}

// Drain runs posted functions and frames on the calling goroutine
// until nothing is left, for headless rendering and tests.
func (l *Loop) Drain() {
	for {
		select {
		case fun := <-l.posts:
			run(fun)
			continue
		default:
		}
		if l.RunFrame() == 0 && len(l.posts) == 0 {
			return
		}
	}
}
