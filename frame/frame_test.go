// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesce(t *testing.T) {
	var s Scheduler
	var got []string
	for i := range 100 {
		first := s.Request("paint", func() { got = append(got, "paint") })
		assert.Equal(t, i == 0, first)
	}
	s.Request("layout", func() { got = append(got, "layout") })
	s.Request("paint", func() { got = append(got, "paint2") })
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.RunFrame())
	assert.Equal(t, []string{"paint2", "layout"}, got)
	assert.Equal(t, 0, s.RunFrame())
	assert.Equal(t, 1, s.Frames())
}

func TestCancel(t *testing.T) {
	var s Scheduler
	ran := false
	s.Request("pan", func() { ran = true })
	assert.True(t, s.IsPending("pan"))
	assert.True(t, s.Cancel("pan"))
	assert.False(t, s.Cancel("pan"))
	s.RunFrame()
	assert.False(t, ran)
}

func TestRequestDuringFrame(t *testing.T) {
	var s Scheduler
	n := 0
	var again func()
	again = func() {
		n++
		if n < 3 {
			s.Request("again", again)
		}
	}
	s.Request("again", again)
	assert.Equal(t, 1, s.RunFrame())
	assert.Equal(t, 1, n)
	assert.True(t, s.IsPending("again"))
	s.RunFrame()
	s.RunFrame()
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, s.Len())
}

func TestPanickingTask(t *testing.T) {
	var s Scheduler
	ran := false
	s.Request(1, func() { panic("boom") })
	s.Request(2, func() { ran = true })
	assert.Equal(t, 2, s.RunFrame())
	assert.True(t, ran)
}

func TestRequested(t *testing.T) {
	var s Scheduler
	n := 0
	s.Requested = func() { n++ }
	s.Request("a", func() {})
	s.Request("b", func() {})
	assert.Equal(t, 1, n)
	s.RunFrame()
	s.Request("a", func() {})
	assert.Equal(t, 2, n)
}

func TestLoop(t *testing.T) {
	l := NewLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- l.Run(ctx) }()

	var frames atomic.Int32
	ran := make(chan struct{})
	l.Post(func() {
		for range 10 {
			l.Request("paint", func() {
				frames.Add(1)
				close(ran)
			})
		}
	})
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("frame did not run")
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, int32(1), frames.Load())
}

func TestDrain(t *testing.T) {
	l := NewLoop(0)
	assert.Equal(t, DefaultInterval, l.Interval)
	var order []string
	l.Post(func() {
		order = append(order, "post")
		l.Request("paint", func() { order = append(order, "paint") })
	})
	l.Drain()
	assert.Equal(t, []string{"post", "paint"}, order)
}
