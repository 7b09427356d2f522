// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import (
	"context"
	"image"
	"log/slog"
	"sync"
)

// States are the loading states of a cached image.
type States int32

const (
	Loading States = iota
	Loaded
	Failed
)

func (s States) String() string {
	return [...]string{"loading", "loaded", "failed"}[s]
}

type entry struct {
	state  States
	img    image.Image
	err    error
	notify []func()
}

// Cache holds the images of a set of views by source, loading each
// source once. A failed source stays failed: it is drawn as missing
// without affecting other images.
type Cache struct {
	Loader *Loader

	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	entries map[string]*entry
}

// NewCache returns a new cache loading with l.
func NewCache(l *Loader) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{Loader: l, ctx: ctx, cancel: cancel, entries: map[string]*entry{}}
}

// Get returns the image of src and its state. If src has not been
// requested before, it starts loading it. While src is loading,
// notify is called once loading ends.
func (c *Cache) Get(src string, opts Options, notify func()) (image.Image, States) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[src]
	if !ok {
		e = &entry{state: Loading}
		c.entries[src] = e
		c.Loader.Load(c.ctx, src, opts,
			func(img image.Image) { c.finish(src, img, nil) },
			func(err error) { c.finish(src, nil, err) })
	}
	if e.state == Loading && notify != nil {
		e.notify = append(e.notify, notify)
	}
	return e.img, e.state
}

// Err returns the error of a failed source.
func (c *Cache) Err(src string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[src]; ok {
		return e.err
	}
	return nil
}

func (c *Cache) finish(src string, img image.Image, err error) {
	c.mu.Lock()
	e := c.entries[src]
	if e == nil {
		c.mu.Unlock()
		return
	}
	if err != nil {
		slog.Warn("resource: image failed to load", "src", abbrev(src), "err", err)
		e.state, e.err = Failed, err
	} else {
		e.state, e.img = Loaded, img
	}
	notify := e.notify
	e.notify = nil
	c.mu.Unlock()
	for _, fun := range notify {
		fun()
	}
}

// Pending returns the number of sources still loading.
func (c *Cache) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.state == Loading {
			n++
		}
	}
	return n
}

// Close stops the loads in progress.
func (c *Cache) Close() {
	c.cancel()
}
