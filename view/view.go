// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view provides the render-time counterparts of models:
// one [View] per model, built by a [Manager] from a [Factory] and
// kept in sync with the document.
package view

import (
	"slices"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
	"cogentcore.org/figure/signal"
)

// View is implemented by all views.
type View interface {

	// AsView returns the embedded [Base].
	AsView() *Base

	// Init is called once after the views of every model referenced
	// by this view's model have been built.
	Init() error
}

// Destroyer is implemented by views with teardown work of their
// own. Destroy is called before their connections are dropped.
type Destroyer interface {
	Destroy()
}

// Finisher is implemented by views whose first render can complete
// after their first paint, for example while images are loading.
type Finisher interface {
	HasFinished() bool
}

// Base implements the common state and behavior of views.
// Every connection made through [Connect] is dropped by [Base.Remove].
type Base struct {

	// This is the view as its true underlying type.
	This View

	// Model is the model this view renders.
	Model model.Model

	// Manager is the manager that built this view.
	Manager *Manager

	conns   []connection
	removed bool

	needsRender bool
	needsLayout bool
}

type connection struct {
	sig  signal.Disconnector
	name string
}

// AsView returns the base itself.
func (b *Base) AsView() *Base { return b }

// Init does nothing; views override it.
func (b *Base) Init() error { return nil }

// Connect connects fun to s as a handler owned by v, so that it is
// disconnected when v is removed. It returns false if v already
// has a handler with that name on s.
func Connect[T any](v View, s *signal.Signal[T], name string, fun func(x T)) bool {
	b := v.AsView()
	if !s.Connect(b, name, fun) {
		return false
	}
	b.conns = append(b.conns, connection{sig: s, name: name})
	return true
}

// Disconnect removes the handler of v named name from s,
// returning false if there was none.
func Disconnect[T any](v View, s *signal.Signal[T], name string) bool {
	b := v.AsView()
	if !s.Disconnect(b, name) {
		return false
	}
	b.conns = slices.DeleteFunc(b.conns, func(c connection) bool {
		return c.name == name && c.sig == signal.Disconnector(s)
	})
	return true
}

// OnChange connects fun to the change signal of the model m,
// called for changes of any of the named properties, or any
// property if none are named.
func OnChange(v View, m model.Model, fun func(name string), names ...string) bool {
	key := "change:" + m.ID()
	return Connect(v, m.AsModel().Changed(), key, func(c props.Change) {
		if len(names) == 0 {
			fun(c.Name)
			return
		}
		for _, n := range names {
			if n == c.Name {
				fun(c.Name)
				return
			}
		}
	})
}

// OffChange removes the handler connected by [OnChange] for m.
func OffChange(v View, m model.Model) bool {
	return Disconnect(v, m.AsModel().Changed(), "change:"+m.ID())
}

// Connections returns the number of live connections of the view.
func (b *Base) Connections() int { return len(b.conns) }

// Removed returns whether the view has been removed.
func (b *Base) Removed() bool { return b.removed }

// Remove tears the view down: it calls [Destroyer.Destroy] if
// implemented and then drops every connection made through
// [Connect]. Removing twice does nothing.
func (b *Base) Remove() {
	if b.removed {
		return
	}
	if d, ok := b.This.(Destroyer); ok {
		d.Destroy()
	}
	for _, c := range b.conns {
		c.sig.DisconnectReceiver(b)
	}
	b.conns = nil
	b.removed = true
}

// NeedsRender marks the view as needing a repaint and tells the
// manager, which requests a frame.
func (b *Base) NeedsRender() {
	if b.removed {
		return
	}
	b.needsRender = true
	if b.Manager != nil {
		b.Manager.invalidated(b.This, false)
	}
}

// NeedsLayout marks the view as needing a new layout and a repaint.
func (b *Base) NeedsLayout() {
	if b.removed {
		return
	}
	b.needsLayout = true
	b.needsRender = true
	if b.Manager != nil {
		b.Manager.invalidated(b.This, true)
	}
}

// NeedsRenderFlag returns whether a repaint has been requested
// since the last [Base.ClearFlags].
func (b *Base) NeedsRenderFlag() bool { return b.needsRender }

// NeedsLayoutFlag returns whether a new layout has been requested
// since the last [Base.ClearFlags].
func (b *Base) NeedsLayoutFlag() bool { return b.needsLayout }

// ClearFlags resets the render and layout flags after a frame.
func (b *Base) ClearFlags() {
	b.needsRender = false
	b.needsLayout = false
}

// HasFinished returns whether the view and all views it depends on
// have completed their first render.
func HasFinished(v View) bool {
	if f, ok := v.(Finisher); ok {
		return f.HasFinished()
	}
	return true
}
