// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package embed places the roots of a document into a host: each
// root gets its views, a canvas and a render pipeline, and the
// document is told when every root has rendered once. Documents
// come from inline JSON or from a live websocket session.
package embed

import (
	"fmt"
	"log/slog"
	"math"

	"cogentcore.org/figure/base/keylist"
	"cogentcore.org/figure/document"
	"cogentcore.org/figure/frame"
	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/resource"
	"cogentcore.org/figure/view"
	"cogentcore.org/figure/views"
)

// Host receives the root views of a document, as a page element
// receives the rendered roots.
type Host interface {

	// Mount is called when a root view is created.
	Mount(rv *RootView)

	// Unmount is called when a root view is removed.
	Unmount(rv *RootView)
}

// Titler is implemented by hosts that show the document title.
type Titler interface {
	SetTitle(title string)
}

// Options configure how roots are embedded.
type Options struct {

	// UseForTitle sets the host title from the document title.
	UseForTitle bool

	// Width and Height bound the canvas of a root, which is the
	// natural layout size of the root within them. Zero is 1200 by 900.
	Width, Height int

	// Scheduler runs the frames of the roots. If nil, each root
	// gets its own and must be rendered with [RootView.Render].
	Scheduler *frame.Scheduler

	// Images loads the images of image glyphs; nil disables them.
	Images *resource.Cache

	// NewCanvas returns the canvas of a root; nil uses [render.NewGGCanvas].
	NewCanvas func(root model.Model, width, height int) render.Canvas
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 900
	}
	if o.NewCanvas == nil {
		o.NewCanvas = func(_ model.Model, w, h int) render.Canvas { return render.NewGGCanvas(w, h) }
	}
}

// RootView is the rendering of one root model. Roots whose model has
// no layout view have no canvas or pipeline and are idle at once.
type RootView struct {

	// Model is the root model.
	Model model.Model

	// View is the view of the root, or nil.
	View view.View

	// Canvas is painted by the pipeline, or nil.
	Canvas render.Canvas

	// Pipeline renders the root, or nil.
	Pipeline *views.Pipeline

	manager *view.Manager
	removed bool
}

// Size returns the size of the rendered root in canvas pixels.
func (rv *RootView) Size() math32.Vector2 {
	if rv.Pipeline == nil {
		return math32.Vector2{}
	}
	return rv.Pipeline.Root().Node().Box.Size()
}

// Render runs a frame of the root now.
func (rv *RootView) Render() {
	if rv.Pipeline != nil && !rv.removed {
		rv.Pipeline.Frame()
	}
}

// Remove removes the views of the root. Removing twice does nothing.
func (rv *RootView) Remove() {
	if rv.removed {
		return
	}
	rv.removed = true
	if rv.Pipeline != nil {
		rv.Pipeline.Close()
	} else {
		rv.manager.Close()
	}
}

// Removed returns whether the root view has been removed.
func (rv *RootView) Removed() bool { return rv.removed }

// newRootView builds the views of root and, if it has a layout view,
// its canvas and pipeline. idle is called once the root has rendered.
func newRootView(doc *document.Document, root model.Model, opts *Options, idle func()) (*RootView, error) {
	mg := view.NewManager(doc, views.NewFactory(opts.Images))
	v, err := mg.Mount(root)
	if err != nil {
		mg.Close()
		return nil, fmt.Errorf("embed: views of %v: %w", root, err)
	}
	rv := &RootView{Model: root, View: v, manager: mg}
	lv, ok := v.(views.LayoutView)
	if !ok {
		idle()
		return rv, nil
	}
	layout.Solve(lv.Node(), math32.Vec2(float32(opts.Width), float32(opts.Height)))
	sz := lv.Node().Box.Size()
	w := max(1, int(math.Ceil(float64(sz.X))))
	h := max(1, int(math.Ceil(float64(sz.Y))))
	rv.Canvas = opts.NewCanvas(root, w, h)
	sched := opts.Scheduler
	if sched == nil {
		sched = &frame.Scheduler{}
	}
	rv.Pipeline = views.NewPipeline(mg, lv, rv.Canvas, sched)
	rv.Pipeline.OnFinished = idle
	return rv, nil
}

// Standalone is a document placed into a host by
// [AddDocumentStandalone]. It follows the roots of the document,
// creating and removing root views as roots are added and removed.
type Standalone struct {
	Doc  *document.Document
	Host Host

	opts  Options
	roots keylist.List[model.Model, *RootView]
}

// AddDocumentStandalone renders every root of doc into host. The
// document becomes idle once every root has rendered once; roots
// without a layout view count as rendered at once.
func AddDocumentStandalone(doc *document.Document, host Host, opts Options) (*Standalone, error) {
	opts.defaults()
	s := &Standalone{Doc: doc, Host: host, opts: opts}
	doc.Events.Connect(s, "standalone", s.documentChanged)
	for _, root := range doc.Roots() {
		if err := s.add(root); err != nil {
			s.Close()
			return nil, err
		}
	}
	s.setTitle(doc.Title())
	return s, nil
}

// AddModelStandalone renders one model of doc, given by id, into host.
// The model need not be a root.
func AddModelStandalone(doc *document.Document, id string, host Host, opts Options) (*RootView, error) {
	opts.defaults()
	m := doc.ModelByID(id)
	if m == nil {
		return nil, fmt.Errorf("embed: model %q is not in the document", id)
	}
	rv, err := newRootView(doc, m, &opts, func() { doc.NotifyIdle(m) })
	if err != nil {
		return nil, err
	}
	host.Mount(rv)
	return rv, nil
}

func (s *Standalone) add(root model.Model) error {
	if s.roots.Has(root) {
		return nil
	}
	rv, err := newRootView(s.Doc, root, &s.opts, func() { s.Doc.NotifyIdle(root) })
	if err != nil {
		return err
	}
	s.roots.Set(root, rv)
	s.Host.Mount(rv)
	return nil
}

func (s *Standalone) remove(root model.Model) {
	rv, ok := s.roots.AtTry(root)
	if !ok {
		return
	}
	s.roots.DeleteByKey(root)
	rv.Remove()
	s.Host.Unmount(rv)
}

func (s *Standalone) documentChanged(ev document.Event) {
	switch e := ev.(type) {
	case document.RootAdded:
		if err := s.add(e.Model); err != nil {
			slog.Error("embed: cannot render added root", "root", e.Model.ID(), "err", err)
		}
	case document.RootRemoved:
		s.remove(e.Model)
	case document.TitleChanged:
		s.setTitle(e.Title)
	}
}

func (s *Standalone) setTitle(title string) {
	if !s.opts.UseForTitle {
		return
	}
	if t, ok := s.Host.(Titler); ok {
		t.SetTitle(title)
	}
}

// Root returns the root view of root, or nil.
func (s *Standalone) Root(root model.Model) *RootView { return s.roots.At(root) }

// Roots returns the root views in the order the roots were added.
func (s *Standalone) Roots() []*RootView { return s.roots.Values }

// Render runs a frame of every root now.
func (s *Standalone) Render() {
	for _, rv := range s.roots.Values {
		rv.Render()
	}
}

// Close removes every root view and stops following the document.
func (s *Standalone) Close() {
	s.Doc.Events.DisconnectReceiver(s)
	for len(s.roots.Keys) > 0 {
		s.remove(s.roots.Keys[len(s.roots.Keys)-1])
	}
}
