// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"image/color"
	"log/slog"

	"cogentcore.org/figure/document"
	"cogentcore.org/figure/frame"
	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/view"
)

// Stats count the work done by a [Pipeline].
type Stats struct {

	// Frames is the number of frames run.
	Frames int

	// Layouts is the number of frames that solved the layout.
	Layouts int

	// Paints is the number of plots painted.
	Paints int
}

// Pipeline renders the views of one mounted root onto a canvas. View
// invalidations request a frame from the scheduler; each frame lays
// out the tree if needed, updates the frames and data ranges of the
// affected plots, and paints them. Range changes from tools only
// repaint the plots that use the ranges.
type Pipeline struct {

	// Scheduler runs the frames; the pipeline requests at most one
	// pending frame at a time.
	Scheduler *frame.Scheduler

	// Canvas is painted on.
	Canvas render.Canvas

	// Background fills the canvas before a full repaint.
	Background color.RGBA

	// OnFinished, if set, is called once, after the first frame in
	// which every view has finished rendering.
	OnFinished func()

	Stats Stats

	manager  *view.Manager
	root     LayoutView
	solver   *layout.Solver
	dirty    map[*PlotView]bool
	full     bool
	finished bool
	drag     *PlotView
}

// NewPipeline returns a pipeline painting root, a view of mg, onto
// canvas, and requests its first frame from sched.
func NewPipeline(mg *view.Manager, root LayoutView, canvas render.Canvas, sched *frame.Scheduler) *Pipeline {
	p := &Pipeline{
		Scheduler:  sched,
		Canvas:     canvas,
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		manager:    mg,
		root:       root,
		solver:     layout.NewSolver(root.Node()),
		dirty:      map[*PlotView]bool{},
		full:       true,
	}
	mg.Invalidated = p.invalidated
	p.request()
	return p
}

// Manager returns the view manager of the pipeline.
func (p *Pipeline) Manager() *view.Manager { return p.manager }

// Root returns the root view.
func (p *Pipeline) Root() LayoutView { return p.root }

// Solver returns the layout solver of the root.
func (p *Pipeline) Solver() *layout.Solver { return p.solver }

// Finished returns whether every view has finished rendering.
func (p *Pipeline) Finished() bool { return p.finished }

func (p *Pipeline) request() {
	if p.Scheduler != nil {
		p.Scheduler.Request(p, p.Frame)
	}
}

// invalidated marks the plots affected by a change of v: the plot
// itself for plot views, the plots containing the model of v for
// other views, or all plots if none does.
func (p *Pipeline) invalidated(v view.View, layout bool) {
	if layout {
		p.full = true
	}
	if pv, ok := v.(*PlotView); ok {
		p.dirty[pv] = true
	} else {
		m := v.AsView().Model
		matched := false
		for _, pv := range p.root.Plots() {
			if pv.Contains(m) {
				p.dirty[pv] = true
				matched = true
			}
		}
		if !matched {
			p.full = true
		}
	}
	p.request()
}

// Frame lays out, updates and paints what changed since the last
// frame. It is the task the pipeline requests from its scheduler,
// and may also be called directly.
func (p *Pipeline) Frame() {
	p.Stats.Frames++
	size := p.Canvas.Size()
	if p.solver.Resize(math32.Vec2(float32(size.X), float32(size.Y))) {
		p.Stats.Layouts++
		p.full = true
	}
	plots := p.root.Plots()
	if p.full {
		for _, pv := range plots {
			p.dirty[pv] = true
		}
	}
	p.update(plots)

	doc := p.manager.Document()
	if doc != nil {
		doc.BeginPaint()
	}
	c := p.Canvas
	if p.full {
		c.Mark("clear")
		c.SetFill(p.Background)
		c.Rect(0, 0, float64(size.X), float64(size.Y))
		c.Fill()
	}
	for _, pv := range plots {
		if !p.dirty[pv] || pv.node.Hidden || pv.node.Box.IsEmpty() {
			continue
		}
		pv.Paint(c)
		p.Stats.Paints++
	}
	if doc != nil {
		doc.EndPaint()
	}

	for _, v := range p.manager.Views() {
		v.AsView().ClearFlags()
	}
	clear(p.dirty)
	p.full = false
	if p.Scheduler != nil {
		p.Scheduler.Cancel(p)
	}
	p.checkFinished()
}

// update updates the dirty plots until no plot becomes dirty, as
// updating a plot may change ranges shared with others.
func (p *Pipeline) update(plots []*PlotView) {
	done := map[*PlotView]bool{}
	for range len(plots) + 1 {
		progress := false
		for _, pv := range plots {
			if p.dirty[pv] && !done[pv] {
				done[pv] = true
				progress = true
				pv.Update(p.Canvas)
			}
		}
		if !progress {
			return
		}
	}
	slog.Warn("views: plot updates did not settle", "plots", len(plots))
}

func (p *Pipeline) checkFinished() {
	if p.finished {
		return
	}
	for _, v := range p.manager.Views() {
		if !view.HasFinished(v) {
			return
		}
	}
	p.finished = true
	if p.OnFinished != nil {
		p.OnFinished()
	}
}

// plotAt returns the visible plot whose box contains x, y, or nil.
func (p *Pipeline) plotAt(x, y float64) *PlotView {
	pt := math32.Vec2(float32(x), float32(y))
	for _, pv := range p.root.Plots() {
		if !pv.node.Hidden && pv.node.Box.ContainsPoint(pt) {
			return pv
		}
	}
	return nil
}

// Dispatch sends an input event to the plot under it, or for drags
// to the plot where the drag started, or for actions to the plot
// owning the tool. It returns whether a tool handled the event.
func (p *Pipeline) Dispatch(ev Event) bool {
	var pv *PlotView
	switch ev.Type {
	case PanStart:
		pv = p.plotAt(ev.X, ev.Y)
		p.drag = pv
	case Pan:
		pv = p.drag
	case PanEnd:
		pv, p.drag = p.drag, nil
	case Scroll:
		pv = p.plotAt(ev.X, ev.Y)
	case Action:
		pv = p.toolPlot(ev.Tool)
	}
	if pv == nil {
		return false
	}
	return pv.Dispatch(ev)
}

func (p *Pipeline) toolPlot(t model.Model) *PlotView {
	if t == nil {
		return nil
	}
	for _, pv := range p.root.Plots() {
		if pv.Contains(t) {
			return pv
		}
	}
	return nil
}

// Close cancels the pending frame and removes all views.
func (p *Pipeline) Close() {
	if p.Scheduler != nil {
		p.Scheduler.Cancel(p)
	}
	p.manager.Invalidated = nil
	p.manager.Close()
}

// Document returns the document of the views, or nil.
func (p *Pipeline) Document() *document.Document { return p.manager.Document() }
