// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"log/slog"
	"math"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/models/tools"
	"cogentcore.org/figure/view"
)

// EventTypes are the kinds of input events dispatched to tools.
type EventTypes int32

const (
	// PanStart starts a drag gesture at X, Y.
	PanStart EventTypes = iota

	// Pan moves a drag gesture to X, Y.
	Pan

	// PanEnd ends a drag gesture at X, Y.
	PanEnd

	// Scroll is a wheel event of Delta units at X, Y.
	Scroll

	// Action triggers the action tool Tool.
	Action
)

// Event is an input event in canvas coordinates.
type Event struct {
	Type  EventTypes
	X, Y  float64
	Delta float64

	// Shift is whether the shift key is held; it makes selections append.
	Shift bool

	// Tool is the tool triggered by an Action event.
	Tool tools.Tool
}

// ToolView is implemented by the views of tools.
type ToolView interface {
	view.View

	// Handle handles an event on the plot, returning whether it did.
	Handle(pv *PlotView, ev Event) bool
}

// Overlayer is implemented by tool views that paint over the plot frame.
type Overlayer interface {
	PaintOverlay(ctx *Context)
}

// Setter ids of tool range changes.
const (
	PanSetter    = "pan"
	ZoomSetter   = "zoom"
	SelectSetter = "select"
	ResetSetter  = "reset"
)

// moveRange sets the range of dimension d of the plot to the data
// interval shown by the frame edges moved to s0 and s1 on screen.
func moveRange(pv *PlotView, d math32.Dims, s0, s1 float64, setter string) {
	s, r := pv.Scale(d), pv.Plot.Range(d)
	if s == nil || r == nil || !s.Valid() {
		return
	}
	start, end := s.Invert(s0), s.Invert(s1)
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return
	}
	errors.Log(r.SetInterval(start, end, setter))
}

// PanView moves the plot ranges by the distance dragged.
type PanView struct {
	view.Base
	Tool *tools.PanTool

	lastX, lastY float64
}

func (v *PanView) Init() error {
	v.Tool = v.Model.(*tools.PanTool)
	return nil
}

func (v *PanView) Handle(pv *PlotView, ev Event) bool {
	switch ev.Type {
	case PanStart:
		v.lastX, v.lastY = ev.X, ev.Y
	case Pan, PanEnd:
		dx, dy := ev.X-v.lastX, ev.Y-v.lastY
		v.lastX, v.lastY = ev.X, ev.Y
		onX, onY := tools.ActsOn(v.Tool.GetString("dimensions"))
		if onX && dx != 0 {
			t := pv.targets[math32.X]
			moveRange(pv, math32.X, t.Start()-dx, t.End()-dx, PanSetter)
		}
		if onY && dy != 0 {
			t := pv.targets[math32.Y]
			moveRange(pv, math32.Y, t.Start()-dy, t.End()-dy, PanSetter)
		}
	default:
		return false
	}
	return true
}

// WheelZoomView scales the plot ranges around the pointer, or around
// the frame center if maintain_focus is off.
type WheelZoomView struct {
	view.Base
	Tool *tools.WheelZoomTool
}

func (v *WheelZoomView) Init() error {
	v.Tool = v.Model.(*tools.WheelZoomTool)
	return nil
}

func (v *WheelZoomView) Handle(pv *PlotView, ev Event) bool {
	if ev.Type != Scroll {
		return false
	}
	factor := max(-0.9, min(0.9, v.Tool.GetFloat("speed")*ev.Delta))
	if factor == 0 {
		return true
	}
	focus := v.Tool.GetBool("maintain_focus")
	onX, onY := tools.ActsOn(v.Tool.GetString("dimensions"))
	zoom := func(d math32.Dims, at float64) {
		t := pv.targets[d]
		t0, t1 := t.Start(), t.End()
		if !focus {
			at = (t0 + t1) / 2
		}
		moveRange(pv, d, t0+(at-t0)*factor, t1+(at-t1)*factor, ZoomSetter)
	}
	if onX {
		zoom(math32.X, ev.X)
	}
	if onY {
		zoom(math32.Y, ev.Y)
	}
	return true
}

// BoxSelectView selects the rows of the plot renderers whose glyphs
// fall within a dragged box, showing the box with the tool overlay.
type BoxSelectView struct {
	view.Base
	Tool *tools.BoxSelectTool

	x0, y0 float64
	mode   sources.Modes

	// base are the selections at the start of the drag.
	base map[*sources.Selection][]int
}

func (v *BoxSelectView) Init() error {
	v.Tool = v.Model.(*tools.BoxSelectTool)
	return nil
}

func (v *BoxSelectView) Handle(pv *PlotView, ev Event) bool {
	switch ev.Type {
	case PanStart:
		v.x0, v.y0 = ev.X, ev.Y
		v.mode = v.Tool.Mode()
		if ev.Shift {
			v.mode = sources.ModeAppend
		}
		v.base = map[*sources.Selection][]int{}
		for _, gr := range v.targets(pv) {
			if sel := gr.Selection(); sel != nil {
				v.base[sel] = sel.Indices()
			}
		}
	case Pan:
		box := v.box(pv, ev)
		v.showOverlay(pv, box)
		if v.Tool.GetBool("select_every_mousemove") {
			v.selectBox(pv, box, false)
		}
	case PanEnd:
		v.selectBox(pv, v.box(pv, ev), true)
		if ov := v.Tool.Overlay(); ov != nil {
			errors.Log(ov.Props.SetFrom("visible", false, SelectSetter))
		}
		v.base = nil
	default:
		return false
	}
	return true
}

// box returns the dragged box clipped to the frame, spanning the
// whole frame along dimensions the tool does not act on.
func (v *BoxSelectView) box(pv *PlotView, ev Event) math32.Box2 {
	f := pv.Frame()
	b := math32.B2(float32(min(v.x0, ev.X)), float32(min(v.y0, ev.Y)), float32(max(v.x0, ev.X)), float32(max(v.y0, ev.Y))).Intersect(f)
	onX, onY := tools.ActsOn(v.Tool.GetString("dimensions"))
	if !onX {
		b.Min.X, b.Max.X = f.Min.X, f.Max.X
	}
	if !onY {
		b.Min.Y, b.Max.Y = f.Min.Y, f.Max.Y
	}
	return b
}

func (v *BoxSelectView) showOverlay(pv *PlotView, box math32.Box2) {
	ov := v.Tool.Overlay()
	xs, ys := pv.Scale(math32.X), pv.Scale(math32.Y)
	if ov == nil || xs == nil || ys == nil {
		return
	}
	errors.Log(ov.SetEdges(xs.Invert(fx(box.Min.X)), xs.Invert(fx(box.Max.X)),
		ys.Invert(fx(box.Max.Y)), ys.Invert(fx(box.Min.Y)), SelectSetter))
	errors.Log(ov.Props.SetFrom("visible", true, SelectSetter))
}

// targets returns the renderers the tool selects from: its own
// renderers, or all glyph renderers of the plot.
func (v *BoxSelectView) targets(pv *PlotView) []*renderers.GlyphRenderer {
	var out []*renderers.GlyphRenderer
	for _, m := range v.Tool.GetRefs("renderers") {
		if gr, ok := m.(*renderers.GlyphRenderer); ok {
			out = append(out, gr)
		}
	}
	if len(out) == 0 {
		out = pv.Plot.GlyphRenderers()
	}
	return out
}

// selectBox combines the rows hit by box with the selections at the
// start of the drag. Renderers sharing a source select together.
func (v *BoxSelectView) selectBox(pv *PlotView, box math32.Box2, final bool) {
	ctx := pv.Context(nil)
	hits := map[*sources.Selection][]int{}
	var order []*sources.Selection
	for _, gr := range v.targets(pv) {
		sel := gr.Selection()
		gv, ok := v.Manager.Get(gr).(*GlyphRendererView)
		if sel == nil || !ok {
			continue
		}
		if _, seen := hits[sel]; !seen {
			order = append(order, sel)
			hits[sel] = []int{}
		}
		hits[sel] = append(hits[sel], gv.HitRect(ctx, box)...)
	}
	for _, sel := range order {
		combined := sources.NewSelection(v.base[sel]...)
		if err := combined.Update(sources.NewSelection(hits[sel]...), final, v.mode); err != nil {
			slog.Error("views: box select failed", "tool", v.Tool.ID(), "err", err)
			continue
		}
		errors.Log(sel.Update(combined, final, sources.ModeReplace))
	}
}

func (v *BoxSelectView) PaintOverlay(ctx *Context) {
	ov := v.Tool.Overlay()
	if ov == nil || !ov.IsVisible() {
		return
	}
	if bv, ok := v.Manager.Get(ov).(*BoxAnnotationView); ok {
		bv.Paint(ctx)
	}
}

// ResetView restores the plot ranges: data ranges resume following
// the data and fixed ranges return to their initial interval.
type ResetView struct {
	view.Base
	Tool *tools.ResetTool
}

func (v *ResetView) Init() error {
	v.Tool = v.Model.(*tools.ResetTool)
	return nil
}

func (v *ResetView) Handle(pv *PlotView, ev Event) bool {
	if ev.Type != Action {
		return false
	}
	for d := math32.X; d <= math32.Y; d++ {
		var m model.Model = pv.Plot.Range(d)
		switch r := m.(type) {
		case *ranges.DataRange1d:
			errors.Log(r.Reset())
		case *ranges.Range1d:
			errors.Log(r.Reset())
		}
	}
	pv.NeedsRender()
	return true
}
