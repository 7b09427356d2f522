// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"image/color"
	"log/slog"
	"slices"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/layouts"
	"cogentcore.org/figure/models/plots"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/models/scales"
	"cogentcore.org/figure/models/tools"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/view"
)

// paintLevels are the render levels in paint order.
var paintLevels = []renderers.Levels{
	renderers.LevelImage, renderers.LevelUnderlay, renderers.LevelGlyph,
	renderers.LevelGuide, renderers.LevelAnnotation, renderers.LevelOverlay,
}

const titleFontSize = 13

// rangeSetter is implemented by scales.
type rangeSetter interface {
	SetRanges(source, target ranges.Interval) error
}

// PlotView is the view of a [plots.Plot]. It maps the plot ranges to
// the frame through copies of the plot scales whose target ranges
// are the frame edges in canvas pixels.
type PlotView struct {
	view.Base
	Plot *plots.Plot

	// Paints counts the paint passes of the plot.
	Paints int

	node    *layout.Node
	frame   math32.Box2
	targets [2]*ranges.Range1d
	scales  [2]scales.Scale
	offsets map[model.Model]float32
	toolbar *tools.Toolbar

	// dataRanges are the data ranges the plot has reported its bounds to.
	dataRanges [2]*ranges.DataRange1d

	// updating suppresses repaint requests from range updates
	// made by the plot itself.
	updating bool

	// drag is the tool handling the current drag gesture.
	drag ToolView
}

func (v *PlotView) Node() *layout.Node { return v.node }

func (v *PlotView) Plots() []*PlotView { return []*PlotView{v} }

// Frame returns the box of the plot frame.
func (v *PlotView) Frame() math32.Box2 { return v.frame }

// Box returns the box of the whole plot.
func (v *PlotView) Box() math32.Box2 { return v.node.Box }

// Scale returns the scale mapping dimension d to the frame, or nil
// if the plot has no range or scale for d.
func (v *PlotView) Scale(d math32.Dims) scales.Scale { return v.scales[d] }

func (v *PlotView) Init() error {
	v.Plot = v.Model.(*plots.Plot)
	n, err := layouts.Node(v.Plot)
	if err != nil {
		return err
	}
	v.node = n
	v.targets = [2]*ranges.Range1d{ranges.NewRange1d(0, 1), ranges.NewRange1d(1, 0)}
	v.offsets = map[model.Model]float32{}
	v.buildScales()
	v.watchToolbar()
	view.OnChange(v, v.Plot, v.changed)
	return nil
}

func (v *PlotView) changed(name string) {
	switch {
	case name == "x_range" || name == "y_range" || name == "x_scale" || name == "y_scale":
		v.forgetDataRanges()
		v.buildScales()
		v.NeedsRender()
	case name == "visible":
		v.node.Hidden = !v.Plot.Visible()
		v.node.Invalidate()
		v.NeedsLayout()
	case slices.Contains(sizingProps, name):
		v.node.SetSizing(v.Plot.Sizing())
		v.NeedsLayout()
	case name == "toolbar":
		v.watchToolbar()
		v.NeedsRender()
	default:
		v.NeedsRender()
	}
}

func (v *PlotView) watchToolbar() {
	if v.toolbar != nil {
		view.OffChange(v, v.toolbar)
	}
	v.toolbar = v.Plot.Toolbar()
	if v.toolbar != nil {
		view.OnChange(v, v.toolbar, func(string) { v.NeedsRender() })
	}
}

// buildScales replaces the frame scales by new copies of the plot
// scales mapping the current plot ranges.
func (v *PlotView) buildScales() {
	v.dropScales()
	for d := math32.X; d <= math32.Y; d++ {
		tmpl, rng := v.Plot.Scale(d), v.Plot.Range(d)
		if tmpl == nil || rng == nil {
			continue
		}
		s := model.Clone(tmpl)
		if err := s.(rangeSetter).SetRanges(rng, v.targets[d]); err != nil {
			slog.Error("views: plot scale cannot map its range", "plot", v.Plot.ID(), "dim", d, "err", err)
			continue
		}
		v.scales[d] = s
		view.Connect(v, s.Updated(), "scale", func(scales.Scale) {
			if !v.updating {
				v.NeedsRender()
			}
		})
	}
}

// dropScales disconnects the frame scales from the plot ranges.
func (v *PlotView) dropScales() {
	for d, s := range v.scales {
		if s == nil {
			continue
		}
		view.Disconnect(v, s.Updated(), "scale")
		errors.Log(s.(rangeSetter).SetRanges(nil, nil))
		v.scales[d] = nil
	}
}

func (v *PlotView) Destroy() {
	v.forgetDataRanges()
	v.dropScales()
}

// forgetDataRanges removes the plot from the data ranges it updated.
func (v *PlotView) forgetDataRanges() {
	for d, dr := range v.dataRanges {
		if dr != nil {
			dr.RemovePlot(v.Plot)
			v.dataRanges[d] = nil
		}
	}
}

// Contains returns whether m is the plot or one of its renderers,
// tools or tool overlays.
func (v *PlotView) Contains(m model.Model) bool {
	if m == v.Model {
		return true
	}
	for _, r := range v.Plot.Renderers() {
		if r == m {
			return true
		}
	}
	for _, t := range v.tools() {
		if t == m {
			return true
		}
		if bs, ok := t.(*tools.BoxSelectTool); ok && model.Model(bs.Overlay()) == m {
			return true
		}
	}
	return false
}

func (v *PlotView) tools() []tools.Tool {
	if tb := v.Plot.Toolbar(); tb != nil {
		return tb.Tools()
	}
	return nil
}

// Context returns the paint context of the plot for canvas c.
func (v *PlotView) Context(c render.Canvas) *Context {
	return &Context{
		Canvas:  c,
		Frame:   v.frame,
		X:       v.scales[math32.X],
		Y:       v.scales[math32.Y],
		XRange:  v.Plot.Range(math32.X),
		YRange:  v.Plot.Range(math32.Y),
		offsets: v.offsets,
	}
}

// Update recomputes the frame and the data ranges of the plot. It is
// the step of a frame between layout and paint, and may change the
// plot's data ranges.
func (v *PlotView) Update(c render.Canvas) {
	v.updating = true
	defer func() { v.updating = false }()
	v.layoutFrame(c)
	v.updateDataRanges()
	v.layoutFrame(c)
}

// layoutFrame computes the frame inside the plot box, leaving room
// for the side panels, and sets the frame scale targets.
func (v *PlotView) layoutFrame(c render.Canvas) {
	ctx := v.Context(c)
	border := map[string]float32{}
	for _, side := range plots.Sides[:4] {
		var off float32
		for _, r := range v.Plot.SideRenderers(side) {
			p, ok := v.Manager.Get(r).(Panel)
			if !ok || !r.IsVisible() {
				continue
			}
			v.offsets[r] = off
			if ctx.Valid() {
				off += p.PanelSize(ctx)
			}
		}
		border[side] = max(v.Plot.MinBorder(side), off)
	}
	if v.title() != "" {
		border["above"] += 1.5 * titleFontSize
	}
	f := v.node.Box.Inset(border["left"], border["above"], border["right"], border["below"])
	f.Max = f.Max.Max(f.Min)
	v.frame = f
	errors.Log(v.targets[math32.X].SetInterval(fx(f.Min.X), fx(f.Max.X), ranges.AutoSetter))
	errors.Log(v.targets[math32.Y].SetInterval(fx(f.Max.Y), fx(f.Min.Y), ranges.AutoSetter))
}

func (v *PlotView) title() string { return v.Plot.GetString("title") }

// updateDataRanges sets the data ranges of the plot from the bounds
// of its glyph renderers.
func (v *PlotView) updateDataRanges() {
	bounds := map[model.Model]ranges.Bounds{}
	var rs []model.Model
	all := ranges.EmptyBounds()
	for _, gr := range v.Plot.GlyphRenderers() {
		b, err := gr.Bounds()
		if err != nil {
			slog.Warn("views: renderer has no bounds", "renderer", gr.ID(), "err", err)
			continue
		}
		bounds[gr] = b
		rs = append(rs, gr)
		all = all.Union(b)
	}
	if v.Plot.GetBool("match_aspect") && v.frame.Height() > 0 {
		ratio := fx(v.frame.Width()) / fx(v.frame.Height()) * v.Plot.GetFloat("aspect_scale")
		adj := ranges.AdjustForAspect(all, ratio)
		for r := range bounds {
			bounds[r] = adj
		}
	}
	for d := math32.X; d <= math32.Y; d++ {
		if dr, ok := v.Plot.Range(d).(*ranges.DataRange1d); ok {
			v.dataRanges[d] = dr
			errors.Log(dr.Update(v.Plot, rs, bounds, d))
		}
	}
}

// Paint paints the plot: its background, then its renderers level by
// level in the order they were added, then the tool overlays.
func (v *PlotView) Paint(c render.Canvas) {
	v.Paints++
	ctx := v.Context(c)
	box := v.node.Box
	c.Mark("plot:" + v.Plot.ID())
	c.Push()
	c.ClipRect(fx(box.Min.X), fx(box.Min.Y), fx(box.Width()), fx(box.Height()))
	v.paintBackground(c)
	rs := v.Plot.Renderers()
	for _, lvl := range paintLevels {
		c.Mark(lvl.String())
		clip := lvl != renderers.LevelGuide
		if clip {
			c.Push()
			c.ClipRect(fx(v.frame.Min.X), fx(v.frame.Min.Y), fx(v.frame.Width()), fx(v.frame.Height()))
		}
		for _, r := range rs {
			if r.Level() != lvl || !r.IsVisible() {
				continue
			}
			if rv, ok := v.Manager.Get(r).(RendererView); ok {
				rv.Paint(ctx)
			}
		}
		if clip {
			c.Pop()
		}
	}
	c.Mark("tools")
	c.Push()
	c.ClipRect(fx(v.frame.Min.X), fx(v.frame.Min.Y), fx(v.frame.Width()), fx(v.frame.Height()))
	for _, t := range v.tools() {
		if ov, ok := v.Manager.Get(t).(Overlayer); ok {
			ov.PaintOverlay(ctx)
		}
	}
	c.Pop()
	v.paintTitle(c)
	c.Pop()
}

func (v *PlotView) paintBackground(c render.Canvas) {
	c.Mark("background")
	p := v.Plot
	if col, ok := rgba(p.Get("border_fill_color"), p.GetFloat("border_fill_alpha")); ok {
		c.SetFill(col)
		rect(c, v.node.Box)
		c.Fill()
	}
	if col, ok := rgba(p.Get("background_fill_color"), p.GetFloat("background_fill_alpha")); ok {
		c.SetFill(col)
		rect(c, v.frame)
		c.Fill()
	}
	if col, ok := rgba(p.Get("outline_line_color"), 1); ok {
		c.SetStroke(col, p.GetFloat("outline_line_width"), nil)
		rect(c, v.frame)
		c.Stroke()
	}
}

func (v *PlotView) paintTitle(c render.Canvas) {
	t := v.title()
	if t == "" {
		return
	}
	c.SetFill(titleColor)
	c.Text(t, fx(v.frame.Min.X), fx(v.node.Box.Min.Y)+fx(v.Plot.MinBorder("above")), titleFontSize, 0, 0, 0)
}

// Dispatch handles a pointer event with the active tools of the plot,
// returning whether a tool handled it. Gestures start only inside
// the frame.
func (v *PlotView) Dispatch(ev Event) bool {
	inFrame := v.frame.ContainsPoint(math32.Vec2(float32(ev.X), float32(ev.Y)))
	tb := v.Plot.Toolbar()
	switch ev.Type {
	case PanStart:
		v.drag = nil
		if !inFrame || tb == nil {
			return false
		}
		tv, ok := v.Manager.Get(tb.Active(tools.Drag)).(ToolView)
		if !ok {
			return false
		}
		v.drag = tv
		return tv.Handle(v, ev)
	case Pan, PanEnd:
		if v.drag == nil {
			return false
		}
		tv := v.drag
		if ev.Type == PanEnd {
			v.drag = nil
		}
		return tv.Handle(v, ev)
	case Scroll:
		if !inFrame || tb == nil {
			return false
		}
		if tv, ok := v.Manager.Get(tb.Active(tools.Scroll)).(ToolView); ok {
			return tv.Handle(v, ev)
		}
	case Action:
		if ev.Tool == nil {
			return false
		}
		if tv, ok := v.Manager.Get(ev.Tool).(ToolView); ok {
			return tv.Handle(v, ev)
		}
	}
	return false
}

var titleColor = color.RGBA{0x44, 0x44, 0x44, 0xff}
