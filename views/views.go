// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package views implements the views of the layout, plot, renderer
// and tool models, and the [Pipeline] that lays them out and paints
// them onto a canvas each frame.
package views

import (
	"image/color"
	"log/slog"
	"slices"

	"cogentcore.org/figure/colors"
	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/scales"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/resource"
	"cogentcore.org/figure/view"
)

// LayoutView is implemented by the views of layout models.
type LayoutView interface {
	view.View

	// Node returns the layout node of the view.
	Node() *layout.Node

	// Plots returns the plot views at or below this view, in
	// layout order.
	Plots() []*PlotView
}

// RendererView is implemented by the views of plot renderers.
type RendererView interface {
	view.View

	// Paint paints the renderer. It must not change any model.
	Paint(ctx *Context)
}

// Panel is implemented by renderer views that take space on a
// side of the plot frame.
type Panel interface {

	// PanelSize returns the extent of the panel away from the frame.
	PanelSize(ctx *Context) float32
}

// Context is what renderer views paint with: the canvas, the plot
// frame, and the ranges and scales of the plot.
type Context struct {
	Canvas render.Canvas

	// Frame is the box of the plot frame, in canvas pixels.
	Frame math32.Box2

	// X and Y map data to canvas coordinates.
	X, Y scales.Scale

	// XRange and YRange are the data ranges of the plot.
	XRange, YRange ranges.Interval

	// offsets are the distances of side panels from the frame.
	offsets map[model.Model]float32
}

// Scale returns the scale of dimension d.
func (c *Context) Scale(d math32.Dims) scales.Scale {
	if d == math32.X {
		return c.X
	}
	return c.Y
}

// Range returns the data range of dimension d.
func (c *Context) Range(d math32.Dims) ranges.Interval {
	if d == math32.X {
		return c.XRange
	}
	return c.YRange
}

// Offset returns the distance of the panel of m from the frame.
func (c *Context) Offset(m model.Model) float32 { return c.offsets[m] }

// DataFrame returns the frame edges in data coordinates.
func (c *Context) DataFrame() (x0, x1, y0, y1 float64) {
	f := c.Frame
	x0, x1 = c.X.Invert(float64(f.Min.X)), c.X.Invert(float64(f.Max.X))
	y0, y1 = c.Y.Invert(float64(f.Max.Y)), c.Y.Invert(float64(f.Min.Y))
	return
}

// Valid returns whether both scales can map values.
func (c *Context) Valid() bool {
	return c.X != nil && c.Y != nil && c.X.Valid() && c.Y.Valid()
}

// NewFactory returns a factory with the views of all models.
// Image glyphs load their images through images.
func NewFactory(images *resource.Cache) *view.Factory {
	f := view.NewFactory()
	box := func(m model.Model) view.View { return &BoxView{} }
	f.Register("Row", box).
		Register("Column", box).
		Register("GridBox", box).
		Register("Spacer", func(m model.Model) view.View { return &SpacerView{} }).
		Register("Plot", func(m model.Model) view.View { return &PlotView{} }).
		Register("GlyphRenderer", func(m model.Model) view.View { return &GlyphRendererView{Images: images} }).
		Register("Axis", func(m model.Model) view.View { return &AxisView{} }).
		Register("Grid", func(m model.Model) view.View { return &GridView{} }).
		Register("BoxAnnotation", func(m model.Model) view.View { return &BoxAnnotationView{} }).
		Register("PanTool", func(m model.Model) view.View { return &PanView{} }).
		Register("WheelZoomTool", func(m model.Model) view.View { return &WheelZoomView{} }).
		Register("BoxSelectTool", func(m model.Model) view.View { return &BoxSelectView{} }).
		Register("ResetTool", func(m model.Model) view.View { return &ResetView{} })
	return f
}

// fx returns a float32 as float64.
func fx(v float32) float64 { return float64(v) }

// rgba returns the color of v with alpha applied, or false if v is
// null or not a color.
func rgba(v any, alpha float64) (color.RGBA, bool) {
	if v == nil {
		return color.RGBA{}, false
	}
	c, err := colors.FromAny(v)
	if err != nil {
		slog.Debug("views: invalid color", "value", v, "err", err)
		return color.RGBA{}, false
	}
	if alpha < 1 {
		c = colors.WithAlpha(c, alpha)
	}
	return c, true
}

// rect sets a rectangle path for a box.
func rect(c render.Canvas, b math32.Box2) {
	c.Rect(fx(b.Min.X), fx(b.Min.Y), fx(b.Width()), fx(b.Height()))
}

// watchDeps replaces the change handlers of v on the models old by
// handlers on deps that request a repaint, and returns the models
// now watched. Nil deps are skipped.
func watchDeps(v view.View, old []model.Model, deps ...model.Model) []model.Model {
	for _, m := range old {
		view.OffChange(v, m)
	}
	var watched []model.Model
	for _, m := range deps {
		if m == nil || slices.Contains(watched, m) {
			continue
		}
		watched = append(watched, m)
		view.OnChange(v, m, func(string) { v.AsView().NeedsRender() })
	}
	return watched
}
