// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"math"

	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/guides"
	"cogentcore.org/figure/models/tickers"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/view"
)

// AxisView paints a [guides.Axis] on its side of the plot frame,
// at the offset given by the axes between it and the frame.
type AxisView struct {
	view.Base
	Axis *guides.Axis

	deps []model.Model
}

func (v *AxisView) Init() error {
	v.Axis = v.Model.(*guides.Axis)
	view.OnChange(v, v.Axis, func(name string) {
		if name == "ticker" || name == "formatter" {
			v.watch()
		}
		v.NeedsRender()
	})
	v.watch()
	return nil
}

func (v *AxisView) watch() {
	v.deps = watchDeps(v, v.deps, v.Axis.Ticker(), v.Axis.Formatter())
}

// axisGeometry is where an axis is drawn: the position of its line
// across the dimension it shows, and the direction away from the frame.
type axisGeometry struct {
	dim  math32.Dims
	base float64
	out  float64
	loc  string
}

func (v *AxisView) geometry(ctx *Context) axisGeometry {
	a := v.Axis
	off := fx(ctx.Offset(a))
	f := ctx.Frame
	g := axisGeometry{dim: a.Dimension(), loc: a.GetString("location")}
	switch g.loc {
	case "above":
		g.base, g.out = fx(f.Min.Y)-off, -1
	case "left":
		g.base, g.out = fx(f.Min.X)-off, -1
	case "right":
		g.base, g.out = fx(f.Max.X)+off, 1
	default:
		g.base, g.out = fx(f.Max.Y)+off, 1
	}
	return g
}

// point returns the canvas point at position s along the axis,
// dist pixels away from the axis line.
func (g axisGeometry) point(s, dist float64) (x, y float64) {
	if g.dim == math32.X {
		return s, g.base + g.out*dist
	}
	return g.base + g.out*dist, s
}

// ticks returns the ticks and labels of the axis over the plot range.
func (v *AxisView) ticks(ctx *Context) (tickers.Ticks, []string) {
	t, f := v.Axis.Ticker(), v.Axis.Formatter()
	if t == nil {
		return tickers.Ticks{}, nil
	}
	tk := t.Ticks(ctx.Range(v.Axis.Dimension()))
	var labels []string
	if f != nil {
		labels = f.Labels(tk)
	}
	return tk, labels
}

// labelExtent returns the extent of the tick labels away from the axis.
func (v *AxisView) labelExtent(c render.Canvas, labels []string) float64 {
	size := v.Axis.GetFloat("major_label_text_font_size")
	ext := 0.0
	for _, l := range labels {
		w, h := c.MeasureText(l, size)
		if v.Axis.Dimension() == math32.X {
			ext = max(ext, h)
		} else {
			ext = max(ext, w)
		}
	}
	return ext
}

func (v *AxisView) PanelSize(ctx *Context) float32 {
	a := v.Axis
	_, labels := v.ticks(ctx)
	size := float64(a.GetInt("major_tick_out"))
	if len(labels) > 0 {
		size += float64(a.GetInt("major_label_standoff")) + v.labelExtent(ctx.Canvas, labels)
	}
	if l := a.GetString("axis_label"); l != "" {
		_, h := ctx.Canvas.MeasureText(l, a.GetFloat("axis_label_text_font_size"))
		size += float64(a.GetInt("axis_label_standoff")) + h
	}
	return float32(math.Ceil(size))
}

// visible returns the screen positions of the values that fall
// within the frame along the axis dimension.
func visible(ctx *Context, d math32.Dims, vals []float64) (pos []float64, idx []int) {
	lo, hi := ctx.Frame.Min.Dim(d), ctx.Frame.Max.Dim(d)
	s := ctx.Scale(d)
	for i, x := range vals {
		p := s.Compute(x)
		if math.IsNaN(p) || p < fx(lo)-0.5 || p > fx(hi)+0.5 {
			continue
		}
		pos = append(pos, p)
		idx = append(idx, i)
	}
	return
}

func (v *AxisView) Paint(ctx *Context) {
	if !ctx.Valid() {
		return
	}
	a := v.Axis
	c := ctx.Canvas
	g := v.geometry(ctx)
	f := ctx.Frame
	lo, hi := fx(f.Min.Dim(g.dim)), fx(f.Max.Dim(g.dim))
	if col, ok := rgba(a.Get("axis_line_color"), 1); ok {
		c.SetStroke(col, a.GetFloat("axis_line_width"), nil)
		c.MoveTo(g.point(lo, 0))
		c.LineTo(g.point(hi, 0))
		c.Stroke()
	}
	tk, labels := v.ticks(ctx)
	v.paintTicks(c, g, ctx, tk.Minor, "minor")
	major, idx := v.paintTicks(c, g, ctx, tk.Major, "major")

	standoff := float64(a.GetInt("major_tick_out") + a.GetInt("major_label_standoff"))
	size := a.GetFloat("major_label_text_font_size")
	ax, ay := g.labelAnchor()
	if col, ok := rgba(a.Get("major_label_text_color"), 1); ok && len(labels) > 0 {
		c.SetFill(col)
		for k, p := range major {
			if i := idx[k]; i < len(labels) {
				x, y := g.point(p, standoff)
				c.Text(labels[i], x, y, size, ax, ay, 0)
			}
		}
	}
	if l := a.GetString("axis_label"); l != "" {
		dist := standoff + v.labelExtent(c, labels) + float64(a.GetInt("axis_label_standoff"))
		x, y := g.point((lo+hi)/2, dist)
		c.SetFill(titleColor)
		angle := 0.0
		switch g.loc {
		case "left":
			angle, ax, ay = math.Pi/2, 0.5, 1
		case "right":
			angle, ax, ay = -math.Pi/2, 0.5, 1
		}
		c.Text(l, x, y, a.GetFloat("axis_label_text_font_size"), ax, ay, angle)
	}
}

// paintTicks strokes the ticks of one kind and returns the positions
// and indexes of the visible ones.
func (v *AxisView) paintTicks(c render.Canvas, g axisGeometry, ctx *Context, vals []float64, kind string) ([]float64, []int) {
	a := v.Axis
	pos, idx := visible(ctx, g.dim, vals)
	in, out := float64(a.GetInt(kind+"_tick_in")), float64(a.GetInt(kind+"_tick_out"))
	col, ok := rgba(a.Get(kind+"_tick_line_color"), 1)
	if !ok || len(pos) == 0 || in+out == 0 {
		return pos, idx
	}
	c.SetStroke(col, 1, nil)
	for _, p := range pos {
		c.MoveTo(g.point(p, -in))
		c.LineTo(g.point(p, out))
	}
	c.Stroke()
	return pos, idx
}

// labelAnchor returns the text anchor of tick labels, on the side
// of the label nearest to the axis.
func (g axisGeometry) labelAnchor() (ax, ay float64) {
	switch g.loc {
	case "above":
		return 0.5, 1
	case "left":
		return 1, 0.5
	case "right":
		return 0, 0.5
	}
	return 0.5, 0
}

// GridView paints the lines and bands of a [guides.Grid] across
// the plot frame.
type GridView struct {
	view.Base
	Grid *guides.Grid

	deps []model.Model
}

func (v *GridView) Init() error {
	v.Grid = v.Model.(*guides.Grid)
	view.OnChange(v, v.Grid, func(name string) {
		if name == "ticker" || name == "axis" {
			v.watch()
		}
		v.NeedsRender()
	})
	v.watch()
	return nil
}

func (v *GridView) watch() {
	v.deps = watchDeps(v, v.deps, v.Grid.GetRef("axis"), v.Grid.Ticker())
}

func (v *GridView) Paint(ctx *Context) {
	t := v.Grid.Ticker()
	if t == nil || !ctx.Valid() {
		return
	}
	gr := v.Grid
	d := gr.Dimension()
	tk := t.Ticks(ctx.Range(d))
	major, _ := visible(ctx, d, tk.Major)
	c := ctx.Canvas
	f := ctx.Frame
	across := math32.Y
	if d == math32.Y {
		across = math32.X
	}
	lo, hi := fx(f.Min.Dim(across)), fx(f.Max.Dim(across))
	line := func(p float64) {
		if d == math32.X {
			c.MoveTo(p, lo)
			c.LineTo(p, hi)
		} else {
			c.MoveTo(lo, p)
			c.LineTo(hi, p)
		}
	}
	if col, ok := rgba(gr.Get("band_fill_color"), gr.GetFloat("band_fill_alpha")); ok {
		c.SetFill(col)
		for i := 0; i+1 < len(major); i += 2 {
			a, b := min(major[i], major[i+1]), max(major[i], major[i+1])
			if d == math32.X {
				c.Rect(a, lo, b-a, hi-lo)
			} else {
				c.Rect(lo, a, hi-lo, b-a)
			}
		}
		c.Fill()
	}
	width := gr.GetFloat("grid_line_width")
	alpha := gr.GetFloat("grid_line_alpha")
	if col, ok := rgba(gr.Get("minor_grid_line_color"), alpha); ok {
		minor, _ := visible(ctx, d, tk.Minor)
		if len(minor) > 0 {
			c.SetStroke(col, width, nil)
			for _, p := range minor {
				line(p)
			}
			c.Stroke()
		}
	}
	if col, ok := rgba(gr.Get("grid_line_color"), alpha); ok && len(major) > 0 {
		c.SetStroke(col, width, nil)
		for _, p := range major {
			line(p)
		}
		c.Stroke()
	}
}
