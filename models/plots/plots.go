// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plots provides the Plot model: a frame with a pair of
// ranges and scales in which renderers draw, surrounded by side
// panels holding axes and other guides.
package plots

import (
	"fmt"
	"slices"

	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/glyphs"
	"cogentcore.org/figure/models/guides"
	"cogentcore.org/figure/models/layouts"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/models/scales"
	"cogentcore.org/figure/models/tools"
	"cogentcore.org/figure/props"
)

// Sides are the side panels of a plot, in the order their
// renderers are listed by [Plot.Renderers].
var Sides = []string{"below", "left", "above", "right", "center"}

// Plot is a layout leaf drawing renderers inside its frame.
type Plot struct {
	layouts.Base
}

func isToolbar(r props.Referent) bool {
	_, ok := r.(*tools.Toolbar)
	return ok
}

func renderersList() *props.Type {
	return props.List(props.Instance("Renderer", renderers.IsRenderer))
}

// Schema is the schema of [Plot].
var Schema = props.NewSchema("Plot", layouts.Schema).
	Override("width", 600).
	Override("height", 600).
	Define("x_range", props.Instance("Range", ranges.IsRange), nil).
	Define("y_range", props.Instance("Range", ranges.IsRange), nil).
	Define("x_scale", props.Instance("Scale", scales.IsScale), nil).
	Define("y_scale", props.Instance("Scale", scales.IsScale), nil).
	Define("renderers", renderersList(), []any{}).
	Define("below", renderersList(), []any{}).
	Define("left", renderersList(), []any{}).
	Define("above", renderersList(), []any{}).
	Define("right", renderersList(), []any{}).
	Define("center", renderersList(), []any{}).
	Define("toolbar", props.Instance("Toolbar", isToolbar), nil).
	Define("toolbar_location", props.Nullable(props.Enum("above", "below", "left", "right")), "right").
	Define("title", props.Nullable(props.String()), nil).
	Define("title_location", props.Enum("above", "below", "left", "right"), "above").
	Define("min_border", props.Int(), 5).
	Define("min_border_left", props.Nullable(props.Int()), nil).
	Define("min_border_right", props.Nullable(props.Int()), nil).
	Define("min_border_top", props.Nullable(props.Int()), nil).
	Define("min_border_bottom", props.Nullable(props.Int()), nil).
	Define("background_fill_color", props.Nullable(props.Color()), "#ffffff").
	Define("background_fill_alpha", props.Float(), 1.0).
	Define("border_fill_color", props.Nullable(props.Color()), "#ffffff").
	Define("border_fill_alpha", props.Float(), 1.0).
	Define("outline_line_color", props.Nullable(props.Color()), "#e5e5e5").
	Define("outline_line_width", props.Float(), 1.0).
	Define("match_aspect", props.Bool(), false).
	Define("aspect_scale", props.Float(), 1.0)

// New returns a plot with data ranges, linear scales and an empty toolbar.
func New() *Plot {
	return model.New[Plot](Schema)
}

func (p *Plot) Init() {
	p.MustSet("x_range", ranges.NewDataRange1d())
	p.MustSet("y_range", ranges.NewDataRange1d())
	p.MustSet("x_scale", scales.MustNewLinear(nil, nil))
	p.MustSet("y_scale", scales.MustNewLinear(nil, nil))
	p.MustSet("toolbar", tools.NewToolbar())
}

// Range returns the range of dimension d.
func (p *Plot) Range(d math32.Dims) ranges.Interval {
	r, _ := p.GetRef(dimProp(d, "range")).(ranges.Interval)
	return r
}

// Scale returns the scale model of dimension d, which has no
// ranges set: plot views map through copies of it.
func (p *Plot) Scale(d math32.Dims) scales.Scale {
	s, _ := p.GetRef(dimProp(d, "scale")).(scales.Scale)
	return s
}

func dimProp(d math32.Dims, name string) string {
	if d == math32.X {
		return "x_" + name
	}
	return "y_" + name
}

// Toolbar returns the toolbar.
func (p *Plot) Toolbar() *tools.Toolbar {
	tb, _ := p.GetRef("toolbar").(*tools.Toolbar)
	return tb
}

// SideRenderers returns the renderers of the given side, or of the
// main list for an empty side.
func (p *Plot) SideRenderers(side string) []renderers.Renderer {
	name := side
	if side == "" {
		name = "renderers"
	}
	var out []renderers.Renderer
	for _, m := range p.GetRefs(name) {
		if r, ok := m.(renderers.Renderer); ok {
			out = append(out, r)
		}
	}
	return out
}

// Renderers returns all renderers: the main list, then each side.
func (p *Plot) Renderers() []renderers.Renderer {
	out := p.SideRenderers("")
	for _, s := range Sides {
		out = append(out, p.SideRenderers(s)...)
	}
	return out
}

// GlyphRenderers returns the glyph renderers of the main list.
func (p *Plot) GlyphRenderers() []*renderers.GlyphRenderer {
	var out []*renderers.GlyphRenderer
	for _, r := range p.SideRenderers("") {
		if g, ok := r.(*renderers.GlyphRenderer); ok {
			out = append(out, g)
		}
	}
	return out
}

// Axes returns the axes showing dimension d.
func (p *Plot) Axes(d math32.Dims) []*guides.Axis {
	var out []*guides.Axis
	for _, r := range p.Renderers() {
		if a, ok := r.(*guides.Axis); ok && a.Dimension() == d {
			out = append(out, a)
		}
	}
	return out
}

// AddRenderers appends renderers to the main list.
func (p *Plot) AddRenderers(rs ...renderers.Renderer) error {
	return p.Set("renderers", append(slices.Clone(p.GetList("renderers")), anys(rs)...))
}

// AddLayout adds r to the given side. An axis added to a side
// takes it as its location.
func (p *Plot) AddLayout(r renderers.Renderer, side string) error {
	if !slices.Contains(Sides, side) {
		return fmt.Errorf("plots: invalid side %q", side)
	}
	if a, ok := r.(*guides.Axis); ok && side != "center" {
		if err := a.Set("location", side); err != nil {
			return err
		}
	}
	return p.Set(side, append(slices.Clone(p.GetList(side)), r))
}

// AddGlyph adds a renderer drawing glyph over src, and returns it.
func (p *Plot) AddGlyph(src model.Model, glyph glyphs.Glyph) (*renderers.GlyphRenderer, error) {
	r := renderers.NewGlyphRenderer(src, glyph)
	return r, p.AddRenderers(r)
}

// AddTools appends tools to the toolbar.
func (p *Plot) AddTools(ts ...tools.Tool) error {
	tb := p.Toolbar()
	return tb.Set("tools", append(slices.Clone(tb.GetList("tools")), anys(ts)...))
}

// MinBorder returns the minimum border of a side, falling back
// to min_border.
func (p *Plot) MinBorder(side string) float32 {
	names := map[string]string{"left": "min_border_left", "right": "min_border_right", "above": "min_border_top", "below": "min_border_bottom"}
	if v := p.Get(names[side]); v != nil {
		return float32(props.AsInt(v))
	}
	return float32(p.GetInt("min_border"))
}

func anys[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// NewFigure returns a plot with linear axes below and left, grids
// following them, and pan, zoom, box select and reset tools.
func NewFigure() (*Plot, error) {
	p := New()
	xa, ya := guides.NewLinearAxis(), guides.NewLinearAxis()
	if err := p.AddLayout(xa, "below"); err != nil {
		return nil, err
	}
	if err := p.AddLayout(ya, "left"); err != nil {
		return nil, err
	}
	if err := p.AddLayout(guides.NewGrid(math32.X, xa), "center"); err != nil {
		return nil, err
	}
	if err := p.AddLayout(guides.NewGrid(math32.Y, ya), "center"); err != nil {
		return nil, err
	}
	return p, p.AddTools(tools.NewPanTool(), tools.NewWheelZoomTool(), tools.NewBoxSelectTool(), tools.NewResetTool())
}
