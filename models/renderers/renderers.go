// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderers provides the base of all models drawn inside a
// plot, and the glyph renderer that draws a glyph over a data source.
package renderers

import (
	"fmt"
	"slices"
	"strconv"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/glyphs"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/props"
)

// Levels are the render levels, painted in increasing order.
type Levels int32

const (
	// LevelImage is painted first, above the background.
	LevelImage Levels = iota
	LevelUnderlay
	LevelGlyph
	LevelGuide
	LevelAnnotation
	LevelOverlay
)

var levelNames = [...]string{"image", "underlay", "glyph", "guide", "annotation", "overlay"}

// LevelNames returns the names of the levels in paint order.
func LevelNames() []string { return levelNames[:] }

func (l Levels) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "Levels(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel returns the level with the given name.
func ParseLevel(s string) (Levels, error) {
	i := slices.Index(levelNames[:], s)
	if i < 0 {
		return LevelGlyph, fmt.Errorf("renderers: unknown level %q", s)
	}
	return Levels(i), nil
}

// Renderer is implemented by all models drawn in a plot.
type Renderer interface {
	model.Model
	Level() Levels
	IsVisible() bool
}

// Schema is the base schema of all renderers.
var Schema = props.NewSchema("Renderer", model.Schema).
	Define("level", props.Enum(levelNames[:]...), "glyph").
	Define("visible", props.Bool(), true)

// Base is embedded by all renderer models.
type Base struct {
	model.Base
}

// AsRenderer returns the embedded renderer base.
func (r *Base) AsRenderer() *Base { return r }

// Level returns the render level.
func (r *Base) Level() Levels {
	l, _ := ParseLevel(r.GetString("level"))
	return l
}

// IsVisible returns whether the renderer is drawn.
func (r *Base) IsVisible() bool { return r.GetBool("visible") }

// IsRenderer accepts renderer models in an Instance property.
func IsRenderer(r props.Referent) bool { return ranges.IsRenderer(r) }

// GlyphRenderer draws a glyph for each row of a data source. Selected
// rows are drawn with selection_glyph and the rest with
// nonselection_glyph when a selection exists and those are set.
type GlyphRenderer struct {
	Base
}

// GlyphRendererSchema is the schema of [GlyphRenderer].
var GlyphRendererSchema = props.NewSchema("GlyphRenderer", Schema).
	Define("data_source", props.Instance("DataSource", sources.IsSource), nil).
	Define("glyph", props.Instance("Glyph", glyphs.IsGlyph), nil).
	Define("selection_glyph", props.Nullable(props.Instance("Glyph", glyphs.IsGlyph)), nil).
	Define("nonselection_glyph", props.Nullable(props.Instance("Glyph", glyphs.IsGlyph)), nil)

// NewGlyphRenderer returns a renderer drawing glyph over src.
func NewGlyphRenderer(src model.Model, glyph glyphs.Glyph) *GlyphRenderer {
	r := model.New[GlyphRenderer](GlyphRendererSchema)
	r.MustSet("data_source", src)
	r.MustSet("glyph", glyph)
	return r
}

// Source returns the data source.
func (r *GlyphRenderer) Source() model.Model { return r.GetRef("data_source") }

// Columns returns the data source as columns, or nil.
func (r *GlyphRenderer) Columns() props.Columns {
	c, _ := r.Source().(props.Columns)
	return c
}

// Glyph returns the main glyph.
func (r *GlyphRenderer) Glyph() glyphs.Glyph {
	g, _ := r.GetRef("glyph").(glyphs.Glyph)
	return g
}

// Selection returns the selection of the data source, or nil.
func (r *GlyphRenderer) Selection() *sources.Selection {
	if cds, ok := r.Source().(*sources.ColumnDataSource); ok {
		return cds.Selected()
	}
	return nil
}

// GlyphFor returns the glyph drawing rows that are selected or not,
// given whether anything is selected at all.
func (r *GlyphRenderer) GlyphFor(selected, anySelected bool) glyphs.Glyph {
	name := "nonselection_glyph"
	if selected {
		name = "selection_glyph"
	}
	if anySelected {
		if g, ok := r.GetRef(name).(glyphs.Glyph); ok {
			return g
		}
	}
	return r.Glyph()
}

// Bounds returns the data bounds of the glyph over the data source.
func (r *GlyphRenderer) Bounds() (ranges.Bounds, error) {
	g := r.Glyph()
	if g == nil {
		return ranges.EmptyBounds(), nil
	}
	return g.Bounds(r.Columns())
}
