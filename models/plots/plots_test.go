// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/models/glyphs"
	"cogentcore.org/figure/models/guides"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/models/tools"
)

func TestNewFigure(t *testing.T) {
	p, err := NewFigure()
	require.NoError(t, err)
	assert.IsType(t, &ranges.DataRange1d{}, p.Range(math32.X))
	assert.NotNil(t, p.Scale(math32.Y))
	require.Len(t, p.Axes(math32.X), 1)
	require.Len(t, p.Axes(math32.Y), 1)
	assert.Equal(t, "left", p.Axes(math32.Y)[0].GetString("location"))
	assert.Len(t, p.SideRenderers("center"), 2)
	assert.Len(t, p.Renderers(), 4)

	tb := p.Toolbar()
	assert.Len(t, tb.Tools(), 4)
	assert.IsType(t, &tools.PanTool{}, tb.Active(tools.Drag))
	assert.IsType(t, &tools.WheelZoomTool{}, tb.Active(tools.Scroll))
	assert.Nil(t, tb.Active(tools.Action))
}

func TestAddGlyph(t *testing.T) {
	p := New()
	src := sources.NewColumnDataSource(map[string]any{"x": []float64{1}, "y": []float64{2}})
	r, err := p.AddGlyph(src, glyphs.NewScatter())
	require.NoError(t, err)
	assert.Equal(t, src, r.Source())
	gr := p.GlyphRenderers()
	require.Len(t, gr, 1)
	assert.Equal(t, r, gr[0])
	assert.Equal(t, p.Renderers()[0], r)
}

func TestAddLayout(t *testing.T) {
	p := New()
	a := guides.NewLinearAxis()
	require.NoError(t, p.AddLayout(a, "right"))
	assert.Equal(t, math32.Y, a.Dimension())
	assert.Error(t, p.AddLayout(a, "middle"))
}

func TestMinBorder(t *testing.T) {
	p := New()
	assert.Equal(t, float32(5), p.MinBorder("left"))
	require.NoError(t, p.Set("min_border_left", 40))
	assert.Equal(t, float32(40), p.MinBorder("left"))
	assert.Equal(t, float32(5), p.MinBorder("below"))
}

func TestPlotSizing(t *testing.T) {
	p := New()
	s := p.Sizing()
	assert.Equal(t, float32(600), s.Width)
	assert.Equal(t, float32(600), s.Height)
}
