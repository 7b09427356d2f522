// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guides provides axes and grids, the renderers that show
// the scale of a plot dimension.
package guides

import (
	"fmt"

	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/models/tickers"
	"cogentcore.org/figure/props"
)

// Locations are the sides of a plot an axis can be placed on.
var Locations = []string{"below", "left", "above", "right"}

// Axis draws the ticks, tick labels and label of one plot dimension
// along a side of the plot. Its location is set when it is added to
// a side of a plot.
type Axis struct {
	renderers.Base
}

// AxisSchema is the schema of [Axis].
var AxisSchema = props.NewSchema("Axis", renderers.Schema).
	Override("level", "guide").
	Define("ticker", props.Instance("Ticker", tickers.IsTicker), nil).
	Define("formatter", props.Instance("TickFormatter", tickers.IsFormatter), nil).
	Define("location", props.Enum(Locations...), "below").
	Define("axis_label", props.Nullable(props.String()), nil).
	Define("axis_label_standoff", props.Int(), 5).
	Define("axis_label_text_font_size", props.Float(), 13.0).
	Define("axis_line_color", props.Nullable(props.Color()), "black").
	Define("axis_line_width", props.Float(), 1.0).
	Define("major_tick_in", props.Int(), 2).
	Define("major_tick_out", props.Int(), 6).
	Define("minor_tick_in", props.Int(), 0).
	Define("minor_tick_out", props.Int(), 4).
	Define("major_tick_line_color", props.Nullable(props.Color()), "black").
	Define("minor_tick_line_color", props.Nullable(props.Color()), "black").
	Define("major_label_standoff", props.Int(), 5).
	Define("major_label_text_color", props.Color(), "#444444").
	Define("major_label_text_font_size", props.Float(), 11.0)

func newAxis(t tickers.Ticker, f tickers.Formatter) *Axis {
	a := model.New[Axis](AxisSchema)
	a.MustSet("ticker", t)
	a.MustSet("formatter", f)
	return a
}

// NewLinearAxis returns an axis with basic ticks and labels.
func NewLinearAxis() *Axis {
	return newAxis(tickers.NewBasicTicker(), tickers.NewBasicTickFormatter())
}

// NewLogAxis returns an axis with decade ticks.
func NewLogAxis() *Axis {
	return newAxis(tickers.NewLogTicker(), tickers.NewBasicTickFormatter())
}

// NewCategoricalAxis returns an axis with a tick per factor.
func NewCategoricalAxis() *Axis {
	return newAxis(tickers.NewCategoricalTicker(), tickers.NewCategoricalTickFormatter())
}

// Ticker returns the ticker, or nil.
func (a *Axis) Ticker() tickers.Ticker {
	t, _ := a.GetRef("ticker").(tickers.Ticker)
	return t
}

// Formatter returns the tick formatter, or nil.
func (a *Axis) Formatter() tickers.Formatter {
	f, _ := a.GetRef("formatter").(tickers.Formatter)
	return f
}

// Dimension returns the plot dimension the axis shows:
// X for horizontal sides and Y for vertical ones.
func (a *Axis) Dimension() math32.Dims {
	return LocationDim(a.GetString("location"))
}

// LocationDim returns the dimension shown by an axis on the given side.
func LocationDim(loc string) math32.Dims {
	if loc == "left" || loc == "right" {
		return math32.Y
	}
	return math32.X
}

// Grid draws lines across the plot frame at the ticks of one
// dimension. Without its own ticker it uses the ticker of axis.
type Grid struct {
	renderers.Base
}

// GridSchema is the schema of [Grid].
var GridSchema = props.NewSchema("Grid", renderers.Schema).
	Override("level", "underlay").
	Define("dimension", props.Int(), 0, props.Check(checkDimension)).
	Define("ticker", props.Nullable(props.Instance("Ticker", tickers.IsTicker)), nil).
	Define("axis", props.Nullable(props.Instance("Axis", isAxis)), nil).
	Define("grid_line_color", props.Nullable(props.Color()), "#e5e5e5").
	Define("grid_line_alpha", props.Float(), 1.0).
	Define("grid_line_width", props.Float(), 1.0).
	Define("minor_grid_line_color", props.Nullable(props.Color()), nil).
	Define("band_fill_color", props.Nullable(props.Color()), nil).
	Define("band_fill_alpha", props.Float(), 0.0)

func checkDimension(v any) error {
	if d := props.AsInt(v); d != 0 && d != 1 {
		return fmt.Errorf("%w: dimension must be 0 or 1", props.ErrType)
	}
	return nil
}

func isAxis(r props.Referent) bool {
	_, ok := r.(*Axis)
	return ok
}

// NewGrid returns a grid along the given dimension, following
// the ticks of axis if it is not nil.
func NewGrid(dim math32.Dims, axis *Axis) *Grid {
	g := model.New[Grid](GridSchema)
	g.MustSet("dimension", int(dim))
	if axis != nil {
		g.MustSet("axis", axis)
	}
	return g
}

// Dimension returns the dimension whose ticks the grid lines mark.
func (g *Grid) Dimension() math32.Dims { return math32.Dims(g.GetInt("dimension")) }

// Ticker returns the ticker of the grid, or else of its axis, or nil.
func (g *Grid) Ticker() tickers.Ticker {
	if t, ok := g.GetRef("ticker").(tickers.Ticker); ok {
		return t
	}
	if a, ok := g.GetRef("axis").(*Axis); ok {
		return a.Ticker()
	}
	return nil
}
