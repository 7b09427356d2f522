// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glyphs provides the visual marks drawn for each row of a
// data source. Glyph properties are data specs resolved against the
// source at draw time.
package glyphs

import (
	"cogentcore.org/figure/math32/minmax"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// Glyph is implemented by all glyph models.
type Glyph interface {
	model.Model

	// Bounds returns the data bounds of the glyph over src.
	Bounds(src props.Columns) (ranges.Bounds, error)
}

// Schema is the base schema of all glyphs.
var Schema = props.NewSchema("Glyph", model.Schema)

// IsGlyph accepts glyph models in an Instance property.
func IsGlyph(r props.Referent) bool {
	_, ok := r.(Glyph)
	return ok
}

// fillProps adds the fill visual properties to s.
func fillProps(s *props.Schema, color string) *props.Schema {
	return s.Define("fill_color", props.Nullable(props.ColorSpec()), props.Value(color)).
		Define("fill_alpha", props.NumberSpec(), props.Value(1.0))
}

// lineProps adds the line visual properties to s.
func lineProps(s *props.Schema, color string) *props.Schema {
	return s.Define("line_color", props.Nullable(props.ColorSpec()), props.Value(color)).
		Define("line_alpha", props.NumberSpec(), props.Value(1.0)).
		Define("line_width", props.NumberSpec(), props.Value(1.0))
}

// Floats resolves the named spec property of m against src.
func Floats(m model.Model, name string, src props.Columns) ([]float64, error) {
	return m.AsModel().GetSpec(name).ResolveFloats(src)
}

// Values resolves the named spec property of m against src.
func Values(m model.Model, name string, src props.Columns) ([]any, error) {
	return m.AsModel().GetSpec(name).Resolve(src)
}

// span returns the extent of the finite values of vs.
func span(vs []float64) (lo, hi float64) {
	mm := minmax.Empty()
	for _, v := range vs {
		mm.Fit(v)
	}
	return mm.Min, mm.Max
}

// xyBounds returns the bounds of the x and y specs of m.
func xyBounds(m model.Model, src props.Columns) (ranges.Bounds, error) {
	xs, err := Floats(m, "x", src)
	if err != nil {
		return ranges.EmptyBounds(), err
	}
	ys, err := Floats(m, "y", src)
	if err != nil {
		return ranges.EmptyBounds(), err
	}
	b := ranges.EmptyBounds()
	b.X0, b.X1 = span(xs)
	b.Y0, b.Y1 = span(ys)
	return b, nil
}
