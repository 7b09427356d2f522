// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyphs

import (
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// MarkerTypes are the marker shapes of [Scatter].
var MarkerTypes = []string{"circle", "square", "triangle", "inverted_triangle", "diamond", "cross", "x", "dot"}

// Scatter draws a marker of a screen-space size at each x, y.
type Scatter struct {
	model.Base
}

// ScatterSchema is the schema of [Scatter].
var ScatterSchema = lineProps(fillProps(props.NewSchema("Scatter", Schema).
	Define("x", props.NumberSpec(), props.Field("x")).
	Define("y", props.NumberSpec(), props.Field("y")).
	Define("size", props.NumberSpec(), props.Value(4.0)).
	Define("angle", props.NumberSpec(), props.Value(0.0)).
	Define("marker", props.StringSpec(), props.Value("circle"), props.Check(checkMarker)), "gray"), "black")

func checkMarker(v any) error {
	sp := props.AsSpec(v)
	if sp.Form != props.ValueForm {
		return nil
	}
	_, err := props.Enum(MarkerTypes...).Validate(sp.Value)
	return err
}

// NewScatter returns a new scatter glyph of the x and y fields.
func NewScatter() *Scatter {
	return model.New[Scatter](ScatterSchema)
}

func (g *Scatter) Bounds(src props.Columns) (ranges.Bounds, error) {
	return xyBounds(g, src)
}
