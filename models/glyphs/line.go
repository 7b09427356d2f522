// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyphs

import (
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// Line connects the x, y points in row order. Rows with a NaN
// coordinate break the line.
type Line struct {
	model.Base
}

// LineSchema is the schema of [Line]. Line visuals are scalars
// since the whole line is drawn with one stroke.
var LineSchema = props.NewSchema("Line", Schema).
	Define("x", props.NumberSpec(), props.Field("x")).
	Define("y", props.NumberSpec(), props.Field("y")).
	Define("line_color", props.Color(), "black").
	Define("line_alpha", props.Float(), 1.0).
	Define("line_width", props.Float(), 1.0).
	Define("line_dash", props.List(props.Float()), []any{})

// NewLine returns a new line glyph of the x and y fields.
func NewLine() *Line {
	return model.New[Line](LineSchema)
}

func (g *Line) Bounds(src props.Columns) (ranges.Bounds, error) {
	return xyBounds(g, src)
}
