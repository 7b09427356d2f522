// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyphs

import (
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// Quad draws an axis-aligned rectangle per row, given by its edges
// in data coordinates.
type Quad struct {
	model.Base
}

// QuadSchema is the schema of [Quad].
var QuadSchema = lineProps(fillProps(props.NewSchema("Quad", Schema).
	Define("left", props.NumberSpec(), props.Field("left")).
	Define("right", props.NumberSpec(), props.Field("right")).
	Define("bottom", props.NumberSpec(), props.Field("bottom")).
	Define("top", props.NumberSpec(), props.Field("top")), "gray"), "black")

// NewQuad returns a new quad glyph of the edge fields.
func NewQuad() *Quad {
	return model.New[Quad](QuadSchema)
}

func (g *Quad) Bounds(src props.Columns) (ranges.Bounds, error) {
	b := ranges.EmptyBounds()
	var edges [4][]float64
	for i, name := range []string{"left", "right", "bottom", "top"} {
		vs, err := Floats(g, name, src)
		if err != nil {
			return b, err
		}
		edges[i] = vs
	}
	l0, l1 := span(edges[0])
	r0, r1 := span(edges[1])
	b0, b1 := span(edges[2])
	t0, t1 := span(edges[3])
	b.X0, b.X1 = min(l0, r0), max(l1, r1)
	b.Y0, b.Y1 = min(b0, t0), max(b1, t1)
	return b, nil
}
