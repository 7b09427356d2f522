// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package annotations provides renderers that mark regions of a
// plot independently of any data source.
package annotations

import (
	"math"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/props"
)

// BoxAnnotation shades a rectangle given in data coordinates.
// A null edge extends to the edge of the plot frame.
type BoxAnnotation struct {
	renderers.Base
}

// BoxAnnotationSchema is the schema of [BoxAnnotation].
var BoxAnnotationSchema = props.NewSchema("BoxAnnotation", renderers.Schema).
	Override("level", "annotation").
	Define("left", props.Nullable(props.Float()), nil).
	Define("right", props.Nullable(props.Float()), nil).
	Define("bottom", props.Nullable(props.Float()), nil).
	Define("top", props.Nullable(props.Float()), nil).
	Define("fill_color", props.Nullable(props.Color()), "#fff9ba").
	Define("fill_alpha", props.Float(), 0.4).
	Define("line_color", props.Nullable(props.Color()), "#cccccc").
	Define("line_alpha", props.Float(), 0.3).
	Define("line_width", props.Float(), 1.0)

// NewBoxAnnotation returns a box extending to the whole frame.
func NewBoxAnnotation() *BoxAnnotation {
	return model.New[BoxAnnotation](BoxAnnotationSchema)
}

// Edges returns left, right, bottom and top in data coordinates,
// using the given frame edges for null ones.
func (b *BoxAnnotation) Edges(x0, x1, y0, y1 float64) (left, right, bottom, top float64) {
	edge := func(name string, def float64) float64 {
		if v := b.GetFloat(name); !math.IsNaN(v) {
			return v
		}
		return def
	}
	return edge("left", x0), edge("right", x1), edge("bottom", y0), edge("top", y1)
}

// SetEdges sets all edges at once, as done by selection tools.
func (b *BoxAnnotation) SetEdges(left, right, bottom, top float64, setter string) error {
	return b.Props.SetManyFrom(map[string]any{"left": left, "right": right, "bottom": bottom, "top": top}, setter)
}
