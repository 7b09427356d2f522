// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glyphs

import (
	"math"
	"slices"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// Anchors are the points of an image placed at its x, y.
var Anchors = []string{"top_left", "top_center", "top_right", "center_left", "center", "center_right", "bottom_left", "bottom_center", "bottom_right"}

// ImageURL draws images loaded from URLs. Loading is retried
// retry_attempts times, retry_timeout milliseconds apart. Images
// without w or h are drawn at their natural pixel size.
type ImageURL struct {
	model.Base
}

// ImageURLSchema is the schema of [ImageURL].
var ImageURLSchema = props.NewSchema("ImageURL", Schema).
	Define("url", props.StringSpec(), props.Field("url")).
	Define("x", props.NumberSpec(), props.Field("x")).
	Define("y", props.NumberSpec(), props.Field("y")).
	Define("w", props.Nullable(props.NumberSpec()), nil).
	Define("h", props.Nullable(props.NumberSpec()), nil).
	Define("angle", props.NumberSpec(), props.Value(0.0)).
	Define("global_alpha", props.NumberSpec(), props.Value(1.0)).
	Define("dilate", props.Bool(), false).
	Define("anchor", props.Enum(Anchors...), "top_left").
	Define("retry_attempts", props.Int(), 0).
	Define("retry_timeout", props.Int(), 0)

// NewImageURL returns a new image glyph of the url, x and y fields.
func NewImageURL() *ImageURL {
	return model.New[ImageURL](ImageURLSchema)
}

// AnchorOffset returns the fraction of the width and height between
// the anchor and the top left corner.
func AnchorOffset(anchor string) (fx, fy float64) {
	i := max(0, slices.Index(Anchors, anchor))
	return float64(i%3) / 2, float64(i/3) / 2
}

// Bounds returns the anchor points, extended by the image extent
// when w and h are given in data units.
func (g *ImageURL) Bounds(src props.Columns) (ranges.Bounds, error) {
	b, err := xyBounds(g, src)
	if err != nil || g.Get("w") == nil || g.Get("h") == nil {
		return b, err
	}
	xs, _ := Floats(g, "x", src)
	ys, _ := Floats(g, "y", src)
	ws, err := Floats(g, "w", src)
	if err != nil {
		return b, err
	}
	hs, err := Floats(g, "h", src)
	if err != nil {
		return b, err
	}
	fx, fy := AnchorOffset(g.GetString("anchor"))
	b = ranges.EmptyBounds()
	for i := range xs {
		if i >= len(ys) || i >= len(ws) || i >= len(hs) {
			break
		}
		x0 := xs[i] - fx*ws[i]
		y1 := ys[i] + fy*hs[i]
		if math.IsNaN(x0) || math.IsNaN(y1) {
			continue
		}
		b = b.Union(ranges.Bounds{X0: x0, X1: x0 + ws[i], Y0: y1 - hs[i], Y1: y1})
	}
	return b, nil
}
