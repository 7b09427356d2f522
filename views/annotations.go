// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"math"

	"cogentcore.org/figure/models/annotations"
	"cogentcore.org/figure/view"
)

// BoxAnnotationView paints a [annotations.BoxAnnotation].
type BoxAnnotationView struct {
	view.Base
	Box *annotations.BoxAnnotation
}

func (v *BoxAnnotationView) Init() error {
	v.Box = v.Model.(*annotations.BoxAnnotation)
	view.OnChange(v, v.Box, func(string) { v.NeedsRender() })
	return nil
}

func (v *BoxAnnotationView) Paint(ctx *Context) {
	b := v.Box
	if !b.IsVisible() || !ctx.Valid() {
		return
	}
	l, r, bt, t := b.Edges(ctx.DataFrame())
	x0, x1 := ctx.X.Compute(l), ctx.X.Compute(r)
	y0, y1 := ctx.Y.Compute(bt), ctx.Y.Compute(t)
	if math.IsNaN(x0) || math.IsNaN(x1) || math.IsNaN(y0) || math.IsNaN(y1) {
		return
	}
	c := ctx.Canvas
	c.Rect(min(x0, x1), min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0))
	fc, hasFill := rgba(b.Get("fill_color"), b.GetFloat("fill_alpha"))
	lc, hasLine := rgba(b.Get("line_color"), b.GetFloat("line_alpha"))
	if hasLine {
		c.SetStroke(lc, b.GetFloat("line_width"), nil)
	}
	switch {
	case hasFill && hasLine:
		c.SetFill(fc)
		c.FillStroke()
	case hasFill:
		c.SetFill(fc)
		c.Fill()
	case hasLine:
		c.Stroke()
	}
}
