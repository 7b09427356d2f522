// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render defines the canvas that views paint on, with a
// raster implementation on gogpu/gg and a recording implementation
// for inspecting paint order.
package render

import (
	"image"
	"image/color"
)

// Canvas is a 2D drawing surface in pixel coordinates, with the
// origin at the top left. Paths are built with MoveTo, LineTo,
// Rect and Circle, then filled or stroked with the current style.
type Canvas interface {

	// Size returns the size in pixels.
	Size() image.Point

	// Mark records the start of painting the named item. It does
	// not draw anything.
	Mark(name string)

	// Push saves the style and clip; Pop restores them.
	Push()
	Pop()

	// RotateAbout rotates later drawing by angle radians about x, y,
	// until the next Pop.
	RotateAbout(angle, x, y float64)

	// ClipRect restricts drawing to the given rectangle.
	ClipRect(x, y, w, h float64)

	// SetFill sets the fill color.
	SetFill(c color.RGBA)

	// SetStroke sets the stroke color, width and dash pattern.
	SetStroke(c color.RGBA, width float64, dash []float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Rect(x, y, w, h float64)
	Circle(x, y, r float64)

	// Fill fills the current path and clears it.
	Fill()

	// Stroke strokes the current path and clears it.
	Stroke()

	// FillStroke fills then strokes the current path and clears it.
	FillStroke()

	// Text draws s with its anchor point at x, y, where ax and ay
	// are the anchor fractions of the text extent and angle is the
	// rotation in radians about the anchor.
	Text(s string, x, y, size, ax, ay, angle float64)

	// MeasureText returns the width and height of s.
	MeasureText(s string, size float64) (w, h float64)

	// Image draws img scaled into the given rectangle.
	Image(img image.Image, x, y, w, h, alpha float64)
}

// EstimateText returns the approximate extent of s for canvases
// without font metrics.
func EstimateText(s string, size float64) (w, h float64) {
	return 0.6 * size * float64(len([]rune(s))), 1.2 * size
}
