// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ranges

import (
	"math"

	"cogentcore.org/figure/math32"
)

// Bounds is the extent of some data in both dimensions.
type Bounds struct {
	X0, X1, Y0, Y1 float64
}

// EmptyBounds returns bounds containing nothing, the identity for [Bounds.Union].
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{X0: inf, X1: -inf, Y0: inf, Y1: -inf}
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		X0: math.Min(b.X0, o.X0), X1: math.Max(b.X1, o.X1),
		Y0: math.Min(b.Y0, o.Y0), Y1: math.Max(b.Y1, o.Y1),
	}
}

// Dim returns the lower and upper bound along d.
func (b Bounds) Dim(d math32.Dims) (lo, hi float64) {
	if d == math32.X {
		return b.X0, b.X1
	}
	return b.Y0, b.Y1
}

// IsEmpty returns whether b contains nothing along d.
func (b Bounds) IsEmpty(d math32.Dims) bool {
	lo, hi := b.Dim(d)
	return !(lo <= hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0)
}

// AdjustForAspect grows one dimension of b, around its center, so
// that its width divided by its height equals ratio.
func AdjustForAspect(b Bounds, ratio float64) Bounds {
	w, h := math.Abs(b.X1-b.X0), math.Abs(b.Y1-b.Y0)
	if w == 0 || h == 0 || ratio <= 0 {
		return b
	}
	if w/h < ratio {
		c := (b.X0 + b.X1) / 2
		w = h * ratio
		b.X0, b.X1 = c-w/2, c+w/2
	} else {
		c := (b.Y0 + b.Y1) / 2
		h = w / ratio
		b.Y0, b.Y1 = c-h/2, c+h/2
	}
	return b
}
