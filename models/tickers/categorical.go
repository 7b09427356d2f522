// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tickers

import (
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// CategoricalTicker places a tick at every factor of a factor range.
type CategoricalTicker struct {
	Base
}

// CategoricalTickerSchema is the schema of [CategoricalTicker].
var CategoricalTickerSchema = props.NewSchema("CategoricalTicker", Schema)

// NewCategoricalTicker returns a new categorical ticker.
func NewCategoricalTicker() *CategoricalTicker {
	return model.New[CategoricalTicker](CategoricalTickerSchema)
}

// TicksNoDefaults has no factors to place and returns no ticks.
func (t *CategoricalTicker) TicksNoDefaults(lo, hi float64, desired int) Ticks {
	return Ticks{}
}

// Ticks returns the synthetic coordinates of the factors of r that
// are visible, with the factors themselves. Minor ticks separate
// the bands of adjacent factors.
func (t *CategoricalTicker) Ticks(r ranges.Interval) Ticks {
	fr, ok := r.(*ranges.FactorRange)
	if !ok {
		return Ticks{}
	}
	lo, hi := ranges.Min(fr), ranges.Max(fr)
	var tk Ticks
	for _, f := range fr.Factors() {
		var fv any = f
		if len(f) == 1 {
			fv = f[0]
		}
		x := fr.Synthetic(f)
		if x < lo || x > hi {
			continue
		}
		tk.Major = append(tk.Major, x)
		tk.Factors = append(tk.Factors, fv)
		if b := x + 0.5; b < hi {
			tk.Minor = append(tk.Minor, b)
		}
	}
	return tk
}

// Tops returns the positions of the top level groups of nested
// factors visible in r, for labeling a second axis row.
func (t *CategoricalTicker) Tops(r ranges.Interval) (positions []float64, names []string) {
	fr, ok := r.(*ranges.FactorRange)
	if !ok {
		return nil, nil
	}
	lo, hi := ranges.Min(fr), ranges.Max(fr)
	for _, top := range fr.Tops() {
		x := fr.Synthetic(top)
		if x >= lo && x <= hi {
			positions = append(positions, x)
			names = append(names, top)
		}
	}
	return
}
