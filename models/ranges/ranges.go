// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ranges provides the models holding the visible interval
// of a plot dimension: explicit numeric ranges ([Range1d]), ranges
// computed from the data of renderers ([DataRange1d]) and ranges of
// categorical factors ([FactorRange]).
package ranges

import (
	"math"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// Interval is implemented by all ranges: it is the current start
// and end of the range in data coordinates, where a categorical
// range uses synthetic coordinates.
type Interval interface {
	model.Model

	// Start returns the start of the range, or NaN if it is unknown.
	Start() float64

	// End returns the end of the range, or NaN if it is unknown.
	End() float64

	// SetInterval sets both ends at once, as done by interactive tools.
	SetInterval(start, end float64, setter string) error
}

// Min returns the smaller end of r.
func Min(r Interval) float64 { return math.Min(r.Start(), r.End()) }

// Max returns the larger end of r.
func Max(r Interval) float64 { return math.Max(r.Start(), r.End()) }

// IsReversed returns whether the end of r is less than its start.
func IsReversed(r Interval) bool { return r.End() < r.Start() }

// IsValid returns whether both ends of r are finite numbers.
func IsValid(r Interval) bool {
	s, e := r.Start(), r.End()
	return !math.IsNaN(s) && !math.IsNaN(e) && !math.IsInf(s, 0) && !math.IsInf(e, 0)
}

// IsCategorical returns whether r is a range of factors.
func IsCategorical(r model.Model) bool {
	_, ok := r.(*FactorRange)
	return ok
}

// Schema is the base schema of all ranges.
var Schema = props.NewSchema("Range", model.Schema).
	Define("bounds", props.Nullable(props.List(props.Nullable(props.Float()))), nil, props.Check(checkBounds)).
	Define("min_interval", props.Nullable(props.Float()), nil).
	Define("max_interval", props.Nullable(props.Float()), nil)

func checkBounds(v any) error {
	if v == nil {
		return nil
	}
	if len(props.AsList(v)) != 2 {
		return errors.New("bounds must have two elements")
	}
	return nil
}

// IsRange accepts any range model in an Instance property.
func IsRange(r props.Referent) bool {
	_, ok := r.(Interval)
	return ok
}

// IsRenderer accepts models whose schema derives from "Renderer".
func IsRenderer(r props.Referent) bool {
	m, ok := r.(model.Model)
	return ok && m.AsModel().Schema().IsA("Renderer")
}

// clampInterval limits start and end to the bounds and min/max
// interval properties of b, preserving the direction of the range.
func clampInterval(b *model.Base, start, end float64) (float64, float64) {
	rev := end < start
	lo, hi := math.Min(start, end), math.Max(start, end)
	span := hi - lo
	if v := b.Get("min_interval"); v != nil && span < props.AsFloat(v) {
		mid := (lo + hi) / 2
		span = props.AsFloat(v)
		lo, hi = mid-span/2, mid+span/2
	}
	if v := b.Get("max_interval"); v != nil && span > props.AsFloat(v) {
		mid := (lo + hi) / 2
		span = props.AsFloat(v)
		lo, hi = mid-span/2, mid+span/2
	}
	if bounds := b.GetList("bounds"); len(bounds) == 2 {
		if bounds[0] != nil {
			if min := props.AsFloat(bounds[0]); lo < min {
				lo, hi = min, min+span
			}
		}
		if bounds[1] != nil {
			if max := props.AsFloat(bounds[1]); hi > max {
				lo, hi = max-span, max
				if bounds[0] != nil {
					lo = math.Max(lo, props.AsFloat(bounds[0]))
				}
			}
		}
	}
	if rev {
		return hi, lo
	}
	return lo, hi
}
