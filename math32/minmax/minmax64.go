// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minmax provides a struct that holds Min and Max values,
// accumulated over data for auto-ranging.
package minmax

import "math"

// F64 represents a min / max range for float64 values.
type F64 struct {
	Min float64
	Max float64
}

// Empty returns a range suitable for accumulating with [F64.Fit].
func Empty() F64 {
	return F64{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Set sets the min and max values.
func (mr *F64) Set(mn, mx float64) {
	mr.Min = mn
	mr.Max = mx
}

// IsValid returns true if Min <= Max.
func (mr F64) IsValid() bool {
	return mr.Min <= mr.Max
}

// Range returns Max - Min.
func (mr F64) Range() float64 {
	return mr.Max - mr.Min
}

// Midpoint returns the point halfway between Min and Max.
func (mr F64) Midpoint() float64 {
	return 0.5 * (mr.Max + mr.Min)
}

// Fit expands the range to include the given value,
// ignoring NaN and infinite values. It returns true if the
// range was adjusted.
func (mr *F64) Fit(val float64) bool {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return false
	}
	adj := false
	if val < mr.Min {
		mr.Min = val
		adj = true
	}
	if val > mr.Max {
		mr.Max = val
		adj = true
	}
	return adj
}

// FitRange expands the range to include the other valid range.
func (mr *F64) FitRange(oth F64) bool {
	if !oth.IsValid() {
		return false
	}
	a := mr.Fit(oth.Min)
	b := mr.Fit(oth.Max)
	return a || b
}

// Clip clips the given value within the range.
// A NaN remains a NaN.
func (mr F64) Clip(val float64) float64 {
	if val < mr.Min {
		return mr.Min
	}
	if val > mr.Max {
		return mr.Max
	}
	return val
}
