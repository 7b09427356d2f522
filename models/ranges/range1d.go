// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ranges

import (
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// Range1d is a range with an explicit start and end.
type Range1d struct {
	model.Base
}

// Range1dSchema is the schema of [Range1d].
var Range1dSchema = props.NewSchema("Range1d", Schema).
	Define("start", props.Float(), 0.0).
	Define("end", props.Float(), 1.0).
	Define("reset_start", props.Nullable(props.Float()), nil).
	Define("reset_end", props.Nullable(props.Float()), nil)

// NewRange1d returns a new range from start to end.
func NewRange1d(start, end float64) *Range1d {
	r := model.New[Range1d](Range1dSchema)
	r.MustSet("start", start)
	r.MustSet("end", end)
	return r
}

func (r *Range1d) Start() float64 { return r.GetFloat("start") }

func (r *Range1d) End() float64 { return r.GetFloat("end") }

// SetInterval sets start and end together, within the bounds.
func (r *Range1d) SetInterval(start, end float64, setter string) error {
	start, end = clampInterval(&r.Base, start, end)
	return r.Props.SetManyFrom(map[string]any{"start": start, "end": end}, setter)
}

// Reset restores start and end to reset_start and reset_end,
// for each of them that is set.
func (r *Range1d) Reset() error {
	vals := map[string]any{}
	if v := r.Get("reset_start"); v != nil {
		vals["start"] = v
	}
	if v := r.Get("reset_end"); v != nil {
		vals["end"] = v
	}
	return r.SetMany(vals)
}
