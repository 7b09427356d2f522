// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tickers provides the models choosing tick locations along
// an axis or grid, and the formatters turning ticks into labels.
package tickers

import (
	"math"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// Ticks are the tick locations for an interval, in increasing order.
type Ticks struct {
	Major []float64
	Minor []float64

	// Factors are the factors at the major ticks of a categorical ticker.
	Factors []any
}

// Ticker is implemented by all tickers.
type Ticker interface {
	model.Model

	// TicksNoDefaults returns the ticks between lo and hi, aiming
	// for about desired major ticks.
	TicksNoDefaults(lo, hi float64, desired int) Ticks

	// Ticks returns the ticks for the visible part of r, using the
	// configured number of ticks.
	Ticks(r ranges.Interval) Ticks
}

// Schema is the base schema of all tickers.
var Schema = props.NewSchema("Ticker", model.Schema).
	Define("desired_num_ticks", props.Int(), 6).
	Define("num_minor_ticks", props.Int(), 5)

// Base implements [Ticker.Ticks] for tickers computing ticks from
// a numeric interval. Ticker types embed it.
type Base struct {
	model.Base
}

func (t *Base) Ticks(r ranges.Interval) Ticks {
	tk, ok := t.This.(Ticker)
	if !ok || r == nil || !ranges.IsValid(r) {
		return Ticks{}
	}
	return tk.TicksNoDefaults(ranges.Min(r), ranges.Max(r), t.GetInt("desired_num_ticks"))
}

// IsTicker accepts any ticker model in an Instance property.
func IsTicker(r props.Referent) bool {
	_, ok := r.(Ticker)
	return ok
}

// within returns the values of vs in [lo, hi], allowing for rounding.
func within(vs []float64, lo, hi float64) []float64 {
	eps := (hi - lo) * 1e-9
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if v >= lo-eps && v <= hi+eps {
			out = append(out, v)
		}
	}
	return out
}

// FixedTicker returns the same explicit ticks for every interval.
type FixedTicker struct {
	Base
}

// FixedTickerSchema is the schema of [FixedTicker].
var FixedTickerSchema = props.NewSchema("FixedTicker", Schema).
	Define("ticks", props.List(props.Float()), []any{}).
	Define("minor_ticks", props.List(props.Float()), []any{})

// NewFixedTicker returns a new ticker with the given major ticks.
func NewFixedTicker(ticks ...float64) *FixedTicker {
	t := model.New[FixedTicker](FixedTickerSchema)
	t.MustSet("ticks", ticks)
	return t
}

// TicksNoDefaults returns the configured ticks regardless of the interval.
func (t *FixedTicker) TicksNoDefaults(lo, hi float64, desired int) Ticks {
	return Ticks{
		Major: props.Floats(t.GetList("ticks")),
		Minor: props.Floats(t.GetList("minor_ticks")),
	}
}

// Ticks returns the configured ticks regardless of the range.
func (t *FixedTicker) Ticks(r ranges.Interval) Ticks {
	return t.TicksNoDefaults(math.NaN(), math.NaN(), 0)
}
