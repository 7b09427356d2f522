// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tickers

import (
	"math"

	"github.com/aclements/go-moremath/scale"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// mantissas are the step multipliers within one decade: tick
// level l has a step of mantissas[l mod 3] * 10^(l div 3).
var mantissas = [3]float64{1, 2, 5}

// BasicTicker places major ticks at multiples of 1, 2 or 5 times a
// power of ten, choosing the smallest step that gives at most the
// desired number of ticks.
type BasicTicker struct {
	Base
}

// BasicTickerSchema is the schema of [BasicTicker].
var BasicTickerSchema = props.NewSchema("BasicTicker", Schema).
	Define("min_interval", props.Float(), 0.0).
	Define("max_interval", props.Nullable(props.Float()), nil)

// NewBasicTicker returns a new basic ticker.
func NewBasicTicker() *BasicTicker {
	return model.New[BasicTicker](BasicTickerSchema)
}

// levelStep returns the tick spacing at the given level.
func levelStep(level int) (m float64, exp int) {
	exp = level / 3
	i := level % 3
	if i < 0 {
		i += 3
		exp--
	}
	return mantissas[i], exp
}

// stepValue returns k steps at the given level, avoiding the
// rounding error of multiplying by a negative power of ten.
func stepValue(k int, m float64, exp int) float64 {
	if exp < 0 {
		return float64(k) * m / math.Pow10(-exp)
	}
	return float64(k) * m * math.Pow10(exp)
}

// levelSize returns the step at the given level.
func levelSize(level int) float64 {
	m, exp := levelStep(level)
	return stepValue(1, m, exp)
}

func levelBounds(lo, hi float64, level int) (first, last int, m float64, exp int) {
	m, exp = levelStep(level)
	step := levelSize(level)
	first = int(math.Ceil(lo/step - 1e-9))
	last = int(math.Floor(hi/step + 1e-9))
	return
}

func levelTicks(lo, hi float64, level int) []float64 {
	first, last, m, exp := levelBounds(lo, hi, level)
	out := make([]float64, 0, max(last-first+1, 0))
	for k := first; k <= last; k++ {
		out = append(out, stepValue(k, m, exp))
	}
	return out
}

// guessLevel returns the level whose step is close to span/desired.
func guessLevel(span float64, desired int) int {
	return int(math.Floor(math.Log10(span/float64(desired)) * 3))
}

// levelAtLeast returns the smallest level with a step of at least v.
func levelAtLeast(v float64) int {
	l := int(math.Floor(math.Log10(v)))*3 - 3
	for levelSize(l) < v {
		l++
	}
	return l
}

// levelAtMost returns the largest level with a step of at most v.
func levelAtMost(v float64) int {
	l := int(math.Ceil(math.Log10(v)))*3 + 3
	for levelSize(l) > v {
		l--
	}
	return l
}

// Level returns the tick level chosen for the interval, or false if
// no level satisfies the interval limits.
func (t *BasicTicker) Level(lo, hi float64, desired int) (int, bool) {
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) || desired < 1 {
		return 0, false
	}
	opts := scale.TickOptions{Max: desired, MinLevel: -1000, MaxLevel: 1000}
	if mi := t.GetFloat("min_interval"); mi > 0 {
		opts.MinLevel = levelAtLeast(mi)
	}
	if mi := t.Get("max_interval"); mi != nil && props.AsFloat(mi) > 0 {
		opts.MaxLevel = levelAtMost(props.AsFloat(mi))
	}
	return opts.FindLevel(interval{lo, hi}, guessLevel(span, desired))
}

// interval is a [scale.Ticker] over the closed range [lo, hi].
type interval struct {
	lo, hi float64
}

func (iv interval) CountTicks(level int) int {
	first, last, _, _ := levelBounds(iv.lo, iv.hi, level)
	return max(last-first+1, 0)
}

func (iv interval) TicksAtLevel(level int) any {
	return levelTicks(iv.lo, iv.hi, level)
}

// TicksNoDefaults returns major ticks at the chosen level and
// num_minor_ticks - 1 minor ticks between adjacent major ticks.
func (t *BasicTicker) TicksNoDefaults(lo, hi float64, desired int) Ticks {
	level, ok := t.Level(lo, hi, desired)
	if !ok {
		return Ticks{}
	}
	major := levelTicks(lo, hi, level)
	return Ticks{Major: major, Minor: minorTicks(lo, hi, level, t.GetInt("num_minor_ticks"))}
}

// minorTicks subdivides each major step into n parts, including
// the partial steps before the first and after the last major tick.
func minorTicks(lo, hi float64, level, n int) []float64 {
	if n < 1 {
		return []float64{}
	}
	first, last, m, exp := levelBounds(lo, hi, level)
	step := stepValue(1, m, exp)
	var out []float64
	for k := first - 1; k <= last; k++ {
		base := stepValue(k, m, exp)
		for i := 0; i < n; i++ {
			out = append(out, base+step*float64(i)/float64(n))
		}
	}
	return within(out, lo, hi)
}
