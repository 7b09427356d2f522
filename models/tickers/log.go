// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tickers

import (
	"math"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// LogTicker places major ticks at powers of ten, skipping decades
// evenly when there are too many, and minor ticks at the integer
// multiples within each decade. Intervals spanning less than two
// decades fall back to [BasicTicker] ticks.
type LogTicker struct {
	Base
}

// LogTickerSchema is the schema of [LogTicker].
var LogTickerSchema = props.NewSchema("LogTicker", BasicTickerSchema).
	Override("num_minor_ticks", 10)

// NewLogTicker returns a new log ticker.
func NewLogTicker() *LogTicker {
	return model.New[LogTicker](LogTickerSchema)
}

func (t *LogTicker) TicksNoDefaults(lo, hi float64, desired int) Ticks {
	if !(lo > 0) || !(hi > lo) || desired < 1 {
		return Ticks{}
	}
	e0 := int(math.Ceil(math.Log10(lo) - 1e-9))
	e1 := int(math.Floor(math.Log10(hi) + 1e-9))
	if e1-e0 < 1 {
		b := model.New[BasicTicker](BasicTickerSchema)
		b.MustSet("num_minor_ticks", t.GetInt("num_minor_ticks"))
		return b.TicksNoDefaults(lo, hi, desired)
	}
	every := 1
	for (e1-e0)/every+1 > desired {
		every++
	}
	var major []float64
	for e := e0; e <= e1; e += every {
		major = append(major, math.Pow10(e))
	}
	var minor []float64
	if n := t.GetInt("num_minor_ticks"); n > 1 && every == 1 {
		for e := e0 - 1; e <= e1; e++ {
			base := math.Pow10(e)
			for k := 1; k < n; k++ {
				minor = append(minor, base*float64(k))
			}
		}
		minor = within(minor, lo, hi)
	} else {
		for e := e0; e <= e1; e++ {
			minor = append(minor, math.Pow10(e))
		}
	}
	return Ticks{Major: major, Minor: minor}
}
