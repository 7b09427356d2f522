// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ranges

import (
	"math"
	"slices"

	"cogentcore.org/figure/base/keylist"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// DataRange1d is a range computed from the data bounds of renderers,
// padded and optionally following one end with a fixed interval.
// Once a tool sets its interval, automatic ranging stops until Reset.
type DataRange1d struct {
	model.Base

	// initial holds the configuration at the first update, restored by Reset.
	initial map[string]any

	// interactive is set once a non-automatic setter moved the range.
	interactive bool

	// plots holds what each plot using the range reported at its
	// last update, in the order the plots first reported.
	plots keylist.List[model.Model, plotData]
}

// plotData is the renderers of one plot and their data bounds.
type plotData struct {
	renderers []model.Model
	bounds    map[model.Model]Bounds
}

// configProps are the properties restored by [DataRange1d.Reset].
var configProps = []string{"range_padding", "range_padding_units", "follow", "follow_interval", "default_span", "start", "end"}

// DataRange1dSchema is the schema of [DataRange1d].
var DataRange1dSchema = props.NewSchema("DataRange1d", Schema).
	Define("start", props.Nullable(props.Float()), nil).
	Define("end", props.Nullable(props.Float()), nil).
	Define("range_padding", props.Float(), 0.1).
	Define("range_padding_units", props.Enum("percent", "absolute"), "percent").
	Define("flipped", props.Bool(), false).
	Define("follow", props.Nullable(props.Enum("start", "end")), nil).
	Define("follow_interval", props.Nullable(props.Float()), nil).
	Define("default_span", props.Float(), 2.0).
	Define("only_visible", props.Bool(), false).
	Define("scale_hint", props.Enum("auto", "linear", "log"), "auto").
	Define("renderers", props.List(props.Instance("Renderer", IsRenderer)), []any{})

// AutoSetter is the setter id used by automatic range updates.
const AutoSetter = "auto"

// NewDataRange1d returns a new data range with default settings.
func NewDataRange1d() *DataRange1d {
	return model.New[DataRange1d](DataRange1dSchema)
}

func (r *DataRange1d) Init() {
	r.Changed().Connect(r, "interactive", func(c props.Change) {
		if (c.Name == "start" || c.Name == "end") && c.Setter != AutoSetter && r.initial != nil {
			r.interactive = true
		}
	})
}

// Start returns the start, or NaN before the first update.
func (r *DataRange1d) Start() float64 { return r.GetFloat("start") }

// End returns the end, or NaN before the first update.
func (r *DataRange1d) End() float64 { return r.GetFloat("end") }

func (r *DataRange1d) SetInterval(start, end float64, setter string) error {
	start, end = clampInterval(&r.Base, start, end)
	return r.Props.SetManyFrom(map[string]any{"start": start, "end": end}, setter)
}

// Interactive returns whether the range was moved by a tool
// since the last reset, which suspends automatic updates.
func (r *DataRange1d) Interactive() bool { return r.interactive }

// Plots returns the plots that have updated the range, in the
// order they first did.
func (r *DataRange1d) Plots() []model.Model { return slices.Clone(r.plots.Keys) }

// RemovePlot forgets the renderers and bounds reported by plot.
// The range keeps its interval until the next update.
func (r *DataRange1d) RemovePlot(plot model.Model) bool {
	return r.plots.DeleteByKey(plot)
}

// ComputedRenderers returns the renderers whose data determine the
// range: the renderers property if set, or else the renderers of
// every plot that updated the range.
func (r *DataRange1d) ComputedRenderers() []model.Model {
	if rs := r.GetRefs("renderers"); len(rs) > 0 {
		return rs
	}
	var all []model.Model
	for _, pd := range r.plots.Values {
		for _, rd := range pd.renderers {
			if !slices.Contains(all, rd) {
				all = append(all, rd)
			}
		}
	}
	return all
}

type visibler interface {
	IsVisible() bool
}

// PlotBounds returns the union of the bounds of the given renderers,
// skipping invisible ones if only_visible is set.
func (r *DataRange1d) PlotBounds(renderers []model.Model, bounds map[model.Model]Bounds) Bounds {
	onlyVisible := r.GetBool("only_visible")
	u := EmptyBounds()
	for _, rd := range renderers {
		if v, ok := rd.(visibler); onlyVisible && ok && !v.IsVisible() {
			continue
		}
		if b, ok := bounds[rd]; ok {
			u = u.Union(b)
		}
	}
	return u
}

func (r *DataRange1d) isLog() bool { return r.GetString("scale_hint") == "log" }

// ComputeRange returns the start and end for data between min and max,
// applying padding, default span, flipping and following.
func (r *DataRange1d) ComputeRange(min, max float64) (start, end float64) {
	pad := r.GetFloat("range_padding")
	percent := r.GetString("range_padding_units") == "percent"
	defSpan := r.GetFloat("default_span")
	if r.isLog() {
		if !(min > 0) || math.IsInf(min, 0) {
			min = 1
			if max > 0 && !math.IsInf(max, 0) {
				min = max / 100
			}
		}
		if !(max > 0) || math.IsInf(max, 0) {
			max = min
		}
		var span, center float64
		if max == min {
			span = defSpan + 0.001
			center = math.Log10(min)
		} else {
			lmin, lmax := math.Log10(min), math.Log10(max)
			center = (lmin + lmax) / 2
			span = lmax - lmin
			if percent {
				span *= 1 + pad
			}
		}
		if max != min && !percent {
			start, end = min-pad, max+pad
		} else {
			start, end = math.Pow(10, center-span/2), math.Pow(10, center+span/2)
		}
	} else {
		if math.IsInf(min, 0) || math.IsInf(max, 0) || math.IsNaN(min) || math.IsNaN(max) || min > max {
			min, max = 0, 0
		}
		var span float64
		switch {
		case max == min:
			span = defSpan
		case percent:
			span = (max - min) * (1 + pad)
		default:
			span = max - min + 2*pad
		}
		center := (min + max) / 2
		start, end = center-span/2, center+span/2
	}
	sign := 1.0
	if r.GetBool("flipped") {
		start, end = end, start
		sign = -1
	}
	if fi := r.Get("follow_interval"); fi != nil {
		interval := props.AsFloat(fi)
		if math.Abs(end-start) > interval {
			switch r.GetString("follow") {
			case "start":
				end = start + sign*interval
			case "end":
				start = end - sign*interval
			}
		}
	}
	return start, end
}

// Update records the renderers of plot and their data bounds, then
// recomputes the range along dim from the bounds reported by all
// plots using it, unless a tool has moved the range.
// Explicit start or end values given before the first update are kept.
func (r *DataRange1d) Update(plot model.Model, renderers []model.Model, bounds map[model.Model]Bounds, dim math32.Dims) error {
	if r.initial == nil {
		r.initial = map[string]any{}
		for _, name := range configProps {
			r.initial[name] = props.Clone(r.Get(name))
		}
	}
	r.plots.Set(plot, plotData{renderers: renderers, bounds: bounds})
	if r.interactive {
		return nil
	}
	all := map[model.Model]Bounds{}
	for _, pd := range r.plots.Values {
		for rd, b := range pd.bounds {
			if prev, ok := all[rd]; ok {
				b = prev.Union(b)
			}
			all[rd] = b
		}
	}
	b := r.PlotBounds(r.ComputedRenderers(), all)
	lo, hi := b.Dim(dim)
	if b.IsEmpty(dim) {
		lo, hi = math.Inf(1), math.Inf(-1)
	}
	start, end := r.ComputeRange(lo, hi)
	if v := r.initial["start"]; v != nil {
		start = props.AsFloat(v)
	}
	if v := r.initial["end"]; v != nil {
		end = props.AsFloat(v)
	}
	return r.Props.SetManyFrom(map[string]any{"start": start, "end": end}, AutoSetter)
}

// Reset restores the configuration of the first update and resumes
// automatic ranging. The interval itself changes on the next update.
func (r *DataRange1d) Reset() error {
	r.interactive = false
	if r.initial == nil {
		return nil
	}
	vals := map[string]any{}
	for _, name := range configProps {
		if name == "start" || name == "end" {
			continue
		}
		vals[name] = r.initial[name]
	}
	return r.Props.SetManyFrom(vals, AutoSetter)
}
