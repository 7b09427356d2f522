// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scales provides the models mapping data coordinates of a
// source range to screen coordinates of a target range: linear,
// logarithmic, categorical and web mercator scales.
//
// A scale watches both of its ranges and re-derives its mapping
// whenever either changes, then emits Updated. The mapping is
// computed lazily on the next Compute or Invert call.
package scales

import (
	"fmt"
	"math"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
	"cogentcore.org/figure/signal"
)

// ErrKindMismatch is returned when a numeric scale is given a
// factor range or a categorical scale a numeric one.
var ErrKindMismatch = errors.New("scales: range kind does not match scale")

// Scale is implemented by all scales.
type Scale interface {
	model.Model

	// Compute maps a data value to screen space.
	Compute(x float64) float64

	// VCompute maps each value in xs; the result equals
	// calling Compute on each element.
	VCompute(xs []float64) []float64

	// Invert maps a screen value back to data space.
	Invert(sx float64) float64

	// VInvert is the vectorized form of Invert.
	VInvert(sxs []float64) []float64

	// Valid returns whether both ranges are set and the
	// source range spans a nonzero transformed interval.
	Valid() bool

	// Updated is emitted after either range changes.
	Updated() *signal.Signal[Scale]
}

// Schema is the base schema of all scales.
var Schema = props.NewSchema("Scale", model.Schema).
	Define("source_range", props.Nullable(props.Instance("Range", ranges.IsRange)), nil, props.Check(numeric)).
	Define("target_range", props.Nullable(props.Instance("Range", ranges.IsRange)), nil, props.Check(numeric))

func numeric(v any) error {
	if m, ok := v.(model.Model); ok && ranges.IsCategorical(m) {
		return fmt.Errorf("%w: numeric scale with %s", ErrKindMismatch, m.TypeName())
	}
	return nil
}

func categorical(v any) error {
	if m, ok := v.(model.Model); ok && !ranges.IsCategorical(m) {
		return fmt.Errorf("%w: categorical scale with %s", ErrKindMismatch, m.TypeName())
	}
	return nil
}

// transform is the nonlinear part of a scale, applied before
// the affine map from source to target.
type transform interface {
	forward(x float64) float64
	inverse(y float64) float64
}

type identity struct{}

func (identity) forward(x float64) float64 { return x }
func (identity) inverse(y float64) float64 { return y }

// Base implements [Scale] for a given transform; scale types
// embed it and set the transform in their Init.
type Base struct {
	model.Base

	tf transform

	updated signal.Signal[Scale]

	// watched are the ranges currently connected.
	watched []ranges.Interval

	dirty          bool
	valid          bool
	factor, offset float64
}

// AsScale returns the embedded [Base].
func (s *Base) AsScale() *Base { return s }

func (s *Base) Updated() *signal.Signal[Scale] { return &s.updated }

// initScale connects the scale to its ranges; it is called by
// the Init of every scale type.
func (s *Base) initScale(tf transform) {
	s.tf = tf
	s.dirty = true
	s.Changed().Connect(s, "ranges", func(c props.Change) {
		if c.Name == "source_range" || c.Name == "target_range" {
			s.watch()
			s.invalidate()
		}
	})
	s.watch()
}

// watch connects to the current ranges, dropping old connections.
func (s *Base) watch() {
	for _, r := range s.watched {
		r.AsModel().Changed().DisconnectReceiver(s)
	}
	s.watched = s.watched[:0]
	for _, r := range []ranges.Interval{s.SourceRange(), s.TargetRange()} {
		if r == nil {
			continue
		}
		r.AsModel().Changed().Connect(s, "range", func(c props.Change) {
			if c.Name == "start" || c.Name == "end" {
				s.invalidate()
			}
		})
		s.watched = append(s.watched, r)
	}
}

func (s *Base) invalidate() {
	s.dirty = true
	s.updated.Emit(s.This.(Scale))
}

// SourceRange returns the data range, or nil.
func (s *Base) SourceRange() ranges.Interval {
	r, _ := s.GetRef("source_range").(ranges.Interval)
	return r
}

// TargetRange returns the screen range, or nil.
func (s *Base) TargetRange() ranges.Interval {
	r, _ := s.GetRef("target_range").(ranges.Interval)
	return r
}

// SetRanges sets the source and target ranges together.
func (s *Base) SetRanges(source, target ranges.Interval) error {
	return s.SetMany(map[string]any{"source_range": source, "target_range": target})
}

// coefficients returns the affine factor and offset, recomputing them if needed.
func (s *Base) coefficients() (factor, offset float64, valid bool) {
	if !s.dirty {
		return s.factor, s.offset, s.valid
	}
	s.dirty = false
	src, tgt := s.SourceRange(), s.TargetRange()
	if src == nil || tgt == nil {
		s.factor, s.offset, s.valid = math.NaN(), math.NaN(), false
		return s.factor, s.offset, s.valid
	}
	s0, s1 := s.tf.forward(src.Start()), s.tf.forward(src.End())
	t0, t1 := tgt.Start(), tgt.End()
	if s1 == s0 || math.IsNaN(s0) || math.IsNaN(s1) || math.IsInf(s0, 0) || math.IsInf(s1, 0) {
		s.factor, s.offset, s.valid = 0, t0, false
		return s.factor, s.offset, s.valid
	}
	s.factor = (t1 - t0) / (s1 - s0)
	s.offset = t0 - s.factor*s0
	s.valid = true
	return s.factor, s.offset, s.valid
}

func (s *Base) Valid() bool {
	_, _, v := s.coefficients()
	return v
}

// Coefficients returns the factor and offset of the affine part
// of the mapping: Compute(x) = factor*t(x) + offset.
func (s *Base) Coefficients() (factor, offset float64) {
	f, o, _ := s.coefficients()
	return f, o
}

func (s *Base) Compute(x float64) float64 {
	f, o, _ := s.coefficients()
	return f*s.tf.forward(x) + o
}

func (s *Base) VCompute(xs []float64) []float64 {
	f, o, _ := s.coefficients()
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f*s.tf.forward(x) + o
	}
	return out
}

func (s *Base) Invert(sx float64) float64 {
	f, o, valid := s.coefficients()
	if !valid {
		return math.NaN()
	}
	return s.tf.inverse((sx - o) / f)
}

func (s *Base) VInvert(sxs []float64) []float64 {
	f, o, valid := s.coefficients()
	out := make([]float64, len(sxs))
	for i, sx := range sxs {
		if !valid {
			out[i] = math.NaN()
			continue
		}
		out[i] = s.tf.inverse((sx - o) / f)
	}
	return out
}

// Linear is a linear scale.
type Linear struct {
	Base
}

// LinearSchema is the schema of [Linear].
var LinearSchema = props.NewSchema("LinearScale", Schema)

// NewLinear returns a new linear scale between the given ranges,
// which may be nil. It fails with [ErrKindMismatch] for a range
// the scale cannot map.
func NewLinear(source, target ranges.Interval) (*Linear, error) {
	s := model.New[Linear](LinearSchema)
	if err := s.SetRanges(source, target); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewLinear is like [NewLinear] but panics on error.
func MustNewLinear(source, target ranges.Interval) *Linear {
	return errors.Must1(NewLinear(source, target))
}

func (s *Linear) Init() { s.initScale(identity{}) }

// Log is a logarithmic scale. Values that are not positive
// map to NaN.
type Log struct {
	Base
}

// LogSchema is the schema of [Log].
var LogSchema = props.NewSchema("LogScale", Schema)

// NewLog returns a new log scale between the given ranges.
func NewLog(source, target ranges.Interval) (*Log, error) {
	s := model.New[Log](LogSchema)
	if err := s.SetRanges(source, target); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewLog is like [NewLog] but panics on error.
func MustNewLog(source, target ranges.Interval) *Log {
	return errors.Must1(NewLog(source, target))
}

func (s *Log) Init() { s.initScale(logTransform{}) }

type logTransform struct{}

func (logTransform) forward(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}
	return math.Log(x)
}

func (logTransform) inverse(y float64) float64 { return math.Exp(y) }

// IsScale accepts any scale model in an Instance property.
func IsScale(r props.Referent) bool {
	_, ok := r.(Scale)
	return ok
}
