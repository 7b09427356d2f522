// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"fmt"
	"math"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// ErrUnknownFactor is returned for factors not in the source range.
var ErrUnknownFactor = errors.New("scales: unknown factor")

// Categorical is a linear scale over the synthetic coordinates
// of a [ranges.FactorRange].
type Categorical struct {
	Base
}

// CategoricalSchema is the schema of [Categorical]. Its source
// range must be a factor range.
var CategoricalSchema = props.NewSchema("CategoricalScale", Schema).
	Define("source_range", props.Nullable(props.Instance("FactorRange", ranges.IsRange)), nil, props.Check(categorical)).
	Define("target_range", props.Nullable(props.Instance("Range", ranges.IsRange)), nil, props.Check(numeric))

// NewCategorical returns a new categorical scale between the given
// ranges. The target range must be numeric.
func NewCategorical(source *ranges.FactorRange, target ranges.Interval) (*Categorical, error) {
	s := model.New[Categorical](CategoricalSchema)
	var src ranges.Interval
	if source != nil {
		src = source
	}
	if err := s.SetRanges(src, target); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewCategorical is like [NewCategorical] but panics on error.
func MustNewCategorical(source *ranges.FactorRange, target ranges.Interval) *Categorical {
	return errors.Must1(NewCategorical(source, target))
}

func (s *Categorical) Init() { s.initScale(identity{}) }

// Factors returns the source factor range, or nil.
func (s *Categorical) Factors() *ranges.FactorRange {
	r, _ := s.SourceRange().(*ranges.FactorRange)
	return r
}

// ComputeFactor maps a factor, a factor with offset or a number
// to screen space, failing for factors not in the range.
func (s *Categorical) ComputeFactor(f any) (float64, error) {
	fr := s.Factors()
	if fr == nil {
		return math.NaN(), fmt.Errorf("%w: no source range", ErrUnknownFactor)
	}
	x := fr.Synthetic(f)
	if math.IsNaN(x) {
		return x, fmt.Errorf("%w: %v", ErrUnknownFactor, f)
	}
	return s.Compute(x), nil
}

// VComputeFactors maps each factor, returning NaN and
// an error for the unknown ones.
func (s *Categorical) VComputeFactors(fs []any) ([]float64, error) {
	out := make([]float64, len(fs))
	var errs []error
	for i, f := range fs {
		v, err := s.ComputeFactor(f)
		out[i] = v
		if err != nil {
			errs = append(errs, err)
		}
	}
	return out, errors.Join(errs...)
}

// InvertFactor returns the factor at screen coordinate sx, or nil.
func (s *Categorical) InvertFactor(sx float64) any {
	fr := s.Factors()
	if fr == nil {
		return nil
	}
	return fr.Factor(s.Invert(sx))
}
