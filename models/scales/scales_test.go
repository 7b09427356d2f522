// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/models/ranges"
)

func screen() *ranges.Range1d { return ranges.NewRange1d(0, 100) }

func TestLinear(t *testing.T) {
	s := MustNewLinear(ranges.NewRange1d(10, 20), screen())
	assert.True(t, s.Valid())
	assert.Equal(t, 0.0, s.Compute(10))
	assert.Equal(t, 50.0, s.Compute(15))
	assert.Equal(t, 100.0, s.Compute(20))
	assert.Equal(t, 15.0, s.Invert(50))
	f, o := s.Coefficients()
	assert.Equal(t, 10.0, f)
	assert.Equal(t, -100.0, o)
}

func TestFlippedTarget(t *testing.T) {
	s := MustNewLinear(ranges.NewRange1d(0, 1), ranges.NewRange1d(300, 0))
	assert.Equal(t, 300.0, s.Compute(0))
	assert.Equal(t, 0.0, s.Compute(1))
	assert.InDelta(t, 0.25, s.Invert(225), 1e-12)
}

func scalesUnderTest() map[string]Scale {
	fr := ranges.NewFactorRange("a", "b", "c", "d")
	return map[string]Scale{
		"linear":      MustNewLinear(ranges.NewRange1d(-3, 7), screen()),
		"log":         MustNewLog(ranges.NewRange1d(0.01, 1000), screen()),
		"categorical": MustNewCategorical(fr, screen()),
		"lon":         MustNewMercator("lon", ranges.NewRange1d(-120, 60), screen()),
		"lat":         MustNewMercator("lat", ranges.NewRange1d(-60, 80), ranges.NewRange1d(500, 0)),
	}
}

func sample(r ranges.Interval, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = r.Start() + (r.End()-r.Start())*float64(i)/float64(n-1)
	}
	return xs
}

func TestRoundTrip(t *testing.T) {
	for name, s := range scalesUnderTest() {
		src := s.(interface{ SourceRange() ranges.Interval }).SourceRange()
		for _, x := range sample(src, 25) {
			assert.InDelta(t, x, s.Invert(s.Compute(x)), 1e-9*math.Max(1, math.Abs(x)), "%s at %g", name, x)
		}
	}
}

func TestVectorizedMatchesScalar(t *testing.T) {
	for name, s := range scalesUnderTest() {
		src := s.(interface{ SourceRange() ranges.Interval }).SourceRange()
		xs := sample(src, 17)
		vs := s.VCompute(xs)
		for i, x := range xs {
			assert.Equal(t, s.Compute(x), vs[i], "%s compute %d", name, i)
		}
		sxs := sample(screen(), 17)
		is := s.VInvert(sxs)
		for i, sx := range sxs {
			assert.Equal(t, s.Invert(sx), is[i], "%s invert %d", name, i)
		}
	}
}

func TestLinkedRange(t *testing.T) {
	shared := ranges.NewRange1d(0, 10)
	a := MustNewLinear(shared, screen())
	b := MustNewLinear(shared, ranges.NewRange1d(0, 200))
	updates := 0
	a.Updated().Connect(t, "test", func(Scale) { updates++ })

	assert.Equal(t, 50.0, a.Compute(5))
	assert.Equal(t, 100.0, b.Compute(5))
	require.NoError(t, shared.SetInterval(5, 15, "pan"))
	assert.Equal(t, 0.0, a.Compute(5))
	assert.Equal(t, 0.0, b.Compute(5))
	assert.Equal(t, 100.0, b.Compute(10))
	assert.Equal(t, 2, updates)
}

func TestRangeReplaced(t *testing.T) {
	old := ranges.NewRange1d(0, 10)
	s := MustNewLinear(old, screen())
	updates := 0
	s.Updated().Connect(t, "test", func(Scale) { updates++ })
	require.NoError(t, s.Set("source_range", ranges.NewRange1d(0, 20)))
	assert.Equal(t, 1, updates)
	assert.Equal(t, 50.0, s.Compute(10))

	require.NoError(t, old.Set("end", 100))
	assert.Equal(t, 1, updates)
}

func TestKindMismatch(t *testing.T) {
	fr := ranges.NewFactorRange("a", "b")
	lin := MustNewLinear(nil, screen())
	assert.ErrorIs(t, lin.Set("source_range", fr), ErrKindMismatch)
	assert.Nil(t, lin.SourceRange())
	assert.ErrorIs(t, lin.Set("target_range", fr), ErrKindMismatch)

	cat := MustNewCategorical(nil, screen())
	assert.ErrorIs(t, cat.Set("source_range", ranges.NewRange1d(0, 1)), ErrKindMismatch)
	assert.NoError(t, cat.Set("source_range", fr))
}

func TestNewKindMismatch(t *testing.T) {
	fr := ranges.NewFactorRange("a", "b")
	_, err := NewLinear(fr, ranges.NewRange1d(0, 100))
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = NewLog(fr, screen())
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = NewMercator("lat", fr, screen())
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = NewCategorical(fr, fr)
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = NewMercator("depth", nil, nil)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewLinear(fr, screen()) })

	s, err := NewLinear(ranges.NewRange1d(0, 1), screen())
	require.NoError(t, err)
	assert.True(t, s.Valid())
}

func TestInvalid(t *testing.T) {
	s := MustNewLinear(nil, screen())
	assert.False(t, s.Valid())
	assert.True(t, math.IsNaN(s.Compute(1)))

	z := MustNewLinear(ranges.NewRange1d(3, 3), screen())
	assert.False(t, z.Valid())
	assert.Equal(t, 0.0, z.Compute(3))
	assert.True(t, math.IsNaN(z.Invert(10)))

	l := MustNewLog(ranges.NewRange1d(0, 10), screen())
	assert.False(t, l.Valid())
}

func TestLog(t *testing.T) {
	s := MustNewLog(ranges.NewRange1d(1, 1000), ranges.NewRange1d(0, 300))
	assert.InDelta(t, 0.0, s.Compute(1), 1e-9)
	assert.InDelta(t, 100.0, s.Compute(10), 1e-9)
	assert.InDelta(t, 200.0, s.Compute(100), 1e-9)
	assert.True(t, math.IsNaN(s.Compute(-1)))
	assert.InDelta(t, 10.0, s.Invert(100), 1e-9)
}

func TestCategorical(t *testing.T) {
	fr := ranges.NewFactorRange("a", "b", "c", "d")
	s := MustNewCategorical(fr, screen())
	v, err := s.ComputeFactor("b")
	require.NoError(t, err)
	assert.Equal(t, 37.5, v)
	v, err = s.ComputeFactor([]any{"b", 0.5})
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	_, err = s.ComputeFactor("z")
	assert.ErrorIs(t, err, ErrUnknownFactor)
	vs, err := s.VComputeFactors([]any{"a", "z", "d"})
	assert.ErrorIs(t, err, ErrUnknownFactor)
	assert.Equal(t, 12.5, vs[0])
	assert.True(t, math.IsNaN(vs[1]))
	assert.Equal(t, 87.5, vs[2])

	assert.Equal(t, "c", s.InvertFactor(60))
	assert.Nil(t, s.InvertFactor(120))

	require.NoError(t, fr.Set("factors", []any{"a", "b"}))
	v, err = s.ComputeFactor("b")
	require.NoError(t, err)
	assert.Equal(t, 75.0, v)
}

func TestMercatorClip(t *testing.T) {
	assert.False(t, math.IsInf(LatToMeters(90), 0))
	assert.Equal(t, LatToMeters(MaxLatitude), LatToMeters(90))
	assert.Equal(t, LatToMeters(-MaxLatitude), LatToMeters(-90))
	assert.Equal(t, LonToMeters(180), LonToMeters(200))
	assert.InDelta(t, MaxMeters, LonToMeters(180), 0.01)
	assert.InDelta(t, MaxMeters, LatToMeters(MaxLatitude), 0.01)
	assert.InDelta(t, 180.0, MetersToLon(1e9), 1e-6)
	assert.InDelta(t, 45.0, MetersToLat(LatToMeters(45)), 1e-9)

	s := MustNewMercator("lat", ranges.NewRange1d(-90, 90), screen())
	assert.True(t, s.Valid())
	assert.InDelta(t, 50.0, s.Compute(0), 1e-9)
	assert.InDelta(t, 100.0, s.Compute(90), 1e-9)

	updates := 0
	s.Updated().Connect(t, "test", func(Scale) { updates++ })
	require.NoError(t, s.Set("dimension", "lon"))
	assert.Equal(t, 1, updates)
	assert.InDelta(t, 75.0, s.Compute(45), 1e-9)
}
