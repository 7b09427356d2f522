// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"math"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/props"
)

// Web mercator projection constants.
const (
	EarthRadius = 6378137.0
	MaxLatitude = 85.0511287798
	MaxMeters   = 20037508.34
)

// LonToMeters projects a longitude in degrees, clipped to ±180.
func LonToMeters(lon float64) float64 {
	lon = clip(lon, 180)
	return lon * EarthRadius * math.Pi / 180
}

// LatToMeters projects a latitude in degrees, clipped to the
// mercator envelope so that the result is always finite.
func LatToMeters(lat float64) float64 {
	lat = clip(lat, MaxLatitude)
	return EarthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
}

// MetersToLon is the inverse of [LonToMeters].
func MetersToLon(x float64) float64 {
	x = clip(x, MaxMeters)
	return x / EarthRadius * 180 / math.Pi
}

// MetersToLat is the inverse of [LatToMeters].
func MetersToLat(y float64) float64 {
	y = clip(y, MaxMeters)
	return (2*math.Atan(math.Exp(y/EarthRadius)) - math.Pi/2) * 180 / math.Pi
}

func clip(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// Mercator is a scale from longitude or latitude in degrees to
// screen space, linear in web mercator meters.
type Mercator struct {
	Base
}

// MercatorSchema is the schema of [Mercator].
var MercatorSchema = props.NewSchema("MercatorScale", Schema).
	Define("dimension", props.Enum("lon", "lat"), "lon")

// NewMercator returns a new mercator scale for the dimension "lon"
// or "lat" between the given ranges.
func NewMercator(dimension string, source, target ranges.Interval) (*Mercator, error) {
	s := model.New[Mercator](MercatorSchema)
	if err := s.Set("dimension", dimension); err != nil {
		return nil, err
	}
	if err := s.SetRanges(source, target); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewMercator is like [NewMercator] but panics on error.
func MustNewMercator(dimension string, source, target ranges.Interval) *Mercator {
	return errors.Must1(NewMercator(dimension, source, target))
}

func (s *Mercator) Init() {
	s.initScale(mercatorTransform{s})
	s.OnChange("dimension").Connect(s, "dimension", func(props.Change) { s.invalidate() })
}

type mercatorTransform struct {
	s *Mercator
}

func (t mercatorTransform) forward(x float64) float64 {
	if t.s.GetString("dimension") == "lat" {
		return LatToMeters(x)
	}
	return LonToMeters(x)
}

func (t mercatorTransform) inverse(y float64) float64 {
	if t.s.GetString("dimension") == "lat" {
		return MetersToLat(y)
	}
	return MetersToLon(y)
}
