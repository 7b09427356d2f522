// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package models registers all standard model types, so that
// documents using them can be deserialized.
package models

import (
	"maps"
	"slices"

	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/annotations"
	"cogentcore.org/figure/models/glyphs"
	"cogentcore.org/figure/models/guides"
	"cogentcore.org/figure/models/layouts"
	"cogentcore.org/figure/models/plots"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/models/scales"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/models/tickers"
	"cogentcore.org/figure/models/tools"
)

// Constructors returns the constructors of the standard model
// types, by type name.
func Constructors() map[string]func() model.Model {
	return map[string]func() model.Model{
		"Range1d":     func() model.Model { return ranges.NewRange1d(0, 1) },
		"DataRange1d": func() model.Model { return ranges.NewDataRange1d() },
		"FactorRange": func() model.Model { return ranges.NewFactorRange() },

		"LinearScale":      func() model.Model { return scales.MustNewLinear(nil, nil) },
		"LogScale":         func() model.Model { return scales.MustNewLog(nil, nil) },
		"CategoricalScale": func() model.Model { return scales.MustNewCategorical(nil, nil) },
		"MercatorScale":    func() model.Model { return scales.MustNewMercator("lon", nil, nil) },

		"FixedTicker":              func() model.Model { return tickers.NewFixedTicker() },
		"BasicTicker":              func() model.Model { return tickers.NewBasicTicker() },
		"LogTicker":                func() model.Model { return tickers.NewLogTicker() },
		"CategoricalTicker":        func() model.Model { return tickers.NewCategoricalTicker() },
		"BasicTickFormatter":       func() model.Model { return tickers.NewBasicTickFormatter() },
		"NumeralTickFormatter":     func() model.Model { return tickers.NewNumeralTickFormatter("0,0") },
		"CategoricalTickFormatter": func() model.Model { return tickers.NewCategoricalTickFormatter() },

		"ColumnDataSource": func() model.Model { return sources.NewColumnDataSource(nil) },
		"Selection":        func() model.Model { return sources.NewSelection() },

		"Scatter":  func() model.Model { return glyphs.NewScatter() },
		"Line":     func() model.Model { return glyphs.NewLine() },
		"Quad":     func() model.Model { return glyphs.NewQuad() },
		"ImageURL": func() model.Model { return glyphs.NewImageURL() },

		"GlyphRenderer": func() model.Model { return model.New[renderers.GlyphRenderer](renderers.GlyphRendererSchema) },
		"Axis":          func() model.Model { return model.New[guides.Axis](guides.AxisSchema) },
		"Grid":          func() model.Model { return guides.NewGrid(0, nil) },
		"BoxAnnotation": func() model.Model { return annotations.NewBoxAnnotation() },

		"Row":     func() model.Model { return layouts.NewRow() },
		"Column":  func() model.Model { return layouts.NewColumn() },
		"GridBox": func() model.Model { return layouts.NewGridBox(1) },
		"Spacer":  func() model.Model { return layouts.NewSpacer(layout.Fixed) },
		"Plot":    func() model.Model { return plots.New() },

		"Toolbar":       func() model.Model { return tools.NewToolbar() },
		"PanTool":       func() model.Model { return tools.NewPanTool() },
		"WheelZoomTool": func() model.Model { return tools.NewWheelZoomTool() },
		"BoxSelectTool": func() model.Model { return tools.NewBoxSelectTool() },
		"ResetTool":     func() model.Model { return tools.NewResetTool() },
	}
}

// Register adds the standard model types to reg.
func Register(reg *model.Registry) error {
	ctors := Constructors()
	for _, name := range sortedNames(ctors) {
		if err := reg.Register(name, ctors[name]); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry of the standard model types.
func NewRegistry() *model.Registry {
	reg := model.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}

func sortedNames(m map[string]func() model.Model) []string {
	return slices.Sorted(maps.Keys(m))
}
