// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sources provides the data source models that glyph
// renderers draw from, and the selection state they carry.
package sources

import (
	"fmt"
	"maps"
	"slices"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
	"cogentcore.org/figure/signal"
)

var (
	// ErrLength is returned when columns have different lengths.
	ErrLength = errors.New("sources: columns must have the same length")

	// ErrColumns is returned when a stream or patch names the wrong columns.
	ErrColumns = errors.New("sources: invalid columns")

	// ErrIndex is returned for out of bounds patch indices.
	ErrIndex = errors.New("sources: index out of bounds")
)

// Schema is the base schema of all data sources.
var Schema = props.NewSchema("DataSource", model.Schema).
	Define("selected", props.Nullable(props.Instance("Selection", isSelection)), nil)

func isSelection(r props.Referent) bool {
	_, ok := r.(*Selection)
	return ok
}

// IsSource returns whether r is a data source.
func IsSource(r props.Referent) bool {
	m, ok := r.(model.Model)
	return ok && m.AsModel().Schema().IsA("DataSource")
}

// ColumnDataSource holds named columns of equal length.
// Streaming and patching modify the columns in place and are
// announced on their own signals rather than as property changes.
type ColumnDataSource struct {
	model.Base

	streamed signal.Signal[model.ColumnsStreamed]
	patched  signal.Signal[model.ColumnsPatched]
}

// ColumnDataSourceSchema is the schema of [ColumnDataSource].
var ColumnDataSourceSchema = props.NewSchema("ColumnDataSource", Schema).
	Define("data", props.Map(props.List(props.Any())), map[string]any{}, props.Check(checkLengths))

// NewColumnDataSource returns a new source with the given columns.
func NewColumnDataSource(data map[string]any) *ColumnDataSource {
	s := model.New[ColumnDataSource](ColumnDataSourceSchema)
	if data != nil {
		s.MustSet("data", data)
	}
	return s
}

func (s *ColumnDataSource) Init() {
	s.MustSet("selected", NewSelection())
}

func checkLengths(v any) error {
	n := -1
	for _, k := range slices.Sorted(maps.Keys(props.AsMap(v))) {
		l := len(props.AsList(props.AsMap(v)[k]))
		if n >= 0 && l != n {
			return fmt.Errorf("%w: column %q has %d rows, expected %d", ErrLength, k, l, n)
		}
		n = l
	}
	return nil
}

// Selected returns the current selection.
func (s *ColumnDataSource) Selected() *Selection {
	sel, _ := s.GetRef("selected").(*Selection)
	return sel
}

// ColumnNames returns the column names in sorted order.
func (s *ColumnDataSource) ColumnNames() []string {
	return slices.Sorted(maps.Keys(s.GetMap("data")))
}

// Column returns the named column.
func (s *ColumnDataSource) Column(name string) ([]any, bool) {
	c, ok := s.GetMap("data")[name]
	if !ok {
		return nil, false
	}
	return props.AsList(c), true
}

// Length returns the number of rows, or 0 without columns.
func (s *ColumnDataSource) Length() int {
	for _, c := range s.GetMap("data") {
		return len(props.AsList(c))
	}
	return 0
}

// AddColumn adds or replaces a column, which must match the length
// of the existing ones.
func (s *ColumnDataSource) AddColumn(name string, vals []any) error {
	data := maps.Clone(s.GetMap("data"))
	data[name] = vals
	return s.Set("data", data)
}

func (s *ColumnDataSource) Streamed() *signal.Signal[model.ColumnsStreamed] { return &s.streamed }

func (s *ColumnDataSource) Patched() *signal.Signal[model.ColumnsPatched] { return &s.patched }

// Stream appends rows to every column, keeping at most rollover rows
// if it is positive.
func (s *ColumnDataSource) Stream(data map[string][]any, rollover int) error {
	return s.StreamFrom(data, rollover, "")
}

// StreamFrom is [ColumnDataSource.Stream] with a setter id.
// The update must name exactly the existing columns, if there are
// any, with the same number of rows each.
func (s *ColumnDataSource) StreamFrom(data map[string][]any, rollover int, setter string) error {
	if err := s.guard(); err != nil {
		return err
	}
	cols := s.GetMap("data")
	if len(cols) > 0 {
		var missing, extra []string
		for k := range cols {
			if _, ok := data[k]; !ok {
				missing = append(missing, k)
			}
		}
		for k := range data {
			if _, ok := cols[k]; !ok {
				extra = append(extra, k)
			}
		}
		if len(missing) > 0 || len(extra) > 0 {
			slices.Sort(missing)
			slices.Sort(extra)
			return fmt.Errorf("%w: stream must update all existing columns (missing: %v, extra: %v)", ErrColumns, missing, extra)
		}
	}
	n := -1
	for _, k := range slices.Sorted(maps.Keys(data)) {
		if n >= 0 && len(data[k]) != n {
			return fmt.Errorf("%w: streamed column %q has %d rows, expected %d", ErrLength, k, len(data[k]), n)
		}
		n = len(data[k])
	}
	for k, vals := range data {
		col := append(slices.Clone(props.AsList(cols[k])), vals...)
		if rollover > 0 && len(col) > rollover {
			col = col[len(col)-rollover:]
		}
		cols[k] = col
	}
	s.streamed.Emit(model.ColumnsStreamed{Source: s, Data: data, Rollover: rollover, Setter: setter})
	return nil
}

// Patch replaces individual values of existing columns.
func (s *ColumnDataSource) Patch(patches map[string][]model.ColumnPatch) error {
	return s.PatchFrom(patches, "")
}

// PatchFrom is [ColumnDataSource.Patch] with a setter id.
// All patches are checked before any is applied.
func (s *ColumnDataSource) PatchFrom(patches map[string][]model.ColumnPatch, setter string) error {
	if err := s.guard(); err != nil {
		return err
	}
	cols := s.GetMap("data")
	for _, k := range slices.Sorted(maps.Keys(patches)) {
		c, ok := cols[k]
		if !ok {
			return fmt.Errorf("%w: can only patch existing columns (extra: %s)", ErrColumns, k)
		}
		n := len(props.AsList(c))
		for _, p := range patches[k] {
			if p.Index < 0 || p.Index >= n {
				return fmt.Errorf("%w: %s[%d] with %d rows", ErrIndex, k, p.Index, n)
			}
		}
	}
	for k, ps := range patches {
		col := props.AsList(cols[k])
		for _, p := range ps {
			col[p.Index] = props.Clone(p.Value)
		}
	}
	s.patched.Emit(model.ColumnsPatched{Source: s, Patches: patches, Setter: setter})
	return nil
}

func (s *ColumnDataSource) guard() error {
	if s.Props.Guard != nil {
		return s.Props.Guard("data")
	}
	return nil
}
