// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

func TestColumnDataSource(t *testing.T) {
	s := NewColumnDataSource(map[string]any{"x": []float64{1, 2, 3}, "y": []float64{4, 5, 6}})
	assert.Equal(t, 3, s.Length())
	assert.Equal(t, []string{"x", "y"}, s.ColumnNames())
	x, ok := s.Column("x")
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, x)
	_, ok = s.Column("z")
	assert.False(t, ok)
	require.NotNil(t, s.Selected())
	assert.True(t, s.Selected().IsEmpty())

	assert.ErrorIs(t, s.Set("data", map[string]any{"x": []int{1}, "y": []int{1, 2}}), ErrLength)
	assert.Equal(t, 3, s.Length())
	assert.ErrorIs(t, s.AddColumn("z", []any{1}), ErrLength)
	require.NoError(t, s.AddColumn("z", []any{"a", "b", "c"}))
	assert.Equal(t, 0, NewColumnDataSource(nil).Length())

	var _ model.ColumnSource = s
	var _ props.Columns = s
}

func TestStream(t *testing.T) {
	s := NewColumnDataSource(map[string]any{"x": []float64{1, 2}, "y": []float64{3, 4}})
	var got []model.ColumnsStreamed
	s.Streamed().Connect(t, "test", func(e model.ColumnsStreamed) { got = append(got, e) })

	require.NoError(t, s.Stream(map[string][]any{"x": {5.0}, "y": {6.0}}, 0))
	x, _ := s.Column("x")
	assert.Equal(t, []any{1.0, 2.0, 5.0}, x)
	require.Len(t, got, 1)
	assert.Equal(t, s, got[0].Source)

	require.NoError(t, s.Stream(map[string][]any{"x": {7.0, 8.0}, "y": {9.0, 10.0}}, 3))
	x, _ = s.Column("x")
	assert.Equal(t, []any{5.0, 7.0, 8.0}, x)
	assert.Equal(t, 3, s.Length())

	assert.ErrorIs(t, s.Stream(map[string][]any{"x": {1.0}}, 0), ErrColumns)
	assert.ErrorIs(t, s.Stream(map[string][]any{"x": {1.0}, "y": {1.0}, "z": {1.0}}, 0), ErrColumns)
	assert.ErrorIs(t, s.Stream(map[string][]any{"x": {1.0}, "y": {1.0, 2.0}}, 0), ErrLength)
	assert.Len(t, got, 2)
	assert.Equal(t, 3, s.Length())

	e := NewColumnDataSource(nil)
	require.NoError(t, e.Stream(map[string][]any{"a": {1, 2}}, 0))
	assert.Equal(t, 2, e.Length())
}

func TestPatch(t *testing.T) {
	s := NewColumnDataSource(map[string]any{"x": []float64{1, 2, 3}})
	n := 0
	s.Patched().Connect(t, "test", func(model.ColumnsPatched) { n++ })
	require.NoError(t, s.Patch(map[string][]model.ColumnPatch{"x": {{Index: 1, Value: 20.0}}}))
	x, _ := s.Column("x")
	assert.Equal(t, []any{1.0, 20.0, 3.0}, x)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, s.Patch(map[string][]model.ColumnPatch{"y": {{Index: 0, Value: 1.0}}}), ErrColumns)
	assert.ErrorIs(t, s.Patch(map[string][]model.ColumnPatch{"x": {{Index: 0, Value: 0.0}, {Index: 3, Value: 1.0}}}), ErrIndex)
	x, _ = s.Column("x")
	assert.Equal(t, []any{1.0, 20.0, 3.0}, x)
	assert.Equal(t, 1, n)
}

func TestGuard(t *testing.T) {
	s := NewColumnDataSource(map[string]any{"x": []float64{1}})
	s.Props.Guard = func(string) error { return ErrColumns }
	assert.Error(t, s.Stream(map[string][]any{"x": {2.0}}, 0))
	assert.Error(t, s.Patch(map[string][]model.ColumnPatch{"x": {{Index: 0, Value: 2.0}}}))
	assert.Equal(t, 1, s.Length())
}

func TestSelectionUpdate(t *testing.T) {
	s := NewSelection(1, 3)
	require.NoError(t, s.Update(NewSelection(5, 1), true, ModeReplace))
	assert.Equal(t, []int{5, 1}, s.Indices())

	require.NoError(t, s.Update(NewSelection(2, 5), false, ModeAppend))
	assert.Equal(t, []int{1, 2, 5}, s.Indices())
	assert.False(t, s.Final())

	require.NoError(t, s.Update(NewSelection(2, 5, 9), true, ModeIntersect))
	assert.Equal(t, []int{2, 5}, s.Indices())

	require.NoError(t, s.Update(NewSelection(5), true, ModeSubtract))
	assert.Equal(t, []int{2}, s.Indices())

	assert.Error(t, s.Update(NewSelection(), true, Modes(9)))

	require.NoError(t, s.Update(nil, true, ModeAppend))
	assert.Equal(t, []int{2}, s.Indices())
	require.NoError(t, s.Update(nil, true, ModeReplace))
	assert.True(t, s.IsEmpty())
}

func TestSelectionMultiline(t *testing.T) {
	s := NewSelection()
	require.NoError(t, s.Set("multiline_indices", map[string]any{"0": []int{1, 2}}))
	o := NewSelection()
	require.NoError(t, o.Set("multiline_indices", map[string]any{"0": []int{3}, "4": []int{0}}))
	require.NoError(t, s.Update(o, true, ModeAppend))
	assert.Equal(t, map[string][]int{"0": {1, 2, 3}, "4": {0}}, s.MultilineIndices())

	require.NoError(t, s.Update(o, true, ModeSubtract))
	assert.Equal(t, map[string][]int{"0": {1, 2}}, s.MultilineIndices())
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection(1, 2)
	require.NoError(t, s.Set("line_indices", []int{4}))
	changes := 0
	s.Changed().Connect(t, "test", func(props.Change) { changes++ })
	require.NoError(t, s.Clear())
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 2, changes)
	require.NoError(t, s.Clear())
	assert.Equal(t, 2, changes)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("append")
	require.NoError(t, err)
	assert.Equal(t, ModeAppend, m)
	assert.Equal(t, "subtract", ModeSubtract.String())
	_, err = ParseMode("xor")
	assert.Error(t, err)
}
