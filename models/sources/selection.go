// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sources

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// Modes are the ways a new selection combines with the current one.
type Modes int32

const (
	// ModeReplace makes the new selection the current one.
	ModeReplace Modes = iota

	// ModeAppend adds the new indices to the current ones.
	ModeAppend

	// ModeIntersect keeps only the indices in both.
	ModeIntersect

	// ModeSubtract removes the new indices from the current ones.
	ModeSubtract
)

var modeNames = [...]string{"replace", "append", "intersect", "subtract"}

func (m Modes) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Modes(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Modes, error) {
	i := slices.Index(modeNames[:], s)
	if i < 0 {
		return ModeReplace, fmt.Errorf("sources: unknown selection mode %q", s)
	}
	return Modes(i), nil
}

// Selection is a set of selected row indices of a data source, plus
// per-row sub-indices for glyphs with several elements per row.
type Selection struct {
	model.Base
}

// SelectionSchema is the schema of [Selection]. final records whether
// the last update ended an interaction.
var SelectionSchema = props.NewSchema("Selection", model.Schema).
	Define("indices", props.List(props.Int()), []any{}).
	Define("line_indices", props.List(props.Int()), []any{}).
	Define("multiline_indices", props.Map(props.List(props.Int())), map[string]any{}).
	Define("final", props.Bool(), true, props.Internal())

// NewSelection returns a new selection of the given row indices.
func NewSelection(indices ...int) *Selection {
	s := model.New[Selection](SelectionSchema)
	s.MustSet("indices", indices)
	return s
}

// Indices returns the selected row indices.
func (s *Selection) Indices() []int { return props.AsInts(s.Get("indices")) }

// LineIndices returns the selected point indices of a line glyph.
func (s *Selection) LineIndices() []int { return props.AsInts(s.Get("line_indices")) }

// MultilineIndices returns the selected sub-indices per row.
func (s *Selection) MultilineIndices() map[string][]int {
	out := map[string][]int{}
	for k, v := range s.GetMap("multiline_indices") {
		out[k] = props.AsInts(v)
	}
	return out
}

// IsEmpty returns whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	return len(s.Indices()) == 0 && len(s.LineIndices()) == 0 && len(s.GetMap("multiline_indices")) == 0
}

// Final returns whether the last update ended an interaction.
func (s *Selection) Final() bool { return s.GetBool("final") }

// Update combines sel into s according to mode. final marks the
// end of an interaction, such as the release of a selection box.
// All properties change together. A nil sel selects nothing.
func (s *Selection) Update(sel *Selection, final bool, mode Modes) error {
	if sel == nil {
		sel = NewSelection()
	}
	var combine func(a, b []int) []int
	switch mode {
	case ModeReplace:
		combine = func(a, b []int) []int { return b }
	case ModeAppend:
		combine = union
	case ModeIntersect:
		combine = intersect
	case ModeSubtract:
		combine = subtract
	default:
		return fmt.Errorf("sources: invalid selection mode %v", mode)
	}
	ml := s.MultilineIndices()
	nml := sel.MultilineIndices()
	out := map[string]any{}
	for _, k := range slices.Sorted(keys(ml, nml)) {
		if v := combine(ml[k], nml[k]); len(v) > 0 {
			out[k] = v
		}
	}
	return s.SetMany(map[string]any{
		"indices":           combine(s.Indices(), sel.Indices()),
		"line_indices":      combine(s.LineIndices(), sel.LineIndices()),
		"multiline_indices": out,
		"final":             final,
	})
}

// Clear empties the selection.
func (s *Selection) Clear() error {
	return s.SetMany(map[string]any{
		"indices":           []int{},
		"line_indices":      []int{},
		"multiline_indices": map[string]any{},
		"final":             true,
	})
}

func keys(ms ...map[string][]int) func(yield func(string) bool) {
	all := map[string]bool{}
	for _, m := range ms {
		for k := range m {
			all[k] = true
		}
	}
	return maps.Keys(all)
}

func union(a, b []int) []int {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}

func intersect(a, b []int) []int {
	out := []int{}
	for _, v := range union(a, nil) {
		if slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

func subtract(a, b []int) []int {
	out := []int{}
	for _, v := range union(a, nil) {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}
