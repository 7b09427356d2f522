// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ranges

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// ErrFactors is returned for invalid factor lists.
var ErrFactors = errors.New("ranges: invalid factors")

// FactorRange is a range of categorical factors. Factors are
// strings, or lists of two or three strings for nested categories.
// Each factor is mapped to a synthetic coordinate at the center of
// a unit-wide band; groups are separated by padding.
type FactorRange struct {
	model.Base

	mapping *factorMap
}

// FactorRangeSchema is the schema of [FactorRange].
var FactorRangeSchema = props.NewSchema("FactorRange", Schema).
	Define("factors", props.List(props.Any()), []any{}, props.Check(checkFactors)).
	Define("factor_padding", props.Float(), 0.0).
	Define("subgroup_padding", props.Float(), 0.8).
	Define("group_padding", props.Float(), 1.4).
	Define("range_padding", props.Float(), 0.0).
	Define("range_padding_units", props.Enum("percent", "absolute"), "percent").
	Define("start", props.Float(), 0.0).
	Define("end", props.Float(), 0.0)

// mappingProps are the properties the factor mapping depends on.
var mappingProps = []string{"factors", "factor_padding", "subgroup_padding", "group_padding", "range_padding", "range_padding_units"}

// NewFactorRange returns a new range of the given factors, each
// a string or a []string.
func NewFactorRange(factors ...any) *FactorRange {
	r := model.New[FactorRange](FactorRangeSchema)
	r.MustSet("factors", factors)
	return r
}

func (r *FactorRange) Init() {
	r.Changed().Connect(r, "mapping", func(c props.Change) {
		if slices.Contains(mappingProps, c.Name) {
			r.remap()
		}
	})
	r.remap()
}

func (r *FactorRange) remap() {
	r.mapping = newFactorMap(factorKeys(r.GetList("factors")), r.paddings(), r.GetFloat("factor_padding"))
	n := float64(r.mapping.leaves) + r.mapping.inner
	pad := r.GetFloat("range_padding")
	if r.GetString("range_padding_units") == "percent" {
		pad *= n / 2
	}
	errors.Log(r.Props.SetManyFrom(map[string]any{"start": -pad, "end": n + pad}, AutoSetter))
}

func (r *FactorRange) paddings() []float64 {
	return []float64{r.GetFloat("group_padding"), r.GetFloat("subgroup_padding")}
}

func (r *FactorRange) Start() float64 { return r.GetFloat("start") }

func (r *FactorRange) End() float64 { return r.GetFloat("end") }

func (r *FactorRange) SetInterval(start, end float64, setter string) error {
	start, end = clampInterval(&r.Base, start, end)
	return r.Props.SetManyFrom(map[string]any{"start": start, "end": end}, setter)
}

// Levels returns the nesting depth of the factors: 1, 2 or 3.
func (r *FactorRange) Levels() int { return r.mapping.levels }

// Tops returns the distinct first-level categories of nested
// factors in order of appearance, or nil for simple factors.
func (r *FactorRange) Tops() []string {
	if r.mapping.levels < 2 {
		return nil
	}
	return slices.Clone(r.mapping.tops)
}

// Synthetic returns the synthetic coordinate of x, which is a number
// (returned unchanged), a factor, a factor prefix naming a group,
// or any of these as a list followed by a numeric offset.
// It returns NaN for unknown factors.
func (r *FactorRange) Synthetic(x any) float64 {
	switch v := x.(type) {
	case string:
		return r.mapping.value([]string{v})
	case []string:
		return r.mapping.value(v)
	case []any:
		offset := 0.0
		if n := len(v); n > 1 {
			if f, ok := asNumber(v[n-1]); ok {
				offset = f
				v = v[:n-1]
			}
		}
		key, ok := stringList(v)
		if !ok {
			return math.NaN()
		}
		return r.mapping.value(key) + offset
	}
	if f, ok := asNumber(x); ok {
		return f
	}
	return math.NaN()
}

// VSynthetic is the vectorized form of [FactorRange.Synthetic].
func (r *FactorRange) VSynthetic(xs []any) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = r.Synthetic(x)
	}
	return out
}

// Factor returns the factor whose band contains the synthetic
// coordinate x, as a string or []string, or nil if there is none.
func (r *FactorRange) Factor(x float64) any {
	for i, v := range r.mapping.leafValues {
		if v-0.5 <= x && x < v+0.5 {
			f := r.mapping.leafKeys[i]
			if r.mapping.levels == 1 {
				return f[0]
			}
			return slices.Clone(f)
		}
	}
	return nil
}

// Factors returns the factors in order.
func (r *FactorRange) Factors() [][]string {
	return slices.Clone(r.mapping.leafKeys)
}

func asNumber(v any) (float64, bool) {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return props.AsFloat(v), true
	}
	return 0, false
}

func stringList(l []any) ([]string, bool) {
	out := make([]string, len(l))
	for i, e := range l {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// factorKeys converts validated factors to lists of strings.
func factorKeys(factors []any) [][]string {
	keys := make([][]string, 0, len(factors))
	for _, f := range factors {
		switch v := f.(type) {
		case string:
			keys = append(keys, []string{v})
		case []any:
			k, _ := stringList(v)
			keys = append(keys, k)
		}
	}
	return keys
}

func checkFactors(v any) error {
	levels := 0
	seen := map[string]bool{}
	for i, f := range props.AsList(v) {
		var key []string
		switch fv := f.(type) {
		case string:
			key = []string{fv}
		case []any:
			k, ok := stringList(fv)
			if !ok || len(k) < 2 || len(k) > 3 {
				return fmt.Errorf("%w: factor %d must be a list of 2 or 3 strings", ErrFactors, i)
			}
			key = k
		default:
			return fmt.Errorf("%w: factor %d is %v", ErrFactors, i, f)
		}
		if levels == 0 {
			levels = len(key)
		} else if len(key) != levels {
			return fmt.Errorf("%w: factors mix nesting levels", ErrFactors)
		}
		j := strings.Join(key, "\x00")
		if seen[j] {
			return fmt.Errorf("%w: duplicate factor %v", ErrFactors, f)
		}
		seen[j] = true
	}
	return nil
}

// factorMap holds the synthetic coordinates of factors and of
// their group prefixes.
type factorMap struct {
	levels     int
	tops       []string
	values     map[string]float64
	leafKeys   [][]string
	leafValues []float64
	leaves     int
	inner      float64
}

func newFactorMap(keys [][]string, pads []float64, factorPadding float64) *factorMap {
	m := &factorMap{levels: 1, values: map[string]float64{}}
	if len(keys) > 0 {
		m.levels = len(keys[0])
	}
	m.leaves = len(keys)
	_, m.inner = m.mapLevel(keys, nil, pads, factorPadding, 0)
	for _, k := range keys {
		if len(k) > 1 && !slices.Contains(m.tops, k[0]) {
			m.tops = append(m.tops, k[0])
		}
	}
	return m
}

// mapLevel maps factors sharing the given prefix, starting at offset.
// It returns the values of the mapped entries and the inner padding.
func (m *factorMap) mapLevel(keys [][]string, prefix []string, pads []float64, factorPadding, offset float64) ([]float64, float64) {
	depth := len(prefix)
	if len(keys) == 0 {
		return nil, 0
	}
	if len(keys[0]) == depth+1 {
		vals := make([]float64, len(keys))
		for i, k := range keys {
			v := 0.5 + offset + float64(i)*(1+factorPadding)
			vals[i] = v
			m.values[strings.Join(k, "\x00")] = v
			m.leafKeys = append(m.leafKeys, k)
			m.leafValues = append(m.leafValues, v)
		}
		return vals, float64(max(len(keys)-1, 0)) * factorPadding
	}
	var groups []string
	members := map[string][][]string{}
	for _, k := range keys {
		g := k[depth]
		if _, ok := members[g]; !ok {
			groups = append(groups, g)
		}
		members[g] = append(members[g], k)
	}
	var vals []float64
	inner := 0.0
	sub := offset
	for _, g := range groups {
		gp := append(slices.Clone(prefix), g)
		cv, cinner := m.mapLevel(members[g], gp, pads, factorPadding, sub)
		v := mean(cv)
		m.values[strings.Join(gp, "\x00")] = v
		vals = append(vals, v)
		sub += float64(len(members[g])) + pads[depth] + cinner
		inner += cinner
	}
	inner += float64(len(groups)-1) * pads[depth]
	return vals, inner
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return math.NaN()
	}
	s := 0.0
	for _, v := range vs {
		s += v
	}
	return s / float64(len(vs))
}

func (m *factorMap) value(key []string) float64 {
	if v, ok := m.values[strings.Join(key, "\x00")]; ok {
		return v
	}
	return math.NaN()
}
