// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"log/slog"
	"math"
	"reflect"

	"github.com/jinzhu/copier"
)

// Equal reports whether two normalized property values are equal.
// Referents compare by identity, floats treat NaN as equal to NaN,
// and lists, maps and specs compare element-wise.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ra, ok := a.(Referent); ok {
		rb, ok := b.(Referent)
		return ok && ra == rb
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && (x == y || (math.IsNaN(x) && math.IsNaN(y)))
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, has := y[k]
			if !has || !Equal(v, w) {
				return false
			}
		}
		return true
	case Spec:
		y, ok := b.(Spec)
		if !ok || x.Form != y.Form || x.Field != y.Field {
			return false
		}
		if x.Expr != nil || y.Expr != nil {
			return x.Expr == y.Expr
		}
		return Equal(x.Value, y.Value)
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Clone returns a copy of a property value that shares no slice
// or map storage with v. Referents and pointers are shared, not
// copied.
func Clone(v any) any {
	switch x := v.(type) {
	case nil, Referent:
		return v
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Clone(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Clone(e)
		}
		return out
	case Spec:
		x.Value = Clone(x.Value)
		return x
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return v
		}
		dst := reflect.New(rv.Type())
		if err := copier.CopyWithOption(dst.Interface(), v, copier.Option{DeepCopy: true}); err != nil {
			slog.Error("props.Clone", "type", rv.Type().String(), "err", err)
			return v
		}
		return dst.Elem().Interface()
	}
	return v
}

// AsFloat returns v as a float64, or NaN if it is not a number.
func AsFloat(v any) float64 {
	f, ok := toFloat(v)
	if !ok {
		return math.NaN()
	}
	return f
}

// AsInt returns v as an int, or 0 if it is not an integer.
func AsInt(v any) int {
	n, _ := toInt(v)
	return n
}

// AsString returns v as a string, or "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsBool returns v as a bool, or false.
func AsBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// AsList returns v as a list, or nil.
func AsList(v any) []any {
	l, _ := v.([]any)
	return l
}

// AsMap returns v as a map, or nil.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsSpec returns v as a [Spec]; non-spec values become value specs.
func AsSpec(v any) Spec {
	if s, ok := v.(Spec); ok {
		return s
	}
	return Value(v)
}

// AsInts converts a list of values to ints, skipping non-integers.
func AsInts(v any) []int {
	l := AsList(v)
	out := make([]int, 0, len(l))
	for _, e := range l {
		if n, ok := toInt(e); ok {
			out = append(out, n)
		}
	}
	return out
}
