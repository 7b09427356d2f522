// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"errors"
	"fmt"
	"math"
)

// SpecForm is which one of the three forms a [Spec] takes.
type SpecForm int32

// The data spec forms.
const (
	// ValueForm is a literal value shared by every data point.
	ValueForm SpecForm = iota

	// FieldForm names a column of the data source.
	FieldForm

	// ExprForm delegates to an [Expression] evaluated over the data source.
	ExprForm
)

func (f SpecForm) String() string {
	switch f {
	case ValueForm:
		return "value"
	case FieldForm:
		return "field"
	case ExprForm:
		return "expr"
	}
	return fmt.Sprintf("SpecForm(%d)", int32(f))
}

// Columns is a source of named, equal-length data columns.
type Columns interface {
	Column(name string) ([]any, bool)
	Length() int
}

// Expression computes a column of values from a data source.
type Expression interface {
	Referent
	Evaluate(src Columns) ([]any, error)
}

// ErrMissingField is returned when a field spec names a column
// the data source does not have.
var ErrMissingField = errors.New("props: data source has no such field")

// Spec is a data spec value: exactly one of a literal value, a
// field name, or an expression, resolved against a data source
// at draw time.
type Spec struct {
	Form  SpecForm
	Value any
	Field string
	Expr  Expression
}

// Value returns a literal value spec.
func Value(v any) Spec { return Spec{Form: ValueForm, Value: v} }

// Field returns a field spec naming a data column.
func Field(name string) Spec { return Spec{Form: FieldForm, Field: name} }

// Expr returns an expression spec.
func Expr(e Expression) Spec { return Spec{Form: ExprForm, Expr: e} }

func (s Spec) String() string {
	switch s.Form {
	case FieldForm:
		return "field(" + s.Field + ")"
	case ExprForm:
		return "expr(" + s.Expr.ID() + ")"
	}
	return fmt.Sprintf("value(%v)", s.Value)
}

func specFromMap(m map[string]any) (Spec, error) {
	var sp Spec
	n := 0
	if v, ok := m["value"]; ok {
		sp = Spec{Form: ValueForm, Value: v}
		n++
	}
	if v, ok := m["field"]; ok {
		f, isStr := v.(string)
		if !isStr {
			return sp, fmt.Errorf("field must be a string, not %T", v)
		}
		sp = Spec{Form: FieldForm, Field: f}
		n++
	}
	if v, ok := m["expr"]; ok {
		e, isExpr := v.(Expression)
		if !isExpr {
			return sp, fmt.Errorf("expr must be an expression, not %T", v)
		}
		sp = Spec{Form: ExprForm, Expr: e}
		n++
	}
	if n != 1 {
		return sp, fmt.Errorf("spec must have exactly one of value, field or expr, has %d", n)
	}
	return sp, nil
}

// Resolve returns one value per row of src. A value spec repeats
// its literal; with a nil src it yields a single value.
func (s Spec) Resolve(src Columns) ([]any, error) {
	switch s.Form {
	case FieldForm:
		if src == nil {
			return nil, fmt.Errorf("%w: %q (no data source)", ErrMissingField, s.Field)
		}
		col, ok := src.Column(s.Field)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, s.Field)
		}
		return col, nil
	case ExprForm:
		return s.Expr.Evaluate(src)
	}
	n := 1
	if src != nil {
		n = src.Length()
	}
	out := make([]any, n)
	for i := range out {
		out[i] = s.Value
	}
	return out, nil
}

// ResolveFloats resolves the spec as numbers; non-numeric
// entries become NaN.
func (s Spec) ResolveFloats(src Columns) ([]float64, error) {
	vals, err := s.Resolve(src)
	if err != nil {
		return nil, err
	}
	return Floats(vals), nil
}

// Floats converts a list of values to float64, with NaN
// for entries that are not numbers.
func Floats(vals []any) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, ok := toFloat(v)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}
