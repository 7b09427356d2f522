// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"reflect"
	"slices"
	"strings"

	"cogentcore.org/figure/colors"
)

// Kind is the kind of value a [Type] describes.
type Kind int32

// The property value kinds.
const (
	KindAny Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindEnum
	KindColor
	KindInstance
	KindList
	KindMap
	KindNullable
	KindSpec
)

// Referent is implemented by values that can be stored in
// an Instance property: objects with a stable identity.
type Referent interface {
	ID() string
	TypeName() string
}

// Type is a property type descriptor: a tagged union over [Kind]
// with the extra data each kind needs.
type Type struct {
	Kind Kind

	// Elem is the element type of List, Map, Nullable and Spec types.
	Elem *Type

	// Values are the allowed values of an Enum type.
	Values []string

	// Name is the required kind of an Instance type, used in messages.
	Name string

	// Accept reports whether a Referent is acceptable for an Instance type.
	Accept func(r Referent) bool
}

// Any returns a type that accepts any value.
func Any() *Type { return &Type{Kind: KindAny} }

// Bool returns a boolean type.
func Bool() *Type { return &Type{Kind: KindBool} }

// Int returns an integer type.
func Int() *Type { return &Type{Kind: KindInt} }

// Float returns a floating point type, which also accepts integers.
func Float() *Type { return &Type{Kind: KindFloat} }

// String returns a string type.
func String() *Type { return &Type{Kind: KindString} }

// Enum returns a string type restricted to the given values.
func Enum(values ...string) *Type { return &Type{Kind: KindEnum, Values: values} }

// Color returns a color type, holding a normalized color string.
func Color() *Type { return &Type{Kind: KindColor} }

// Instance returns a reference type accepting [Referent] values
// for which accept returns true. A nil accept accepts any Referent.
func Instance(name string, accept func(r Referent) bool) *Type {
	return &Type{Kind: KindInstance, Name: name, Accept: accept}
}

// List returns a list type with the given element type.
func List(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

// Map returns a string-keyed map type with the given value type.
func Map(elem *Type) *Type { return &Type{Kind: KindMap, Elem: elem} }

// Nullable returns a type accepting nil or a value of elem.
func Nullable(elem *Type) *Type { return &Type{Kind: KindNullable, Elem: elem} }

// SpecOf returns a data spec type whose literal values have type elem.
func SpecOf(elem *Type) *Type { return &Type{Kind: KindSpec, Elem: elem} }

// NumberSpec returns a data spec of numbers.
func NumberSpec() *Type { return SpecOf(Float()) }

// StringSpec returns a data spec of strings.
func StringSpec() *Type { return SpecOf(String()) }

// ColorSpec returns a data spec of colors.
func ColorSpec() *Type { return SpecOf(Color()) }

func (t *Type) String() string {
	switch t.Kind {
	case KindAny:
		return "Any"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindEnum:
		return "Enum(" + strings.Join(t.Values, ", ") + ")"
	case KindColor:
		return "Color"
	case KindInstance:
		return "Instance(" + t.Name + ")"
	case KindList:
		return "List(" + t.Elem.String() + ")"
	case KindMap:
		return "Map(" + t.Elem.String() + ")"
	case KindNullable:
		return "Nullable(" + t.Elem.String() + ")"
	case KindSpec:
		return t.Elem.String() + "Spec"
	}
	return fmt.Sprintf("Kind(%d)", t.Kind)
}

// Validate checks that v is acceptable for this type and returns
// its normalized form: numbers become int or float64, lists []any,
// maps map[string]any, colors strings, and spec shorthands [Spec].
func (t *Type) Validate(v any) (any, error) {
	if v == nil {
		if t.Kind == KindNullable || t.Kind == KindAny {
			return nil, nil
		}
		return nil, t.errorf(v, "value is null")
	}
	switch t.Kind {
	case KindAny:
		return normalizeAny(v), nil
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindInt:
		if n, ok := toInt(v); ok {
			return n, nil
		}
	case KindFloat:
		if f, ok := toFloat(v); ok {
			return f, nil
		}
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			break
		}
		if !slices.Contains(t.Values, s) {
			return nil, t.errorf(v, "not one of the allowed values")
		}
		return s, nil
	case KindColor:
		return t.validateColor(v)
	case KindInstance:
		r, ok := v.(Referent)
		if !ok {
			break
		}
		if t.Accept != nil && !t.Accept(r) {
			return nil, t.errorf(v, r.TypeName()+" is not a "+t.Name)
		}
		return r, nil
	case KindList:
		return t.validateList(v)
	case KindMap:
		return t.validateMap(v)
	case KindNullable:
		return t.Elem.Validate(v)
	case KindSpec:
		return t.validateSpec(v)
	}
	return nil, t.errorf(v, "")
}

func (t *Type) errorf(v any, reason string) error {
	return &TypeError{Type: t, Value: v, Reason: reason}
}

func (t *Type) validateColor(v any) (any, error) {
	switch x := v.(type) {
	case string:
		if !colors.IsColor(x) {
			return nil, t.errorf(v, "unknown color")
		}
		return x, nil
	case color.Color, []any:
		c, err := colors.FromAny(x)
		if err != nil {
			return nil, t.errorf(v, err.Error())
		}
		return colors.AsHex(c), nil
	}
	return nil, t.errorf(v, "")
}

func (t *Type) validateList(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, t.errorf(v, "")
	}
	out := make([]any, rv.Len())
	for i := range out {
		e, err := t.Elem.Validate(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

func (t *Type) validateMap(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, t.errorf(v, "")
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		e, err := t.Elem.Validate(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = e
	}
	return out, nil
}

func (t *Type) validateSpec(v any) (any, error) {
	var sp Spec
	switch x := v.(type) {
	case Spec:
		sp = x
	case map[string]any:
		var err error
		sp, err = specFromMap(x)
		if err != nil {
			return nil, t.errorf(v, err.Error())
		}
	case string:
		if t.Elem.Kind == KindString || t.Elem.Kind == KindColor || t.Elem.Kind == KindEnum {
			sp = Spec{Form: ValueForm, Value: x}
		} else {
			sp = Spec{Form: FieldForm, Field: x}
		}
	default:
		sp = Spec{Form: ValueForm, Value: v}
	}
	switch sp.Form {
	case ValueForm:
		if sp.Value == nil {
			return sp, nil
		}
		val, err := t.Elem.Validate(sp.Value)
		if err != nil {
			return nil, err
		}
		sp.Value = val
	case FieldForm:
		if sp.Field == "" {
			return nil, t.errorf(v, "empty field name")
		}
	case ExprForm:
		if sp.Expr == nil {
			return nil, t.errorf(v, "missing expression")
		}
	default:
		return nil, t.errorf(v, "invalid spec form")
	}
	return sp, nil
}

func normalizeAny(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n)
		}
		f, _ := x.Float64()
		return f
	case float32:
		return float64(x)
	}
	if n, ok := toInt(v); ok {
		if _, isFloat := v.(float64); !isFloat {
			return n
		}
	}
	return v
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return int(x), true
	case float32:
		if float32(int(x)) == x {
			return int(x), true
		}
	case float64:
		if !math.IsInf(x, 0) && math.Trunc(x) == x {
			return int(x), true
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	if n, ok := toInt(v); ok {
		return float64(n), true
	}
	return 0, false
}
