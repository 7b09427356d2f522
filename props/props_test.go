// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"encoding/json"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ref struct {
	id, typ string
}

func (r *ref) ID() string       { return r.id }
func (r *ref) TypeName() string { return r.typ }

type columns map[string][]any

func (c columns) Column(name string) ([]any, bool) {
	col, ok := c[name]
	return col, ok
}

func (c columns) Length() int {
	for _, col := range c {
		return len(col)
	}
	return 0
}

type doubler struct {
	ref
	field string
}

func (d *doubler) Evaluate(src Columns) ([]any, error) {
	col, _ := src.Column(d.field)
	out := make([]any, len(col))
	for i, v := range col {
		out[i] = AsFloat(v) * 2
	}
	return out, nil
}

func TestValidate(t *testing.T) {
	isRange := func(r Referent) bool { return r.TypeName() == "Range1d" }
	tests := []struct {
		typ  *Type
		in   any
		want any
		ok   bool
	}{
		{Bool(), true, true, true},
		{Bool(), 1, nil, false},
		{Int(), 3.0, 3, true},
		{Int(), 3.5, nil, false},
		{Int(), json.Number("7"), 7, true},
		{Float(), 2, 2.0, true},
		{Float(), float32(1.5), 1.5, true},
		{Float(), "2", nil, false},
		{Float(), nil, nil, false},
		{Nullable(Float()), nil, nil, true},
		{String(), "x", "x", true},
		{Enum("a", "b"), "b", "b", true},
		{Enum("a", "b"), "c", nil, false},
		{Color(), "red", "red", true},
		{Color(), "nocolor", nil, false},
		{Color(), color.RGBA{255, 0, 0, 255}, "#ff0000", true},
		{List(Float()), []int{1, 2}, []any{1.0, 2.0}, true},
		{List(Float()), []any{1, "x"}, nil, false},
		{Map(Int()), map[string]float64{"a": 1}, map[string]any{"a": 1}, true},
		{Instance("Range", isRange), &ref{"r1", "Range1d"}, nil, true},
		{Instance("Range", isRange), &ref{"s1", "Scale"}, nil, false},
		{Instance("Range", isRange), "r1", nil, false},
	}
	for _, test := range tests {
		got, err := test.typ.Validate(test.in)
		if !test.ok {
			assert.ErrorIs(t, err, ErrType, "%v %v", test.typ, test.in)
			continue
		}
		require.NoError(t, err, "%v %v", test.typ, test.in)
		if test.want != nil {
			assert.Equal(t, test.want, got, "%v %v", test.typ, test.in)
		}
	}
}

func TestSpecForms(t *testing.T) {
	ns := NumberSpec()
	v, err := ns.Validate(3)
	require.NoError(t, err)
	assert.Equal(t, Value(3.0), v)

	v, err = ns.Validate("x")
	require.NoError(t, err)
	assert.Equal(t, Field("x"), v)

	v, err = ColorSpec().Validate("blue")
	require.NoError(t, err)
	assert.Equal(t, Value("blue"), v)

	v, err = ns.Validate(map[string]any{"field": "y"})
	require.NoError(t, err)
	assert.Equal(t, Field("y"), v)

	_, err = ns.Validate(map[string]any{"field": "y", "value": 1})
	assert.ErrorIs(t, err, ErrType)
	_, err = ns.Validate(map[string]any{})
	assert.ErrorIs(t, err, ErrType)
	_, err = ns.Validate(map[string]any{"value": "notnumber"})
	assert.ErrorIs(t, err, ErrType)
	_, err = ns.Validate(Spec{Form: FieldForm})
	assert.Error(t, err)
}

func TestSpecResolve(t *testing.T) {
	src := columns{"x": {1.0, 2.0, 3.0}}
	vals, err := Value(5.0).ResolveFloats(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5}, vals)

	vals, err = Field("x").ResolveFloats(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vals)

	_, err = Field("y").Resolve(src)
	assert.ErrorIs(t, err, ErrMissingField)

	d := &doubler{ref: ref{"e1", "Doubler"}, field: "x"}
	vals, err = Expr(d).ResolveFloats(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, vals)

	one, err := Value("a").Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, one)

	f := Floats([]any{1, "x", nil})
	assert.Equal(t, 1.0, f[0])
	assert.True(t, math.IsNaN(f[1]))
	assert.True(t, math.IsNaN(f[2]))
}

var testSchema = NewSchema("Box").
	Define("width", Float(), 1.0).
	Define("height", Float(), 2.0).
	Define("label", String(), "").
	Define("tags", List(String()), []any{"a"})

func init() {
	testSchema.Computed("area", Float(), []string{"width", "height"}, func(g Getter) any {
		return AsFloat(g.Value("width")) * AsFloat(g.Value("height"))
	})
	testSchema.Computed("double_area", Float(), []string{"area"}, func(g Getter) any {
		return 2 * AsFloat(g.Value("area"))
	})
}

func TestSetOrder(t *testing.T) {
	ps := New(testSchema, "owner")
	var log []string
	ps.Property("width").Change.Connect(t, "w", func(c Change) {
		// computed values are already consistent here
		log = append(log, "width", "area="+fmtFloat(AsFloat(ps.Value("area"))))
	})
	ps.Property("area").Change.Connect(t, "a", func(c Change) {
		log = append(log, "area")
	})
	ps.Changed.Connect(t, "any", func(c Change) {
		log = append(log, "any:"+c.Name)
		assert.Equal(t, "owner", c.Owner)
	})

	require.NoError(t, ps.Set("width", 3))
	assert.Equal(t, []string{"width", "area=6", "area", "any:width", "any:area", "any:double_area"}, log)
	assert.Equal(t, 12.0, ps.Value("double_area"))
	assert.Equal(t, 1, ps.Property("width").Changes())

	log = nil
	require.NoError(t, ps.Set("width", 3.0))
	assert.Empty(t, log)
	assert.Equal(t, 1, ps.Property("width").Changes())
}

func fmtFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func TestSetErrors(t *testing.T) {
	ps := New(testSchema, nil)
	err := ps.Set("width", "wide")
	assert.ErrorIs(t, err, ErrType)
	var te *TypeError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Box.width", te.Property)
	assert.Equal(t, 1.0, ps.Value("width"))

	assert.ErrorIs(t, ps.Set("nope", 1), ErrUnknownProperty)
	assert.ErrorIs(t, ps.Set("area", 1), ErrReadOnly)
	_, err = ps.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	guardErr := errors.New("locked")
	ps.Guard = func(name string) error { return guardErr }
	assert.ErrorIs(t, ps.Set("width", 5), guardErr)
	assert.Equal(t, 1.0, ps.Value("width"))
}

func TestSetMany(t *testing.T) {
	ps := New(testSchema, nil)
	n := 0
	ps.Changed.Connect(t, "", func(c Change) { n++ })
	err := ps.SetMany(map[string]any{"width": 4, "height": "tall"})
	assert.ErrorIs(t, err, ErrType)
	assert.Equal(t, 1.0, ps.Value("width"))
	assert.Equal(t, 0, n)

	require.NoError(t, ps.SetMany(map[string]any{"width": 4, "height": 5, "label": "b"}))
	assert.Equal(t, 20.0, ps.Value("area"))
	assert.Equal(t, 5, n) // width, height, label, area, double_area
}

func TestDefaultsNotShared(t *testing.T) {
	a := New(testSchema, nil)
	b := New(testSchema, nil)
	AsList(a.Value("tags"))[0] = "changed"
	assert.Equal(t, []any{"a"}, b.Value("tags"))
}

func TestTouch(t *testing.T) {
	ps := New(testSchema, nil)
	var got []string
	ps.Changed.Connect(t, "", func(c Change) { got = append(got, c.Name) })
	require.NoError(t, ps.Touch("tags"))
	assert.Equal(t, []string{"tags"}, got)
}

func TestSchemaInheritance(t *testing.T) {
	derived := NewSchema("BigBox", testSchema).Override("width", 10).Define("depth", Float(), 3)
	assert.True(t, derived.IsA("Box"))
	assert.False(t, testSchema.IsA("BigBox"))
	ps := New(derived, nil)
	assert.Equal(t, 10.0, ps.Value("width"))
	assert.Equal(t, 20.0, ps.Value("area"))
	assert.Equal(t, 1.0, New(testSchema, nil).Value("width"))
	assert.Panics(t, func() { NewSchema("Bad").Define("x", Float(), "nope") })
}

func TestClone(t *testing.T) {
	r := &ref{id: "r1", typ: "Range1d"}
	l := []any{1.0, r, []any{"a"}, map[string]any{"k": []any{2}}}
	c := Clone(l).([]any)
	assert.Equal(t, l, c)
	assert.Same(t, r, c[1])
	c[2].([]any)[0] = "b"
	assert.Equal(t, "a", l[2].([]any)[0])

	fs := []float64{1, 2, 3}
	cf := Clone(fs).([]float64)
	assert.Equal(t, fs, cf)
	cf[0] = 10
	assert.Equal(t, 1.0, fs[0])

	dash := map[string][]float64{"a": {2, 2}}
	cd := Clone(dash).(map[string][]float64)
	assert.Equal(t, dash, cd)
	cd["a"][0] = 5
	cd["b"] = nil
	assert.Equal(t, 2.0, dash["a"][0])
	assert.NotContains(t, dash, "b")

	sp := Value([]any{1, 2})
	csp := Clone(sp).(Spec)
	csp.Value.([]any)[0] = 9
	assert.Equal(t, 1, sp.Value.([]any)[0])

	assert.Nil(t, Clone(nil))
	assert.Equal(t, 3.5, Clone(3.5))
	assert.Nil(t, Clone([]float64(nil)))
}

func TestEqual(t *testing.T) {
	r1 := &ref{"a", "T"}
	r2 := &ref{"a", "T"}
	assert.True(t, Equal(r1, r1))
	assert.False(t, Equal(r1, r2))
	assert.True(t, Equal(math.NaN(), math.NaN()))
	assert.True(t, Equal([]any{1.0, "x"}, []any{1.0, "x"}))
	assert.False(t, Equal([]any{1.0}, []any{1.0, 2.0}))
	assert.True(t, Equal(map[string]any{"a": []any{r1}}, map[string]any{"a": []any{r1}}))
	assert.True(t, Equal(Field("x"), Field("x")))
	assert.False(t, Equal(Field("x"), Value("x")))
	assert.False(t, Equal(nil, 0.0))
}
