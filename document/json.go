// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"cogentcore.org/figure/base/iox/jsonx"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
	"github.com/Masterminds/semver/v3"
)

// Version is the version of the document format written by [Document.ToJSON].
const Version = "0.1.0"

// DocJSON is the serialized form of a document.
type DocJSON struct {
	Version string    `json:"version"`
	Title   string    `json:"title"`
	Roots   RootsJSON `json:"roots"`
}

// RootsJSON holds the root ids and the definitions of all models.
type RootsJSON struct {
	RootIDs    []string    `json:"root_ids"`
	References []ModelJSON `json:"references"`
}

// ModelJSON is the definition of one model. Attributes holds only
// the properties whose values differ from their defaults, with
// references to other models written as {"id": ...}.
type ModelJSON struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Option is an option for [FromJSON] and [Parse].
type Option func(o *options)

type options struct {
	theme Themer
}

// WithTheme applies the given theme to every model created.
func WithTheme(t Themer) Option {
	return func(o *options) { o.theme = t }
}

// ToJSON returns the serialized form of the document.
func (d *Document) ToJSON() *DocJSON {
	dj := &DocJSON{Version: Version, Title: d.title}
	dj.Roots.RootIDs = make([]string, len(d.roots))
	for i, r := range d.roots {
		dj.Roots.RootIDs[i] = r.ID()
	}
	dj.Roots.References = make([]ModelJSON, 0, d.models.Len())
	for _, m := range d.models.Values {
		dj.Roots.References = append(dj.Roots.References, d.modelJSON(m))
	}
	return dj
}

// MarshalJSON implements [json.Marshaler].
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToJSON())
}

// Bytes returns the indented JSON encoding of the document.
func (d *Document) Bytes() ([]byte, error) {
	return jsonx.WriteBytes(d.ToJSON())
}

// Save writes the document to the given file as JSON.
func (d *Document) Save(filename string) error {
	return jsonx.Save(d.ToJSON(), filename)
}

func (d *Document) modelJSON(m model.Model) ModelJSON {
	b := m.AsModel()
	mj := ModelJSON{ID: m.ID(), Type: m.TypeName()}
	for _, def := range b.Schema().Defs() {
		if def.IsComputed() || def.Internal {
			continue
		}
		v := b.Props.Value(def.Name)
		if props.Equal(v, def.Default) {
			continue
		}
		if mj.Attributes == nil {
			mj.Attributes = map[string]any{}
		}
		mj.Attributes[def.Name] = d.encodeValue(v, def.BackRef)
	}
	return mj
}

// encodeValue converts a property value to its JSON form. References
// that are back-references to models outside the document become null.
func (d *Document) encodeValue(v any, backRef bool) any {
	switch x := v.(type) {
	case model.Model:
		if backRef && d.models.At(x.ID()) != x {
			slog.Warn("document: dropping back-reference to a model outside the document", "model", x.AsModel().String())
			return nil
		}
		return refJSON(x)
	case props.Spec:
		switch x.Form {
		case props.FieldForm:
			return map[string]any{"field": x.Field}
		case props.ExprForm:
			if m, ok := x.Expr.(model.Model); ok {
				return map[string]any{"expr": refJSON(m)}
			}
			return nil
		}
		return map[string]any{"value": d.encodeValue(x.Value, backRef)}
	case float64:
		return encodeFloat(x)
	case float32:
		return encodeFloat(float64(x))
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = encodeFloat(f)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = d.encodeValue(e, backRef)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = d.encodeValue(e, backRef)
		}
		return out
	}
	return v
}

func refJSON(m model.Model) map[string]any {
	return map[string]any{"id": m.ID()}
}

// encodeFloat writes non-finite numbers as {"type": "number", "value": ...}
// objects, since JSON has no representation for them.
func encodeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return map[string]any{"type": "number", "value": "nan"}
	case math.IsInf(f, 1):
		return map[string]any{"type": "number", "value": "+inf"}
	case math.IsInf(f, -1):
		return map[string]any{"type": "number", "value": "-inf"}
	}
	return f
}

func decodeFloat(m map[string]any) (float64, bool) {
	if len(m) != 2 || m["type"] != "number" {
		return 0, false
	}
	switch m["value"] {
	case "nan":
		return math.NaN(), true
	case "+inf":
		return math.Inf(1), true
	case "-inf":
		return math.Inf(-1), true
	}
	return 0, false
}

// Parse returns the document decoded from JSON data.
func Parse(reg *model.Registry, data []byte, opts ...Option) (*Document, error) {
	dj := &DocJSON{}
	if err := jsonx.ReadBytes(dj, data); err != nil {
		return nil, fmt.Errorf("document.Parse: %w", err)
	}
	return FromJSON(reg, dj, opts...)
}

// Open returns the document read from the given JSON file.
func Open(reg *model.Registry, filename string, opts ...Option) (*Document, error) {
	dj := &DocJSON{}
	if err := jsonx.Open(dj, filename); err != nil {
		return nil, err
	}
	return FromJSON(reg, dj, opts...)
}

// FromJSON returns a new document built from its serialized form.
// All models are first created by id, and then their attributes are
// decoded with references resolved against the created models. An
// unknown type or a reference to an undefined id fails the whole
// document before any model is placed in it.
func FromJSON(reg *model.Registry, dj *DocJSON, opts ...Option) (*Document, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	checkVersion(dj.Version)
	created, err := instantiate(reg, dj.Roots.References, nil, o.theme)
	if err != nil {
		return nil, err
	}
	rs := &resolver{lookup: func(id string) model.Model { return created[id] }}
	if err := rs.define(dj.Roots.References, created, ""); err != nil {
		return nil, err
	}
	roots := make([]model.Model, 0, len(dj.Roots.RootIDs))
	for _, id := range dj.Roots.RootIDs {
		m := created[id]
		if m == nil {
			return nil, fmt.Errorf("%w: root %q", ErrDanglingRef, id)
		}
		roots = append(roots, m)
	}
	d := New()
	d.Theme = o.theme
	if dj.Title != "" {
		d.title = dj.Title
	}
	if err := d.recompute(roots); err != nil {
		return nil, err
	}
	return d, nil
}

// instantiate creates the models defined by refs whose ids are not
// already known, applying the theme to each.
func instantiate(reg *model.Registry, refs []ModelJSON, known func(id string) bool, theme Themer) (map[string]model.Model, error) {
	created := make(map[string]model.Model, len(refs))
	for _, mj := range refs {
		if known != nil && known(mj.ID) {
			continue
		}
		if _, dup := created[mj.ID]; dup {
			return nil, fmt.Errorf("%w: %q defined twice", ErrDuplicateID, mj.ID)
		}
		m, err := reg.New(mj.Type, mj.ID)
		if err != nil {
			return nil, err
		}
		if theme != nil {
			theme.Apply(m)
		}
		created[mj.ID] = m
	}
	return created, nil
}

// resolver decodes JSON values into property values, guided by
// the property types.
type resolver struct {
	lookup func(id string) model.Model
}

// define decodes the attributes of every created model and then sets
// them, so that nothing is set if any attribute fails to decode.
func (rs *resolver) define(refs []ModelJSON, created map[string]model.Model, setter string) error {
	type pending struct {
		m    model.Model
		vals map[string]any
	}
	var all []pending
	for _, mj := range refs {
		m, ok := created[mj.ID]
		if !ok || len(mj.Attributes) == 0 {
			continue
		}
		vals, err := rs.attributes(m, mj.Attributes)
		if err != nil {
			return err
		}
		all = append(all, pending{m, vals})
	}
	for _, p := range all {
		if err := p.m.AsModel().Props.SetManyFrom(p.vals, setter); err != nil {
			return fmt.Errorf("document: %v: %w", p.m, err)
		}
	}
	return nil
}

func (rs *resolver) attributes(m model.Model, attrs map[string]any) (map[string]any, error) {
	vals := make(map[string]any, len(attrs))
	for name, raw := range attrs {
		v, err := rs.attribute(m, name, raw)
		if err != nil {
			return nil, err
		}
		vals[name] = v
	}
	return vals, nil
}

func (rs *resolver) attribute(m model.Model, name string, raw any) (any, error) {
	def, ok := m.AsModel().Schema().Def(name)
	if !ok {
		return nil, fmt.Errorf("document: %v: %w: %q", m, props.ErrUnknownProperty, name)
	}
	v, err := rs.decode(def.Type, raw)
	if err != nil {
		return nil, fmt.Errorf("document: %v.%s: %w", m, name, err)
	}
	return v, nil
}

func (rs *resolver) ref(v any) (model.Model, error) {
	mp, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a reference, got %T", v)
	}
	id, _ := mp["id"].(string)
	m := rs.lookup(id)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrDanglingRef, id)
	}
	return m, nil
}

func isRef(v any) bool {
	mp, ok := v.(map[string]any)
	if !ok || len(mp) != 1 {
		return false
	}
	_, ok = mp["id"].(string)
	return ok
}

// decode converts a JSON value to a property value of type t.
func (rs *resolver) decode(t *props.Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if mp, ok := v.(map[string]any); ok {
		if f, ok := decodeFloat(mp); ok {
			return f, nil
		}
	}
	switch t.Kind {
	case props.KindInstance:
		return rs.ref(v)
	case props.KindNullable:
		return rs.decode(t.Elem, v)
	case props.KindList:
		list, ok := v.([]any)
		if !ok {
			return v, nil
		}
		out := make([]any, len(list))
		for i, e := range list {
			d, err := rs.decode(t.Elem, e)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	case props.KindMap:
		mp, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		out := make(map[string]any, len(mp))
		for k, e := range mp {
			d, err := rs.decode(t.Elem, e)
			if err != nil {
				return nil, err
			}
			out[k] = d
		}
		return out, nil
	case props.KindSpec:
		mp, ok := v.(map[string]any)
		if !ok {
			return rs.decode(t.Elem, v)
		}
		if e, ok := mp["expr"]; ok {
			m, err := rs.ref(e)
			if err != nil {
				return nil, err
			}
			ex, ok := m.(props.Expression)
			if !ok {
				return nil, fmt.Errorf("%v is not an expression", m)
			}
			return props.Expr(ex), nil
		}
		if f, ok := mp["field"].(string); ok {
			return props.Field(f), nil
		}
		if val, ok := mp["value"]; ok {
			d, err := rs.decode(t.Elem, val)
			if err != nil {
				return nil, err
			}
			return props.Value(d), nil
		}
		return v, nil
	case props.KindAny:
		return rs.decodeAny(v)
	}
	return v, nil
}

// decodeAny decodes a value with no type information, treating
// single-key {"id": ...} objects as references.
func (rs *resolver) decodeAny(v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		if isRef(x) {
			return rs.ref(x)
		}
		if f, ok := decodeFloat(x); ok {
			return f, nil
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			d, err := rs.decodeAny(e)
			if err != nil {
				return nil, err
			}
			out[k] = d
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			d, err := rs.decodeAny(e)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	case json.Number:
		if i, err := strconv.Atoi(x.String()); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return v, nil
}

// checkVersion warns when a document was written by an
// incompatible version of the format.
func checkVersion(v string) bool {
	if v == "" {
		slog.Warn("document: no version given")
		return false
	}
	got, err := semver.NewVersion(v)
	if err != nil {
		slog.Warn("document: invalid version", "version", v, "err", err)
		return false
	}
	lib := semver.MustParse(Version)
	c, err := semver.NewConstraint(fmt.Sprintf("~%d.%d", lib.Major(), lib.Minor()))
	if err != nil {
		slog.Error("document: version constraint", "err", err)
		return false
	}
	if !c.Check(got) {
		slog.Warn("document: version mismatch", "document", v, "library", Version)
		return false
	}
	return true
}
