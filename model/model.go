// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model provides the base type of all document models:
// objects with a unique id, a type name, and a set of observable
// properties defined by a [props.Schema]. Models reference each
// other through Instance properties, forming a graph that a
// document owns through its roots.
package model

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"cogentcore.org/figure/props"
	"cogentcore.org/figure/signal"
)

// Model is implemented by every document model type.
// All model types embed [Base] and are used by pointer.
type Model interface {
	props.Referent

	// AsModel returns the embedded [Base].
	AsModel() *Base
}

// Initer is implemented by models that need to set up internal
// state, such as signal connections, after their properties exist.
type Initer interface {
	Init()
}

// Schema is the base schema inherited by all model schemas.
var Schema = props.NewSchema("Model").
	Define("name", props.Nullable(props.String()), nil).
	Define("tags", props.List(props.Any()), []any{})

var lastID atomic.Int64

func init() {
	lastID.Store(1000)
}

// NewID returns a new unique model id.
func NewID() string {
	return "p" + strconv.FormatInt(lastID.Add(1), 10)
}

// Base implements the common state and behavior of models.
type Base struct {

	// This is the model as its true underlying type.
	This Model

	// Props holds the property values.
	Props *props.Properties

	id  string
	doc any
}

// New returns a new initialized model of type T with the given schema
// and a fresh id. It is the constructor used by all model types:
//
//	r := model.New[Range1d](Range1dSchema)
func New[T any, P interface {
	*T
	Model
}](schema *props.Schema) P {
	m := P(new(T))
	Init(m, schema, "")
	return m
}

// Init initializes the [Base] of m with the given schema and id,
// generating an id if it is empty, and then calls [Initer.Init].
func Init(m Model, schema *props.Schema, id string) {
	b := m.AsModel()
	if id == "" {
		id = NewID()
	}
	b.This = m
	b.id = id
	b.Props = props.New(schema, m)
	if in, ok := m.(Initer); ok {
		in.Init()
	}
}

// ID returns the unique id of the model.
func (b *Base) ID() string { return b.id }

// SetID changes the id of a model that is not yet in a document.
func (b *Base) SetID(id string) error {
	if b.doc != nil {
		return fmt.Errorf("model.SetID: %s %s is already in a document", b.TypeName(), b.id)
	}
	b.id = id
	return nil
}

// TypeName returns the type name of the model, from its schema.
func (b *Base) TypeName() string { return b.Props.Schema().Name }

// AsModel returns the base itself.
func (b *Base) AsModel() *Base { return b }

// Schema returns the property schema of the model.
func (b *Base) Schema() *props.Schema { return b.Props.Schema() }

func (b *Base) String() string {
	return b.TypeName() + "(" + b.id + ")"
}

// Document returns the document the model is attached to, or nil.
func (b *Base) Document() any { return b.doc }

// Attach records that the model belongs to doc. It is called
// by documents and fails if the model belongs to another document.
func (b *Base) Attach(doc any) error {
	if b.doc != nil && b.doc != doc {
		return fmt.Errorf("model.Attach: %v already belongs to another document", b)
	}
	b.doc = doc
	return nil
}

// Detach clears the document of the model.
func (b *Base) Detach() {
	b.doc = nil
	b.Props.Guard = nil
}

// Changed returns the signal emitted after any property changes.
func (b *Base) Changed() *signal.Signal[props.Change] {
	return &b.Props.Changed
}

// OnChange returns the change signal of the named property.
// It panics if there is no such property, which is a programming error.
func (b *Base) OnChange(name string) *signal.Signal[props.Change] {
	p := b.Props.Property(name)
	if p == nil {
		panic(fmt.Sprintf("model.OnChange: %s has no property %q", b.TypeName(), name))
	}
	return &p.Change
}

// Get returns the value of the named property, logging
// an error and returning nil if there is no such property.
func (b *Base) Get(name string) any {
	v, err := b.Props.Get(name)
	if err != nil {
		slog.Error("model.Get", "model", b.String(), "err", err)
	}
	return v
}

// Set validates and sets the value of the named property.
func (b *Base) Set(name string, v any) error {
	return b.Props.Set(name, v)
}

// SetMany sets several properties at once, all or nothing.
func (b *Base) SetMany(vals map[string]any) error {
	return b.Props.SetMany(vals)
}

// GetFloat returns the named property as a float64, NaN if null.
func (b *Base) GetFloat(name string) float64 { return props.AsFloat(b.Get(name)) }

// GetInt returns the named property as an int.
func (b *Base) GetInt(name string) int { return props.AsInt(b.Get(name)) }

// GetString returns the named property as a string.
func (b *Base) GetString(name string) string { return props.AsString(b.Get(name)) }

// GetBool returns the named property as a bool.
func (b *Base) GetBool(name string) bool { return props.AsBool(b.Get(name)) }

// GetList returns the named property as a list.
func (b *Base) GetList(name string) []any { return props.AsList(b.Get(name)) }

// GetMap returns the named property as a map.
func (b *Base) GetMap(name string) map[string]any { return props.AsMap(b.Get(name)) }

// GetSpec returns the named property as a data spec.
func (b *Base) GetSpec(name string) props.Spec { return props.AsSpec(b.Get(name)) }

// GetRef returns the named property as a model reference, or nil.
func (b *Base) GetRef(name string) Model {
	m, _ := b.Get(name).(Model)
	return m
}

// GetRefs returns the models in the named list property.
func (b *Base) GetRefs(name string) []Model {
	l := b.GetList(name)
	out := make([]Model, 0, len(l))
	for _, e := range l {
		if m, ok := e.(Model); ok {
			out = append(out, m)
		}
	}
	return out
}

// MustSet sets the named property, panicking on error. It is meant
// for constructors setting values known to be valid.
func (b *Base) MustSet(name string, v any) {
	if err := b.Set(name, v); err != nil {
		panic(err)
	}
}
