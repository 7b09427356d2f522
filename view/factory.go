// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"cogentcore.org/figure/base/keylist"
	"cogentcore.org/figure/model"
)

// Constructor returns a new uninitialized view for m.
type Constructor func(m model.Model) View

// Factory maps model types to view constructors. A model gets the
// constructor registered for its exact type name, or else the first
// registered base type its schema derives from.
type Factory struct {
	names map[string]Constructor
	bases keylist.List[string, Constructor]
}

// NewFactory returns a new empty factory.
func NewFactory() *Factory {
	return &Factory{names: map[string]Constructor{}}
}

// Register sets the constructor for models of the given type name.
func (f *Factory) Register(typeName string, ctor Constructor) *Factory {
	f.names[typeName] = ctor
	return f
}

// RegisterBase sets the constructor for models whose schema derives
// from the given base schema name, when no exact type is registered.
func (f *Factory) RegisterBase(baseName string, ctor Constructor) *Factory {
	f.bases.Set(baseName, ctor)
	return f
}

// Constructor returns the constructor for m, or nil if m has no view.
func (f *Factory) Constructor(m model.Model) Constructor {
	b := m.AsModel()
	if ctor, ok := f.names[b.TypeName()]; ok {
		return ctor
	}
	for name, ctor := range f.bases.All() {
		if b.Schema().IsA(name) {
			return ctor
		}
	}
	return nil
}

// Has returns whether m has a view.
func (f *Factory) Has(m model.Model) bool {
	return f.Constructor(m) != nil
}

// New returns a new view for m, or false if m has no view.
func (f *Factory) New(m model.Model) (View, bool) {
	ctor := f.Constructor(m)
	if ctor == nil {
		return nil, false
	}
	v := ctor(m)
	if v == nil {
		return nil, false
	}
	return v, true
}
