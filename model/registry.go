// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"cogentcore.org/figure/base/keylist"
)

// ErrUnknownType is returned when instantiating an unregistered type name.
var ErrUnknownType = errors.New("model: unknown model type")

// Registry maps model type names to constructors. It is an explicit
// value passed to whatever needs to instantiate models by name,
// such as document deserialization.
type Registry struct {
	ctors keylist.List[string, func() Model]
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a constructor for the given type name.
// It returns an error if the name is already registered.
func (r *Registry) Register(name string, ctor func() Model) error {
	if err := r.ctors.Add(name, ctor); err != nil {
		return fmt.Errorf("model.Registry: type %q is already registered", name)
	}
	return nil
}

// MustRegister is [Registry.Register] panicking on error.
func (r *Registry) MustRegister(name string, ctor func() Model) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Has returns whether the type name is registered.
func (r *Registry) Has(name string) bool {
	return r.ctors.Has(name)
}

// Names returns the registered type names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.ctors.Keys)
}

// New returns a new model of the named type with the given id,
// or a fresh id if it is empty.
func (r *Registry) New(name, id string) (Model, error) {
	ctor, ok := r.ctors.AtTry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	m := ctor()
	if m.TypeName() != name {
		return nil, fmt.Errorf("model.Registry: constructor for %q made a %q", name, m.TypeName())
	}
	if id != "" {
		if err := m.AsModel().SetID(id); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
