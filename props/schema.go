// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"fmt"
	"slices"

	"cogentcore.org/figure/base/keylist"
)

// Def is the definition of one property in a [Schema].
type Def struct {
	Name string
	Type *Type

	// Default is the initial value, copied for each instance.
	Default any

	// BackRef marks a reference that points back up the ownership
	// graph; it is serialized but not followed as an ownership edge.
	BackRef bool

	// Internal properties are not serialized.
	Internal bool

	// Check is an optional validation of the normalized value,
	// run after type validation.
	Check func(v any) error

	// Deps and Compute define a computed property.
	Deps    []string
	Compute func(g Getter) any
}

// IsComputed returns whether the property is computed.
func (d *Def) IsComputed() bool { return d.Compute != nil }

// Option customizes a [Def].
type Option func(d *Def)

// BackRef marks the property as a back-reference.
func BackRef() Option { return func(d *Def) { d.BackRef = true } }

// Internal marks the property as not serialized.
func Internal() Option { return func(d *Def) { d.Internal = true } }

// Check adds a validation function for the normalized value.
func Check(fun func(v any) error) Option { return func(d *Def) { d.Check = fun } }

// Getter gives read access to property values.
type Getter interface {
	Value(name string) any
}

// Schema is the ordered set of property definitions of one model
// type, including those inherited from its bases.
type Schema struct {

	// Name is the type name of the model this schema describes.
	Name string

	// Bases are the schemas this one extends.
	Bases []*Schema

	defs keylist.List[string, *Def]

	// dependents maps a property to the computed properties using it.
	dependents map[string][]string
}

// NewSchema returns a new schema with the given type name,
// inheriting the definitions of bases in order.
func NewSchema(name string, bases ...*Schema) *Schema {
	s := &Schema{Name: name, Bases: bases, dependents: map[string][]string{}}
	for _, b := range bases {
		for _, d := range b.defs.Values {
			cp := *d
			s.defs.Set(d.Name, &cp)
			for _, dep := range d.Deps {
				s.addDependent(dep, d.Name)
			}
		}
	}
	return s
}

func (s *Schema) addDependent(dep, name string) {
	if !slices.Contains(s.dependents[dep], name) {
		s.dependents[dep] = append(s.dependents[dep], name)
	}
}

// Define adds or replaces a property definition. It panics if the
// default does not validate, which is a programming error.
func (s *Schema) Define(name string, typ *Type, def any, opts ...Option) *Schema {
	d := &Def{Name: name, Type: typ}
	for _, o := range opts {
		o(d)
	}
	if def != nil {
		v, err := typ.Validate(def)
		if err != nil {
			panic(fmt.Sprintf("props.Schema.Define %s.%s: invalid default: %v", s.Name, name, err))
		}
		def = v
	}
	d.Default = def
	s.defs.Set(name, d)
	return s
}

// Override changes the default of an inherited property.
func (s *Schema) Override(name string, def any) *Schema {
	d, ok := s.defs.AtTry(name)
	if !ok {
		panic(fmt.Sprintf("props.Schema.Override %s: no property %q", s.Name, name))
	}
	cp := *d
	if def != nil {
		v, err := cp.Type.Validate(def)
		if err != nil {
			panic(fmt.Sprintf("props.Schema.Override %s.%s: invalid default: %v", s.Name, name, err))
		}
		def = v
	}
	cp.Default = def
	s.defs.Set(name, &cp)
	return s
}

// Computed defines a read-only property whose value is derived
// from the named dependencies, recomputed after any of them changes.
func (s *Schema) Computed(name string, typ *Type, deps []string, fun func(g Getter) any) *Schema {
	for _, dep := range deps {
		if !s.defs.Has(dep) {
			panic(fmt.Sprintf("props.Schema.Computed %s.%s: unknown dependency %q", s.Name, name, dep))
		}
		s.addDependent(dep, name)
	}
	s.defs.Set(name, &Def{Name: name, Type: typ, Internal: true, Deps: deps, Compute: fun})
	return s
}

// Def returns the definition of the named property.
func (s *Schema) Def(name string) (*Def, bool) {
	return s.defs.AtTry(name)
}

// Has returns whether the schema defines the named property.
func (s *Schema) Has(name string) bool {
	return s.defs.Has(name)
}

// Defs returns all definitions in definition order.
func (s *Schema) Defs() []*Def {
	return s.defs.Values
}

// Dependents returns the computed properties that depend directly on name.
func (s *Schema) Dependents(name string) []string {
	return s.dependents[name]
}

// IsA returns whether this schema is, or inherits from, the named schema.
func (s *Schema) IsA(name string) bool {
	if s.Name == name {
		return true
	}
	for _, b := range s.Bases {
		if b.IsA(name) {
			return true
		}
	}
	return false
}
