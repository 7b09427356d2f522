// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"errors"
	"fmt"
	"slices"

	"cogentcore.org/figure/base/keylist"
	"cogentcore.org/figure/signal"
)

// Change describes one property value change.
type Change struct {

	// Owner is the object whose property changed.
	Owner any

	// Name is the property name.
	Name string

	// Old and New are the values before and after the change.
	// For a computed property Old is nil if it had never been read.
	Old, New any

	// Setter identifies who made the change, or is empty.
	Setter string
}

// Property is the per-instance state of one defined property.
type Property struct {
	Def *Def

	// Change is emitted after this property changes.
	Change signal.Signal[Change]

	value   any
	valid   bool
	changes int
}

// Name returns the property name.
func (p *Property) Name() string { return p.Def.Name }

// Changes returns the number of times the value has changed.
func (p *Property) Changes() int { return p.changes }

// Properties holds the property values of one object, created
// from its [Schema]. Writes are validated before they are stored,
// and every effective change is announced on the property's own
// Change signal and then on Changed.
type Properties struct {

	// Changed is emitted after any property changes.
	Changed signal.Signal[Change]

	// Guard, if set, is consulted before every write and can veto it.
	Guard func(name string) error

	schema *Schema
	owner  any
	props  keylist.List[string, *Property]
}

// New returns the property values of owner, initialized
// from the defaults of the given schema.
func New(schema *Schema, owner any) *Properties {
	ps := &Properties{schema: schema, owner: owner}
	for _, d := range schema.Defs() {
		ps.props.Set(d.Name, &Property{Def: d, value: Clone(d.Default)})
	}
	return ps
}

// Schema returns the schema the properties were created from.
func (ps *Properties) Schema() *Schema { return ps.schema }

// Owner returns the object owning these properties.
func (ps *Properties) Owner() any { return ps.owner }

// Property returns the named property, or nil.
func (ps *Properties) Property(name string) *Property {
	return ps.props.At(name)
}

// Names returns the property names in definition order.
func (ps *Properties) Names() []string {
	return ps.props.Keys
}

// Get returns the value of the named property.
func (ps *Properties) Get(name string) (any, error) {
	p := ps.props.At(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, ps.schema.Name, name)
	}
	return ps.value(p), nil
}

// Value returns the value of the named property, or nil
// if there is no such property.
func (ps *Properties) Value(name string) any {
	v, _ := ps.Get(name)
	return v
}

func (ps *Properties) value(p *Property) any {
	if p.Def.IsComputed() && !p.valid {
		p.value = p.Def.Compute(ps)
		p.valid = true
	}
	return p.value
}

type pending struct {
	prop     *Property
	old, new any
}

// prepare validates a write, returning a nil pending
// if the value would not change.
func (ps *Properties) prepare(name string, v any) (*pending, error) {
	p := ps.props.At(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, ps.schema.Name, name)
	}
	if p.Def.IsComputed() {
		return nil, fmt.Errorf("%w: %s.%s", ErrReadOnly, ps.schema.Name, name)
	}
	if ps.Guard != nil {
		if err := ps.Guard(name); err != nil {
			return nil, err
		}
	}
	nv, err := p.Def.Type.Validate(v)
	if err != nil {
		var te *TypeError
		if errors.As(err, &te) && te.Property == "" {
			te.Property = ps.schema.Name + "." + name
		} else {
			err = fmt.Errorf("%s.%s: %w", ps.schema.Name, name, err)
		}
		return nil, err
	}
	if p.Def.Check != nil {
		if err := p.Def.Check(nv); err != nil {
			return nil, fmt.Errorf("props: %s.%s: %w", ps.schema.Name, name, err)
		}
	}
	if Equal(p.value, nv) {
		return nil, nil
	}
	return &pending{prop: p, old: p.value, new: nv}, nil
}

// Set validates and stores the value of the named property,
// then emits the change. Setting an equal value does nothing.
// On error nothing is changed.
func (ps *Properties) Set(name string, v any) error {
	return ps.SetFrom(name, v, "")
}

// SetFrom is [Properties.Set] recording the given setter id
// in the emitted [Change].
func (ps *Properties) SetFrom(name string, v any, setter string) error {
	pd, err := ps.prepare(name, v)
	if err != nil || pd == nil {
		return err
	}
	ps.apply([]*pending{pd}, setter)
	return nil
}

// SetMany sets several properties at once. All values are
// validated before any is stored, so either all or none are applied.
// Changes are emitted in definition order.
func (ps *Properties) SetMany(vals map[string]any) error {
	return ps.SetManyFrom(vals, "")
}

// SetManyFrom is [Properties.SetMany] with a setter id.
func (ps *Properties) SetManyFrom(vals map[string]any, setter string) error {
	for name := range vals {
		if !ps.props.Has(name) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, ps.schema.Name, name)
		}
	}
	var pds []*pending
	for _, name := range ps.props.Keys {
		v, ok := vals[name]
		if !ok {
			continue
		}
		pd, err := ps.prepare(name, v)
		if err != nil {
			return err
		}
		if pd != nil {
			pds = append(pds, pd)
		}
	}
	if len(pds) > 0 {
		ps.apply(pds, setter)
	}
	return nil
}

// Touch emits a change for the named property without changing
// its value, for use after its contents were mutated in place.
func (ps *Properties) Touch(name string) error {
	p := ps.props.At(name)
	if p == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, ps.schema.Name, name)
	}
	v := ps.value(p)
	ps.apply([]*pending{{prop: p, old: v, new: v}}, "")
	return nil
}

func (ps *Properties) apply(pds []*pending, setter string) {
	names := make([]string, 0, len(pds))
	for _, pd := range pds {
		pd.prop.value = pd.new
		pd.prop.changes++
		names = append(names, pd.prop.Name())
	}
	// invalidate before emitting so listeners read consistent values
	type stale struct {
		prop  *Property
		old   any
		valid bool
	}
	var comps []stale
	queue := slices.Clone(names)
	seen := map[string]bool{}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, dn := range ps.schema.Dependents(name) {
			if seen[dn] {
				continue
			}
			seen[dn] = true
			cp := ps.props.At(dn)
			comps = append(comps, stale{prop: cp, old: cp.value, valid: cp.valid})
			cp.valid = false
			queue = append(queue, dn)
		}
	}
	events := make([]Change, 0, len(pds)+len(comps))
	for _, pd := range pds {
		events = append(events, Change{Owner: ps.owner, Name: pd.prop.Name(), Old: pd.old, New: pd.new, Setter: setter})
	}
	for _, c := range comps {
		nv := ps.value(c.prop)
		if c.valid && Equal(c.old, nv) {
			continue
		}
		c.prop.changes++
		var old any
		if c.valid {
			old = c.old
		}
		events = append(events, Change{Owner: ps.owner, Name: c.prop.Name(), Old: old, New: nv, Setter: setter})
	}
	for _, e := range events {
		ps.props.At(e.Name).Change.Emit(e)
	}
	for _, e := range events {
		ps.Changed.Emit(e)
	}
}
