// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"encoding/json"
	"fmt"
	"strconv"

	"cogentcore.org/figure/base/iox/jsonx"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// Patch is the serialized form of a list of events, together with
// the definitions of models that the events introduce.
type Patch struct {
	Events     []map[string]any `json:"events"`
	References []ModelJSON      `json:"references"`
}

// ParsePatch decodes a patch from JSON data.
func ParsePatch(data []byte) (*Patch, error) {
	p := &Patch{}
	if err := jsonx.ReadBytes(p, data); err != nil {
		return nil, fmt.Errorf("document.ParsePatch: %w", err)
	}
	return p, nil
}

// CreatePatch returns the patch describing the given events, which
// must have been emitted by this document. Every model reachable from
// a new value or added root is included in the references.
func (d *Document) CreatePatch(events ...Event) *Patch {
	p := &Patch{Events: []map[string]any{}, References: []ModelJSON{}}
	seen := map[string]bool{}
	include := func(ms ...model.Model) {
		for _, m := range model.Collect(ms...) {
			if !seen[m.ID()] {
				seen[m.ID()] = true
				p.References = append(p.References, d.modelJSON(m))
			}
		}
	}
	for _, ev := range events {
		ej := map[string]any{"kind": ev.Kind()}
		switch e := ev.(type) {
		case RootAdded:
			ej["model"] = refJSON(e.Model)
			include(e.Model)
		case RootRemoved:
			ej["model"] = refJSON(e.Model)
		case TitleChanged:
			ej["title"] = e.Title
		case ModelChanged:
			backRef := false
			if def, ok := e.Model.AsModel().Schema().Def(e.Attr); ok {
				backRef = def.BackRef
			}
			ej["model"] = refJSON(e.Model)
			ej["attr"] = e.Attr
			ej["new"] = d.encodeValue(e.New, backRef)
			if !backRef {
				var refs []model.Model
				collectValueRefs(e.New, &refs)
				include(refs...)
			}
		case ColumnsStreamed:
			ej["model"] = refJSON(e.Model)
			ej["attr"] = "data"
			data := make(map[string]any, len(e.Data))
			for k, col := range e.Data {
				data[k] = d.encodeValue(col, false)
			}
			ej["data"] = data
			if e.Rollover > 0 {
				ej["rollover"] = e.Rollover
			} else {
				ej["rollover"] = nil
			}
		case ColumnsPatched:
			ej["model"] = refJSON(e.Model)
			ej["attr"] = "data"
			patches := make(map[string]any, len(e.Patches))
			for k, ps := range e.Patches {
				list := make([]any, len(ps))
				for i, cp := range ps {
					list[i] = []any{cp.Index, d.encodeValue(cp.Value, false)}
				}
				patches[k] = list
			}
			ej["patches"] = patches
		default:
			continue
		}
		p.Events = append(p.Events, ej)
	}
	return p
}

func collectValueRefs(v any, refs *[]model.Model) {
	switch x := v.(type) {
	case model.Model:
		*refs = append(*refs, x)
	case []any:
		for _, e := range x {
			collectValueRefs(e, refs)
		}
	case map[string]any:
		for _, e := range x {
			collectValueRefs(e, refs)
		}
	case props.Spec:
		if m, ok := x.Expr.(model.Model); ok {
			*refs = append(*refs, m)
		}
	}
}

// ApplyPatch applies a patch created by another document, recording
// setter as the setter of every resulting event. Models introduced by
// the patch are created and resolved first; every event is decoded
// before any is applied, so that unknown ids, unknown attributes and
// invalid values leave the document unchanged.
func (d *Document) ApplyPatch(reg *model.Registry, p *Patch, setter string) error {
	known := func(id string) bool { return d.models.Has(id) }
	created, err := instantiate(reg, p.References, known, d.Theme)
	if err != nil {
		return err
	}
	rs := &resolver{lookup: func(id string) model.Model {
		if m, ok := created[id]; ok {
			return m
		}
		return d.models.At(id)
	}}
	ops := make([]func() error, 0, len(p.Events))
	for i, ej := range p.Events {
		op, err := d.decodeEvent(rs, ej, setter)
		if err != nil {
			return fmt.Errorf("document.ApplyPatch: event %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	if err := rs.define(p.References, created, setter); err != nil {
		return err
	}
	for _, op := range ops {
		if err := op(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) decodeEvent(rs *resolver, ej map[string]any, setter string) (func() error, error) {
	kind, _ := ej["kind"].(string)
	if kind == "TitleChanged" {
		title, _ := ej["title"].(string)
		return func() error { d.SetTitleFrom(title, setter); return nil }, nil
	}
	m, err := rs.ref(ej["model"])
	if err != nil {
		return nil, err
	}
	switch kind {
	case "RootAdded":
		return func() error { return d.AddRootFrom(m, setter) }, nil
	case "RootRemoved":
		return func() error { return d.RemoveRootFrom(m, setter) }, nil
	case "ModelChanged":
		name, _ := ej["attr"].(string)
		v, err := rs.attribute(m, name, ej["new"])
		if err != nil {
			return nil, err
		}
		def, _ := m.AsModel().Schema().Def(name)
		if _, err := def.Type.Validate(v); err != nil {
			return nil, err
		}
		return func() error { return m.AsModel().Props.SetFrom(name, v, setter) }, nil
	case "ColumnsStreamed":
		cs, ok := m.(model.ColumnSource)
		if !ok {
			return nil, fmt.Errorf("%v is not a column source", m)
		}
		data, err := rs.columns(ej["data"])
		if err != nil {
			return nil, err
		}
		rollover, _ := toInt(ej["rollover"])
		return func() error { return cs.StreamFrom(data, rollover, setter) }, nil
	case "ColumnsPatched":
		cs, ok := m.(model.ColumnSource)
		if !ok {
			return nil, fmt.Errorf("%v is not a column source", m)
		}
		patches, err := rs.patches(ej["patches"])
		if err != nil {
			return nil, err
		}
		return func() error { return cs.PatchFrom(patches, setter) }, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", kind)
}

func (rs *resolver) columns(v any) (map[string][]any, error) {
	mp, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected column data, got %T", v)
	}
	out := make(map[string][]any, len(mp))
	for k, col := range mp {
		list, ok := col.([]any)
		if !ok {
			return nil, fmt.Errorf("column %q is not a list", k)
		}
		d, err := rs.decodeAny(list)
		if err != nil {
			return nil, err
		}
		out[k] = d.([]any)
	}
	return out, nil
}

func (rs *resolver) patches(v any) (map[string][]model.ColumnPatch, error) {
	mp, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected column patches, got %T", v)
	}
	out := make(map[string][]model.ColumnPatch, len(mp))
	for k, raw := range mp {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("patches of column %q are not a list", k)
		}
		for _, e := range list {
			pair, ok := e.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("invalid patch of column %q: %v", k, e)
			}
			idx, ok := toInt(pair[0])
			if !ok {
				return nil, fmt.Errorf("invalid patch index of column %q: %v", k, pair[0])
			}
			val, err := rs.decodeAny(pair[1])
			if err != nil {
				return nil, err
			}
			out[k] = append(out[k], model.ColumnPatch{Index: idx, Value: val})
		}
	}
	return out, nil
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), x == float64(int(x))
	case json.Number:
		i, err := strconv.Atoi(x.String())
		return i, err == nil
	}
	return 0, false
}
