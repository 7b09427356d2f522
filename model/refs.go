// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "cogentcore.org/figure/props"

// Continue and Break are returned from walk functions
// to continue into references or to stop that branch.
const (
	Continue = true
	Break    = false
)

// References returns the models directly referenced by m through
// its ownership edges: every Instance value in its serializable
// properties, including inside lists, maps and expression specs,
// but not back-references. Order follows property definition order
// and duplicates are removed.
func References(m Model) []Model {
	return references(m, false)
}

// AllReferences is [References] including back-references.
func AllReferences(m Model) []Model {
	return references(m, true)
}

func references(m Model, backRefs bool) []Model {
	b := m.AsModel()
	var out []Model
	seen := map[Model]bool{}
	for _, d := range b.Schema().Defs() {
		if d.IsComputed() || (d.BackRef && !backRefs) {
			continue
		}
		collectRefs(b.Props.Value(d.Name), func(r Model) {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		})
	}
	return out
}

func collectRefs(v any, add func(m Model)) {
	switch x := v.(type) {
	case Model:
		add(x)
	case []any:
		for _, e := range x {
			collectRefs(e, add)
		}
	case map[string]any:
		for _, k := range sortedKeys(x) {
			collectRefs(x[k], add)
		}
	case props.Spec:
		if m, ok := x.Expr.(Model); ok {
			add(m)
		}
	}
}

// Walk calls fun on each model reachable from the roots through
// ownership edges, in depth-first pre-order, visiting each once.
// Returning [Break] from fun skips the references of that model.
func Walk(roots []Model, fun func(m Model) bool) {
	seen := map[Model]bool{}
	var visit func(m Model)
	visit = func(m Model) {
		if seen[m] {
			return
		}
		seen[m] = true
		if !fun(m) {
			return
		}
		for _, r := range References(m) {
			visit(r)
		}
	}
	for _, r := range roots {
		visit(r)
	}
}

// WalkPost calls fun on each model reachable from the roots after
// all of the models it references, so referenced models come first.
// Reference cycles are broken at the first revisit.
func WalkPost(roots []Model, fun func(m Model)) {
	seen := map[Model]bool{}
	var visit func(m Model)
	visit = func(m Model) {
		if seen[m] {
			return
		}
		seen[m] = true
		for _, r := range References(m) {
			visit(r)
		}
		fun(m)
	}
	for _, r := range roots {
		visit(r)
	}
}

// Collect returns all models reachable from the roots, in [Walk] order.
func Collect(roots ...Model) []Model {
	var out []Model
	Walk(roots, func(m Model) bool {
		out = append(out, m)
		return Continue
	})
	return out
}
