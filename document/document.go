// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package document implements the container of a model graph:
// a title, an ordered list of root models, and the table of all
// models reachable from the roots. A document turns model changes
// into [Event]s, serializes itself to a reference-based JSON form,
// and applies patches produced by another document.
package document

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/figure/base/keylist"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
	"cogentcore.org/figure/signal"
)

// DefaultTitle is the title of a new document.
const DefaultTitle = "Figure"

var (
	// ErrDuplicateID is returned when two distinct models with the
	// same id would be in one document.
	ErrDuplicateID = errors.New("document: duplicate model id")

	// ErrDanglingRef is returned for a reference to an id that is not defined.
	ErrDanglingRef = errors.New("document: reference to unknown model id")

	// ErrNotRoot is returned when removing a model that is not a root.
	ErrNotRoot = errors.New("document: model is not a root")

	// ErrMutationDuringPaint is returned for property writes while painting.
	ErrMutationDuringPaint = errors.New("document: property write while painting")
)

// Themer applies default property values to newly created models.
type Themer interface {
	Apply(m model.Model)
}

// Document holds roots and all models reachable from them.
type Document struct {

	// Events is emitted after every document change.
	Events signal.Signal[Event]

	// Idle is emitted once, the first time every root has been
	// reported idle through [Document.NotifyIdle].
	Idle signal.Signal[*Document]

	// Theme, if set, is applied to models created by deserialization.
	Theme Themer

	title    string
	roots    []model.Model
	models   keylist.List[string, model.Model]
	painting int
	idle     map[model.Model]bool
	idleDone bool
}

// New returns a new empty document with the default title.
func New() *Document {
	return &Document{title: DefaultTitle, idle: map[model.Model]bool{}}
}

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// SetTitle sets the document title.
func (d *Document) SetTitle(title string) {
	d.SetTitleFrom(title, "")
}

// SetTitleFrom sets the title recording the given setter id.
func (d *Document) SetTitleFrom(title, setter string) {
	if title == d.title {
		return
	}
	d.title = title
	d.Events.Emit(TitleChanged{Setter: Setter{setter}, Title: title})
}

// Roots returns a copy of the root list.
func (d *Document) Roots() []model.Model {
	return slices.Clone(d.roots)
}

// IsRoot returns whether m is a root of the document.
func (d *Document) IsRoot(m model.Model) bool {
	return slices.Contains(d.roots, m)
}

// Models returns all models in the document, in discovery order.
func (d *Document) Models() []model.Model {
	return slices.Clone(d.models.Values)
}

// Len returns the number of models in the document.
func (d *Document) Len() int { return d.models.Len() }

// ModelByID returns the model with the given id, or nil.
func (d *Document) ModelByID(id string) model.Model {
	return d.models.At(id)
}

// ModelsByName returns the models whose name property equals name.
func (d *Document) ModelsByName(name string) []model.Model {
	var out []model.Model
	for _, m := range d.models.Values {
		if m.AsModel().GetString("name") == name {
			out = append(out, m)
		}
	}
	return out
}

// AddRoot adds m as a root, attaching every model reachable from it.
// Adding an existing root does nothing.
func (d *Document) AddRoot(m model.Model) error {
	return d.AddRootFrom(m, "")
}

// AddRootFrom is [Document.AddRoot] with a setter id.
func (d *Document) AddRootFrom(m model.Model, setter string) error {
	if d.IsRoot(m) {
		return nil
	}
	roots := append(slices.Clone(d.roots), m)
	if err := d.recompute(roots); err != nil {
		return err
	}
	d.Events.Emit(RootAdded{Setter: Setter{setter}, Model: m})
	return nil
}

// RemoveRoot removes the root m, detaching models no longer reachable.
func (d *Document) RemoveRoot(m model.Model) error {
	return d.RemoveRootFrom(m, "")
}

// RemoveRootFrom is [Document.RemoveRoot] with a setter id.
func (d *Document) RemoveRootFrom(m model.Model, setter string) error {
	i := slices.Index(d.roots, m)
	if i < 0 {
		return fmt.Errorf("%w: %v", ErrNotRoot, m)
	}
	roots := slices.Delete(slices.Clone(d.roots), i, i+1)
	if err := d.recompute(roots); err != nil {
		return err
	}
	delete(d.idle, m)
	d.Events.Emit(RootRemoved{Setter: Setter{setter}, Model: m})
	return nil
}

// Clear removes all roots.
func (d *Document) Clear() {
	for len(d.roots) > 0 {
		if err := d.RemoveRoot(d.roots[len(d.roots)-1]); err != nil {
			slog.Error("document.Clear", "err", err)
			return
		}
	}
}

// recompute sets the roots and the reachable model table,
// attaching new models and detaching unreachable ones.
// Nothing changes if the new set has conflicting ids.
func (d *Document) recompute(roots []model.Model) error {
	reach := model.Collect(roots...)
	var next keylist.List[string, model.Model]
	for _, m := range reach {
		if prev, ok := next.AtTry(m.ID()); ok && prev != m {
			return fmt.Errorf("%w: %q (%s and %s)", ErrDuplicateID, m.ID(), prev.TypeName(), m.TypeName())
		}
		if owner := m.AsModel().Document(); owner != nil && owner != d {
			return fmt.Errorf("document: %v belongs to another document", m)
		}
		next.Set(m.ID(), m)
	}
	for _, m := range d.models.Values {
		if cur, ok := next.AtTry(m.ID()); !ok || cur != m {
			d.detach(m)
		}
	}
	for _, m := range next.Values {
		if cur, ok := d.models.AtTry(m.ID()); !ok || cur != m {
			d.attach(m)
		}
	}
	d.roots = roots
	d.models = next
	return nil
}

func (d *Document) attach(m model.Model) {
	b := m.AsModel()
	if err := b.Attach(d); err != nil {
		slog.Error("document.attach", "err", err)
		return
	}
	b.Props.Guard = d.guard
	b.Changed().Connect(d, "document", func(c props.Change) {
		d.modelChanged(m, c)
	})
	if cs, ok := m.(model.ColumnSource); ok {
		cs.Streamed().Connect(d, "document", func(e model.ColumnsStreamed) {
			d.Events.Emit(ColumnsStreamed{Setter: Setter{e.Setter}, Model: m, Data: e.Data, Rollover: e.Rollover})
		})
		cs.Patched().Connect(d, "document", func(e model.ColumnsPatched) {
			d.Events.Emit(ColumnsPatched{Setter: Setter{e.Setter}, Model: m, Patches: e.Patches})
		})
	}
}

func (d *Document) detach(m model.Model) {
	b := m.AsModel()
	b.Changed().DisconnectReceiver(d)
	if cs, ok := m.(model.ColumnSource); ok {
		cs.Streamed().DisconnectReceiver(d)
		cs.Patched().DisconnectReceiver(d)
	}
	b.Detach()
}

func (d *Document) guard(name string) error {
	if d.painting > 0 {
		return fmt.Errorf("%w: %s", ErrMutationDuringPaint, name)
	}
	return nil
}

func (d *Document) modelChanged(m model.Model, c props.Change) {
	def, ok := m.AsModel().Schema().Def(c.Name)
	if !ok || def.Internal {
		return
	}
	if mayHoldRefs(def.Type) {
		if err := d.recompute(d.roots); err != nil {
			slog.Error("document: model change made the document inconsistent", "model", m.ID(), "attr", c.Name, "err", err)
		}
	}
	d.Events.Emit(ModelChanged{Setter: Setter{c.Setter}, Model: m, Attr: c.Name, Old: c.Old, New: c.New})
}

func mayHoldRefs(t *props.Type) bool {
	switch t.Kind {
	case props.KindInstance, props.KindAny, props.KindSpec:
		return true
	case props.KindList, props.KindMap, props.KindNullable:
		return mayHoldRefs(t.Elem)
	}
	return false
}

// BeginPaint marks the start of a paint pass: until the matching
// [Document.EndPaint], property writes on document models fail
// with [ErrMutationDuringPaint].
func (d *Document) BeginPaint() { d.painting++ }

// EndPaint ends a paint pass started by [Document.BeginPaint].
func (d *Document) EndPaint() {
	if d.painting > 0 {
		d.painting--
	}
}

// NotifyIdle records that the given root has finished its first
// render. The Idle signal fires once, when every root is idle.
func (d *Document) NotifyIdle(root model.Model) {
	if !d.IsRoot(root) {
		return
	}
	d.idle[root] = true
	if !d.idleDone && d.IsIdle() {
		d.idleDone = true
		d.Idle.Emit(d)
	}
}

// IsIdle returns whether every root has been reported idle.
func (d *Document) IsIdle() bool {
	for _, r := range d.roots {
		if !d.idle[r] {
			return false
		}
	}
	return true
}
