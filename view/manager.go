// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/figure/base/keylist"
	"cogentcore.org/figure/document"
	"cogentcore.org/figure/model"
)

// Manager builds and owns the views of the models reachable from a
// set of mounted roots, with exactly one view per model. Views are
// built leaf-first: a view is initialized after the views of every
// model its model references. When attached to a document, the
// manager follows reference changes, building views for models that
// become reachable and removing the views of models that do not.
type Manager struct {

	// Factory creates the views.
	Factory *Factory

	// Invalidated, if set, is called when a view requests a repaint,
	// with layout set if it also requests a new layout.
	Invalidated func(v View, layout bool)

	doc     *document.Document
	views   keylist.List[model.Model, View]
	mounted []model.Model
}

// NewManager returns a new manager using the given factory. If doc
// is not nil, the manager follows its changes until [Manager.Close].
func NewManager(doc *document.Document, factory *Factory) *Manager {
	mg := &Manager{Factory: factory, doc: doc}
	if doc != nil {
		doc.Events.Connect(mg, "views", mg.documentChanged)
	}
	return mg
}

// Document returns the document followed by the manager, or nil.
func (mg *Manager) Document() *document.Document { return mg.doc }

func (mg *Manager) documentChanged(ev document.Event) {
	switch e := ev.(type) {
	case document.RootRemoved:
		if slices.Contains(mg.mounted, e.Model) {
			mg.Unmount(e.Model)
		}
	case document.ModelChanged:
		if holdsModel(e.New) || holdsModel(e.Old) {
			if err := mg.Sync(); err != nil {
				slog.Error("view: sync after model change failed", "model", e.Model.ID(), "attr", e.Attr, "err", err)
			}
		}
	}
}

func holdsModel(v any) bool {
	switch x := v.(type) {
	case model.Model:
		return true
	case []any:
		return slices.ContainsFunc(x, holdsModel)
	case map[string]any:
		for _, e := range x {
			if holdsModel(e) {
				return true
			}
		}
	}
	return false
}

// Mount builds the views of root and of every model reachable from
// it, and returns the view of root, or nil if root has no view.
func (mg *Manager) Mount(root model.Model) (View, error) {
	if !slices.Contains(mg.mounted, root) {
		mg.mounted = append(mg.mounted, root)
	}
	if err := mg.build([]model.Model{root}); err != nil {
		return nil, err
	}
	return mg.Get(root), nil
}

// Unmount removes root from the mounted roots and removes the views
// of models no longer reachable from any mounted root.
func (mg *Manager) Unmount(root model.Model) {
	mg.mounted = slices.DeleteFunc(mg.mounted, func(m model.Model) bool { return m == root })
	mg.prune()
}

// Sync builds the views of newly reachable models and removes the
// views of models no longer reachable from the mounted roots.
func (mg *Manager) Sync() error {
	mg.prune()
	return mg.build(mg.mounted)
}

func (mg *Manager) build(roots []model.Model) error {
	var errs []error
	model.WalkPost(roots, func(m model.Model) {
		if mg.views.Has(m) {
			return
		}
		v, ok := mg.Factory.New(m)
		if !ok {
			return
		}
		b := v.AsView()
		b.This = v
		b.Model = m
		b.Manager = mg
		mg.views.Set(m, v)
		if err := v.Init(); err != nil {
			mg.Remove(m)
			errs = append(errs, fmt.Errorf("view: init %v: %w", m, err))
		}
	})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// prune removes views of unreachable models, parents first.
func (mg *Manager) prune() {
	reachable := map[model.Model]bool{}
	for _, m := range model.Collect(mg.mounted...) {
		reachable[m] = true
	}
	for i := len(mg.views.Keys) - 1; i >= 0; i-- {
		m := mg.views.Keys[i]
		if !reachable[m] {
			mg.Remove(m)
		}
	}
}

// Get returns the view of m, or nil.
func (mg *Manager) Get(m model.Model) View {
	if m == nil {
		return nil
	}
	return mg.views.At(m)
}

// Len returns the number of views.
func (mg *Manager) Len() int { return mg.views.Len() }

// Views returns all views in build order.
func (mg *Manager) Views() []View { return slices.Clone(mg.views.Values) }

// Remove removes the view of m, if any.
func (mg *Manager) Remove(m model.Model) {
	v, ok := mg.views.AtTry(m)
	if !ok {
		return
	}
	mg.views.DeleteByKey(m)
	v.AsView().Remove()
}

// Close removes every view, most recently built first, and stops
// following the document.
func (mg *Manager) Close() {
	for i := len(mg.views.Keys) - 1; i >= 0; i-- {
		mg.Remove(mg.views.Keys[i])
	}
	mg.mounted = nil
	if mg.doc != nil {
		mg.doc.Events.DisconnectReceiver(mg)
	}
}

func (mg *Manager) invalidated(v View, layout bool) {
	if mg.Invalidated != nil {
		mg.Invalidated(v, layout)
	}
}
