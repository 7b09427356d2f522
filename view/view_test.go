// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"errors"
	"testing"

	"cogentcore.org/figure/document"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	model.Base
}

type leaf struct {
	model.Base
}

var nodeSchema = props.NewSchema("Node", model.Schema).
	Define("items", props.List(props.Instance("Model", nil)), []any{}).
	Define("size", props.Int(), 0)

var boxSchema = props.NewSchema("Box", nodeSchema)

var leafSchema = props.NewSchema("Leaf", model.Schema).
	Define("value", props.Float(), 0.0)

var dataSchema = props.NewSchema("Data", model.Schema)

func newNode(items ...model.Model) *node {
	n := model.New[node](nodeSchema)
	l := make([]any, len(items))
	for i, it := range items {
		l[i] = it
	}
	n.MustSet("items", l)
	return n
}

func newLeaf() *leaf { return model.New[leaf](leafSchema) }

// testView records its initialization order and changes.
type testView struct {
	Base
	log       *[]string
	children  int
	changes   int
	destroyed bool
	fail      bool
}

func (v *testView) Init() error {
	if v.fail {
		return errors.New("fail")
	}
	*v.log = append(*v.log, v.Model.AsModel().TypeName()+":"+v.Model.ID())
	for _, m := range v.Model.AsModel().GetRefs("items") {
		if v.Manager.Get(m) != nil {
			v.children++
		}
	}
	OnChange(v, v.Model, func(string) {
		v.changes++
		v.NeedsRender()
	})
	return nil
}

func (v *testView) Destroy() { v.destroyed = true }

func testFactory(log *[]string) *Factory {
	ctor := func(m model.Model) View { return &testView{log: log} }
	return NewFactory().
		Register("Leaf", ctor).
		RegisterBase("Node", ctor)
}

func TestFactory(t *testing.T) {
	var log []string
	f := testFactory(&log)
	assert.True(t, f.Has(newLeaf()))
	assert.True(t, f.Has(newNode()))
	assert.True(t, f.Has(model.New[node](boxSchema)))
	assert.False(t, f.Has(model.New[leaf](dataSchema)))
	_, ok := f.New(model.New[leaf](dataSchema))
	assert.False(t, ok)
}

func TestLeafFirst(t *testing.T) {
	var log []string
	a, b := newLeaf(), newLeaf()
	inner := newNode(b)
	root := newNode(a, inner)
	mg := NewManager(nil, testFactory(&log))
	rv, err := mg.Mount(root)
	require.NoError(t, err)
	require.NotNil(t, rv)
	assert.Equal(t, []string{
		"Leaf:" + a.ID(), "Leaf:" + b.ID(), "Node:" + inner.ID(), "Node:" + root.ID(),
	}, log)
	assert.Equal(t, 2, rv.(*testView).children)
	assert.Equal(t, 4, mg.Len())

	// one view per model
	_, err = mg.Mount(root)
	require.NoError(t, err)
	assert.Equal(t, 4, mg.Len())
	assert.Len(t, log, 4)
}

func TestNoView(t *testing.T) {
	var log []string
	mg := NewManager(nil, testFactory(&log))
	v, err := mg.Mount(model.New[leaf](dataSchema))
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, mg.Len())
}

func TestRemoveDisconnects(t *testing.T) {
	var log []string
	a := newLeaf()
	mg := NewManager(nil, testFactory(&log))
	_, err := mg.Mount(a)
	require.NoError(t, err)
	v := mg.Get(a).(*testView)
	assert.Equal(t, 1, v.Connections())
	assert.Equal(t, 1, a.Changed().Len())

	require.NoError(t, a.Set("value", 2.0))
	assert.Equal(t, 1, v.changes)
	assert.True(t, v.NeedsRenderFlag())
	assert.False(t, v.NeedsLayoutFlag())

	mg.Remove(a)
	assert.True(t, v.Removed())
	assert.True(t, v.destroyed)
	assert.Equal(t, 0, v.Connections())
	assert.Equal(t, 0, a.Changed().Len())
	require.NoError(t, a.Set("value", 3.0))
	assert.Equal(t, 1, v.changes)
	assert.Nil(t, mg.Get(a))
}

func TestInvalidated(t *testing.T) {
	var log []string
	a := newLeaf()
	mg := NewManager(nil, testFactory(&log))
	var got []bool
	mg.Invalidated = func(v View, layout bool) { got = append(got, layout) }
	_, err := mg.Mount(a)
	require.NoError(t, err)
	v := mg.Get(a).AsView()
	v.NeedsRender()
	v.NeedsLayout()
	assert.Equal(t, []bool{false, true}, got)
	assert.True(t, v.NeedsLayoutFlag())
	v.ClearFlags()
	assert.False(t, v.NeedsRenderFlag())
}

func TestInitError(t *testing.T) {
	var log []string
	f := NewFactory().Register("Leaf", func(m model.Model) View {
		return &testView{log: &log, fail: true}
	})
	mg := NewManager(nil, f)
	_, err := mg.Mount(newLeaf())
	assert.Error(t, err)
	assert.Equal(t, 0, mg.Len())
}

func TestDocumentSync(t *testing.T) {
	var log []string
	doc := document.New()
	a := newLeaf()
	root := newNode(a)
	require.NoError(t, doc.AddRoot(root))
	mg := NewManager(doc, testFactory(&log))
	_, err := mg.Mount(root)
	require.NoError(t, err)
	assert.Equal(t, 2, mg.Len())

	b := newLeaf()
	require.NoError(t, root.Set("items", []any{a, b}))
	require.NotNil(t, mg.Get(b))
	assert.Equal(t, 3, mg.Len())

	va := mg.Get(a).(*testView)
	require.NoError(t, root.Set("items", []any{b}))
	assert.Nil(t, mg.Get(a))
	assert.True(t, va.destroyed)
	assert.Equal(t, 2, mg.Len())

	require.NoError(t, doc.RemoveRoot(root))
	assert.Equal(t, 0, mg.Len())

	mg.Close()
	assert.Equal(t, 0, doc.Events.Len())
}

func TestDisconnect(t *testing.T) {
	var log []string
	a, b := newLeaf(), newLeaf()
	mg := NewManager(nil, testFactory(&log))
	_, err := mg.Mount(a)
	require.NoError(t, err)
	v := mg.Get(a).(*testView)
	calls := 0
	assert.True(t, OnChange(v, b, func(string) { calls++ }, "value"))
	assert.False(t, OnChange(v, b, func(string) { calls++ }, "value"))
	assert.Equal(t, 2, v.Connections())
	require.NoError(t, b.Set("value", 1.0))
	assert.Equal(t, 1, calls)

	assert.True(t, OffChange(v, b))
	assert.False(t, OffChange(v, b))
	assert.Equal(t, 1, v.Connections())
	require.NoError(t, b.Set("value", 2.0))
	assert.Equal(t, 1, calls)
}
