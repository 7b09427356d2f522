// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layouts provides the models arranging plots and other
// layout models in rows, columns and grids.
package layouts

import (
	"cogentcore.org/figure/base/errors"
	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// LayoutDOM is implemented by all models placed by the layout engine.
type LayoutDOM interface {
	model.Model

	// Sizing returns the sizing policy from the layout properties.
	Sizing() layout.Sizing
}

// Container is implemented by layout models with children.
type Container interface {
	LayoutDOM

	// Display returns how the children are arranged.
	Display() layout.Displays

	// Items returns the children in declaration order.
	Items() []LayoutDOM
}

// Schema is the base schema of all layout models.
var Schema = props.NewSchema("LayoutDOM", model.Schema).
	Define("sizing_mode", props.Enum(layout.ModeNames()...), "fixed").
	Define("width", props.Nullable(props.Int()), nil, props.Check(nonNegative)).
	Define("height", props.Nullable(props.Int()), nil, props.Check(nonNegative)).
	Define("min_width", props.Nullable(props.Int()), nil, props.Check(nonNegative)).
	Define("min_height", props.Nullable(props.Int()), nil, props.Check(nonNegative)).
	Define("weight", props.Float(), 1.0).
	Define("aspect_ratio", props.Nullable(props.Float()), nil).
	Define("visible", props.Bool(), true)

func nonNegative(v any) error {
	if v != nil && props.AsFloat(v) < 0 {
		return errors.New("size must not be negative")
	}
	return nil
}

// IsLayoutDOM accepts layout models in an Instance property.
func IsLayoutDOM(r props.Referent) bool {
	_, ok := r.(LayoutDOM)
	return ok
}

// Base is embedded by all layout models.
type Base struct {
	model.Base
}

// AsLayout returns the embedded layout base.
func (b *Base) AsLayout() *Base { return b }

func (b *Base) Sizing() layout.Sizing {
	mode, _ := layout.ParseMode(b.GetString("sizing_mode"))
	s := layout.Sizing{
		Mode:      mode,
		Width:     float32(b.GetInt("width")),
		Height:    float32(b.GetInt("height")),
		MinWidth:  float32(b.GetInt("min_width")),
		MinHeight: float32(b.GetInt("min_height")),
		Weight:    float32(b.GetFloat("weight")),
	}
	if a := b.GetFloat("aspect_ratio"); a > 0 {
		s.Aspect = float32(a)
	}
	return s
}

// Visible returns whether the model takes part in the layout.
func (b *Base) Visible() bool { return b.GetBool("visible") }

func items(m model.Model) []LayoutDOM {
	refs := m.AsModel().GetRefs("children")
	out := make([]LayoutDOM, 0, len(refs))
	for _, r := range refs {
		if l, ok := r.(LayoutDOM); ok {
			out = append(out, l)
		}
	}
	return out
}

// FlexSchema is the base schema of [Row] and [Column].
var FlexSchema = props.NewSchema("FlexBox", Schema).
	Define("children", props.List(props.Instance("LayoutDOM", IsLayoutDOM)), []any{}).
	Define("spacing", props.Int(), 0, props.Check(nonNegative))

// Row arranges its children from left to right.
type Row struct {
	Base
}

// RowSchema is the schema of [Row].
var RowSchema = props.NewSchema("Row", FlexSchema)

// NewRow returns a new row of the given children.
func NewRow(children ...LayoutDOM) *Row {
	r := model.New[Row](RowSchema)
	r.MustSet("children", children)
	return r
}

func (r *Row) Display() layout.Displays { return layout.Flex }

func (r *Row) Items() []LayoutDOM { return items(r) }

// Column arranges its children from top to bottom.
type Column struct {
	Base
}

// ColumnSchema is the schema of [Column].
var ColumnSchema = props.NewSchema("Column", FlexSchema)

// NewColumn returns a new column of the given children.
func NewColumn(children ...LayoutDOM) *Column {
	c := model.New[Column](ColumnSchema)
	c.MustSet("children", children)
	return c
}

func (c *Column) Display() layout.Displays { return layout.Flex }

func (c *Column) Items() []LayoutDOM { return items(c) }

// GridBox arranges its children in rows of ncols cells,
// in declaration order.
type GridBox struct {
	Base
}

// GridBoxSchema is the schema of [GridBox].
var GridBoxSchema = props.NewSchema("GridBox", Schema).
	Define("children", props.List(props.Instance("LayoutDOM", IsLayoutDOM)), []any{}).
	Define("ncols", props.Int(), 1, props.Check(positive)).
	Define("spacing", props.Int(), 0, props.Check(nonNegative))

func positive(v any) error {
	if props.AsInt(v) < 1 {
		return errors.New("ncols must be positive")
	}
	return nil
}

// NewGridBox returns a grid of ncols columns.
func NewGridBox(ncols int, children ...LayoutDOM) *GridBox {
	g := model.New[GridBox](GridBoxSchema)
	g.MustSet("ncols", ncols)
	g.MustSet("children", children)
	return g
}

func (g *GridBox) Display() layout.Displays { return layout.Grid }

func (g *GridBox) Items() []LayoutDOM { return items(g) }

// Spacer takes up space without drawing anything.
type Spacer struct {
	Base
}

// SpacerSchema is the schema of [Spacer].
var SpacerSchema = props.NewSchema("Spacer", Schema)

// NewSpacer returns a spacer of the given sizing mode.
func NewSpacer(mode layout.Modes) *Spacer {
	s := model.New[Spacer](SpacerSchema)
	s.MustSet("sizing_mode", mode.String())
	return s
}

// Node returns a new layout node for l, with the given children
// for a container. The node name is the model id.
func Node(l LayoutDOM, children ...*layout.Node) (*layout.Node, error) {
	s := l.Sizing()
	c, ok := l.(Container)
	if !ok {
		n := layout.NewLeaf(l.ID(), s)
		n.Hidden = !l.AsModel().GetBool("visible")
		return n, nil
	}
	n := layout.NewNode(l.ID(), c.Display(), s)
	n.Hidden = !l.AsModel().GetBool("visible")
	n.Gap = float32(l.AsModel().GetInt("spacing"))
	switch c.(type) {
	case *Row:
		n.MainAxis = math32.X
	case *Column:
		n.MainAxis = math32.Y
	case *GridBox:
		n.Columns = l.AsModel().GetInt("ncols")
	}
	if err := n.SetChildren(children...); err != nil {
		return nil, err
	}
	return n, nil
}
