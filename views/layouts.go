// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"log/slog"

	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/models/layouts"
	"cogentcore.org/figure/view"
)

// sizingProps are the layout properties that change the sizing of a node.
var sizingProps = []string{"sizing_mode", "width", "height", "min_width", "min_height", "weight", "aspect_ratio"}

// BoxView is the view of a [layouts.Row], [layouts.Column] or
// [layouts.GridBox]: its node holds the nodes of its children.
type BoxView struct {
	view.Base
	node *layout.Node
}

func (v *BoxView) container() layouts.Container { return v.Model.(layouts.Container) }

func (v *BoxView) Node() *layout.Node { return v.node }

func (v *BoxView) Init() error {
	n, err := layouts.Node(v.container(), v.childNodes()...)
	if err != nil {
		return err
	}
	v.node = n
	view.OnChange(v, v.Model, v.changed)
	return nil
}

// childViews returns the views of the children, skipping children
// without a layout view.
func (v *BoxView) childViews() []LayoutView {
	var out []LayoutView
	for _, it := range v.container().Items() {
		cv, ok := v.Manager.Get(it).(LayoutView)
		if !ok {
			slog.Warn("views: child has no layout view", "container", v.Model.ID(), "child", it.ID())
			continue
		}
		out = append(out, cv)
	}
	return out
}

func (v *BoxView) childNodes() []*layout.Node {
	var out []*layout.Node
	for _, cv := range v.childViews() {
		out = append(out, cv.Node())
	}
	return out
}

func (v *BoxView) changed(name string) {
	m := v.Model.AsModel()
	switch name {
	case "children":
		if err := v.node.SetChildren(v.childNodes()...); err != nil {
			slog.Error("views: invalid children", "container", m.ID(), "err", err)
		}
	case "spacing":
		v.node.Gap = float32(m.GetInt("spacing"))
	case "ncols":
		v.node.Columns = m.GetInt("ncols")
	case "visible":
		v.node.Hidden = !m.GetBool("visible")
	default:
		v.node.SetSizing(v.container().Sizing())
	}
	v.node.Invalidate()
	v.NeedsLayout()
}

func (v *BoxView) Plots() []*PlotView {
	var out []*PlotView
	for _, cv := range v.childViews() {
		out = append(out, cv.Plots()...)
	}
	return out
}

// SpacerView is the view of a [layouts.Spacer], taking space only.
type SpacerView struct {
	view.Base
	node *layout.Node
}

func (v *SpacerView) Node() *layout.Node { return v.node }

func (v *SpacerView) Init() error {
	sp := v.Model.(*layouts.Spacer)
	n, err := layouts.Node(sp)
	if err != nil {
		return err
	}
	v.node = n
	view.OnChange(v, sp, func(name string) {
		if name == "visible" {
			v.node.Hidden = !sp.GetBool("visible")
			v.node.Invalidate()
		} else {
			v.node.SetSizing(sp.Sizing())
		}
		v.NeedsLayout()
	}, append(sizingProps, "visible")...)
	return nil
}

func (v *SpacerView) Plots() []*PlotView { return nil }
