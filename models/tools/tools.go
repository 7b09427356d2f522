// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tools provides the interactive tool models of a plot
// toolbar. Tools hold configuration only; their gestures are
// implemented by tool views acting on the plot ranges and sources.
package tools

import (
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/annotations"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/props"
)

// Gestures are the kinds of input a tool responds to.
type Gestures int32

const (
	// Drag tools respond to pointer drags.
	Drag Gestures = iota

	// Scroll tools respond to wheel events.
	Scroll

	// Action tools act once when triggered.
	Action
)

// Tool is implemented by all tools.
type Tool interface {
	model.Model
	Gesture() Gestures
}

// Schema is the base schema of all tools.
var Schema = props.NewSchema("Tool", model.Schema).
	Define("description", props.Nullable(props.String()), nil)

// IsTool accepts tool models in an Instance property.
func IsTool(r props.Referent) bool {
	_, ok := r.(Tool)
	return ok
}

func isGesture(g Gestures) func(r props.Referent) bool {
	return func(r props.Referent) bool {
		t, ok := r.(Tool)
		return ok && t.Gesture() == g
	}
}

// dimensionsSchema adds the dimensions a tool acts along.
func dimensionsSchema(s *props.Schema) *props.Schema {
	return s.Define("dimensions", props.Enum("both", "width", "height"), "both")
}

// ActsOn returns whether a tool with the given dimensions acts
// along x and along y.
func ActsOn(dimensions string) (x, y bool) {
	return dimensions != "height", dimensions != "width"
}

// Toolbar holds the tools of a plot and which of them are active.
// The first drag and scroll tools are active unless set otherwise.
type Toolbar struct {
	model.Base
}

// ToolbarSchema is the schema of [Toolbar].
var ToolbarSchema = props.NewSchema("Toolbar", model.Schema).
	Define("tools", props.List(props.Instance("Tool", IsTool)), []any{}).
	Define("active_drag", props.Nullable(props.Instance("Tool", isGesture(Drag))), nil).
	Define("active_scroll", props.Nullable(props.Instance("Tool", isGesture(Scroll))), nil).
	Define("autohide", props.Bool(), false)

// NewToolbar returns a toolbar with the given tools.
func NewToolbar(tools ...Tool) *Toolbar {
	tb := model.New[Toolbar](ToolbarSchema)
	tb.MustSet("tools", tools)
	return tb
}

// Tools returns the tools in order.
func (tb *Toolbar) Tools() []Tool {
	var out []Tool
	for _, m := range tb.GetRefs("tools") {
		if t, ok := m.(Tool); ok {
			out = append(out, t)
		}
	}
	return out
}

// Active returns the active tool for the gesture, or nil.
func (tb *Toolbar) Active(g Gestures) Tool {
	name := ""
	switch g {
	case Drag:
		name = "active_drag"
	case Scroll:
		name = "active_scroll"
	default:
		return nil
	}
	if t, ok := tb.GetRef(name).(Tool); ok {
		return t
	}
	for _, t := range tb.Tools() {
		if t.Gesture() == g {
			return t
		}
	}
	return nil
}

// PanTool moves the plot ranges with pointer drags.
type PanTool struct {
	model.Base
}

// PanToolSchema is the schema of [PanTool].
var PanToolSchema = dimensionsSchema(props.NewSchema("PanTool", Schema))

// NewPanTool returns a pan tool acting along both dimensions.
func NewPanTool() *PanTool { return model.New[PanTool](PanToolSchema) }

func (t *PanTool) Gesture() Gestures { return Drag }

// WheelZoomTool zooms the plot ranges around the pointer with the
// wheel. Each wheel delta unit scales the ranges by speed.
type WheelZoomTool struct {
	model.Base
}

// WheelZoomToolSchema is the schema of [WheelZoomTool].
var WheelZoomToolSchema = dimensionsSchema(props.NewSchema("WheelZoomTool", Schema)).
	Define("speed", props.Float(), 1.0/600).
	Define("maintain_focus", props.Bool(), true)

// NewWheelZoomTool returns a zoom tool acting along both dimensions.
func NewWheelZoomTool() *WheelZoomTool { return model.New[WheelZoomTool](WheelZoomToolSchema) }

func (t *WheelZoomTool) Gesture() Gestures { return Scroll }

// BoxSelectTool selects the rows whose glyphs fall within a dragged
// box, showing the box with its overlay annotation while dragging.
type BoxSelectTool struct {
	model.Base
}

// BoxSelectToolSchema is the schema of [BoxSelectTool].
var BoxSelectToolSchema = dimensionsSchema(props.NewSchema("BoxSelectTool", Schema)).
	Define("mode", props.Enum(modeNames()...), "replace").
	Define("select_every_mousemove", props.Bool(), false).
	Define("renderers", props.List(props.Instance("Renderer", renderers.IsRenderer)), []any{}).
	Define("overlay", props.Instance("BoxAnnotation", isBox), nil)

func modeNames() []string {
	return []string{sources.ModeReplace.String(), sources.ModeAppend.String(), sources.ModeIntersect.String(), sources.ModeSubtract.String()}
}

func isBox(r props.Referent) bool {
	_, ok := r.(*annotations.BoxAnnotation)
	return ok
}

// NewBoxSelectTool returns a box selection tool.
func NewBoxSelectTool() *BoxSelectTool { return model.New[BoxSelectTool](BoxSelectToolSchema) }

func (t *BoxSelectTool) Init() {
	ov := annotations.NewBoxAnnotation()
	ov.MustSet("level", "overlay")
	ov.MustSet("visible", false)
	ov.MustSet("fill_color", "lightgrey")
	ov.MustSet("fill_alpha", 0.5)
	ov.MustSet("line_color", "black")
	ov.MustSet("line_alpha", 1.0)
	t.MustSet("overlay", ov)
}

func (t *BoxSelectTool) Gesture() Gestures { return Drag }

// Overlay returns the box shown while selecting.
func (t *BoxSelectTool) Overlay() *annotations.BoxAnnotation {
	b, _ := t.GetRef("overlay").(*annotations.BoxAnnotation)
	return b
}

// Mode returns the selection mode.
func (t *BoxSelectTool) Mode() sources.Modes {
	m, _ := sources.ParseMode(t.GetString("mode"))
	return m
}

// ResetTool restores the plot ranges to their initial state.
type ResetTool struct {
	model.Base
}

// ResetToolSchema is the schema of [ResetTool].
var ResetToolSchema = props.NewSchema("ResetTool", Schema)

// NewResetTool returns a reset tool.
func NewResetTool() *ResetTool { return model.New[ResetTool](ResetToolSchema) }

func (t *ResetTool) Gesture() Gestures { return Action }
