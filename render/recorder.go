// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Op is one recorded canvas operation.
type Op struct {
	Name  string
	Args  []float64
	Text  string
	Color color.RGBA
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	if o.Text != "" {
		fmt.Fprintf(&b, " %q", o.Text)
	}
	for _, a := range o.Args {
		fmt.Fprintf(&b, " %g", a)
	}
	return b.String()
}

// Recorder is a [Canvas] that records operations instead of
// drawing them, for checking what was painted and in what order.
type Recorder struct {
	Width, Height int
	Ops           []Op
}

// NewRecorder returns a recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

// Marks returns the names passed to Mark, in order.
func (r *Recorder) Marks() []string {
	var ms []string
	for _, o := range r.Ops {
		if o.Name == "mark" {
			ms = append(ms, o.Text)
		}
	}
	return ms
}

// Count returns the number of operations with the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, o := range r.Ops {
		if o.Name == name {
			n++
		}
	}
	return n
}

// Reset discards the recorded operations.
func (r *Recorder) Reset() { r.Ops = nil }

func (r *Recorder) Size() image.Point { return image.Pt(r.Width, r.Height) }

func (r *Recorder) Mark(name string) {
	r.Ops = append(r.Ops, Op{Name: "mark", Text: name})
}

func (r *Recorder) Push() { r.add("push") }

func (r *Recorder) Pop() { r.add("pop") }

func (r *Recorder) RotateAbout(angle, x, y float64) { r.add("rotate", angle, x, y) }

func (r *Recorder) ClipRect(x, y, w, h float64) { r.add("clip", x, y, w, h) }

func (r *Recorder) SetFill(c color.RGBA) {
	r.Ops = append(r.Ops, Op{Name: "fill-color", Color: c})
}

func (r *Recorder) SetStroke(c color.RGBA, width float64, dash []float64) {
	r.Ops = append(r.Ops, Op{Name: "stroke-color", Color: c, Args: append([]float64{width}, dash...)})
}

func (r *Recorder) MoveTo(x, y float64) { r.add("move", x, y) }

func (r *Recorder) LineTo(x, y float64) { r.add("line", x, y) }

func (r *Recorder) ClosePath() { r.add("close") }

func (r *Recorder) Rect(x, y, w, h float64) { r.add("rect", x, y, w, h) }

func (r *Recorder) Circle(x, y, rad float64) { r.add("circle", x, y, rad) }

func (r *Recorder) Fill() { r.add("fill") }

func (r *Recorder) Stroke() { r.add("stroke") }

func (r *Recorder) FillStroke() { r.add("fill-stroke") }

func (r *Recorder) Text(s string, x, y, size, ax, ay, angle float64) {
	r.Ops = append(r.Ops, Op{Name: "text", Text: s, Args: []float64{x, y, size, ax, ay, angle}})
}

func (r *Recorder) MeasureText(s string, size float64) (w, h float64) {
	return EstimateText(s, size)
}

func (r *Recorder) Image(img image.Image, x, y, w, h, alpha float64) {
	r.add("image", x, y, w, h, alpha)
}
