// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"cogentcore.org/figure/base/errors"
)

var defaultFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// GGCanvas is a raster [Canvas] drawing with gogpu/gg.
type GGCanvas struct {
	ctx   *gg.Context
	font  *text.FontSource
	faces map[float64]text.Face
	fill   color.RGBA
	stroke color.RGBA
}

// NewGGCanvas returns a new canvas of the given size, drawing text
// with the Go regular font.
func NewGGCanvas(width, height int) *GGCanvas {
	c := &GGCanvas{ctx: gg.NewContext(width, height), faces: map[float64]text.Face{}}
	c.font = errors.Log1(defaultFont())
	return c
}

// SetFontFile uses the font in the given file for text.
func (c *GGCanvas) SetFontFile(path string) error {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return err
	}
	c.font = src
	c.faces = map[float64]text.Face{}
	return nil
}

// Context returns the underlying gg context.
func (c *GGCanvas) Context() *gg.Context { return c.ctx }

func (c *GGCanvas) Size() image.Point { return image.Pt(c.ctx.Width(), c.ctx.Height()) }

func (c *GGCanvas) Mark(name string) {
	slog.Debug("render: paint", "item", name)
}

func (c *GGCanvas) Push() { c.ctx.Push() }

func (c *GGCanvas) Pop() { c.ctx.Pop() }

// Clear fills the whole canvas with col.
func (c *GGCanvas) Clear(col color.RGBA) { c.ctx.ClearWithColor(rgba(col)) }

func (c *GGCanvas) RotateAbout(angle, x, y float64) { c.ctx.RotateAbout(angle, x, y) }

func (c *GGCanvas) ClipRect(x, y, w, h float64) { c.ctx.ClipRect(x, y, w, h) }

func (c *GGCanvas) SetFill(col color.RGBA) { c.fill = col }

func (c *GGCanvas) SetStroke(col color.RGBA, width float64, dash []float64) {
	c.stroke = col
	c.ctx.SetLineWidth(width)
	if len(dash) > 0 {
		c.ctx.SetDash(dash...)
	} else {
		c.ctx.ClearDash()
	}
}

func rgba(col color.RGBA) gg.RGBA {
	return gg.RGBA2(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, float64(col.A)/255)
}

func (c *GGCanvas) MoveTo(x, y float64) { c.ctx.MoveTo(x, y) }

func (c *GGCanvas) LineTo(x, y float64) { c.ctx.LineTo(x, y) }

func (c *GGCanvas) ClosePath() { c.ctx.ClosePath() }

func (c *GGCanvas) Rect(x, y, w, h float64) { c.ctx.DrawRectangle(x, y, w, h) }

func (c *GGCanvas) Circle(x, y, r float64) { c.ctx.DrawCircle(x, y, r) }

func (c *GGCanvas) Fill() {
	c.ctx.SetFillBrush(gg.Solid(rgba(c.fill)))
	errors.Log(c.ctx.Fill())
}

func (c *GGCanvas) Stroke() {
	c.ctx.SetStrokeBrush(gg.Solid(rgba(c.stroke)))
	errors.Log(c.ctx.Stroke())
}

func (c *GGCanvas) FillStroke() {
	c.ctx.SetFillBrush(gg.Solid(rgba(c.fill)))
	errors.Log(c.ctx.FillPreserve())
	c.Stroke()
}

func (c *GGCanvas) face(size float64) text.Face {
	if c.font == nil {
		return nil
	}
	f, ok := c.faces[size]
	if !ok {
		f = c.font.Face(size)
		c.faces[size] = f
	}
	return f
}

func (c *GGCanvas) Text(s string, x, y, size, ax, ay, angle float64) {
	f := c.face(size)
	if f == nil {
		return
	}
	c.ctx.Push()
	c.ctx.SetFont(f)
	c.ctx.SetColor(c.fill)
	if angle != 0 {
		c.ctx.RotateAbout(angle, x, y)
	}
	// gg anchors ay at the baseline, with 1 at the top
	c.ctx.DrawStringAnchored(s, x, y, ax, 1-ay)
	c.ctx.Pop()
}

func (c *GGCanvas) MeasureText(s string, size float64) (w, h float64) {
	f := c.face(size)
	if f == nil {
		return EstimateText(s, size)
	}
	c.ctx.SetFont(f)
	return c.ctx.MeasureString(s)
}

func (c *GGCanvas) Image(img image.Image, x, y, w, h, alpha float64) {
	b := img.Bounds()
	if b.Empty() || w == 0 || h == 0 || math.IsNaN(w) || math.IsNaN(h) {
		return
	}
	c.ctx.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X: x, Y: y, DstWidth: w, DstHeight: h, Opacity: alpha,
	})
}

// Result returns the rendered image.
func (c *GGCanvas) Result() image.Image { return c.ctx.Image() }

// EncodePNG writes the rendered image as PNG.
func (c *GGCanvas) EncodePNG(w io.Writer) error { return c.ctx.EncodePNG(w) }

// SavePNG writes the rendered image to a PNG file.
func (c *GGCanvas) SavePNG(path string) error { return c.ctx.SavePNG(path) }
