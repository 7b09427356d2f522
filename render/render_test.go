// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Canvas = (*GGCanvas)(nil)
	_ Canvas = (*Recorder)(nil)
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)
	assert.Equal(t, image.Pt(100, 50), r.Size())
	r.Mark("a")
	r.SetFill(color.RGBA{255, 0, 0, 255})
	r.Rect(1, 2, 3, 4)
	r.Fill()
	r.Mark("b")
	r.Circle(5, 5, 2)
	r.FillStroke()
	assert.Equal(t, []string{"a", "b"}, r.Marks())
	assert.Equal(t, 1, r.Count("rect"))
	assert.Equal(t, "rect 1 2 3 4", r.Ops[2].String())
	assert.Equal(t, `mark "a"`, r.Ops[0].String())
	r.Reset()
	assert.Empty(t, r.Ops)
}

func TestEstimateText(t *testing.T) {
	w, h := EstimateText("abcd", 10)
	assert.InDelta(t, 24, w, 1e-9)
	assert.InDelta(t, 12, h, 1e-9)
}

func TestGGCanvas(t *testing.T) {
	c := NewGGCanvas(40, 30)
	assert.Equal(t, image.Pt(40, 30), c.Size())
	c.Clear(color.RGBA{255, 255, 255, 255})
	c.SetFill(color.RGBA{0, 0, 255, 255})
	c.Rect(10, 10, 10, 10)
	c.Fill()
	c.SetStroke(color.RGBA{0, 0, 0, 255}, 1, []float64{2, 2})
	c.MoveTo(0, 0)
	c.LineTo(39, 29)
	c.Stroke()

	img := c.Result()
	r, g, b, _ := img.At(15, 15).RGBA()
	assert.Equal(t, uint32(0), r>>8)
	assert.Equal(t, uint32(0), g>>8)
	assert.Equal(t, uint32(255), b>>8)
	r, _, _, _ = img.At(35, 2).RGBA()
	assert.Equal(t, uint32(255), r>>8)

	w, h := c.MeasureText("hello", 12)
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h, 0.0)

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	dec, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), dec.Bounds())
}
