// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/document"
	"cogentcore.org/figure/frame"
	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/glyphs"
	"cogentcore.org/figure/models/layouts"
	"cogentcore.org/figure/models/plots"
	"cogentcore.org/figure/models/ranges"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/models/tools"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/resource"
	"cogentcore.org/figure/view"
)

type scene struct {
	doc   *document.Document
	plot  *plots.Plot
	src   *sources.ColumnDataSource
	sched *frame.Scheduler
	rec   *render.Recorder
	pipe  *Pipeline
	pv    *PlotView
}

func newScene(t *testing.T) *scene {
	p, err := plots.NewFigure()
	require.NoError(t, err)
	src := sources.NewColumnDataSource(map[string]any{
		"x": []any{1.0, 2.0, 3.0},
		"y": []any{1.0, 4.0, 9.0},
	})
	_, err = p.AddGlyph(src, glyphs.NewScatter())
	require.NoError(t, err)
	return mount(t, p, src, nil)
}

func mount(t *testing.T, root layouts.LayoutDOM, src *sources.ColumnDataSource, images *resource.Cache) *scene {
	doc := document.New()
	require.NoError(t, doc.AddRoot(root))
	mg := view.NewManager(doc, NewFactory(images))
	v, err := mg.Mount(root)
	require.NoError(t, err)
	lv, ok := v.(LayoutView)
	require.True(t, ok)
	s := &scene{doc: doc, src: src, sched: &frame.Scheduler{}, rec: render.NewRecorder(800, 700)}
	s.pipe = NewPipeline(mg, lv, s.rec, s.sched)
	t.Cleanup(s.pipe.Close)
	if p, ok := root.(*plots.Plot); ok {
		s.plot = p
		s.pv = mg.Get(p).(*PlotView)
	}
	return s
}

// screen returns the canvas point of a data point.
func (s *scene) screen(x, y float64) (float64, float64) {
	return s.pv.Scale(math32.X).Compute(x), s.pv.Scale(math32.Y).Compute(y)
}

func (s *scene) drag(x0, y0, x1, y1 float64, shift bool) {
	s.pipe.Dispatch(Event{Type: PanStart, X: x0, Y: y0, Shift: shift})
	s.pipe.Dispatch(Event{Type: Pan, X: x1, Y: y1, Shift: shift})
	s.pipe.Dispatch(Event{Type: PanEnd, X: x1, Y: y1, Shift: shift})
}

func TestPaintOrder(t *testing.T) {
	s := newScene(t)
	assert.True(t, s.sched.IsPending(s.pipe))
	assert.Equal(t, 1, s.sched.RunFrame())
	assert.Equal(t, []string{
		"clear", "plot:" + s.plot.ID(), "background",
		"image", "underlay", "glyph", "guide", "annotation", "overlay", "tools",
	}, s.rec.Marks())
	assert.Equal(t, 3, s.rec.Count("circle"))
	assert.Equal(t, 1, s.pipe.Stats.Layouts)
	assert.Equal(t, 1, s.pipe.Stats.Paints)
	assert.True(t, s.pipe.Finished())
	assert.False(t, s.sched.IsPending(s.pipe))
	assert.Greater(t, s.rec.Count("text"), 4)
}

func TestFrameInsideBorders(t *testing.T) {
	s := newScene(t)
	s.sched.RunFrame()
	box, f := s.pv.Box(), s.pv.Frame()
	assert.Equal(t, float32(600), box.Width())
	assert.Greater(t, f.Min.X, box.Min.X+5)
	assert.Less(t, f.Max.Y, box.Max.Y-5)

	x0, y0 := s.screen(1, 1)
	x1, y1 := s.screen(3, 9)
	assert.True(t, f.ContainsPoint(math32.Vec2(float32(x0), float32(y0))))
	assert.True(t, f.ContainsPoint(math32.Vec2(float32(x1), float32(y1))))
	assert.Less(t, y1, y0, "y grows upward")
}

func TestDataRanges(t *testing.T) {
	s := newScene(t)
	s.sched.RunFrame()
	xr := s.plot.Range(math32.X)
	yr := s.plot.Range(math32.Y)
	assert.Less(t, xr.Start(), 1.0)
	assert.Greater(t, xr.End(), 3.0)
	assert.Less(t, yr.Start(), 1.0)
	assert.Greater(t, yr.End(), 9.0)

	require.NoError(t, s.src.Stream(map[string][]any{"x": {10.0}, "y": {20.0}}, 0))
	assert.True(t, s.sched.IsPending(s.pipe))
	s.sched.RunFrame()
	assert.Greater(t, xr.End(), 10.0)
	assert.Equal(t, 4, s.rec.Count("circle")-3)
}

func TestPanWithoutLayout(t *testing.T) {
	s := newScene(t)
	s.sched.RunFrame()
	xr := s.plot.Range(math32.X).(*ranges.DataRange1d)
	start, end := xr.Start(), xr.End()
	solves := s.pipe.Solver().FullSolves
	s.rec.Reset()

	c := s.pv.Frame().Center()
	s.drag(fx(c.X), fx(c.Y), fx(c.X)+20, fx(c.Y), false)
	assert.Less(t, xr.Start(), start)
	assert.InDelta(t, end-start, xr.End()-xr.Start(), 1e-9)
	assert.True(t, xr.Interactive())
	assert.True(t, s.sched.IsPending(s.pipe))

	s.sched.RunFrame()
	assert.Equal(t, 1, s.pipe.Stats.Layouts)
	assert.Equal(t, solves, s.pipe.Solver().FullSolves)
	assert.NotContains(t, s.rec.Marks(), "clear")
	assert.Contains(t, s.rec.Marks(), "plot:"+s.plot.ID())

	// the range stays where the pan left it
	moved := xr.Start()
	s.pv.NeedsRender()
	s.sched.RunFrame()
	assert.Equal(t, moved, xr.Start())
}

func TestWheelZoom(t *testing.T) {
	s := newScene(t)
	s.sched.RunFrame()
	xr, yr := s.plot.Range(math32.X), s.plot.Range(math32.Y)
	xspan, yspan := xr.End()-xr.Start(), yr.End()-yr.Start()
	c := s.pv.Frame().Center()
	assert.True(t, s.pipe.Dispatch(Event{Type: Scroll, X: fx(c.X), Y: fx(c.Y), Delta: 60}))
	assert.InDelta(t, 0.9*xspan, xr.End()-xr.Start(), 1e-6)
	assert.InDelta(t, 0.9*yspan, yr.End()-yr.Start(), 1e-6)

	assert.False(t, s.pipe.Dispatch(Event{Type: Scroll, X: 790, Y: 690, Delta: 60}), "outside any plot")
}

func TestBoxSelect(t *testing.T) {
	s := newScene(t)
	tb := s.plot.Toolbar()
	bs := tb.Tools()[2].(*tools.BoxSelectTool)
	tb.MustSet("active_drag", bs)
	bs.MustSet("select_every_mousemove", true)
	s.sched.RunFrame()

	x, y := s.screen(2, 4)
	s.pipe.Dispatch(Event{Type: PanStart, X: x - 5, Y: y - 5})
	s.pipe.Dispatch(Event{Type: Pan, X: x + 5, Y: y + 5})
	sel := s.src.Selected()
	assert.Equal(t, []int{1}, sel.Indices())
	assert.False(t, sel.Final())
	assert.True(t, bs.Overlay().IsVisible())
	s.pipe.Dispatch(Event{Type: PanEnd, X: x + 5, Y: y + 5})
	assert.True(t, sel.Final())
	assert.False(t, bs.Overlay().IsVisible())

	x, y = s.screen(1, 1)
	s.drag(x-5, y-5, x+5, y+5, true)
	assert.Equal(t, []int{0, 1}, sel.Indices())

	s.drag(x-5, y-5, x+5, y+5, false)
	assert.Equal(t, []int{0}, sel.Indices())

	s.rec.Reset()
	s.sched.RunFrame()
	assert.Equal(t, 3, s.rec.Count("circle"))
}

func TestReset(t *testing.T) {
	s := newScene(t)
	s.sched.RunFrame()
	xr := s.plot.Range(math32.X).(*ranges.DataRange1d)
	start := xr.Start()
	c := s.pv.Frame().Center()
	s.drag(fx(c.X), fx(c.Y), fx(c.X)+50, fx(c.Y), false)
	require.NotEqual(t, start, xr.Start())

	var reset tools.Tool
	for _, tl := range s.plot.Toolbar().Tools() {
		if _, ok := tl.(*tools.ResetTool); ok {
			reset = tl
		}
	}
	require.NotNil(t, reset)
	assert.True(t, s.pipe.Dispatch(Event{Type: Action, Tool: reset}))
	assert.False(t, xr.Interactive())
	s.sched.RunFrame()
	assert.InDelta(t, start, xr.Start(), 1e-9)
}

func TestFinishedOnce(t *testing.T) {
	s := newScene(t)
	n := 0
	s.pipe.OnFinished = func() { n++ }
	s.sched.RunFrame()
	s.pv.NeedsRender()
	s.sched.RunFrame()
	assert.Equal(t, 1, n)
}

func TestResize(t *testing.T) {
	s := newScene(t)
	s.sched.RunFrame()
	s.plot.MustSet("width", 400)
	assert.True(t, s.sched.IsPending(s.pipe))
	s.sched.RunFrame()
	assert.Equal(t, 2, s.pipe.Stats.Layouts)
	assert.Equal(t, float32(400), s.pv.Box().Width())

	s.rec.Width = 900
	s.pipe.Frame()
	assert.Equal(t, 3, s.pipe.Stats.Layouts)
}

func TestRowOfPlots(t *testing.T) {
	a, err := plots.NewFigure()
	require.NoError(t, err)
	b, err := plots.NewFigure()
	require.NoError(t, err)
	a.MustSet("width", 300)
	b.MustSet("width", 300)
	b.MustSet("x_range", a.Get("x_range"))
	src := sources.NewColumnDataSource(map[string]any{"x": []any{0.0, 1.0}, "y": []any{0.0, 1.0}})
	_, err = a.AddGlyph(src, glyphs.NewScatter())
	require.NoError(t, err)
	_, err = b.AddGlyph(src, glyphs.NewScatter())
	require.NoError(t, err)

	s := mount(t, layouts.NewRow(a, b), src, nil)
	s.sched.RunFrame()
	ps := s.pipe.Root().Plots()
	require.Len(t, ps, 2)
	assert.Equal(t, float32(300), ps[1].Box().Min.X)

	// panning one plot repaints both through the shared range
	s.rec.Reset()
	c := ps[0].Frame().Center()
	s.drag(fx(c.X), fx(c.Y), fx(c.X)+10, fx(c.Y), false)
	s.sched.RunFrame()
	assert.Contains(t, s.rec.Marks(), "plot:"+a.ID())
	assert.Contains(t, s.rec.Marks(), "plot:"+b.ID())
	assert.Equal(t, 1, s.pipe.Stats.Layouts)
}

func TestSharedDataRange(t *testing.T) {
	a, err := plots.NewFigure()
	require.NoError(t, err)
	b, err := plots.NewFigure()
	require.NoError(t, err)
	a.MustSet("width", 300)
	b.MustSet("width", 300)
	b.MustSet("x_range", a.Get("x_range"))
	srcA := sources.NewColumnDataSource(map[string]any{"x": []any{0.0, 1.0}, "y": []any{0.0, 1.0}})
	srcB := sources.NewColumnDataSource(map[string]any{"x": []any{100.0, 101.0}, "y": []any{0.0, 1.0}})
	_, err = a.AddGlyph(srcA, glyphs.NewScatter())
	require.NoError(t, err)
	_, err = b.AddGlyph(srcB, glyphs.NewScatter())
	require.NoError(t, err)

	row := layouts.NewRow(a, b)
	s := mount(t, row, srcA, nil)
	s.sched.RunFrame()
	xr := a.Range(math32.X).(*ranges.DataRange1d)
	assert.Less(t, xr.Start(), 0.0)
	assert.Greater(t, xr.End(), 101.0)
	assert.Less(t, a.Range(math32.Y).End(), 2.0)
	assert.Len(t, xr.Plots(), 2)

	// both plots draw their points inside their own frames
	for _, pv := range s.pipe.Root().Plots() {
		f := pv.Frame()
		x := pv.Scale(math32.X)
		lo, hi := x.Compute(0), x.Compute(101)
		assert.GreaterOrEqual(t, lo, fx(f.Min.X))
		assert.LessOrEqual(t, hi, fx(f.Max.X))
	}

	row.MustSet("children", []layouts.LayoutDOM{a})
	s.sched.RunFrame()
	assert.Equal(t, []model.Model{a}, xr.Plots())
	assert.Greater(t, xr.Start(), -1.0)
	assert.Less(t, xr.End(), 2.0)
}

func TestLinkedRange1d(t *testing.T) {
	a, err := plots.NewFigure()
	require.NoError(t, err)
	b, err := plots.NewFigure()
	require.NoError(t, err)
	a.MustSet("width", 300)
	b.MustSet("width", 300)
	xr := ranges.NewRange1d(0, 10)
	a.MustSet("x_range", xr)
	b.MustSet("x_range", xr)
	src := sources.NewColumnDataSource(map[string]any{"x": []any{2.0, 8.0}, "y": []any{0.0, 1.0}})
	_, err = a.AddGlyph(src, glyphs.NewScatter())
	require.NoError(t, err)
	_, err = b.AddGlyph(src, glyphs.NewScatter())
	require.NoError(t, err)

	s := mount(t, layouts.NewRow(a, b), src, nil)
	s.sched.RunFrame()
	ps := s.pipe.Root().Plots()
	require.Len(t, ps, 2)
	assert.Equal(t, 0.0, xr.Start())
	assert.Equal(t, 10.0, xr.End())
	before := ps[1].Scale(math32.X).Compute(5)

	s.rec.Reset()
	c := ps[0].Frame().Center()
	s.drag(fx(c.X), fx(c.Y), fx(c.X)+30, fx(c.Y), false)
	assert.Less(t, xr.Start(), 0.0)
	assert.InDelta(t, 10.0, xr.End()-xr.Start(), 1e-9)
	assert.True(t, s.sched.IsPending(s.pipe))

	s.sched.RunFrame()
	assert.Contains(t, s.rec.Marks(), "plot:"+a.ID())
	assert.Contains(t, s.rec.Marks(), "plot:"+b.ID())
	assert.NotContains(t, s.rec.Marks(), "clear")
	assert.Equal(t, 1, s.pipe.Stats.Layouts)
	assert.InDelta(t, before+30, ps[1].Scale(math32.X).Compute(5), 1e-3)
}

func pngDataURL(t *testing.T) string {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestImages(t *testing.T) {
	loop := frame.NewLoop(time.Millisecond)
	cache := resource.NewCache(resource.NewLoader(loop.Post))
	t.Cleanup(cache.Close)

	p := plots.New()
	src := sources.NewColumnDataSource(map[string]any{
		"url": []any{pngDataURL(t), "data:image/png;base64,AAAA"},
		"x":   []any{0.0, 1.0},
		"y":   []any{0.0, 1.0},
	})
	_, err := p.AddGlyph(src, glyphs.NewImageURL())
	require.NoError(t, err)

	doc := document.New()
	require.NoError(t, doc.AddRoot(p))
	mg := view.NewManager(doc, NewFactory(cache))
	v, err := mg.Mount(p)
	require.NoError(t, err)
	rec := render.NewRecorder(600, 600)
	pipe := NewPipeline(mg, v.(LayoutView), rec, &loop.Scheduler)
	t.Cleanup(pipe.Close)

	finished := 0
	pipe.OnFinished = func() { finished++ }
	assert.Eventually(t, func() bool {
		loop.Drain()
		return pipe.Finished()
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, rec.Count("image"))
	assert.Equal(t, 1, finished)
	assert.Error(t, cache.Err("data:image/png;base64,AAAA"))
}
