// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"image/color"
	"log/slog"
	"math"
	"slices"
	"time"

	"cogentcore.org/figure/math32"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models/glyphs"
	"cogentcore.org/figure/models/renderers"
	"cogentcore.org/figure/models/scales"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/props"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/resource"
	"cogentcore.org/figure/view"
)

// GlyphRendererView paints a [renderers.GlyphRenderer]. When rows of
// the data source are selected, the other rows are painted first with
// the nonselection glyph and the selected rows over them with the
// selection glyph.
type GlyphRendererView struct {
	view.Base
	Renderer *renderers.GlyphRenderer

	// Images loads the images of image glyphs; nil disables them.
	Images *resource.Cache

	// Paints counts the paint passes of the renderer.
	Paints int

	deps    []model.Model
	source  *sources.ColumnDataSource
	loading bool
	warned  bool
}

func (v *GlyphRendererView) Init() error {
	v.Renderer = v.Model.(*renderers.GlyphRenderer)
	view.OnChange(v, v.Renderer, func(name string) {
		v.watch()
		v.NeedsRender()
	})
	v.watch()
	return nil
}

// watch connects to the glyphs, data source and selection of the
// renderer, replacing earlier connections.
func (v *GlyphRendererView) watch() {
	for _, m := range v.deps {
		view.OffChange(v, m)
	}
	v.deps = v.deps[:0]
	if v.source != nil {
		view.Disconnect(v, v.source.Streamed(), "streamed")
		view.Disconnect(v, v.source.Patched(), "patched")
		v.source = nil
	}
	r := v.Renderer
	add := func(m model.Model) {
		if m == nil || slices.Contains(v.deps, m) {
			return
		}
		v.deps = append(v.deps, m)
	}
	for _, name := range []string{"glyph", "selection_glyph", "nonselection_glyph", "data_source"} {
		add(r.GetRef(name))
	}
	if sel := r.Selection(); sel != nil {
		add(sel)
	}
	for _, m := range v.deps {
		view.OnChange(v, m, func(name string) {
			if name == "selected" {
				v.watch()
			}
			v.NeedsRender()
		})
	}
	if cds, ok := r.Source().(*sources.ColumnDataSource); ok {
		v.source = cds
		view.Connect(v, cds.Streamed(), "streamed", func(model.ColumnsStreamed) { v.NeedsRender() })
		view.Connect(v, cds.Patched(), "patched", func(model.ColumnsPatched) { v.NeedsRender() })
	}
}

// HasFinished returns whether the renderer has been painted with all
// of its images either loaded or failed.
func (v *GlyphRendererView) HasFinished() bool {
	return v.Paints > 0 && !v.loading
}

func (v *GlyphRendererView) Paint(ctx *Context) {
	v.Paints++
	v.loading = false
	r := v.Renderer
	main := r.Glyph()
	if main == nil || !ctx.Valid() {
		return
	}
	var selected []int
	if sel := r.Selection(); sel != nil {
		selected = sel.Indices()
	}
	if _, isLine := main.(*glyphs.Line); isLine || len(selected) == 0 {
		v.paintGlyph(ctx, main, nil)
		return
	}
	n := 1
	if src := r.Columns(); src != nil {
		n = src.Length()
	}
	in := make([]bool, n)
	var sel []int
	for _, i := range selected {
		if i >= 0 && i < n && !in[i] {
			in[i] = true
			sel = append(sel, i)
		}
	}
	rest := make([]int, 0, n-len(sel))
	for i := range n {
		if !in[i] {
			rest = append(rest, i)
		}
	}
	slices.Sort(sel)
	v.paintGlyph(ctx, r.GlyphFor(false, true), rest)
	v.paintGlyph(ctx, r.GlyphFor(true, true), sel)
}

// paintGlyph paints g for the given rows, or all rows if rows is nil.
func (v *GlyphRendererView) paintGlyph(ctx *Context, g glyphs.Glyph, rows []int) {
	src := v.Renderer.Columns()
	var err error
	switch g := g.(type) {
	case *glyphs.Scatter:
		err = paintScatter(ctx, g, src, rows)
	case *glyphs.Line:
		err = paintLine(ctx, g, src)
	case *glyphs.Quad:
		err = paintQuad(ctx, g, src, rows)
	case *glyphs.ImageURL:
		err = v.paintImages(ctx, g, src, rows)
	default:
		slog.Debug("views: glyph has no painter", "glyph", g.AsModel().TypeName())
	}
	if err != nil && !v.warned {
		v.warned = true
		slog.Warn("views: cannot paint glyph", "renderer", v.Renderer.ID(), "glyph", g.ID(), "err", err)
	}
}

// rowIndexes returns rows, or all n rows if rows is nil.
func rowIndexes(rows []int, n int) []int {
	if rows != nil {
		return rows
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	return all
}

// coords resolves the named spec of g against src and maps it to
// canvas coordinates along dimension d. Categorical scales map
// factors; other scales map numbers.
func coords(ctx *Context, d math32.Dims, g model.Model, name string, src props.Columns) ([]float64, error) {
	s := ctx.Scale(d)
	if cs, ok := s.(*scales.Categorical); ok {
		vals, err := glyphs.Values(g, name, src)
		if err != nil {
			return nil, err
		}
		out, _ := cs.VComputeFactors(vals)
		return out, nil
	}
	xs, err := glyphs.Floats(g, name, src)
	if err != nil {
		return nil, err
	}
	return s.VCompute(xs), nil
}

// at returns the i-th value of vs, or its first value if vs is a
// single value, or def.
func at[T any](vs []T, i int, def T) T {
	if i < len(vs) {
		return vs[i]
	}
	if len(vs) > 0 {
		return vs[0]
	}
	return def
}

// visuals are the resolved fill and line properties of a glyph.
type visuals struct {
	fill, line                     []any
	fillAlpha, lineAlpha, lineWidth []float64
}

func resolveVisuals(g model.Model, src props.Columns) visuals {
	var vs visuals
	vs.fill, _ = glyphs.Values(g, "fill_color", src)
	vs.line, _ = glyphs.Values(g, "line_color", src)
	vs.fillAlpha, _ = glyphs.Floats(g, "fill_alpha", src)
	vs.lineAlpha, _ = glyphs.Floats(g, "line_alpha", src)
	vs.lineWidth, _ = glyphs.Floats(g, "line_width", src)
	return vs
}

func (vs visuals) fillAt(i int) (color.RGBA, bool) {
	return rgba(at(vs.fill, i, nil), at(vs.fillAlpha, i, 1))
}

func (vs visuals) lineAt(i int) (color.RGBA, bool) {
	return rgba(at(vs.line, i, nil), at(vs.lineAlpha, i, 1))
}

// paint fills and strokes the current path with the visuals of row i.
func (vs visuals) paint(c render.Canvas, i int, fill bool) {
	fc, hasFill := vs.fillAt(i)
	lc, hasLine := vs.lineAt(i)
	hasFill = hasFill && fill
	if hasLine {
		c.SetStroke(lc, at(vs.lineWidth, i, 1), nil)
	}
	switch {
	case hasFill && hasLine:
		c.SetFill(fc)
		c.FillStroke()
	case hasFill:
		c.SetFill(fc)
		c.Fill()
	case hasLine:
		c.Stroke()
	}
}

func paintScatter(ctx *Context, g *glyphs.Scatter, src props.Columns, rows []int) error {
	xs, err := coords(ctx, math32.X, g, "x", src)
	if err != nil {
		return err
	}
	ys, err := coords(ctx, math32.Y, g, "y", src)
	if err != nil {
		return err
	}
	sizes, _ := glyphs.Floats(g, "size", src)
	angles, _ := glyphs.Floats(g, "angle", src)
	markers, _ := glyphs.Values(g, "marker", src)
	vs := resolveVisuals(g, src)
	c := ctx.Canvas
	for _, i := range rowIndexes(rows, len(xs)) {
		if i >= len(xs) || i >= len(ys) {
			continue
		}
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		r := at(sizes, i, 4) / 2
		if math.IsNaN(r) || r <= 0 {
			continue
		}
		angle := at(angles, i, 0)
		rotated := angle != 0 && !math.IsNaN(angle)
		if rotated {
			c.Push()
			c.RotateAbout(-angle, x, y)
		}
		marker := props.AsString(at(markers, i, any("circle")))
		fill := markerPath(c, marker, x, y, r)
		if marker == "dot" {
			if lc, ok := vs.lineAt(i); ok {
				c.SetFill(lc)
				c.Fill()
			}
		} else {
			vs.paint(c, i, fill)
		}
		if rotated {
			c.Pop()
		}
	}
	return nil
}

// markerPath sets the path of a marker of radius r centered at x, y,
// and returns whether the marker is filled.
func markerPath(c render.Canvas, marker string, x, y, r float64) bool {
	const h = 0.8660254 // sin(60°)
	switch marker {
	case "square":
		c.Rect(x-r, y-r, 2*r, 2*r)
	case "triangle":
		c.MoveTo(x, y-r)
		c.LineTo(x+h*r, y+r/2)
		c.LineTo(x-h*r, y+r/2)
		c.ClosePath()
	case "inverted_triangle":
		c.MoveTo(x, y+r)
		c.LineTo(x+h*r, y-r/2)
		c.LineTo(x-h*r, y-r/2)
		c.ClosePath()
	case "diamond":
		c.MoveTo(x, y-r)
		c.LineTo(x+0.7*r, y)
		c.LineTo(x, y+r)
		c.LineTo(x-0.7*r, y)
		c.ClosePath()
	case "cross":
		c.MoveTo(x-r, y)
		c.LineTo(x+r, y)
		c.MoveTo(x, y-r)
		c.LineTo(x, y+r)
		return false
	case "x":
		d := r * math.Sqrt2 / 2
		c.MoveTo(x-d, y-d)
		c.LineTo(x+d, y+d)
		c.MoveTo(x-d, y+d)
		c.LineTo(x+d, y-d)
		return false
	case "dot":
		c.Circle(x, y, r/4)
	default:
		c.Circle(x, y, r)
	}
	return true
}

func paintLine(ctx *Context, g *glyphs.Line, src props.Columns) error {
	xs, err := coords(ctx, math32.X, g, "x", src)
	if err != nil {
		return err
	}
	ys, err := coords(ctx, math32.Y, g, "y", src)
	if err != nil {
		return err
	}
	col, ok := rgba(g.Get("line_color"), g.GetFloat("line_alpha"))
	if !ok {
		return nil
	}
	c := ctx.Canvas
	c.SetStroke(col, g.GetFloat("line_width"), props.Floats(g.GetList("line_dash")))
	pen, drawn := false, false
	for i := range min(len(xs), len(ys)) {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			pen = false
			continue
		}
		if pen {
			c.LineTo(x, y)
			drawn = true
		} else {
			c.MoveTo(x, y)
			pen = true
		}
	}
	if drawn {
		c.Stroke()
	}
	return nil
}

func paintQuad(ctx *Context, g *glyphs.Quad, src props.Columns, rows []int) error {
	var edges [4][]float64
	for i, name := range []string{"left", "right", "bottom", "top"} {
		d := math32.X
		if i >= 2 {
			d = math32.Y
		}
		vs, err := coords(ctx, d, g, name, src)
		if err != nil {
			return err
		}
		edges[i] = vs
	}
	n := min(len(edges[0]), len(edges[1]), len(edges[2]), len(edges[3]))
	vs := resolveVisuals(g, src)
	c := ctx.Canvas
	for _, i := range rowIndexes(rows, n) {
		if i >= n {
			continue
		}
		l, r, b, t := edges[0][i], edges[1][i], edges[2][i], edges[3][i]
		if math.IsNaN(l) || math.IsNaN(r) || math.IsNaN(b) || math.IsNaN(t) {
			continue
		}
		c.Rect(min(l, r), min(b, t), math.Abs(r-l), math.Abs(b-t))
		vs.paint(c, i, true)
	}
	return nil
}

// paintImages paints the loaded images of g. Images still loading
// are skipped and repainted when they arrive; failed images are
// not drawn.
func (v *GlyphRendererView) paintImages(ctx *Context, g *glyphs.ImageURL, src props.Columns, rows []int) error {
	if v.Images == nil {
		return nil
	}
	urls, err := glyphs.Values(g, "url", src)
	if err != nil {
		return err
	}
	xd, err := glyphs.Floats(g, "x", src)
	if err != nil {
		return err
	}
	yd, err := glyphs.Floats(g, "y", src)
	if err != nil {
		return err
	}
	var ws, hs []float64
	if g.Get("w") != nil {
		ws, _ = glyphs.Floats(g, "w", src)
	}
	if g.Get("h") != nil {
		hs, _ = glyphs.Floats(g, "h", src)
	}
	angles, _ := glyphs.Floats(g, "angle", src)
	alphas, _ := glyphs.Floats(g, "global_alpha", src)
	ax, ay := glyphs.AnchorOffset(g.GetString("anchor"))
	dilate := g.GetBool("dilate")
	opts := resource.Options{
		Attempts: g.GetInt("retry_attempts"),
		Delay:    time.Duration(g.GetInt("retry_timeout")) * time.Millisecond,
	}
	c := ctx.Canvas
	for _, i := range rowIndexes(rows, len(urls)) {
		if i >= len(urls) || i >= len(xd) || i >= len(yd) {
			continue
		}
		url := props.AsString(urls[i])
		if url == "" {
			continue
		}
		img, state := v.Images.Get(url, opts, v.NeedsRender)
		if state == resource.Loading {
			v.loading = true
		}
		if state != resource.Loaded {
			continue
		}
		sx, sy := ctx.X.Compute(xd[i]), ctx.Y.Compute(yd[i])
		if math.IsNaN(sx) || math.IsNaN(sy) {
			continue
		}
		size := img.Bounds().Size()
		w, h := float64(size.X), float64(size.Y)
		if ws != nil {
			w = math.Abs(ctx.X.Compute(xd[i]+at(ws, i, 0)) - sx)
		}
		if hs != nil {
			h = math.Abs(ctx.Y.Compute(yd[i]+at(hs, i, 0)) - sy)
		}
		if dilate {
			w, h = math.Ceil(w), math.Ceil(h)
		}
		angle := at(angles, i, 0)
		rotated := angle != 0 && !math.IsNaN(angle)
		if rotated {
			c.Push()
			c.RotateAbout(-angle, sx, sy)
		}
		c.Image(img, sx-ax*w, sy-ay*h, w, h, at(alphas, i, 1))
		if rotated {
			c.Pop()
		}
	}
	return nil
}

// HitRect returns the rows whose glyph lies in box, in canvas
// coordinates: the rows whose point is inside it for point glyphs
// and the rows whose rectangle intersects it for quads.
func (v *GlyphRendererView) HitRect(ctx *Context, box math32.Box2) []int {
	g := v.Renderer.Glyph()
	src := v.Renderer.Columns()
	if g == nil || !ctx.Valid() {
		return nil
	}
	var hits []int
	if q, ok := g.(*glyphs.Quad); ok {
		var edges [4][]float64
		for i, name := range []string{"left", "right", "bottom", "top"} {
			d := math32.X
			if i >= 2 {
				d = math32.Y
			}
			vs, err := coords(ctx, d, q, name, src)
			if err != nil {
				return nil
			}
			edges[i] = vs
		}
		n := min(len(edges[0]), len(edges[1]), len(edges[2]), len(edges[3]))
		for i := range n {
			l, r, b, t := edges[0][i], edges[1][i], edges[2][i], edges[3][i]
			if math.IsNaN(l) || math.IsNaN(r) || math.IsNaN(b) || math.IsNaN(t) {
				continue
			}
			if min(l, r) <= fx(box.Max.X) && max(l, r) >= fx(box.Min.X) &&
				min(b, t) <= fx(box.Max.Y) && max(b, t) >= fx(box.Min.Y) {
				hits = append(hits, i)
			}
		}
		return hits
	}
	xs, err := coords(ctx, math32.X, g, "x", src)
	if err != nil {
		return nil
	}
	ys, err := coords(ctx, math32.Y, g, "y", src)
	if err != nil {
		return nil
	}
	for i := range min(len(xs), len(ys)) {
		x, y := xs[i], ys[i]
		if x >= fx(box.Min.X) && x <= fx(box.Max.X) && y >= fx(box.Min.Y) && y <= fx(box.Max.Y) {
			hits = append(hits, i)
		}
	}
	return hits
}
