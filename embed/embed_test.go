// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package embed

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/document"
	"cogentcore.org/figure/frame"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models"
	"cogentcore.org/figure/models/glyphs"
	"cogentcore.org/figure/models/plots"
	"cogentcore.org/figure/models/sources"
	"cogentcore.org/figure/render"
)

type testHost struct {
	mounted   []*RootView
	unmounted []*RootView
	title     string
}

func (h *testHost) Mount(rv *RootView)    { h.mounted = append(h.mounted, rv) }
func (h *testHost) Unmount(rv *RootView)  { h.unmounted = append(h.unmounted, rv) }
func (h *testHost) SetTitle(title string) { h.title = title }

func newPlot(t *testing.T) (*plots.Plot, *sources.ColumnDataSource) {
	p, err := plots.NewFigure()
	require.NoError(t, err)
	src := sources.NewColumnDataSource(map[string]any{
		"x": []any{1.0, 2.0, 3.0},
		"y": []any{3.0, 1.0, 2.0},
	})
	_, err = p.AddGlyph(src, glyphs.NewScatter())
	require.NoError(t, err)
	return p, src
}

func recorderOptions(sched *frame.Scheduler) Options {
	return Options{
		Scheduler: sched,
		NewCanvas: func(_ model.Model, w, h int) render.Canvas { return render.NewRecorder(w, h) },
	}
}

func TestIdleOnce(t *testing.T) {
	p, src := newPlot(t)
	doc := document.New()
	require.NoError(t, doc.AddRoot(p))
	require.NoError(t, doc.AddRoot(src))
	idle := 0
	doc.Idle.Connect(t, "test", func(*document.Document) { idle++ })

	sched := &frame.Scheduler{}
	host := &testHost{}
	s, err := AddDocumentStandalone(doc, host, recorderOptions(sched))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.Len(t, host.mounted, 2)
	assert.Nil(t, s.Root(src).Pipeline, "data sources have no canvas")
	assert.Equal(t, 0, idle, "the plot has not rendered yet")

	sched.RunFrame()
	assert.Equal(t, 1, idle)
	assert.True(t, doc.IsIdle())

	p.MustSet("min_border", 20)
	sched.RunFrame()
	s.Render()
	assert.Equal(t, 1, idle)
}

func TestNaturalSize(t *testing.T) {
	p, _ := newPlot(t)
	doc := document.New()
	require.NoError(t, doc.AddRoot(p))
	host := &testHost{}
	s, err := AddDocumentStandalone(doc, host, recorderOptions(nil))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rv := s.Root(p)
	require.NotNil(t, rv.Canvas)
	assert.Equal(t, 600, rv.Canvas.Size().X)
	assert.Equal(t, 600, rv.Canvas.Size().Y)
	rv.Render()
	assert.True(t, rv.Pipeline.Finished())
	assert.True(t, doc.IsIdle())
	assert.Equal(t, float32(600), rv.Size().X)
}

func TestRootsFollowDocument(t *testing.T) {
	doc := document.New()
	host := &testHost{}
	opts := recorderOptions(&frame.Scheduler{})
	opts.UseForTitle = true
	s, err := AddDocumentStandalone(doc, host, opts)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	assert.Equal(t, document.DefaultTitle, host.title)

	p, _ := newPlot(t)
	require.NoError(t, doc.AddRoot(p))
	require.Len(t, host.mounted, 1)
	rv := host.mounted[0]
	assert.Same(t, p, rv.Model.(*plots.Plot))

	doc.SetTitle("Sales")
	assert.Equal(t, "Sales", host.title)

	require.NoError(t, doc.RemoveRoot(p))
	require.Len(t, host.unmounted, 1)
	assert.Same(t, rv, host.unmounted[0])
	assert.True(t, rv.Removed())
	assert.Empty(t, s.Roots())
}

func TestTitleNotUsed(t *testing.T) {
	doc := document.New()
	doc.SetTitle("Kept")
	host := &testHost{}
	s, err := AddDocumentStandalone(doc, host, Options{})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	doc.SetTitle("Changed")
	assert.Empty(t, host.title)
}

func TestAddModelStandalone(t *testing.T) {
	p, _ := newPlot(t)
	doc := document.New()
	require.NoError(t, doc.AddRoot(p))
	host := &testHost{}

	_, err := AddModelStandalone(doc, "missing", host, Options{})
	assert.Error(t, err)

	rv, err := AddModelStandalone(doc, p.ID(), host, recorderOptions(nil))
	require.NoError(t, err)
	t.Cleanup(rv.Remove)
	require.Len(t, host.mounted, 1)
	rv.Render()
	assert.True(t, doc.IsIdle())
}

func TestEmbedItems(t *testing.T) {
	p, _ := newPlot(t)
	doc := document.New()
	require.NoError(t, doc.AddRoot(p))
	b, err := doc.Bytes()
	require.NoError(t, err)
	docs := []byte(fmt.Sprintf(`{"d1": %s}`, b))

	items, err := ParseItems([]byte(`[
		{"elementid": "a", "docid": "d1", "use_for_title": true},
		{"elementid": "b", "docid": "d1", "modelid": "` + p.ID() + `"},
		{"elementid": "c"},
		{"elementid": "d", "docid": "nope"}
	]`))
	require.NoError(t, err)
	require.Len(t, items, 4)

	hosts := map[string]*testHost{}
	host := func(id string) (Host, error) {
		h := &testHost{}
		hosts[id] = h
		return h, nil
	}
	out, err := EmbedItems(context.Background(), docs, items, host, models.NewRegistry(), ItemOptions{Options: recorderOptions(nil)})
	assert.ErrorContains(t, err, `"c"`)
	assert.ErrorContains(t, err, `"d"`)
	require.Len(t, out, 2)
	assert.NotNil(t, out[0].Standalone)
	assert.NotNil(t, out[1].Model)
	assert.Same(t, out[0].Doc, out[1].Doc, "items of one document share it")
	assert.Len(t, hosts["a"].mounted, 1)
	assert.Equal(t, document.DefaultTitle, hosts["a"].title)
	assert.Empty(t, hosts["b"].title)
}

func TestSessionItemNeedsURL(t *testing.T) {
	host := func(string) (Host, error) { return &testHost{}, nil }
	_, err := EmbedItems(context.Background(), nil, []RenderItem{{ElementID: "a", SessionID: "s1"}}, host, models.NewRegistry(), ItemOptions{})
	assert.ErrorContains(t, err, "websocket url")
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestSessionRoundTrip(t *testing.T) {
	reg := models.NewRegistry()
	p, _ := newPlot(t)
	sdoc := document.New()
	require.NoError(t, sdoc.AddRoot(p))
	sdoc.SetTitle("Served")
	srv := NewServer(sdoc, reg)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	t.Cleanup(srv.Close)

	loop := frame.NewLoop(time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := PullSession(ctx, wsURL(ts), "s1", reg, loop.Post)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.Equal(t, "Served", s.Doc.Title())
	require.Len(t, s.Doc.Roots(), 1)
	cp := s.Doc.ModelByID(p.ID())
	require.NotNil(t, cp)
	assert.NotSame(t, p, cp.(*plots.Plot))

	// server to client
	srv.Update(func(doc *document.Document) { p.MustSet("min_border", 17) })
	assert.Eventually(t, func() bool {
		loop.Drain()
		return cp.AsModel().GetInt("min_border") == 17
	}, 2*time.Second, 5*time.Millisecond)

	// client to server
	s.Doc.SetTitle("Edited")
	serverTitle := func() string {
		var title string
		srv.Update(func(doc *document.Document) { title = doc.Title() })
		return title
	}
	assert.Eventually(t, func() bool { return serverTitle() == "Edited" }, 2*time.Second, 5*time.Millisecond)
}

func TestSessionsSeeEachOther(t *testing.T) {
	reg := models.NewRegistry()
	p, _ := newPlot(t)
	sdoc := document.New()
	require.NoError(t, sdoc.AddRoot(p))
	srv := NewServer(sdoc, reg)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var mu sync.Mutex
	post := func(f func()) {
		mu.Lock()
		defer mu.Unlock()
		f()
	}
	a, err := PullSession(ctx, wsURL(ts), "a", reg, post)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	b, err := PullSession(ctx, wsURL(ts), "b", reg, post)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	assert.Eventually(t, func() bool { return srv.Sessions() == 2 }, 2*time.Second, 5*time.Millisecond)

	post(func() { a.Doc.SetTitle("From a") })
	assert.Eventually(t, func() bool {
		var title string
		post(func() { title = b.Doc.Title() })
		return title == "From a"
	}, 2*time.Second, 5*time.Millisecond)
}
