// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// flakyServer fails the first fails requests and then serves data.
func flakyServer(t *testing.T, fails int, data []byte) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if int(n) <= fails {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestDecode(t *testing.T) {
	img, err := Decode(pngBytes(t, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = Decode([]byte("<svg></svg>"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDataURL(t *testing.T) {
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 4, 4))
	img, err := NewLoader(nil).Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = NewLoader(nil).Fetch(context.Background(), "data:nocomma")
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 2, 5), 0o644))
	l := NewLoader(nil)
	img, err := l.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dy())
	_, err = l.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
}

func TestRetry(t *testing.T) {
	srv, hits := flakyServer(t, 2, pngBytes(t, 1, 1))
	l := NewLoader(nil)
	img, err := l.LoadSync(context.Background(), srv.URL, Options{Attempts: 2, Delay: time.Millisecond})
	require.NoError(t, err)
	assert.NotNil(t, img)
	assert.Equal(t, int32(3), hits.Load())
}

func TestRetryExhausted(t *testing.T) {
	srv, hits := flakyServer(t, 10, nil)
	l := NewLoader(nil)
	done := make(chan error, 1)
	l.Load(context.Background(), srv.URL, Options{Attempts: 2, Delay: time.Millisecond},
		func(img image.Image) { t.Error("unexpected load") },
		func(err error) { done <- err })
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no failure callback")
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestNoRetries(t *testing.T) {
	srv, hits := flakyServer(t, 1, pngBytes(t, 1, 1))
	_, err := NewLoader(nil).LoadSync(context.Background(), srv.URL, Options{})
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestPost(t *testing.T) {
	srv, _ := flakyServer(t, 0, pngBytes(t, 1, 1))
	posted := make(chan func(), 1)
	l := NewLoader(func(fun func()) { posted <- fun })
	loaded := false
	l.Load(context.Background(), srv.URL, Options{}, func(img image.Image) { loaded = true }, nil)
	fun := <-posted
	assert.False(t, loaded)
	fun()
	assert.True(t, loaded)
}

func TestLoadAll(t *testing.T) {
	srv, _ := flakyServer(t, 0, pngBytes(t, 2, 2))
	imgs, err := NewLoader(nil).LoadAll(context.Background(), []string{srv.URL, srv.URL + "/b"}, Options{})
	require.NoError(t, err)
	assert.Len(t, imgs, 2)

	bad, _ := flakyServer(t, 10, nil)
	_, err = NewLoader(nil).LoadAll(context.Background(), []string{srv.URL, bad.URL}, Options{})
	assert.Error(t, err)
}

func TestCache(t *testing.T) {
	srv, hits := flakyServer(t, 0, pngBytes(t, 1, 1))
	bad, _ := flakyServer(t, 10, nil)
	c := NewCache(NewLoader(nil))
	defer c.Close()

	notified := make(chan string, 4)
	_, st := c.Get(srv.URL, Options{}, func() { notified <- "good" })
	assert.Equal(t, Loading, st)
	_, st = c.Get(bad.URL, Options{}, func() { notified <- "bad" })
	assert.Equal(t, Loading, st)

	got := map[string]bool{}
	for range 2 {
		select {
		case n := <-notified:
			got[n] = true
		case <-time.After(5 * time.Second):
			t.Fatal("no notification")
		}
	}
	assert.True(t, got["good"] && got["bad"])

	img, st := c.Get(srv.URL, Options{}, nil)
	assert.Equal(t, Loaded, st)
	assert.NotNil(t, img)
	_, st = c.Get(bad.URL, Options{}, nil)
	assert.Equal(t, Failed, st)
	assert.Error(t, c.Err(bad.URL))
	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "failed", Failed.String())
}
