// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resource loads images for image glyphs, retrying failed
// loads a bounded number of times, and delivers the results as
// callbacks on the event loop.
package resource

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cogentcore.org/figure/base/iox/imagex"
)

// ErrNotImage is returned for data that is not a supported image.
var ErrNotImage = errors.New("resource: not a supported image")

// MaxSize is the largest resource read, in bytes.
const MaxSize = 64 << 20

// Options configure the loading of one resource.
type Options struct {

	// Attempts is the number of retries after a failed load.
	Attempts int

	// Delay is the time between a failure and the next retry.
	Delay time.Duration
}

// Loader loads images from http(s) URLs, data URLs and files.
type Loader struct {

	// Client is used for http(s) URLs; nil means [http.DefaultClient].
	Client *http.Client

	// Post, if set, is used to deliver the callbacks of [Loader.Load],
	// typically [frame.Loop.Post] so that they run on the event loop.
	// Otherwise they are called on the loading goroutine.
	Post func(fun func())
}

// NewLoader returns a loader delivering callbacks through post.
func NewLoader(post func(fun func())) *Loader {
	return &Loader{Post: post}
}

func (l *Loader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return http.DefaultClient
}

// Read returns the raw bytes of src in a single attempt.
func (l *Loader) Read(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURL(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client().Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("resource: %s: %s", src, resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, MaxSize))
	case strings.HasPrefix(src, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(u.Path)
	}
	return os.ReadFile(src)
}

func decodeDataURL(src string) ([]byte, error) {
	meta, data, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("resource: malformed data URL")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(data)
	}
	s, err := url.PathUnescape(data)
	return []byte(s), err
}

// Decode decodes an image, checking its type from its content first.
func Decode(data []byte) (image.Image, error) {
	img, _, err := imagex.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotImage, err)
	}
	return img, nil
}

// Fetch loads the image at src in a single attempt.
func (l *Loader) Fetch(ctx context.Context, src string) (image.Image, error) {
	data, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// LoadSync loads the image at src, retrying up to opts.Attempts
// times opts.Delay apart, and returns the last error if every
// attempt failed. It stops early if ctx is done.
func (l *Loader) LoadSync(ctx context.Context, src string, opts Options) (image.Image, error) {
	var err error
	for attempt := 0; ; attempt++ {
		var img image.Image
		img, err = l.Fetch(ctx, src)
		if err == nil {
			return img, nil
		}
		if attempt >= opts.Attempts || ctx.Err() != nil {
			break
		}
		slog.Debug("resource: retrying", "src", abbrev(src), "attempt", attempt+1, "err", err)
		t := time.NewTimer(opts.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, fmt.Errorf("resource: loading %s: %w", abbrev(src), err)
}

// Load loads the image at src in the background, then calls onLoad
// with it, or onFail once all retries have failed. Either callback
// may be nil. It returns immediately.
func (l *Loader) Load(ctx context.Context, src string, opts Options, onLoad func(img image.Image), onFail func(err error)) {
	go func() {
		img, err := l.LoadSync(ctx, src, opts)
		l.deliver(func() {
			if err != nil {
				if onFail != nil {
					onFail(err)
				}
				return
			}
			if onLoad != nil {
				onLoad(img)
			}
		})
	}()
}

func (l *Loader) deliver(fun func()) {
	if l.Post != nil {
		l.Post(fun)
		return
	}
	fun()
}

// LoadAll loads all the images concurrently, returning them in
// order, or the first error.
func (l *Loader) LoadAll(ctx context.Context, srcs []string, opts Options) ([]image.Image, error) {
	imgs := make([]image.Image, len(srcs))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		g.Go(func() error {
			img, err := l.LoadSync(ctx, src, opts)
			imgs[i] = img
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return imgs, nil
}

// abbrev shortens data URLs for messages.
func abbrev(src string) string {
	if len(src) > 64 {
		return src[:61] + "..."
	}
	return src
}
