// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"cogentcore.org/figure/base/iox/imagex"
	"cogentcore.org/figure/config"
	"cogentcore.org/figure/document"
	"cogentcore.org/figure/embed"
	"cogentcore.org/figure/frame"
	"cogentcore.org/figure/render"
	"cogentcore.org/figure/resource"
)

func (a *app) renderCmd() *cobra.Command {
	var watch bool
	var width, height int
	var output, theme string
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a document to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("output") {
				a.cfg.Output = output
			}
			if f.Changed("width") {
				a.cfg.Width = width
			}
			if f.Changed("height") {
				a.cfg.Height = height
			}
			if f.Changed("theme") {
				a.cfg.Theme = theme
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if watch {
				return a.watch(cmd.Context(), args[0])
			}
			return a.renderFile(cmd.Context(), args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output image file, PNG by default; several roots are written to numbered files")
	f.IntVar(&width, "width", 0, "maximum canvas width")
	f.IntVar(&height, "height", 0, "maximum canvas height")
	f.StringVar(&theme, "theme", "", "YAML theme file")
	f.BoolVarP(&watch, "watch", "w", false, "render again whenever the file changes")
	return cmd
}

// renderFile renders the document in fn to the configured output.
func (a *app) renderFile(ctx context.Context, fn string) error {
	opts, err := a.documentOptions()
	if err != nil {
		return err
	}
	doc, err := document.Open(a.reg, fn, opts...)
	if err != nil {
		return err
	}
	loop := frame.NewLoop(a.cfg.Interval())
	cache := resource.NewCache(resource.NewLoader(loop.Post))
	defer cache.Close()
	eo := a.cfg.EmbedOptions(cache)
	eo.Scheduler = &loop.Scheduler
	host := &pngHost{}
	st, err := embed.AddDocumentStandalone(doc, host, eo)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := runUntilIdle(ctx, loop, doc, time.Duration(a.cfg.Images.Timeout)*time.Millisecond); err != nil {
		return err
	}
	files, err := host.save(a.cfg.Output)
	for _, f := range files {
		slog.Info("wrote", "file", f)
	}
	return err
}

// runUntilIdle runs loop until doc is idle. Documents still loading
// images after timeout are rendered as they are.
func runUntilIdle(ctx context.Context, loop *frame.Loop, doc *document.Document, timeout time.Duration) error {
	if len(doc.Roots()) == 0 {
		return errors.New("the document has no roots")
	}
	if doc.IsIdle() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	doc.Idle.Connect(loop, "render", func(*document.Document) { cancel() })
	defer doc.Idle.Disconnect(loop, "render")
	err := loop.Run(ctx)
	if doc.IsIdle() {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("rendering before all resources loaded", "timeout", timeout)
		loop.Drain()
		return nil
	}
	return err
}

// watch renders fn now and whenever it is written, until ctx is done.
func (a *app) watch(ctx context.Context, fn string) error {
	path, err := filepath.Abs(fn)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	rerender := func() {
		if err := a.renderFile(ctx, path); err != nil {
			slog.Error("render failed", "file", fn, "err", err)
		}
	}
	rerender()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == path && ev.Has(fsnotify.Write|fsnotify.Create) {
				slog.Debug("file changed", "file", fn, "op", ev.Op.String())
				rerender()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		}
	}
}

// pngHost keeps the mounted roots and saves their canvases, as PNG
// or any other format named by the file extension.
type pngHost struct {
	roots []*embed.RootView
}

func (h *pngHost) Mount(rv *embed.RootView) { h.roots = append(h.roots, rv) }

func (h *pngHost) Unmount(rv *embed.RootView) {
	h.roots = slices.DeleteFunc(h.roots, func(r *embed.RootView) bool { return r == rv })
}

// save writes each root canvas: one root to output, several
// to output with the root number before the extension.
func (h *pngHost) save(output string) ([]string, error) {
	var canvases []*render.GGCanvas
	for _, rv := range h.roots {
		if c, ok := rv.Canvas.(*render.GGCanvas); ok {
			canvases = append(canvases, c)
		}
	}
	if len(canvases) == 0 {
		return nil, errors.New("the document has nothing to draw")
	}
	var files []string
	for i, c := range canvases {
		fn := output
		if len(canvases) > 1 {
			fn = numbered(output, i+1)
		}
		if err := imagex.Save(c.Result(), fn); err != nil {
			return files, fmt.Errorf("save %s: %w", fn, err)
		}
		files = append(files, fn)
	}
	return files, nil
}

func numbered(fn string, n int) string {
	ext := filepath.Ext(fn)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(fn, ext), n, ext)
}

var _ embed.Host = (*pngHost)(nil)

// configHelp is shown in the help of commands using the configuration.
var configHelp = "Settings are read from " + config.FileName + " in the user configuration directory and from --config."
