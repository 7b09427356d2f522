// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"cogentcore.org/figure/document"
	"cogentcore.org/figure/embed"
	"cogentcore.org/figure/frame"
	"cogentcore.org/figure/resource"
)

func (a *app) sessionCmd() *cobra.Command {
	var id, output string
	cmd := &cobra.Command{
		Use:   "session [URL]",
		Short: "Follow a live document and render it after every change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := a.cfg.Session.URL
			if len(args) == 1 {
				url = args[0]
			}
			if id == "" {
				id = a.cfg.Session.ID
			}
			if output != "" {
				a.cfg.Output = output
			}
			return a.follow(cmd.Context(), url, id)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "session id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file")
	return cmd
}

// follow pulls the document of a session and writes PNG files once
// it is rendered and again after every change from the server,
// until the session or ctx ends.
func (a *app) follow(ctx context.Context, url, id string) error {
	loop := frame.NewLoop(a.cfg.Interval())
	s, err := embed.PullSession(ctx, url, id, a.reg, loop.Post)
	if err != nil {
		return err
	}
	defer s.Close()
	slog.Info("session started", "url", url, "session", s.ID, "roots", len(s.Doc.Roots()))

	cache := resource.NewCache(resource.NewLoader(loop.Post))
	defer cache.Close()
	eo := a.cfg.EmbedOptions(cache)
	eo.Scheduler = &loop.Scheduler
	host := &pngHost{}
	st, err := embed.AddDocumentStandalone(s.Doc, host, eo)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := runUntilIdle(ctx, loop, s.Doc, time.Duration(a.cfg.Images.Timeout)*time.Millisecond); err != nil {
		slog.Warn("first render", "err", err)
	}
	save := func() {
		files, err := host.save(a.cfg.Output)
		if err != nil {
			slog.Error("cannot save", "err", err)
			return
		}
		slog.Info("wrote", "files", files)
	}
	save()

	pending := false
	s.Doc.Events.Connect(host, "session", func(ev document.Event) {
		if ev.SetterID() != s.ID || pending {
			return
		}
		pending = true
		go loop.Post(func() {
			pending = false
			st.Render()
			save()
		})
	})
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	loop.Run(ctx)
	return nil
}
