// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package embed

import (
	"context"
	"errors"
	"fmt"

	"cogentcore.org/figure/base/iox/jsonx"
	"cogentcore.org/figure/document"
	"cogentcore.org/figure/model"
)

// RenderItem says what to render into one host element: a whole
// document or one model of it, from inline documents by DocID or
// from a server session by SessionID.
type RenderItem struct {
	ElementID   string `json:"elementid"`
	DocID       string `json:"docid,omitempty"`
	ModelID     string `json:"modelid,omitempty"`
	SessionID   string `json:"sessionid,omitempty"`
	UseForTitle bool   `json:"use_for_title,omitempty"`
}

// Embedded is the result of rendering one [RenderItem]. Exactly one
// of Standalone and Model is set.
type Embedded struct {
	Item RenderItem
	Doc  *document.Document

	// Standalone renders the whole document.
	Standalone *Standalone

	// Model renders the model given by Item.ModelID.
	Model *RootView

	// Session is the server session of a SessionID item.
	Session *Session
}

// ItemOptions configure [EmbedItems].
type ItemOptions struct {
	Options

	// WebsocketURL is the document server of session items.
	WebsocketURL string

	// Post runs functions on the goroutine owning session documents.
	Post func(func())

	// Theme is applied to models of inline documents.
	Theme document.Themer
}

// ParseItems decodes a JSON list of render items.
func ParseItems(data []byte) ([]RenderItem, error) {
	var items []RenderItem
	if err := jsonx.ReadBytes(&items, data); err != nil {
		return nil, fmt.Errorf("embed: render items: %w", err)
	}
	return items, nil
}

// EmbedItems renders each item into the host returned for its
// element id. docsJSON maps document ids to serialized documents;
// items with the same DocID share one document. An item that fails
// does not stop the others, and all errors are returned joined.
func EmbedItems(ctx context.Context, docsJSON []byte, items []RenderItem, hosts func(elementID string) (Host, error), reg *model.Registry, opts ItemOptions) ([]*Embedded, error) {
	docsJS := map[string]*document.DocJSON{}
	if len(docsJSON) > 0 {
		if err := jsonx.ReadBytes(&docsJS, docsJSON); err != nil {
			return nil, fmt.Errorf("embed: documents: %w", err)
		}
	}
	var dopts []document.Option
	if opts.Theme != nil {
		dopts = append(dopts, document.WithTheme(opts.Theme))
	}
	docs := map[string]*document.Document{}
	var out []*Embedded
	var errs []error
	for _, item := range items {
		em, err := embedItem(ctx, item, docsJS, docs, dopts, hosts, reg, &opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("embed: item %q: %w", item.ElementID, err))
			continue
		}
		out = append(out, em)
	}
	return out, errors.Join(errs...)
}

func embedItem(ctx context.Context, item RenderItem, docsJS map[string]*document.DocJSON, docs map[string]*document.Document, dopts []document.Option, hosts func(string) (Host, error), reg *model.Registry, opts *ItemOptions) (*Embedded, error) {
	host, err := hosts(item.ElementID)
	if err != nil {
		return nil, err
	}
	em := &Embedded{Item: item}
	switch {
	case item.SessionID != "":
		if opts.WebsocketURL == "" {
			return nil, errors.New("session item without a websocket url")
		}
		s, err := PullSession(ctx, opts.WebsocketURL, item.SessionID, reg, opts.Post)
		if err != nil {
			return nil, err
		}
		em.Session = s
		em.Doc = s.Doc
	case item.DocID != "":
		doc := docs[item.DocID]
		if doc == nil {
			dj, ok := docsJS[item.DocID]
			if !ok {
				return nil, fmt.Errorf("unknown document id %q", item.DocID)
			}
			doc, err = document.FromJSON(reg, dj, dopts...)
			if err != nil {
				return nil, err
			}
			docs[item.DocID] = doc
		}
		em.Doc = doc
	default:
		return nil, errors.New("item has neither a document id nor a session id")
	}
	o := opts.Options
	o.UseForTitle = item.UseForTitle
	if item.ModelID != "" {
		em.Model, err = AddModelStandalone(em.Doc, item.ModelID, host, o)
	} else {
		em.Standalone, err = AddDocumentStandalone(em.Doc, host, o)
	}
	if err != nil {
		if em.Session != nil {
			em.Session.Close()
		}
		return nil, err
	}
	return em, nil
}
