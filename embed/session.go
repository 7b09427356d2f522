// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package embed

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"cogentcore.org/figure/base/websocket"
	"cogentcore.org/figure/document"
	"cogentcore.org/figure/model"
)

// Session is a client connection to a document server. The session
// keeps its local copy of the document in sync with the server in
// both directions: server patches are applied locally with the
// session id as setter, and local changes made by any other setter
// are sent to the server.
type Session struct {

	// ID identifies the session, and is the setter of changes
	// applied from the server.
	ID string

	// Doc is the local copy of the document.
	Doc *document.Document

	client *websocket.Client
	reg    *model.Registry
	post   func(func())
	recv   receiver

	mu      sync.Mutex
	pending map[string]chan reply
	acked   chan struct{}
	ackOnce sync.Once
}

// PullSession connects to the document server at wsURL, pulls its
// document and returns the synchronized session. Patches from the
// server are applied through post, which must run the function on
// the goroutine that owns the document; nil applies them on the
// connection goroutine.
func PullSession(ctx context.Context, wsURL, id string, reg *model.Registry, post func(func())) (*Session, error) {
	if id == "" {
		id = model.NewID()
	}
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("embed: session url: %w", err)
	}
	q := u.Query()
	q.Set("session_id", id)
	u.RawQuery = q.Encode()
	c, err := websocket.Connect(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("embed: connect %s: %w", wsURL, err)
	}
	if post == nil {
		post = func(f func()) { f() }
	}
	s := &Session{ID: id, client: c, reg: reg, post: post, pending: map[string]chan reply{}, acked: make(chan struct{})}
	c.OnMessage(s.received)
	if err := s.pull(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) pull(ctx context.Context) error {
	select {
	case <-s.acked:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.client.Done():
		return fmt.Errorf("embed: connection closed before ACK")
	}
	_, err := s.request(ctx, MsgPullDocReq, nil)
	return err
}

// load builds the document from a PULL-DOC-REPLY. It runs on the
// connection goroutine, so that the document exists before any
// later patch is handled.
func (s *Session) load(m *Message) error {
	content := struct {
		Doc *document.DocJSON `json:"doc"`
	}{}
	if err := m.Decode(&content); err != nil {
		return fmt.Errorf("embed: %s: %w", MsgPullDocReply, err)
	}
	if content.Doc == nil {
		return fmt.Errorf("embed: %s without a document", MsgPullDocReply)
	}
	doc, err := document.FromJSON(s.reg, content.Doc)
	if err != nil {
		return err
	}
	doc.Events.Connect(s, "session", s.documentChanged)
	s.Doc = doc
	return nil
}

// request sends a message and waits for the reply to it.
func (s *Session) request(ctx context.Context, typ string, content any) (*Message, error) {
	m, err := newMessage(typ, content, "")
	if err != nil {
		return nil, err
	}
	ch := make(chan reply, 1)
	s.mu.Lock()
	s.pending[m.Header.MsgID] = ch
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, m.Header.MsgID)
		s.mu.Unlock()
	}()
	if err := sendMessage(s.client, m); err != nil {
		return nil, err
	}
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if r.msg.Header.MsgType == MsgError {
			return nil, remoteError(r.msg)
		}
		return r.msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.client.Done():
		return nil, fmt.Errorf("embed: connection closed awaiting reply to %s", typ)
	}
}

type reply struct {
	msg *Message
	err error
}

func remoteError(m *Message) error {
	ec := errorContent{}
	m.Decode(&ec)
	return fmt.Errorf("%w: %s", ErrRemote, ec.Text)
}

func (s *Session) received(typ websocket.MessageTypes, frame []byte) {
	m, err := s.recv.consume(typ, frame)
	if err != nil {
		slog.Warn("embed: session dropped a malformed message", "session", s.ID, "err", err)
		return
	}
	if m == nil {
		return
	}
	if m.Header.ReqID != "" {
		s.mu.Lock()
		ch := s.pending[m.Header.ReqID]
		s.mu.Unlock()
		if ch != nil {
			var err error
			if m.Header.MsgType == MsgPullDocReply {
				err = s.load(m)
			}
			ch <- reply{msg: m, err: err}
			return
		}
	}
	switch m.Header.MsgType {
	case MsgAck:
		s.ackOnce.Do(func() { close(s.acked) })
	case MsgPatchDoc:
		p := &document.Patch{}
		if err := m.Decode(p); err != nil {
			slog.Warn("embed: bad patch from server", "session", s.ID, "err", err)
			return
		}
		if s.Doc == nil {
			return
		}
		s.post(func() {
			if err := s.Doc.ApplyPatch(s.reg, p, s.ID); err != nil {
				slog.Warn("embed: cannot apply patch from server", "session", s.ID, "err", err)
			}
		})
	case MsgError:
		slog.Warn("embed: server error", "session", s.ID, "err", remoteError(m))
	case MsgOK:
	default:
		slog.Warn("embed: unexpected message", "session", s.ID, "msg", m.String())
	}
}

// documentChanged sends local changes to the server.
func (s *Session) documentChanged(ev document.Event) {
	if ev.SetterID() == s.ID {
		return
	}
	m, err := newMessage(MsgPatchDoc, s.Doc.CreatePatch(ev), "")
	if err == nil {
		err = sendMessage(s.client, m)
	}
	if err != nil {
		slog.Warn("embed: cannot send patch", "session", s.ID, "event", ev.Kind(), "err", err)
	}
}

// Done returns a channel that is closed when the connection closes.
func (s *Session) Done() <-chan struct{} { return s.client.Done() }

// Close stops following the document and closes the connection.
func (s *Session) Close() error {
	if s.Doc != nil {
		s.Doc.Events.DisconnectReceiver(s)
	}
	return s.client.Close()
}
