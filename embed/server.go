// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package embed

import (
	"log/slog"
	"net/http"
	"sync"

	"cogentcore.org/figure/base/websocket"
	"cogentcore.org/figure/document"
	"cogentcore.org/figure/model"
)

// Server serves one document to websocket sessions. Every session
// can pull the document, and changes made by one session, or through
// [Server.Update], are sent to every other session.
type Server struct {

	// Registry creates the models of client patches.
	Registry *model.Registry

	// mu guards the document.
	mu  sync.Mutex
	doc *document.Document

	connsMu sync.Mutex
	conns   map[*serverConn]bool
}

type serverConn struct {
	id     string
	client *websocket.Client
	recv   receiver

	// pulled is set once the document has been sent, under Server.mu.
	pulled bool
}

// NewServer returns a server for doc.
func NewServer(doc *document.Document, reg *model.Registry) *Server {
	s := &Server{Registry: reg, doc: doc, conns: map[*serverConn]bool{}}
	doc.Events.Connect(s, "server", s.broadcast)
	return s
}

// Update calls f with the document locked. All changes to the
// document while it is served must go through Update.
func (s *Server) Update(f func(doc *document.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.doc)
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	return len(s.conns)
}

// ServeHTTP accepts a session connection. The session id is taken
// from the session_id query parameter.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		id = model.NewID()
	}
	c, err := websocket.Upgrade(w, r)
	if err != nil {
		slog.Warn("embed: session upgrade failed", "err", err)
		return
	}
	sc := &serverConn{id: id, client: c}
	s.connsMu.Lock()
	s.conns[sc] = true
	s.connsMu.Unlock()
	c.OnClose(func() {
		s.connsMu.Lock()
		delete(s.conns, sc)
		s.connsMu.Unlock()
	})
	c.OnMessage(func(typ websocket.MessageTypes, frame []byte) { s.received(sc, typ, frame) })
	s.send(sc, MsgAck, nil, "")
}

func (s *Server) send(sc *serverConn, typ string, content any, reqid string) {
	m, err := newMessage(typ, content, reqid)
	if err == nil {
		err = sendMessage(sc.client, m)
	}
	if err != nil {
		slog.Warn("embed: cannot send to session", "session", sc.id, "msgtype", typ, "err", err)
	}
}

func (s *Server) sendError(sc *serverConn, reqid string, err error) {
	s.send(sc, MsgError, errorContent{Text: err.Error()}, reqid)
}

func (s *Server) received(sc *serverConn, typ websocket.MessageTypes, frame []byte) {
	m, err := sc.recv.consume(typ, frame)
	if err != nil {
		slog.Warn("embed: server dropped a malformed message", "session", sc.id, "err", err)
		return
	}
	if m == nil {
		return
	}
	id := m.Header.MsgID
	switch m.Header.MsgType {
	case MsgPullDocReq:
		s.mu.Lock()
		s.send(sc, MsgPullDocReply, map[string]any{"doc": s.doc.ToJSON()}, id)
		sc.pulled = true
		s.mu.Unlock()
	case MsgPatchDoc:
		p := &document.Patch{}
		if err := m.Decode(p); err != nil {
			s.sendError(sc, id, err)
			return
		}
		s.mu.Lock()
		err := s.doc.ApplyPatch(s.Registry, p, sc.id)
		s.mu.Unlock()
		if err != nil {
			s.sendError(sc, id, err)
			return
		}
		s.send(sc, MsgOK, nil, id)
	case MsgServerInfoReq:
		s.send(sc, MsgServerInfoRep, map[string]any{"version_info": map[string]any{"document": document.Version}}, id)
	case MsgAck, MsgOK:
	default:
		s.send(sc, MsgError, errorContent{Text: "unknown message type " + m.Header.MsgType}, id)
	}
}

// broadcast sends a document change to every session that has pulled
// the document, except the one that made it. It runs with mu held.
func (s *Server) broadcast(ev document.Event) {
	s.connsMu.Lock()
	var targets []*serverConn
	for sc := range s.conns {
		if sc.pulled && sc.id != ev.SetterID() {
			targets = append(targets, sc)
		}
	}
	s.connsMu.Unlock()
	if len(targets) == 0 {
		return
	}
	p := s.doc.CreatePatch(ev)
	for _, sc := range targets {
		s.send(sc, MsgPatchDoc, p, "")
	}
}

// Close disconnects every session and stops following the document.
func (s *Server) Close() {
	s.doc.Events.DisconnectReceiver(s)
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for sc := range s.conns {
		sc.client.Close()
	}
}
