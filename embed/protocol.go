// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package embed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"cogentcore.org/figure/base/iox/jsonx"
	"cogentcore.org/figure/base/websocket"
)

// Message types of the session protocol.
const (
	MsgAck           = "ACK"
	MsgPullDocReq    = "PULL-DOC-REQ"
	MsgPullDocReply  = "PULL-DOC-REPLY"
	MsgPatchDoc      = "PATCH-DOC"
	MsgOK            = "OK"
	MsgError         = "ERROR"
	MsgServerInfoReq = "SERVER-INFO-REQ"
	MsgServerInfoRep = "SERVER-INFO-REPLY"
)

// Header is the first fragment of a protocol message.
type Header struct {
	MsgID      string `json:"msgid"`
	MsgType    string `json:"msgtype"`
	ReqID      string `json:"reqid,omitempty"`
	NumBuffers int    `json:"num_buffers,omitempty"`
}

// Message is a protocol message. On the wire it is three text
// frames holding the header, metadata and content as JSON, followed
// by NumBuffers binary frames.
type Message struct {
	Header   Header
	Metadata map[string]any

	// Content is the raw JSON content.
	Content json.RawMessage

	Buffers [][]byte
}

// Decode decodes the content of the message into v.
func (m *Message) Decode(v any) error {
	if len(m.Content) == 0 {
		return fmt.Errorf("embed: %s message has no content", m.Header.MsgType)
	}
	return jsonx.ReadBytes(v, m.Content)
}

func (m *Message) String() string {
	return fmt.Sprintf("%s(id=%s req=%s)", m.Header.MsgType, m.Header.MsgID, m.Header.ReqID)
}

// errorContent is the content of an ERROR message.
type errorContent struct {
	Text      string `json:"text"`
	Traceback string `json:"traceback,omitempty"`
}

// ErrRemote is wrapped by errors reported by the other side of a session.
var ErrRemote = errors.New("embed: remote error")

var msgIDs atomic.Int64

// newMessage returns a message of type typ with content encoded as
// JSON, replying to reqid if it is not empty.
func newMessage(typ string, content any, reqid string) (*Message, error) {
	if content == nil {
		content = map[string]any{}
	}
	b, err := jsonx.WriteBytes(content)
	if err != nil {
		return nil, fmt.Errorf("embed: encode %s: %w", typ, err)
	}
	id := strconv.FormatInt(msgIDs.Add(1), 10)
	return &Message{Header: Header{MsgID: id, MsgType: typ, ReqID: reqid}, Metadata: map[string]any{}, Content: b}, nil
}

// sendMessage writes m to c as one uninterrupted sequence of frames.
func sendMessage(c *websocket.Client, m *Message) error {
	hdr, err := jsonx.WriteBytes(m.Header)
	if err != nil {
		return err
	}
	meta, err := jsonx.WriteBytes(m.Metadata)
	if err != nil {
		return err
	}
	if len(m.Buffers) > 0 {
		return errors.New("embed: sending binary buffers is not supported")
	}
	return c.SendAll(websocket.TextMessage, hdr, meta, m.Content)
}

// receiver assembles messages from the frames of a connection.
type receiver struct {
	partial *Message
	parts   int
}

// consume adds a frame, returning the message once it is complete.
// A malformed frame discards the partial message.
func (r *receiver) consume(typ websocket.MessageTypes, frame []byte) (*Message, error) {
	if r.partial == nil {
		if typ != websocket.TextMessage {
			return nil, errors.New("embed: expected a text header frame")
		}
		h := Header{}
		if err := jsonx.ReadBytes(&h, frame); err != nil {
			return nil, fmt.Errorf("embed: bad header: %w", err)
		}
		if h.MsgType == "" || h.MsgID == "" {
			return nil, errors.New("embed: header without msgid or msgtype")
		}
		r.partial = &Message{Header: h}
		r.parts = 1
		return nil, nil
	}
	m := r.partial
	switch {
	case r.parts == 1:
		if err := r.text(typ); err != nil {
			return nil, err
		}
		m.Metadata = map[string]any{}
		if err := jsonx.ReadBytes(&m.Metadata, frame); err != nil {
			r.reset()
			return nil, fmt.Errorf("embed: bad metadata: %w", err)
		}
	case r.parts == 2:
		if err := r.text(typ); err != nil {
			return nil, err
		}
		m.Content = json.RawMessage(frame)
	default:
		if typ != websocket.BinaryMessage {
			r.reset()
			return nil, errors.New("embed: expected a binary buffer frame")
		}
		m.Buffers = append(m.Buffers, frame)
	}
	r.parts++
	if r.parts == 3+m.Header.NumBuffers {
		r.reset()
		return m, nil
	}
	return nil, nil
}

func (r *receiver) text(typ websocket.MessageTypes) error {
	if typ != websocket.TextMessage {
		r.reset()
		return errors.New("embed: expected a text frame")
	}
	return nil
}

func (r *receiver) reset() {
	r.partial = nil
	r.parts = 0
}
