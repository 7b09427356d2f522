// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package websocket provides WebSocket connections that deliver
// received messages to a callback from a read goroutine and allow
// sending from any goroutine.
package websocket

import (
	"context"
	"net/http"
	"sync"

	"cogentcore.org/figure/base/errors"
	"github.com/gorilla/websocket"
)

// MessageTypes are the types of WebSocket data messages.
type MessageTypes int

const (
	// TextMessage is a UTF-8 text message.
	TextMessage MessageTypes = websocket.TextMessage

	// BinaryMessage is a binary message.
	BinaryMessage MessageTypes = websocket.BinaryMessage
)

// Client represents a WebSocket connection, on either side.
// You can use [Connect] to dial a server, or [Upgrade] to accept
// a connection in an HTTP handler.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// done is a channel that is closed when the connection is closed.
	done chan struct{}

	// wmu serializes writes, of which gorilla allows one at a time.
	wmu sync.Mutex

	once sync.Once
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn, done: make(chan struct{})}
}

// Connect connects to a WebSocket server and returns a [Client].
func Connect(ctx context.Context, url string, header http.Header) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Upgrade upgrades an HTTP request to a WebSocket connection.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

// OnMessage sets a callback function to be called when a message is
// received. Messages are delivered in order from one goroutine.
// This function can only be called once.
func (c *Client) OnMessage(f func(typ MessageTypes, msg []byte)) {
	go func() {
		defer c.closeDone()
		for {
			typ, msg, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					errors.Log(err)
				}
				return
			}
			f(MessageTypes(typ), msg)
		}
	}()
}

func (c *Client) closeDone() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Send sends a message with the given type. It is safe to call
// from multiple goroutines.
func (c *Client) Send(typ MessageTypes, msg []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteMessage(int(typ), msg)
}

// SendAll sends messages in order with no other message in between.
func (c *Client) SendAll(typ MessageTypes, msgs ...[]byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	for _, m := range msgs {
		if err := c.conn.WriteMessage(int(typ), m); err != nil {
			return err
		}
	}
	return nil
}

// Close cleanly closes the WebSocket connection.
// It does not directly trigger [Client.OnClose], but once the connection
// is closed, [Client.OnMessage] will trigger it.
func (c *Client) Close() error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Done returns a channel that is closed when the connection is closed.
func (c *Client) Done() <-chan struct{} { return c.done }

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once.
func (c *Client) OnClose(f func()) {
	go func() {
		<-c.done
		f()
	}()
}
