// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package signal implements typed signal / slot connections between
// objects. A [Signal] holds an ordered list of connections, each
// identified by a receiver and a handler name, and [Signal.Emit]
// calls them synchronously in connection order.
//
// Signals are not safe for concurrent use: all emission and
// connection changes happen on the single event loop goroutine.
package signal

// Key identifies one connection: the receiving object and a name
// distinguishing multiple handlers of the same receiver.
// Receiver must be comparable, typically a pointer.
type Key struct {
	Receiver any
	Name     string
}

// Connection is one receiver handler on a [Signal].
type Connection[T any] struct {
	Key
	Func func(v T)
}

// Disconnector is implemented by every [Signal] regardless of its
// payload type, so that an owner can drop all of its connections
// without knowing the payload.
type Disconnector interface {
	DisconnectReceiver(recv any) int
}

// Signal is a list of handlers receiving values of type T.
// The zero value is ready to use.
type Signal[T any] struct {
	conns []Connection[T]
}

// Connect attaches fun as the handler named name on recv.
// It returns false and changes nothing if that receiver
// already has a handler with that name.
func (s *Signal[T]) Connect(recv any, name string, fun func(v T)) bool {
	key := Key{recv, name}
	if s.index(key) >= 0 {
		return false
	}
	s.conns = append(s.conns, Connection[T]{Key: key, Func: fun})
	return true
}

func (s *Signal[T]) index(key Key) int {
	for i, c := range s.conns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// IsConnected returns whether recv has a handler with the given name.
func (s *Signal[T]) IsConnected(recv any, name string) bool {
	return s.index(Key{recv, name}) >= 0
}

// Disconnect removes the handler named name on recv,
// returning false if there was no such connection.
func (s *Signal[T]) Disconnect(recv any, name string) bool {
	i := s.index(Key{recv, name})
	if i < 0 {
		return false
	}
	s.conns = append(s.conns[:i:i], s.conns[i+1:]...)
	return true
}

// DisconnectReceiver removes every handler of recv,
// returning the number removed.
func (s *Signal[T]) DisconnectReceiver(recv any) int {
	n := 0
	kept := make([]Connection[T], 0, len(s.conns))
	for _, c := range s.conns {
		if c.Receiver == recv {
			n++
			continue
		}
		kept = append(kept, c)
	}
	if n > 0 {
		s.conns = kept
	}
	return n
}

// Len returns the number of connections.
func (s *Signal[T]) Len() int {
	return len(s.conns)
}

// Emit calls every handler with v, in connection order.
// The handler set is fixed when Emit starts: handlers
// disconnected by an earlier handler are still called, and
// handlers connected during the emit are not.
func (s *Signal[T]) Emit(v T) {
	if len(s.conns) == 0 {
		return
	}
	conns := s.conns
	// disconnect rebuilds the slice, so this view stays intact
	for _, c := range conns {
		c.Func(v)
	}
}
