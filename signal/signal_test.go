// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package signal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	name string
}

func TestSignalConnect(t *testing.T) {
	var sig Signal[int]
	a := &node{"a"}
	b := &node{"b"}

	var res []string
	record := func(n *node) func(int) {
		return func(v int) { res = append(res, fmt.Sprintf("%s:%d", n.name, v)) }
	}
	assert.True(t, sig.Connect(a, "x", record(a)))
	assert.True(t, sig.Connect(b, "x", record(b)))
	assert.False(t, sig.Connect(a, "x", record(a)))
	assert.True(t, sig.Connect(a, "y", record(a)))
	assert.Equal(t, 3, sig.Len())

	sig.Emit(1)
	assert.Equal(t, []string{"a:1", "b:1", "a:1"}, res)

	res = nil
	assert.True(t, sig.Disconnect(a, "x"))
	assert.False(t, sig.Disconnect(a, "x"))
	sig.Emit(2)
	assert.Equal(t, []string{"b:2", "a:2"}, res)

	assert.Equal(t, 1, sig.DisconnectReceiver(a))
	assert.False(t, sig.IsConnected(a, "y"))
	assert.True(t, sig.IsConnected(b, "x"))
}

func TestDisconnectDuringEmit(t *testing.T) {
	var sig Signal[string]
	a, b, c := &node{"a"}, &node{"b"}, &node{"c"}
	var res []string
	sig.Connect(a, "", func(v string) {
		res = append(res, "a")
		sig.Disconnect(b, "")
		sig.Connect(c, "", func(v string) { res = append(res, "c") })
	})
	sig.Connect(b, "", func(v string) { res = append(res, "b") })

	sig.Emit("first")
	assert.Equal(t, []string{"a", "b"}, res)

	res = nil
	sig.Emit("second")
	assert.Equal(t, []string{"a", "c"}, res)
}

func TestDisconnector(t *testing.T) {
	var s1 Signal[int]
	var s2 Signal[string]
	r := &node{"r"}
	s1.Connect(r, "", func(int) {})
	s2.Connect(r, "", func(string) {})
	s2.Connect(r, "other", func(string) {})
	total := 0
	for _, d := range []Disconnector{&s1, &s2} {
		total += d.DisconnectReceiver(r)
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 0, s1.Len()+s2.Len())
}
