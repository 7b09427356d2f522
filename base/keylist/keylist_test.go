// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	var kl List[string, int]
	kl.Set("a", 1)
	kl.Set("b", 2)
	assert.NoError(t, kl.Add("c", 3))
	assert.Error(t, kl.Add("a", 9))
	kl.Set("a", 10)
	assert.Equal(t, []string{"a", "b", "c"}, kl.Keys)
	assert.Equal(t, []int{10, 2, 3}, kl.Values)
	assert.Equal(t, 2, kl.At("b"))
	assert.Equal(t, 1, kl.IndexByKey("b"))
	assert.Equal(t, -1, kl.IndexByKey("z"))

	assert.True(t, kl.DeleteByKey("a"))
	assert.False(t, kl.DeleteByKey("a"))
	assert.Equal(t, 0, kl.IndexByKey("b"))
	assert.Equal(t, 2, kl.Len())

	cp := kl.Clone()
	cp.Set("d", 4)
	assert.Equal(t, 2, kl.Len())
	assert.Equal(t, 3, cp.Len())

	var keys []string
	for k := range cp.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"b", "c", "d"}, keys)
	assert.Equal(t, "{b: 2, c: 3, d: 4, }", cp.String())
}
