// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"red", color.RGBA{255, 0, 0, 255}},
		{"  SteelBlue ", color.RGBA{0x46, 0x82, 0xb4, 255}},
		{"#0f0", color.RGBA{0, 255, 0, 255}},
		{"#00ff0080", color.RGBA{0, 255, 0, 128}},
		{"#123456", color.RGBA{0x12, 0x34, 0x56, 255}},
		{"rgb(10, 20, 30)", color.RGBA{10, 20, 30, 255}},
		{"rgba(10 20 30 / 0.5)", color.RGBA{10, 20, 30, 128}},
		{"rgb(100%, 0%, 0%)", color.RGBA{255, 0, 0, 255}},
		{"transparent", color.RGBA{}},
	}
	for _, test := range tests {
		c, err := FromString(test.in)
		assert.NoError(t, err, test.in)
		assert.Equal(t, test.want, c, test.in)
	}
	for _, bad := range []string{"", "nocolor", "#12", "#gggggg", "rgb(1,2)"} {
		assert.False(t, IsColor(bad), bad)
	}
}

func TestFromAny(t *testing.T) {
	c, err := FromAny([]any{255.0, 0, 0, 0.5})
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 128}, c)
	c, err = FromAny(color.Gray{Y: 10})
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{10, 10, 10, 255}, c)
	_, err = FromAny(3)
	assert.Error(t, err)
}

func TestAsHex(t *testing.T) {
	assert.Equal(t, "#ff0000", AsHex(color.RGBA{255, 0, 0, 255}))
	assert.Equal(t, "#ff000080", AsHex(color.RGBA{255, 0, 0, 128}))
	assert.Equal(t, uint8(64), WithAlpha(color.RGBA{A: 128}, 0.5).A)
}
