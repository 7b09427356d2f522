// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2(t *testing.T) {
	v := Vec2(3, 4)
	assert.Equal(t, float32(4), v.Dim(Y))
	v.SetDim(X, 1)
	assert.Equal(t, Vec2(1, 4), v)
	assert.Equal(t, Vec2(2, 8), v.MulScalar(2))
	assert.Equal(t, Vec2(1, 2), Vec2(1, 5).Min(Vec2(3, 2)))
	assert.Equal(t, Y, OtherDim(X))
	assert.Equal(t, "(1, 4)", v.String())
}

func TestBox2(t *testing.T) {
	b := B2FromPosSize(Vec2(10, 20), Vec2(100, 50))
	assert.Equal(t, float32(100), b.Width())
	assert.Equal(t, float32(50), b.Height())
	assert.Equal(t, Vec2(60, 45), b.Center())
	assert.True(t, b.ContainsPoint(Vec2(10, 20)))
	assert.False(t, b.ContainsPoint(Vec2(9, 20)))
	assert.True(t, b.ContainsBox(b.Inset(1, 1, 1, 1)))
	assert.True(t, b.Inset(80, 0, 80, 0).IsEmpty())
	assert.Equal(t, B2(50, 20, 110, 70), b.Intersect(B2(50, 0, 200, 200)))
	assert.Equal(t, image.Rect(10, 20, 110, 70), b.ToRect())
	assert.Equal(t, float32(2), Clamp(5, 0, 2))
}
