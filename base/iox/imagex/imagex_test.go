// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	im := image.NewRGBA(image.Rect(0, 0, 4, 3))
	im.Set(1, 1, color.RGBA{255, 0, 0, 255})
	return im
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".JPG")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)
	_, err = ExtToFormat("svg")
	assert.Error(t, err)
	_, err = ExtToFormat("")
	assert.Error(t, err)
	assert.Equal(t, "tiff", TIFF.String())
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Formats{PNG, GIF, BMP, TIFF} {
		var buf bytes.Buffer
		require.NoError(t, Write(testImage(), &buf, f))
		im, got, err := Decode(buf.Bytes())
		require.NoError(t, err, f.String())
		assert.Equal(t, f, got)
		assert.Equal(t, image.Rect(0, 0, 4, 3), im.Bounds())
	}
}

func TestDecodeNotImage(t *testing.T) {
	_, _, err := Decode([]byte("not an image at all"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, Save(testImage(), fn))
	im, f, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, 4, im.Bounds().Dx())
}
