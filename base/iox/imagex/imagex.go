// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex reads and writes raster images in the formats
// supported by the standard library and golang.org/x/image,
// sniffing the format from content before decoding.
package imagex

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are the supported image encoding / decoding formats.
type Formats int32

// The supported image formats.
const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formatNames = [...]string{"none", "png", "jpeg", "gif", "tiff", "bmp", "webp"}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatNames[f]
}

// ErrNotImage is returned when content is not a recognized image.
var ErrNotImage = errors.New("imagex: content is not a recognized image")

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not.
func ExtToFormat(ext string) (Formats, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	case "":
		return None, errors.New("imagex.ExtToFormat: ext is empty")
	}
	return None, fmt.Errorf("imagex.ExtToFormat: extension %q not recognized", ext)
}

// Sniff returns the format of the given encoded image bytes,
// based on their magic numbers, or [ErrNotImage].
func Sniff(buf []byte) (Formats, error) {
	if !filetype.IsImage(buf) {
		return None, ErrNotImage
	}
	kind, err := filetype.Match(buf)
	if err != nil {
		return None, err
	}
	f, err := ExtToFormat(kind.Extension)
	if err != nil {
		return None, fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
	}
	return f, nil
}

// Decode sniffs and decodes the given encoded image bytes.
func Decode(buf []byte) (image.Image, Formats, error) {
	f, err := Sniff(buf)
	if err != nil {
		return nil, None, err
	}
	im, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, f, fmt.Errorf("imagex.Decode %s: %w", f, err)
	}
	return im, f, nil
}

// Open opens and decodes an image from the given filename.
func Open(filename string) (image.Image, Formats, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, None, err
	}
	return Decode(buf)
}

// Save saves the image to the given filename,
// with the format inferred from the filename extension.
func Save(im image.Image, filename string) error {
	f, err := ExtToFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	if err := Write(im, bw, f); err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the image to the given writer using the given format.
// WebP has no encoder and returns an error.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, im, nil)
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	default:
		return fmt.Errorf("imagex.Write: format %v not valid", f)
	}
}
