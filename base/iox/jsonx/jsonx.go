// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonx reads and writes JSON files, decoding numbers
// as [json.Number] so that integer values survive intact.
package jsonx

import (
	"encoding/json"
	"io"

	"cogentcore.org/figure/base/iox"
)

// NewDecoder returns a new [iox.Decoder] that uses [json.Number].
func NewDecoder(r io.Reader) iox.Decoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return d
}

// NewEncoder returns a new [iox.Encoder] producing indented output.
func NewEncoder(w io.Writer) iox.Encoder {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e
}

// Open reads the given object from the given filename using JSON encoding.
func Open(v any, filename string) error { return iox.Open(v, filename, NewDecoder) }

// ReadBytes reads the given object from the given bytes using JSON encoding.
func ReadBytes(v any, data []byte) error { return iox.ReadBytes(v, data, NewDecoder) }

// Save writes the given object to the given filename using indented JSON.
func Save(v any, filename string) error { return iox.Save(v, filename, NewEncoder) }

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) { return iox.WriteBytes(v, NewEncoder) }
