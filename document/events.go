// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import "cogentcore.org/figure/model"

// Event is a structural or value change of a document.
type Event interface {
	// Kind returns the wire name of the event kind.
	Kind() string

	// SetterID returns the id of whoever made the change, or "".
	SetterID() string
}

// Setter holds the setter id of an event.
type Setter struct {
	ID string
}

// SetterID returns the setter id.
func (s Setter) SetterID() string { return s.ID }

// RootAdded is emitted after a root is added.
type RootAdded struct {
	Setter
	Model model.Model
}

// RootRemoved is emitted after a root is removed.
type RootRemoved struct {
	Setter
	Model model.Model
}

// TitleChanged is emitted after the title changes.
type TitleChanged struct {
	Setter
	Title string
}

// ModelChanged is emitted after a serializable property of
// a model in the document changes.
type ModelChanged struct {
	Setter
	Model    model.Model
	Attr     string
	Old, New any
}

// ColumnsStreamed is emitted after rows are streamed to a column source.
type ColumnsStreamed struct {
	Setter
	Model    model.Model
	Data     map[string][]any
	Rollover int
}

// ColumnsPatched is emitted after values of a column source are patched.
type ColumnsPatched struct {
	Setter
	Model   model.Model
	Patches map[string][]model.ColumnPatch
}

func (RootAdded) Kind() string       { return "RootAdded" }
func (RootRemoved) Kind() string     { return "RootRemoved" }
func (TitleChanged) Kind() string    { return "TitleChanged" }
func (ModelChanged) Kind() string    { return "ModelChanged" }
func (ColumnsStreamed) Kind() string { return "ColumnsStreamed" }
func (ColumnsPatched) Kind() string  { return "ColumnsPatched" }
