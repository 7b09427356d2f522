// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "cogentcore.org/figure/signal"

// ColumnPatch replaces the value at one row index of a column.
type ColumnPatch struct {
	Index int
	Value any
}

// ColumnsStreamed describes rows appended to a column source.
type ColumnsStreamed struct {
	Source Model

	// Data holds the appended rows for each column.
	Data map[string][]any

	// Rollover is the maximum number of rows kept, or 0 for no limit.
	Rollover int

	Setter string
}

// ColumnsPatched describes in-place row replacements in a column source.
type ColumnsPatched struct {
	Source  Model
	Patches map[string][]ColumnPatch
	Setter  string
}

// ColumnSource is implemented by models holding columnar data that
// support incremental updates, which documents forward as events
// instead of whole-value changes.
type ColumnSource interface {
	Model

	// StreamFrom appends rows, keeping at most rollover rows if it is positive.
	StreamFrom(data map[string][]any, rollover int, setter string) error

	// PatchFrom replaces individual values.
	PatchFrom(patches map[string][]ColumnPatch, setter string) error

	// Streamed is emitted after rows are appended.
	Streamed() *signal.Signal[ColumnsStreamed]

	// Patched is emitted after values are replaced.
	Patched() *signal.Signal[ColumnsPatched]
}
