// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"errors"
	"fmt"
)

var (
	// ErrType is the error all [TypeError]s match with errors.Is.
	ErrType = errors.New("props: invalid value type")

	// ErrUnknownProperty is returned for names not in the schema.
	ErrUnknownProperty = errors.New("props: unknown property")

	// ErrReadOnly is returned when setting a computed property.
	ErrReadOnly = errors.New("props: computed property is read-only")
)

// TypeError reports a value that does not match a property type.
type TypeError struct {
	Property string
	Type     *Type
	Value    any
	Reason   string
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("props: invalid value %v (%T) for type %v", e.Value, e.Value, e.Type)
	if e.Property != "" {
		msg = fmt.Sprintf("props: property %q: invalid value %v (%T) for type %v", e.Property, e.Value, e.Value, e.Type)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TypeError) Unwrap() error { return ErrType }
