// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"
	"reflect"

	"cogentcore.org/figure/props"
)

// Clone returns a new model of the same type as m with a fresh id,
// not attached to any document. Property values are copied so that
// no list or map storage is shared; referenced models are shared,
// not cloned. Other fields of the concrete type start out zero.
func Clone[M Model](m M) M {
	src := m.AsModel()
	nm := reflect.New(reflect.TypeOf(m).Elem()).Interface().(M)
	Init(nm, src.Schema(), "")
	vals := map[string]any{}
	for _, d := range src.Schema().Defs() {
		if d.IsComputed() {
			continue
		}
		vals[d.Name] = props.Clone(src.Props.Value(d.Name))
	}
	if err := nm.AsModel().SetMany(vals); err != nil {
		slog.Error("model.Clone", "model", src.String(), "err", err)
	}
	return nm
}
