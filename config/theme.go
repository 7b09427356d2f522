// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"log/slog"

	"github.com/mitchellh/go-homedir"

	"cogentcore.org/figure/base/iox/yamlx"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// ThemeSetter is the setter of values applied by a [Theme].
const ThemeSetter = "theme"

// Theme maps model type names to property values. A model gets the
// values of every type it is, base types first, so that values for
// a type override those of its bases.
//
//	attrs:
//	  Plot:
//	    background_fill_color: "#fafafa"
//	  Axis:
//	    major_label_text_color: gray
type Theme struct {
	Attrs map[string]map[string]any `yaml:"attrs"`
}

// OpenTheme reads a YAML theme file. The path may start with ~.
func OpenTheme(filename string) (*Theme, error) {
	path, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	t := &Theme{}
	if err := yamlx.Open(t, path); err != nil {
		return nil, fmt.Errorf("config: theme %s: %w", path, err)
	}
	return t, nil
}

// ParseTheme decodes a YAML theme.
func ParseTheme(data []byte) (*Theme, error) {
	t := &Theme{}
	if err := yamlx.ReadBytes(t, data); err != nil {
		return nil, fmt.Errorf("config: theme: %w", err)
	}
	return t, nil
}

// Apply sets the theme values of m. Values that do not fit a
// property are logged and skipped.
func (t *Theme) Apply(m model.Model) {
	if t == nil || len(t.Attrs) == 0 {
		return
	}
	b := m.AsModel()
	for _, name := range lineage(b.Schema(), nil) {
		for attr, v := range t.Attrs[name] {
			if _, ok := b.Schema().Def(attr); !ok {
				slog.Warn("config: theme sets an unknown property", "type", name, "property", attr)
				continue
			}
			if err := b.Props.SetFrom(attr, v, ThemeSetter); err != nil {
				slog.Warn("config: invalid theme value", "type", name, "property", attr, "err", err)
			}
		}
	}
}

// lineage returns the names of s and its bases, bases first.
func lineage(s *props.Schema, names []string) []string {
	for _, b := range s.Bases {
		names = lineage(b, names)
	}
	for _, n := range names {
		if n == s.Name {
			return names
		}
	}
	return append(names, s.Name)
}
