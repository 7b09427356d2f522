// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of the figure tools, read from
// TOML files on top of the defaults in the struct tags, and themes
// read from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"

	"cogentcore.org/figure/base/iox/tomlx"
	"cogentcore.org/figure/base/reflectx"
	"cogentcore.org/figure/embed"
	"cogentcore.org/figure/resource"
)

// Config is the configuration of rendering and sessions.
type Config struct {

	// Width and Height bound the canvas of each root.
	Width  int `default:"1200"`
	Height int `default:"900"`

	// Theme is a YAML theme file applied to loaded documents.
	Theme string

	// Output is the PNG file written by render.
	Output string `default:"figure.png"`

	// FrameInterval is the time between frames, in milliseconds.
	FrameInterval int `default:"16"`

	Images ImagesConfig

	Session SessionConfig
}

// ImagesConfig configures image loading for image glyphs.
type ImagesConfig struct {

	// Enabled turns image loading on.
	Enabled bool `default:"true"`

	// Timeout bounds all image loads of a render, in milliseconds.
	Timeout int `default:"10000"`
}

// SessionConfig configures the connection to a document server.
type SessionConfig struct {

	// URL is the websocket URL of the server.
	URL string `default:"ws://localhost:5006/ws"`

	// ID is the session id; empty picks one.
	ID string
}

// FileName is the name of the configuration file in the user's
// configuration directory.
const FileName = "figure.toml"

// Default returns the configuration with every default applied.
func Default() *Config {
	c := &Config{}
	if err := reflectx.SetFromDefaultTags(c); err != nil {
		panic(err)
	}
	return c
}

// UserFile returns the path of the user configuration file.
func UserFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "figure", FileName)
}

// Load returns the default configuration overridden by the given TOML
// files in order. Missing files are skipped. Paths may start with ~.
func Load(filenames ...string) (*Config, error) {
	c := Default()
	for _, fn := range filenames {
		if fn == "" {
			continue
		}
		path, err := homedir.Expand(fn)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := tomlx.Open(c, path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if c.Theme != "" {
		t, err := homedir.Expand(c.Theme)
		if err != nil {
			return nil, fmt.Errorf("config: theme: %w", err)
		}
		c.Theme = t
	}
	return c, c.Validate()
}

// Validate returns an error if a setting is out of range.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: canvas size %dx%d must be positive", c.Width, c.Height)
	case c.FrameInterval <= 0:
		return fmt.Errorf("config: frame interval %d must be positive", c.FrameInterval)
	}
	return nil
}

// Interval returns the frame interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.FrameInterval) * time.Millisecond
}

// EmbedOptions returns the embedding options of the configuration.
// images may be nil, which disables image glyphs.
func (c *Config) EmbedOptions(images *resource.Cache) embed.Options {
	if !c.Images.Enabled {
		images = nil
	}
	return embed.Options{Width: c.Width, Height: c.Height, Images: images}
}
