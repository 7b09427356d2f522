// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/models/layouts"
	"cogentcore.org/figure/models/plots"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 1200, c.Width)
	assert.Equal(t, 900, c.Height)
	assert.Equal(t, "figure.png", c.Output)
	assert.True(t, c.Images.Enabled)
	assert.Equal(t, 16*time.Millisecond, c.Interval())
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(fn, []byte(`
Width = 640
Output = "out.png"

[Images]
Enabled = false
`), 0o644))

	c, err := Load(filepath.Join(dir, "missing.toml"), fn)
	require.NoError(t, err)
	assert.Equal(t, 640, c.Width)
	assert.Equal(t, 900, c.Height)
	assert.Equal(t, "out.png", c.Output)
	assert.False(t, c.Images.Enabled)
	assert.Nil(t, c.EmbedOptions(nil).Images)
	assert.Equal(t, 640, c.EmbedOptions(nil).Width)

	require.NoError(t, os.WriteFile(fn, []byte("Width = -1\n"), 0o644))
	_, err = Load(fn)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(fn, []byte("Width = \n"), 0o644))
	_, err = Load(fn)
	assert.Error(t, err)
}

func TestTheme(t *testing.T) {
	th, err := ParseTheme([]byte(`
attrs:
  LayoutDOM:
    width: 300
    height: 200
  Plot:
    width: 400
    background_fill_color: "#fafafa"
    min_border: not a number
    no_such_property: 1
`))
	require.NoError(t, err)

	p := plots.New()
	th.Apply(p)
	assert.Equal(t, 400, p.GetInt("width"))
	assert.Equal(t, 200, p.GetInt("height"))
	assert.Equal(t, "#fafafa", p.GetString("background_fill_color"))
	assert.Equal(t, 5, p.GetInt("min_border"))

	r := layouts.NewRow()
	th.Apply(r)
	assert.Equal(t, 300, r.GetInt("width"))
}

func TestOpenTheme(t *testing.T) {
	_, err := OpenTheme(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)

	var nilTheme *Theme
	nilTheme.Apply(plots.New())
}
