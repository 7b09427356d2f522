// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/layout"
	"cogentcore.org/figure/math32"
)

func box(w, h int) *Spacer {
	s := NewSpacer(layout.Fixed)
	s.MustSet("width", w)
	s.MustSet("height", h)
	return s
}

func TestSizing(t *testing.T) {
	s := NewSpacer(layout.StretchBoth)
	require.NoError(t, s.SetMany(map[string]any{"min_width": 10, "aspect_ratio": 2.0, "weight": 3}))
	assert.Equal(t, layout.Sizing{Mode: layout.StretchBoth, MinWidth: 10, Weight: 3, Aspect: 2}, s.Sizing())
	assert.Error(t, s.Set("width", -1))
	assert.Error(t, s.Set("sizing_mode", "huge"))
}

func TestNodes(t *testing.T) {
	a, b := box(100, 50), box(200, 80)
	row := NewRow(a, b)
	row.MustSet("sizing_mode", "fit")
	row.MustSet("spacing", 10)
	na, err := Node(a)
	require.NoError(t, err)
	nb, err := Node(b)
	require.NoError(t, err)
	nr, err := Node(row, na, nb)
	require.NoError(t, err)
	assert.Equal(t, row.ID(), nr.Name)

	layout.Solve(nr, math32.Vec2(1000, 1000))
	assert.Equal(t, math32.B2(0, 0, 100, 50), na.Box)
	assert.Equal(t, math32.B2(110, 0, 310, 80), nb.Box)
	assert.Equal(t, float32(310), nr.Box.Width())
}

func TestGridAndHidden(t *testing.T) {
	kids := []LayoutDOM{box(10, 10), box(10, 10), box(10, 10)}
	g := NewGridBox(2, kids...)
	assert.Len(t, g.Items(), 3)
	assert.Error(t, g.Set("ncols", 0))

	kids[1].AsModel().MustSet("visible", false)
	n, err := Node(kids[1])
	require.NoError(t, err)
	assert.True(t, n.Hidden)

	c := NewColumn(g)
	assert.Equal(t, layout.Flex, c.Display())
	assert.Equal(t, []LayoutDOM{g}, c.Items())
}
