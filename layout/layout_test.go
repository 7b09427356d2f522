// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"cogentcore.org/figure/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(name string, w, h float32) *Node {
	return NewLeaf(name, Sizing{Mode: Fixed, Width: w, Height: h})
}

func stretch(name string, weight float32) *Node {
	return NewLeaf(name, Sizing{Mode: StretchBoth, Weight: weight})
}

func TestFixedIgnoresViewport(t *testing.T) {
	n := fixed("a", 300, 200)
	for _, vp := range []math32.Vector2{math32.Vec2(1000, 800), math32.Vec2(10, 10), {}} {
		Solve(n, vp)
		assert.Equal(t, math32.B2(0, 0, 300, 200), n.Box)
	}
}

func TestRowWeights(t *testing.T) {
	a := fixed("a", 100, 50)
	b := stretch("b", 0)
	c := stretch("c", 3)
	row := Row("row", Sizing{Mode: StretchBoth}, a, b, c)
	Solve(row, math32.Vec2(900, 400))

	assert.Equal(t, math32.B2(0, 0, 900, 400), row.Box)
	assert.Equal(t, math32.B2(0, 0, 100, 50), a.Box)
	assert.Equal(t, math32.B2(100, 0, 300, 400), b.Box)
	assert.Equal(t, math32.B2(300, 0, 900, 400), c.Box)

	var sum float32
	for _, k := range row.Children() {
		sum += k.Box.Width()
		assert.True(t, row.Box.ContainsBox(k.Box), k.Name)
	}
	assert.InDelta(t, row.Box.Width(), sum, 1e-3)
}

func TestEqualSplit(t *testing.T) {
	kids := []*Node{stretch("a", 0), stretch("b", 0), stretch("c", 0)}
	col := Column("col", Sizing{Mode: StretchBoth}, kids...)
	Solve(col, math32.Vec2(200, 600))
	for i, k := range kids {
		assert.Equal(t, math32.B2(0, float32(i)*200, 200, float32(i+1)*200), k.Box, k.Name)
	}
}

func TestFitColumnWithGap(t *testing.T) {
	a := fixed("a", 100, 50)
	b := fixed("b", 80, 30)
	col := Column("col", Sizing{Mode: Fit}, a, b)
	col.Gap = 10
	Solve(col, math32.Vec2(1000, 1000))
	assert.Equal(t, math32.B2(0, 0, 100, 90), col.Box)
	assert.Equal(t, math32.B2(0, 0, 100, 50), a.Box)
	assert.Equal(t, math32.B2(0, 60, 80, 90), b.Box)
}

func TestFitFillsCross(t *testing.T) {
	a := NewLeaf("a", Sizing{Mode: Fit, Width: 40, Height: 20})
	b := fixed("b", 60, 100)
	row := Row("row", Sizing{Mode: Fit}, a, b)
	Solve(row, math32.Vec2(500, 500))
	assert.Equal(t, math32.B2(0, 0, 100, 100), row.Box)
	assert.Equal(t, math32.B2(0, 0, 40, 100), a.Box)
	assert.Equal(t, math32.B2(40, 0, 100, 100), b.Box)
}

func TestOverflow(t *testing.T) {
	a := fixed("a", 150, 100)
	b := fixed("b", 150, 100)
	row := Row("row", Sizing{Mode: Fixed, Width: 200, Height: 100}, a, b)
	assert.NotPanics(t, func() { Solve(row, math32.Vec2(200, 100)) })
	assert.Equal(t, math32.B2(0, 0, 200, 100), row.Box)
	assert.Equal(t, math32.B2(0, 0, 150, 100), a.Box)
	assert.Equal(t, math32.B2(150, 0, 300, 100), b.Box)
}

func TestScaleModes(t *testing.T) {
	sw := NewLeaf("sw", Sizing{Mode: ScaleWidth, Width: 200, Height: 100})
	f := fixed("f", 100, 100)
	row := Row("row", Sizing{Mode: StretchBoth}, sw, f)
	Solve(row, math32.Vec2(600, 300))
	assert.Equal(t, math32.B2(0, 0, 500, 250), sw.Box)
	assert.Equal(t, math32.B2(500, 0, 600, 100), f.Box)

	sb := NewLeaf("sb", Sizing{Mode: ScaleBoth, Width: 200, Height: 100})
	Solve(sb, math32.Vec2(1000, 300))
	assert.Equal(t, math32.B2(0, 0, 600, 300), sb.Box)
	Solve(sb, math32.Vec2(300, 1000))
	assert.Equal(t, math32.B2(0, 0, 300, 150), sb.Box)

	sh := NewLeaf("sh", Sizing{Mode: ScaleHeight, Aspect: 0.5})
	Solve(sh, math32.Vec2(1000, 300))
	assert.Equal(t, math32.B2(0, 0, 150, 300), sh.Box)
}

func TestGrid(t *testing.T) {
	a := fixed("a", 100, 50)
	b := stretch("b", 0)
	c := fixed("c", 80, 70)
	d := stretch("d", 0)
	g := GridOf("grid", 2, Sizing{Mode: StretchBoth}, a, b, c, d)
	Solve(g, math32.Vec2(500, 400))
	assert.Equal(t, math32.B2(0, 0, 100, 50), a.Box)
	assert.Equal(t, math32.B2(100, 0, 500, 200), b.Box)
	assert.Equal(t, math32.B2(0, 200, 80, 270), c.Box)
	assert.Equal(t, math32.B2(100, 200, 500, 400), d.Box)
}

func TestStack(t *testing.T) {
	a := stretch("a", 0)
	b := fixed("b", 10, 10)
	s := NewNode("stack", Stack, Sizing{Mode: StretchBoth})
	require.NoError(t, s.SetChildren(a, b))
	Solve(s, math32.Vec2(50, 40))
	assert.Equal(t, math32.B2(0, 0, 50, 40), a.Box)
	assert.Equal(t, math32.B2(0, 0, 10, 10), b.Box)
}

func TestHidden(t *testing.T) {
	a := fixed("a", 100, 10)
	h := fixed("h", 100, 10)
	c := stretch("c", 0)
	row := Row("row", Sizing{Mode: StretchBoth}, a, h, c)
	h.Hidden = true
	Solve(row, math32.Vec2(500, 10))
	assert.True(t, h.Box.IsEmpty())
	assert.Equal(t, math32.B2(100, 0, 500, 10), c.Box)
}

func TestHint(t *testing.T) {
	label := NewLeaf("label", Sizing{Mode: Fit})
	label.Hint = func() math32.Vector2 { return math32.Vec2(120, 30) }
	col := Column("col", Sizing{Mode: Fit}, label)
	Solve(col, math32.Vec2(500, 500))
	assert.Equal(t, math32.B2(0, 0, 120, 30), col.Box)
}

func TestDeterministic(t *testing.T) {
	build := func() *Node {
		return Row("row", Sizing{Mode: StretchBoth},
			fixed("a", 33, 10), stretch("b", 1.5), stretch("c", 0),
			Column("col", Sizing{Mode: StretchBoth, Weight: 2}, stretch("d", 0), fixed("e", 7, 13)))
	}
	r1, r2 := build(), build()
	Solve(r1, math32.Vec2(777, 333))
	Solve(r2, math32.Vec2(777, 333))
	var b1, b2 []math32.Box2
	r1.Walk(func(n *Node) { b1 = append(b1, n.Box) })
	r2.Walk(func(n *Node) { b2 = append(b2, n.Box) })
	assert.Equal(t, b1, b2)
	for i := 1; i < 4; i++ {
		prev, cur := r1.Children()[i-1].Box, r1.Children()[i].Box
		assert.Equal(t, prev.Max.X, cur.Min.X)
	}
}

func TestCycle(t *testing.T) {
	a := Column("a", Sizing{Mode: Fit})
	b := Row("b", Sizing{Mode: Fit})
	require.NoError(t, a.AddChild(b))
	assert.ErrorIs(t, b.AddChild(a), ErrCycle)
	assert.ErrorIs(t, a.AddChild(a), ErrCycle)
	c := fixed("c", 1, 1)
	require.NoError(t, b.AddChild(c))
	assert.ErrorIs(t, c.AddChild(a), ErrCycle)
	assert.ErrorIs(t, b.SetChildren(a), ErrCycle)

	require.NoError(t, a.AddChild(c))
	assert.Equal(t, a, c.Parent())
	assert.Empty(t, b.Children())
}

func TestIncrementalUpdate(t *testing.T) {
	leaf := fixed("leaf", 100, 50)
	left := Column("left", Sizing{Mode: Fixed, Width: 250, Height: 400}, leaf)
	other := stretch("other", 0)
	right := Column("right", Sizing{Mode: StretchBoth}, other)
	root := Row("root", Sizing{Mode: StretchBoth}, left, right)

	s := NewSolver(root)
	s.Solve(math32.Vec2(800, 400))
	assert.Equal(t, math32.B2(250, 0, 800, 400), right.Box)
	assert.False(t, s.Update())

	rootN, leftN, rightN := root.Solves, left.Solves, right.Solves
	leaf.SetSizing(Sizing{Mode: Fixed, Width: 100, Height: 80})
	assert.True(t, root.NeedsUpdate())
	assert.True(t, s.Update())
	assert.Equal(t, math32.B2(0, 0, 100, 80), leaf.Box)
	assert.Equal(t, leftN+1, left.Solves)
	assert.Equal(t, rightN, right.Solves)
	assert.Equal(t, rootN, root.Solves)
	assert.Equal(t, 1, s.FullSolves)
	assert.False(t, root.NeedsUpdate())

	// a change in need propagates to the container
	left.SetSizing(Sizing{Mode: Fixed, Width: 300, Height: 400})
	assert.True(t, s.Update())
	assert.Equal(t, rootN+1, root.Solves)
	assert.Equal(t, math32.B2(300, 0, 800, 400), right.Box)

	assert.False(t, s.Resize(math32.Vec2(800, 400)))
	assert.True(t, s.Resize(math32.Vec2(1000, 400)))
	assert.Equal(t, 2, s.FullSolves)
	assert.Equal(t, math32.B2(300, 0, 1000, 400), right.Box)
}

func TestParseMode(t *testing.T) {
	for i, name := range ModeNames() {
		m, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, Modes(i), m)
		assert.Equal(t, name, m.String())
	}
	_, err := ParseMode("inherit")
	assert.Error(t, err)
	assert.True(t, ScaleWidth.Flexible(math32.X))
	assert.False(t, ScaleWidth.Flexible(math32.Y))
	assert.True(t, StretchHeight.Stretches(math32.Y))
}
