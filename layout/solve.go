// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"log/slog"

	"cogentcore.org/figure/math32"
)

// Trace logs the allocations of every SizeDown pass.
var Trace = false

// Solve lays out the tree rooted at root within the viewport,
// setting the Box of every node. Over-constrained fixed sizes
// overflow their container rather than failing.
func Solve(root *Node, viewport math32.Vector2) {
	root.sizeUpTree()
	root.sizeDown(viewport, [2]bool{})
	root.position(math32.Vector2{})
	root.Walk(clearDirty)
}

func clearDirty(n *Node) {
	n.dirty = false
	n.dirtyKids = false
}

// Solver keeps a layout tree solved for a viewport, re-solving
// only the invalidated parts of the tree on [Solver.Update].
type Solver struct {

	// Root is the root of the tree.
	Root *Node

	// FullSolves counts the times the whole tree was solved.
	FullSolves int

	viewport math32.Vector2
	solved   bool
}

// NewSolver returns a new solver for the tree rooted at root.
func NewSolver(root *Node) *Solver {
	return &Solver{Root: root}
}

// Viewport returns the viewport of the last solve.
func (s *Solver) Viewport() math32.Vector2 { return s.viewport }

// Solve solves the whole tree within the viewport.
func (s *Solver) Solve(viewport math32.Vector2) {
	s.viewport = viewport
	s.solved = true
	s.FullSolves++
	Solve(s.Root, viewport)
}

// Resize solves the whole tree if the viewport changed, and
// otherwise updates the invalidated parts. It returns whether
// anything was solved.
func (s *Solver) Resize(viewport math32.Vector2) bool {
	if !s.solved || viewport != s.viewport {
		s.Solve(viewport)
		return true
	}
	return s.Update()
}

// Update re-solves the invalidated parts of the tree, returning
// whether anything was solved. An invalidated node is re-solved
// along with its container, and further containers up the tree
// only while their needs change.
func (s *Solver) Update() bool {
	if !s.solved {
		s.Solve(s.viewport)
		return true
	}
	if !s.Root.NeedsUpdate() {
		return false
	}
	s.update(s.Root)
	return true
}

func (s *Solver) update(n *Node) {
	if n.dirty {
		s.relayout(n)
		return
	}
	if !n.dirtyKids {
		return
	}
	n.dirtyKids = false
	for _, c := range n.children {
		s.update(c)
	}
}

func (s *Solver) relayout(n *Node) {
	n.sizeUpTree()
	top := n
	for top.parent != nil {
		top = top.parent
		old := top.need
		top.sizeUpSelf()
		if top.need == old {
			break
		}
	}
	if top == s.Root {
		top.avail = s.viewport
	}
	top.sizeDown(top.avail, top.fill)
	top.position(top.Box.Min)
	top.Walk(clearDirty)
}

////////  SizeUp

func (n *Node) sizeUpTree() {
	for _, c := range n.children {
		if !c.Hidden {
			c.sizeUpTree()
		}
	}
	n.sizeUpSelf()
}

// sizeUpSelf sets the need of n from the needs of its children.
func (n *Node) sizeUpSelf() {
	content := n.contentNeed()
	s := &n.Sizing
	for d := math32.X; d <= math32.Y; d++ {
		var v float32
		switch {
		case s.Mode == Fixed:
			v = s.declared(d)
		case s.Mode.Flexible(d):
			v = content.Dim(d)
		default:
			v = n.natural(d, content)
		}
		n.need.SetDim(d, max(v, s.min(d)))
	}
}

// natural returns the natural size along d: the hint or declared
// size of a leaf, and the declared or content size of a container.
func (n *Node) natural(d math32.Dims, content math32.Vector2) float32 {
	if len(n.visibleKids()) == 0 {
		if n.Hint != nil && n.Sizing.Mode != Fixed {
			return n.Hint().Dim(d)
		}
		return n.Sizing.declared(d)
	}
	if n.Sizing.Mode != Fit {
		if v := n.Sizing.declared(d); v > 0 {
			return v
		}
	}
	return content.Dim(d)
}

// contentNeed returns the size needed by the visible children.
func (n *Node) contentNeed() math32.Vector2 {
	var sz math32.Vector2
	kids := n.visibleKids()
	if len(kids) == 0 {
		return sz
	}
	switch n.Display {
	case Flex:
		ma := n.MainAxis
		ca := math32.OtherDim(ma)
		var main, cross float32
		for _, c := range kids {
			main += c.need.Dim(ma)
			cross = max(cross, c.need.Dim(ca))
		}
		sz.SetDim(ma, main+n.gaps(len(kids)))
		sz.SetDim(ca, cross)
	case Grid:
		cols := n.gridColumns(len(kids))
		for d := math32.X; d <= math32.Y; d++ {
			base, _ := n.gridBase(kids, cols, d)
			var sum float32
			for _, b := range base {
				sum += b
			}
			sz.SetDim(d, sum+n.gaps(len(base)))
		}
	default:
		for _, c := range kids {
			sz = sz.Max(c.need)
		}
	}
	return sz
}

func (n *Node) gaps(count int) float32 {
	if count < 2 {
		return 0
	}
	return n.Gap * float32(count-1)
}

func (n *Node) gridColumns(nkids int) int {
	return min(max(n.Columns, 1), max(nkids, 1))
}

// gridBase returns the needed size and flexible weight of each
// track along d: columns for X and rows for Y.
func (n *Node) gridBase(kids []*Node, cols int, d math32.Dims) (base, weights []float32) {
	count := cols
	if d == math32.Y {
		count = (len(kids) + cols - 1) / cols
	}
	base = make([]float32, count)
	weights = make([]float32, count)
	for i, c := range kids {
		t := i % cols
		if d == math32.Y {
			t = i / cols
		}
		base[t] = max(base[t], c.need.Dim(d))
		if c.Sizing.Mode.Flexible(d) {
			weights[t] = max(weights[t], c.Sizing.weight())
		}
	}
	return
}

////////  SizeDown

// sizeDown sets the size of n given the space available to it,
// and then allocates its size among its children. fill is true
// along the dimensions in which a [Fit] node takes all of avail.
func (n *Node) sizeDown(avail math32.Vector2, fill [2]bool) {
	n.Solves++
	n.avail, n.fill = avail, fill
	n.size = n.resolve(avail, fill)
	if Trace {
		slog.Info("layout.SizeDown", "node", n.Name, "mode", n.Sizing.Mode, "avail", avail, "size", n.size)
	}
	kids := n.visibleKids()
	if len(kids) == 0 {
		return
	}
	switch n.Display {
	case Flex:
		n.sizeDownFlex(kids)
	case Grid:
		n.sizeDownGrid(kids)
	default:
		for _, c := range kids {
			c.sizeDown(n.size, [2]bool{true, true})
		}
	}
}

// resolve returns the size of n for the given available space.
func (n *Node) resolve(avail math32.Vector2, fill [2]bool) math32.Vector2 {
	s := &n.Sizing
	switch s.Mode {
	case ScaleWidth:
		w := max(avail.X, s.MinWidth)
		return math32.Vec2(w, max(w/n.aspect(), s.MinHeight))
	case ScaleHeight:
		h := max(avail.Y, s.MinHeight)
		return math32.Vec2(max(h*n.aspect(), s.MinWidth), h)
	case ScaleBoth:
		nat := n.naturalSize()
		if nat.X <= 0 || nat.Y <= 0 {
			nat = math32.Vec2(n.aspect(), 1)
		}
		k := float32(0)
		if avail.X > 0 {
			k = avail.X / nat.X
		}
		if avail.Y > 0 && (k == 0 || avail.Y/nat.Y < k) {
			k = avail.Y / nat.Y
		}
		if k == 0 {
			k = 1
		}
		return math32.Vec2(max(nat.X*k, s.MinWidth), max(nat.Y*k, s.MinHeight))
	}
	var sz math32.Vector2
	for d := math32.X; d <= math32.Y; d++ {
		switch {
		case s.Mode == Fixed:
			sz.SetDim(d, s.declared(d))
		case s.Mode.Stretches(d) || (fill[d] && s.Mode == Fit):
			sz.SetDim(d, max(avail.Dim(d), n.need.Dim(d)))
		default:
			sz.SetDim(d, n.need.Dim(d))
		}
	}
	return sz
}

func (n *Node) naturalSize() math32.Vector2 {
	content := n.contentNeed()
	return math32.Vec2(n.natural(math32.X, content), n.natural(math32.Y, content))
}

// aspect returns the width over height ratio for the scale modes.
func (n *Node) aspect() float32 {
	s := &n.Sizing
	if s.Aspect > 0 || (s.Width > 0 && s.Height > 0) {
		return s.aspect()
	}
	if nat := n.naturalSize(); nat.X > 0 && nat.Y > 0 {
		return nat.X / nat.Y
	}
	return 1
}

// sizeDownFlex gives non-flexible children their own size along the
// main axis, and splits what remains among flexible children by weight.
// Along the cross axis, children take the full extent unless their
// mode determines it.
func (n *Node) sizeDownFlex(kids []*Node) {
	ma := n.MainAxis
	ca := math32.OtherDim(ma)
	cross := n.size.Dim(ca)
	var fill [2]bool
	fill[ca] = true

	sizes := make([]float32, len(kids))
	var claimed, weights float32
	nflex := 0
	for i, c := range kids {
		if c.Sizing.Mode.Flexible(ma) {
			weights += c.Sizing.weight()
			nflex++
			continue
		}
		av := c.need
		av.SetDim(ca, cross)
		sizes[i] = c.resolve(av, fill).Dim(ma)
		claimed += sizes[i]
	}
	remain := max(n.size.Dim(ma)-n.gaps(len(kids))-claimed, 0)
	left := remain
	for i, c := range kids {
		if !c.Sizing.Mode.Flexible(ma) {
			continue
		}
		nflex--
		share := left
		if nflex > 0 {
			share = remain * c.Sizing.weight() / weights
		}
		left -= share
		sizes[i] = share
	}
	for i, c := range kids {
		var av math32.Vector2
		av.SetDim(ma, sizes[i])
		av.SetDim(ca, cross)
		c.sizeDown(av, fill)
	}
}

// sizeDownGrid sizes the columns and rows, each to the largest need
// among its cells, with flexible tracks sharing the remaining space.
func (n *Node) sizeDownGrid(kids []*Node) {
	cols := n.gridColumns(len(kids))
	for d := math32.X; d <= math32.Y; d++ {
		base, weights := n.gridBase(kids, cols, d)
		var claimed, wsum float32
		nflex := 0
		for t, b := range base {
			if weights[t] > 0 {
				wsum += weights[t]
				nflex++
			} else {
				claimed += b
			}
		}
		remain := max(n.size.Dim(d)-n.gaps(len(base))-claimed, 0)
		left := remain
		for t := range base {
			if weights[t] == 0 {
				continue
			}
			nflex--
			share := left
			if nflex > 0 {
				share = remain * weights[t] / wsum
			}
			left -= share
			base[t] = max(base[t], share)
		}
		n.tracks[d] = base
	}
	for i, c := range kids {
		c.sizeDown(math32.Vec2(n.tracks[math32.X][i%cols], n.tracks[math32.Y][i/cols]), [2]bool{true, true})
	}
}

////////  Position

// position places n at pos and its children within it.
func (n *Node) position(pos math32.Vector2) {
	n.Box = math32.B2FromPosSize(pos, n.size)
	cur := pos
	vis := 0
	cols := 0
	if n.Display == Grid {
		cols = n.gridColumns(len(n.visibleKids()))
	}
	for _, c := range n.children {
		if c.Hidden {
			c.hide(pos)
			continue
		}
		switch n.Display {
		case Flex:
			c.position(cur)
			ma := n.MainAxis
			cur.SetDim(ma, cur.Dim(ma)+c.size.Dim(ma)+n.Gap)
		case Grid:
			col, row := vis%cols, vis/cols
			var off math32.Vector2
			for t := range col {
				off.X += n.tracks[math32.X][t] + n.Gap
			}
			for t := range row {
				off.Y += n.tracks[math32.Y][t] + n.Gap
			}
			c.position(pos.Add(off))
		default:
			c.position(pos)
		}
		vis++
	}
}

// hide gives n and its descendants an empty box at pos.
func (n *Node) hide(pos math32.Vector2) {
	n.Walk(func(c *Node) {
		c.size = math32.Vector2{}
		c.Box = math32.B2FromPosSize(pos, c.size)
	})
}
