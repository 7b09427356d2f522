// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout computes the boxes of a tree of nodes, each with
// a sizing mode and size hint, within a viewport. It works in three
// passes: SizeUp gathers the needs of each node from the leaves up,
// SizeDown allocates the available space from the root down, and
// Position places each node in declaration order along the main axis
// of its container. After any change, [Solver.Update] re-solves only
// the subtree affected by invalidated nodes.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"cogentcore.org/figure/math32"
)

// ErrCycle is returned when a node would become its own descendant.
var ErrCycle = errors.New("layout: circular containment")

// Sizing holds the sizing policy of a node.
type Sizing struct {

	// Mode is the sizing mode.
	Mode Modes

	// Width and Height are the declared size for [Fixed],
	// and the natural size for other modes.
	Width, Height float32

	// MinWidth and MinHeight are lower bounds on the size.
	MinWidth, MinHeight float32

	// Weight is the share of remaining space taken by a flexible
	// node relative to its flexible siblings. Zero means 1.
	Weight float32

	// Aspect is the width over height ratio used by the scale modes.
	// Zero means Width / Height.
	Aspect float32
}

// declared returns the declared size along d.
func (s *Sizing) declared(d math32.Dims) float32 {
	if d == math32.X {
		return s.Width
	}
	return s.Height
}

func (s *Sizing) min(d math32.Dims) float32 {
	if d == math32.X {
		return s.MinWidth
	}
	return s.MinHeight
}

func (s *Sizing) weight() float32 {
	if s.Weight > 0 {
		return s.Weight
	}
	return 1
}

func (s *Sizing) aspect() float32 {
	switch {
	case s.Aspect > 0:
		return s.Aspect
	case s.Width > 0 && s.Height > 0:
		return s.Width / s.Height
	}
	return 1
}

// Node is a node of a layout tree.
type Node struct {

	// Name is used for debugging.
	Name string

	// Display determines how children are arranged.
	Display Displays

	// MainAxis is the direction along which a [Flex] container
	// arranges its children: X for a row and Y for a column.
	MainAxis math32.Dims

	// Columns is the number of columns of a [Grid] container.
	Columns int

	// Gap is the space between adjacent children.
	Gap float32

	// Sizing is the sizing policy of the node.
	Sizing Sizing

	// Hidden nodes take no space and get an empty box.
	Hidden bool

	// Hint, if set, returns the natural size of a leaf in place of
	// the declared Width and Height, for modes other than [Fixed].
	Hint func() math32.Vector2

	// Box is the solved box of the node, in viewport coordinates.
	Box math32.Box2

	// Solves counts the SizeDown passes that reached this node.
	Solves int

	parent   *Node
	children []*Node

	// need is the size computed by SizeUp.
	need math32.Vector2

	// size is the size computed by SizeDown.
	size math32.Vector2

	// avail and fill are the inputs of the last SizeDown.
	avail math32.Vector2
	fill  [2]bool

	// tracks are the column widths and row heights of a [Grid].
	tracks [2][]float32

	// dirty means the node itself changed, and dirtyKids
	// that some descendant did.
	dirty, dirtyKids bool
}

// NewNode returns a new node with the given name, display and sizing.
func NewNode(name string, display Displays, sizing Sizing) *Node {
	return &Node{Name: name, Display: display, Sizing: sizing, dirty: true}
}

// Row returns a new [Flex] container arranging children along X.
func Row(name string, sizing Sizing, children ...*Node) *Node {
	n := NewNode(name, Flex, sizing)
	n.MainAxis = math32.X
	n.mustAdd(children)
	return n
}

// Column returns a new [Flex] container arranging children along Y.
func Column(name string, sizing Sizing, children ...*Node) *Node {
	n := NewNode(name, Flex, sizing)
	n.MainAxis = math32.Y
	n.mustAdd(children)
	return n
}

// GridOf returns a new [Grid] container with the given number of columns.
func GridOf(name string, columns int, sizing Sizing, children ...*Node) *Node {
	n := NewNode(name, Grid, sizing)
	n.Columns = columns
	n.mustAdd(children)
	return n
}

// NewLeaf returns a new leaf node.
func NewLeaf(name string, sizing Sizing) *Node {
	return NewNode(name, Leaf, sizing)
}

func (n *Node) mustAdd(children []*Node) {
	for _, c := range children {
		if err := n.AddChild(c); err != nil {
			panic(err)
		}
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %v", n.Name, n.Box)
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes.
func (n *Node) Children() []*Node { return n.children }

// IsAncestorOf returns whether n is c or contains c.
func (n *Node) IsAncestorOf(c *Node) bool {
	for p := c; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// AddChild appends c to the children, moving it from any previous
// parent. It returns [ErrCycle] if c is n or contains n.
func (n *Node) AddChild(c *Node) error {
	return n.InsertChild(c, len(n.children))
}

// InsertChild inserts c as the child at index i.
func (n *Node) InsertChild(c *Node, i int) error {
	if c.IsAncestorOf(n) {
		return fmt.Errorf("%w: %s in %s", ErrCycle, c.Name, n.Name)
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	i = min(max(i, 0), len(n.children))
	n.children = slices.Insert(n.children, i, c)
	c.parent = n
	if n.Display == Leaf {
		n.Display = Flex
	}
	n.Invalidate()
	return nil
}

// RemoveChild removes c, returning whether it was a child.
func (n *Node) RemoveChild(c *Node) bool {
	i := slices.Index(n.children, c)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	c.parent = nil
	n.Invalidate()
	return true
}

// SetChildren replaces the children, in order.
func (n *Node) SetChildren(children ...*Node) error {
	for _, c := range children {
		if c.IsAncestorOf(n) {
			return fmt.Errorf("%w: %s in %s", ErrCycle, c.Name, n.Name)
		}
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = n.children[:0]
	for _, c := range children {
		if c.parent != nil {
			c.parent.RemoveChild(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	n.Invalidate()
	return nil
}

// SetSizing sets the sizing policy and invalidates the node.
func (n *Node) SetSizing(s Sizing) {
	n.Sizing = s
	n.Invalidate()
}

// Invalidate marks the node for the next [Solver.Update].
func (n *Node) Invalidate() {
	n.dirty = true
	for p := n.parent; p != nil; p = p.parent {
		p.dirtyKids = true
	}
}

// NeedsUpdate returns whether the node or a descendant is invalid.
func (n *Node) NeedsUpdate() bool { return n.dirty || n.dirtyKids }

// visibleKids returns the children that are not hidden.
func (n *Node) visibleKids() []*Node {
	kids := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if !c.Hidden {
			kids = append(kids, c)
		}
	}
	return kids
}

// Walk calls fun on n and all its descendants, in pre-order.
func (n *Node) Walk(fun func(c *Node)) {
	fun(n)
	for _, c := range n.children {
		c.Walk(fun)
	}
}
