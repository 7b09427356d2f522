// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"image"
)

// Box2 represents a 2D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
// Y grows downward, so Min is the top-left corner.
type Box2 struct {
	Min Vector2
	Max Vector2
}

// B2 returns a new [Box2] from the given minimum and maximum x and y coordinates.
func B2(x0, y0, x1, y1 float32) Box2 {
	return Box2{Vector2{x0, y0}, Vector2{x1, y1}}
}

// B2FromPosSize returns a box with the given top-left position and size.
func B2FromPosSize(pos, size Vector2) Box2 {
	return Box2{pos, pos.Add(size)}
}

func (b Box2) String() string {
	return fmt.Sprintf("[%v - %v]", b.Min, b.Max)
}

// IsEmpty returns true if this box has no area.
func (b Box2) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}

// Size returns the size of this box.
func (b Box2) Size() Vector2 {
	return b.Max.Sub(b.Min)
}

// Width returns the extent along X.
func (b Box2) Width() float32 { return b.Max.X - b.Min.X }

// Height returns the extent along Y.
func (b Box2) Height() float32 { return b.Max.Y - b.Min.Y }

// Center returns the center of the box.
func (b Box2) Center() Vector2 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// ContainsPoint returns whether the point lies inside the box, inclusive.
func (b Box2) ContainsPoint(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ContainsBox returns whether other lies entirely inside this box.
func (b Box2) ContainsBox(other Box2) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// Intersect returns the intersection with other.
func (b Box2) Intersect(other Box2) Box2 {
	return Box2{b.Min.Max(other.Min), b.Max.Min(other.Max)}
}

// Union returns the smallest box containing both boxes.
func (b Box2) Union(other Box2) Box2 {
	return Box2{b.Min.Min(other.Min), b.Max.Max(other.Max)}
}

// Translate returns the box moved by offset.
func (b Box2) Translate(offset Vector2) Box2 {
	return Box2{b.Min.Add(offset), b.Max.Add(offset)}
}

// Inset returns the box shrunk by the given amounts on each side,
// never inverting.
func (b Box2) Inset(left, top, right, bottom float32) Box2 {
	nb := B2(b.Min.X+left, b.Min.Y+top, b.Max.X-right, b.Max.Y-bottom)
	nb.Max = nb.Max.Max(nb.Min)
	return nb
}

// ToRect returns the box as an [image.Rectangle], rounding outward.
func (b Box2) ToRect() image.Rectangle {
	return image.Rect(int(Floor(b.Min.X)), int(Floor(b.Min.Y)), int(Ceil(b.Max.X)), int(Ceil(b.Max.Y)))
}
