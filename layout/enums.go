// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"

	"cogentcore.org/figure/math32"
)

// Modes are the sizing modes of a layout node.
type Modes int32

const (
	// Fixed uses the declared Width and Height, regardless of the
	// space available, and claims that size from the parent.
	Fixed Modes = iota

	// Fit sizes the node to its content, or to its declared size
	// for a leaf, and fills the cross axis of its container.
	Fit

	// StretchWidth fills the available width and uses the
	// declared or content height.
	StretchWidth

	// StretchHeight fills the available height and uses the
	// declared or content width.
	StretchHeight

	// StretchBoth fills the available space in both dimensions.
	StretchBoth

	// ScaleWidth takes the width a stretching node would get,
	// and derives the height from the aspect ratio.
	ScaleWidth

	// ScaleHeight takes the height a stretching node would get,
	// and derives the width from the aspect ratio.
	ScaleHeight

	// ScaleBoth scales the natural size uniformly to fit
	// the space a stretching node would get.
	ScaleBoth

	ModesN
)

var modeNames = [...]string{"fixed", "fit", "stretch_width", "stretch_height", "stretch_both", "scale_width", "scale_height", "scale_both"}

// ModeNames returns the names of all sizing modes.
func ModeNames() []string { return modeNames[:] }

func (m Modes) String() string {
	if m < 0 || m >= ModesN {
		return fmt.Sprintf("Modes(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the sizing mode with the given name.
func ParseMode(s string) (Modes, error) {
	for i, n := range modeNames {
		if n == s {
			return Modes(i), nil
		}
	}
	return Fixed, fmt.Errorf("layout: unknown sizing mode %q", s)
}

// Stretches returns whether the mode fills the available space along d.
func (m Modes) Stretches(d math32.Dims) bool {
	switch m {
	case StretchBoth:
		return true
	case StretchWidth:
		return d == math32.X
	case StretchHeight:
		return d == math32.Y
	}
	return false
}

// Scales returns whether the mode takes the space along d that
// a stretching node would get, before scaling.
func (m Modes) Scales(d math32.Dims) bool {
	switch m {
	case ScaleBoth:
		return true
	case ScaleWidth:
		return d == math32.X
	case ScaleHeight:
		return d == math32.Y
	}
	return false
}

// Flexible returns whether the node shares the remaining space along d.
func (m Modes) Flexible(d math32.Dims) bool {
	return m.Stretches(d) || m.Scales(d)
}

// fills returns whether the node takes the full extent of its
// cell along the cross axis d of its container.
func (m Modes) fills(d math32.Dims) bool {
	return m == Fit || m.Stretches(d)
}

// Displays are the ways a container arranges its children.
type Displays int32

const (
	// Leaf has no children.
	Leaf Displays = iota

	// Flex arranges children along MainAxis in declaration order.
	Flex

	// Grid arranges children in rows of Columns cells.
	Grid

	// Stack places all children over the same box.
	Stack
)

func (d Displays) String() string {
	switch d {
	case Leaf:
		return "Leaf"
	case Flex:
		return "Flex"
	case Grid:
		return "Grid"
	case Stack:
		return "Stack"
	}
	return fmt.Sprintf("Displays(%d)", int(d))
}
