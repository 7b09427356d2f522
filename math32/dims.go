// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Dims is a list of vector dimension (component) names.
type Dims int32

// The vector dimensions.
const (
	X Dims = iota
	Y
)

func (d Dims) String() string {
	if d == X {
		return "X"
	}
	return "Y"
}

// OtherDim returns the other dimension for 2D X,Y.
func OtherDim(d Dims) Dims {
	if d == X {
		return Y
	}
	return X
}
