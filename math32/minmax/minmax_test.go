// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minmax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestF64(t *testing.T) {
	mr := Empty()
	assert.False(t, mr.IsValid())
	for _, v := range []float64{3, -1, math.NaN(), math.Inf(1), 7} {
		mr.Fit(v)
	}
	assert.Equal(t, F64{-1, 7}, mr)
	assert.Equal(t, 8.0, mr.Range())
	assert.Equal(t, 3.0, mr.Midpoint())
	assert.Equal(t, 7.0, mr.Clip(10))
	assert.True(t, math.IsNaN(mr.Clip(math.NaN())))

	assert.True(t, mr.FitRange(F64{-5, 0}))
	assert.False(t, mr.FitRange(Empty()))
	assert.Equal(t, -5.0, mr.Min)
}
