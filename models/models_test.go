// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/figure/model"
)

func TestRegister(t *testing.T) {
	reg := NewRegistry()
	for name := range Constructors() {
		m, err := reg.New(name, "id-"+name)
		require.NoError(t, err, name)
		assert.Equal(t, name, m.TypeName())
		assert.Equal(t, "id-"+name, m.ID())
	}
	assert.Error(t, Register(reg))

	_, err := reg.New("Nope", "")
	assert.ErrorIs(t, err, model.ErrUnknownType)
}
