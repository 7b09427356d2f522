// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Ratio float32 `default:"0.5"`
}

type settings struct {
	Name    string        `default:"plot"`
	Width   int           `default:"600"`
	Debug   bool          `default:"true"`
	Wait    time.Duration `default:"250ms"`
	Tags    []string      `default:"a, b"`
	Inner   inner
	NoTag   int
	private int
}

func TestSetFromDefaultTags(t *testing.T) {
	s := &settings{NoTag: 7}
	require.NoError(t, SetFromDefaultTags(s))
	assert.Equal(t, "plot", s.Name)
	assert.Equal(t, 600, s.Width)
	assert.True(t, s.Debug)
	assert.Equal(t, 250*time.Millisecond, s.Wait)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	assert.Equal(t, float32(0.5), s.Inner.Ratio)
	assert.Equal(t, 7, s.NoTag)

	assert.Error(t, SetFromDefaultTags(settings{}))
	x := 3
	assert.Error(t, SetFromDefaultTags(&x))
}

func TestNonPointer(t *testing.T) {
	v := 1
	p := &v
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[**int]()))
	assert.Equal(t, 1, NonPointerValue(reflect.ValueOf(&p)).Interface())
}
