// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors parses and formats the color values used by
// color properties: CSS keywords, hex strings and rgb()/rgba()
// functional notation.
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// FromString parses a color from a CSS keyword, a hex string
// (#rgb, #rgba, #rrggbb, #rrggbbaa) or rgb()/rgba() notation.
func FromString(s string) (color.RGBA, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if v, ok := named[str]; ok {
		return unpack(v), nil
	}
	switch {
	case strings.HasPrefix(str, "#"):
		return fromHex(str[1:])
	case strings.HasPrefix(str, "rgb"):
		return fromFunc(str)
	}
	return color.RGBA{}, fmt.Errorf("colors.FromString: %q is not a color", s)
}

// IsColor returns whether s parses as a color.
func IsColor(s string) bool {
	_, err := FromString(s)
	return err == nil
}

// FromAny converts a string, [color.Color], or a list of 3 or 4
// numbers (r, g, b in 0-255 and optional alpha in 0-1) to a color.
func FromAny(v any) (color.RGBA, error) {
	switch x := v.(type) {
	case string:
		return FromString(x)
	case color.RGBA:
		return x, nil
	case color.Color:
		return color.RGBAModel.Convert(x).(color.RGBA), nil
	case []any:
		if len(x) != 3 && len(x) != 4 {
			break
		}
		var c [4]float64
		c[3] = 1
		for i, e := range x {
			f, ok := e.(float64)
			if !ok {
				if n, isInt := e.(int); isInt {
					f, ok = float64(n), true
				}
			}
			if !ok {
				return color.RGBA{}, fmt.Errorf("colors.FromAny: component %d is %T", i, e)
			}
			c[i] = f
		}
		return fromRGBA(c[0], c[1], c[2], c[3]), nil
	}
	return color.RGBA{}, fmt.Errorf("colors.FromAny: %T is not a color", v)
}

// AsHex returns the color as a #rrggbb string, or #rrggbbaa
// if it is not opaque. The color is not premultiplied.
func AsHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WithAlpha returns the color with its alpha multiplied by a in 0-1.
func WithAlpha(c color.RGBA, a float64) color.RGBA {
	c.A = uint8(float64(c.A)*clamp01(a) + 0.5)
	return c
}

func unpack(v uint32) color.RGBA {
	return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

func fromHex(h string) (color.RGBA, error) {
	switch len(h) {
	case 3, 4:
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	case 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("colors.FromString: invalid hex color #%s", h)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colors.FromString: invalid hex color #%s: %w", h, err)
	}
	return unpack(uint32(v)), nil
}

func fromFunc(s string) (color.RGBA, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.RGBA{}, fmt.Errorf("colors.FromString: invalid color function %q", s)
	}
	fields := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(fields) != 3 && len(fields) != 4 {
		return color.RGBA{}, fmt.Errorf("colors.FromString: %q needs 3 or 4 components", s)
	}
	var c [4]float64
	c[3] = 1
	for i, f := range fields {
		pct := strings.HasSuffix(f, "%")
		n, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colors.FromString: %q: %w", s, err)
		}
		switch {
		case pct && i < 3:
			n *= 2.55
		case pct:
			n /= 100
		}
		c[i] = n
	}
	return fromRGBA(c[0], c[1], c[2], c[3]), nil
}

func fromRGBA(r, g, b, a float64) color.RGBA {
	ch := func(v float64) uint8 { return uint8(min(max(v, 0), 255) + 0.5) }
	return color.RGBA{ch(r), ch(g), ch(b), uint8(clamp01(a)*255 + 0.5)}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
