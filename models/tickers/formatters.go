// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tickers

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"cogentcore.org/figure/model"
	"cogentcore.org/figure/props"
)

// Formatter is implemented by tick formatters.
type Formatter interface {
	model.Model

	// Labels returns one label per major tick of tk.
	Labels(tk Ticks) []string
}

// FormatterSchema is the base schema of all formatters.
var FormatterSchema = props.NewSchema("TickFormatter", model.Schema)

// IsFormatter accepts any formatter model in an Instance property.
func IsFormatter(r props.Referent) bool {
	_, ok := r.(Formatter)
	return ok
}

// BasicTickFormatter formats numbers with the fewest digits that
// keep all labels distinct, switching to scientific notation for
// very large or very small magnitudes.
type BasicTickFormatter struct {
	model.Base
}

// BasicTickFormatterSchema is the schema of [BasicTickFormatter].
// A null precision chooses the number of digits automatically.
var BasicTickFormatterSchema = props.NewSchema("BasicTickFormatter", FormatterSchema).
	Define("precision", props.Nullable(props.Int()), nil).
	Define("use_scientific", props.Bool(), true).
	Define("power_limit_high", props.Int(), 5).
	Define("power_limit_low", props.Int(), -3)

// NewBasicTickFormatter returns a new basic formatter.
func NewBasicTickFormatter() *BasicTickFormatter {
	return model.New[BasicTickFormatter](BasicTickFormatterSchema)
}

func (f *BasicTickFormatter) scientific(ticks []float64) bool {
	if !f.GetBool("use_scientific") {
		return false
	}
	high := math.Pow10(f.GetInt("power_limit_high"))
	low := math.Pow10(f.GetInt("power_limit_low"))
	for _, t := range ticks {
		a := math.Abs(t)
		if a != 0 && (a >= high || a < low) {
			return true
		}
	}
	return false
}

func (f *BasicTickFormatter) Labels(tk Ticks) []string {
	ticks := tk.Major
	if len(ticks) == 0 {
		return []string{}
	}
	sci := f.scientific(ticks)
	if p := f.Get("precision"); p != nil {
		return formatAll(ticks, props.AsInt(p), sci)
	}
	tol := tolerance(ticks)
	var labels []string
	for digits := 0; digits <= 15; digits++ {
		labels = formatAll(ticks, digits, sci)
		if distinct(labels) && exact(labels, ticks, tol) {
			break
		}
	}
	return labels
}

// tolerance returns the allowed label error: a small fraction
// of the smallest gap between ticks.
func tolerance(ticks []float64) float64 {
	gap := math.Inf(1)
	for i := 1; i < len(ticks); i++ {
		if d := math.Abs(ticks[i] - ticks[i-1]); d > 0 {
			gap = min(gap, d)
		}
	}
	if math.IsInf(gap, 1) {
		gap = math.Max(math.Abs(ticks[0]), 1)
	}
	return gap * 1e-6
}

// exact returns whether every label reads back as its tick.
func exact(labels []string, ticks []float64, tol float64) bool {
	for i, l := range labels {
		v, err := strconv.ParseFloat(l, 64)
		if err != nil || math.Abs(v-ticks[i]) > tol {
			return false
		}
	}
	return true
}

func formatAll(ticks []float64, digits int, sci bool) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = formatNumber(t, digits, sci)
	}
	return out
}

func formatNumber(v float64, digits int, sci bool) string {
	if v == 0 {
		return "0"
	}
	if sci {
		s := strconv.FormatFloat(v, 'e', digits, 64)
		mant, exp, _ := strings.Cut(s, "e")
		mant = trimZeros(mant)
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + sign + exp
	}
	return trimZeros(strconv.FormatFloat(v, 'f', digits, 64))
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func distinct(labels []string) bool {
	s := slices.Clone(labels)
	slices.Sort(s)
	return len(slices.Compact(s)) == len(labels)
}

// NumeralTickFormatter formats numbers for a locale from a pattern
// such as "0,0.00", "$0,0" or "0.0%": a comma enables digit
// grouping, the zeros after the point set the fraction digits, a
// leading "$" adds a currency sign and a trailing "%" scales to percent.
type NumeralTickFormatter struct {
	model.Base
}

// NumeralTickFormatterSchema is the schema of [NumeralTickFormatter].
// A null language uses the locale of the system.
var NumeralTickFormatterSchema = props.NewSchema("NumeralTickFormatter", FormatterSchema).
	Define("format", props.String(), "0,0").
	Define("language", props.Nullable(props.String()), nil)

// NewNumeralTickFormatter returns a new formatter with the given pattern.
func NewNumeralTickFormatter(format string) *NumeralTickFormatter {
	f := model.New[NumeralTickFormatter](NumeralTickFormatterSchema)
	f.MustSet("format", format)
	return f
}

// SystemLanguage returns the language of the system locale,
// or English if it cannot be determined.
var SystemLanguage = sync.OnceValue(func() language.Tag {
	name, err := locale.GetLocale()
	if err != nil {
		slog.Debug("tickers: no system locale", "err", err)
		return language.English
	}
	tag, err := language.Parse(name)
	if err != nil {
		slog.Debug("tickers: invalid system locale", "locale", name, "err", err)
		return language.English
	}
	return tag
})

func (f *NumeralTickFormatter) tag() language.Tag {
	if l := f.Get("language"); l != nil {
		tag, err := language.Parse(props.AsString(l))
		if err == nil {
			return tag
		}
		slog.Warn("tickers: invalid language", "language", l, "err", err)
	}
	return SystemLanguage()
}

type numeral struct {
	prefix  string
	group   bool
	digits  int
	percent bool
}

func parseNumeral(format string) numeral {
	var n numeral
	if strings.HasPrefix(format, "$") {
		n.prefix = "$"
		format = format[1:]
	}
	if strings.HasSuffix(format, "%") {
		n.percent = true
		format = strings.TrimSuffix(format, "%")
	}
	n.group = strings.Contains(format, ",")
	if _, frac, ok := strings.Cut(format, "."); ok {
		n.digits = strings.Count(frac, "0")
	}
	return n
}

// Format formats one value.
func (f *NumeralTickFormatter) Format(v float64) string {
	n := parseNumeral(f.GetString("format"))
	p := message.NewPrinter(f.tag())
	if n.percent {
		v *= 100
	}
	opts := []number.Option{number.MinFractionDigits(n.digits), number.MaxFractionDigits(n.digits)}
	if !n.group {
		opts = append(opts, number.NoSeparator())
	}
	s := p.Sprint(number.Decimal(v, opts...))
	if n.percent {
		s += "%"
	}
	if n.prefix != "" {
		if strings.HasPrefix(s, "-") {
			return "-" + n.prefix + s[1:]
		}
		return n.prefix + s
	}
	return s
}

func (f *NumeralTickFormatter) Labels(tk Ticks) []string {
	out := make([]string, len(tk.Major))
	for i, v := range tk.Major {
		out[i] = f.Format(v)
	}
	return out
}

// CategoricalTickFormatter labels categorical ticks with the
// innermost level of their factors.
type CategoricalTickFormatter struct {
	model.Base
}

// CategoricalTickFormatterSchema is the schema of [CategoricalTickFormatter].
var CategoricalTickFormatterSchema = props.NewSchema("CategoricalTickFormatter", FormatterSchema)

// NewCategoricalTickFormatter returns a new categorical formatter.
func NewCategoricalTickFormatter() *CategoricalTickFormatter {
	return model.New[CategoricalTickFormatter](CategoricalTickFormatterSchema)
}

func (f *CategoricalTickFormatter) Labels(tk Ticks) []string {
	out := make([]string, len(tk.Factors))
	for i, fv := range tk.Factors {
		switch v := fv.(type) {
		case string:
			out[i] = v
		case []string:
			out[i] = v[len(v)-1]
		}
	}
	return out
}
