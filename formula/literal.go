package formula

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Ref returns the field reference for name: {name}.
// The name is not escaped.
func Ref(name string) string {
	return "{" + name + "}"
}

// String returns v as a double-quoted string literal.
// Embedded quotes are not escaped; see Escape.
func String(v string) string {
	return `"` + v + `"`
}

// Number renders v the way the platform prints a float.
//
// Shortest round-trip digits are used. The decimal exponent picks the
// notation: below -4 or at 16 and above renders scientific (1e-06,
// 1.5e+16), anything in between renders fixed (0.001, 99.99, 100.0).
// Fixed values always carry a fractional part.
func Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	fixed := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}

// Num is a numeric literal. Integers and floats render differently, so the
// constructor records which one the caller meant: Int(0) renders 0 and
// Float(0) renders 0.0.
type Num struct {
	text string
}

// Int returns n as an integer literal.
func Int(n int64) Num {
	return Num{text: strconv.FormatInt(n, 10)}
}

// Float returns v as a float literal; see Number.
func Float(v float64) Num {
	return Num{text: Number(v)}
}

// String returns the literal text. The zero Num renders 0.
func (n Num) String() string {
	if n.text == "" {
		return "0"
	}
	return n.text
}

// Bool renders v as TRUE() or FALSE().
func Bool(v bool) string {
	if v {
		return "TRUE()"
	}
	return "FALSE()"
}

// Escape prepares v for use inside a double-quoted string literal.
//
// The value is normalized to NFC and backslashes and double quotes are
// backslash-escaped. Builders never call Escape themselves; it is opt-in:
//
//	name.Equals(formula.Escape(`say "hi"`))
//	// {Name}="say \"hi\""
func Escape(v string) string {
	v = norm.NFC.String(v)
	if !strings.ContainsAny(v, `\"`) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 2)
	for _, r := range v {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
