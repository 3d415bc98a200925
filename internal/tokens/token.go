package tokens

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Token is a parsed, mode-normalized value derived from one fragment of list content.
// A Token holds either a number or a string, never both.
type Token struct {
	numeric bool
	num     float64
	text    string
}

// Number constructs a numeric token.
func Number(value float64) Token {
	return Token{numeric: true, num: value}
}

// Text constructs a text token.
func Text(value string) Token {
	return Token{text: value}
}

// IsNumeric reports whether the token carries a number.
func (t Token) IsNumeric() bool { return t.numeric }

// Number returns the numeric value, or zero for text tokens.
func (t Token) Number() float64 { return t.num }

// Text returns the string value, or the formatted number for numeric tokens.
func (t Token) Text() string {
	if t.numeric {
		return FormatNumber(t.num)
	}
	return t.text
}

// String renders the token for display and export.
func (t Token) String() string { return t.Text() }

// MarshalJSON encodes numeric tokens as JSON numbers and text tokens as strings.
func (t Token) MarshalJSON() ([]byte, error) {
	if t.numeric {
		if math.IsInf(t.num, 0) {
			return json.Marshal(FormatNumber(t.num))
		}
		return json.Marshal(t.num)
	}
	return json.Marshal(t.text)
}

// Key is a comparable identity for a token under a comparison policy. Two tokens
// are equal under a Config exactly when their keys are equal.
type Key struct {
	numeric bool
	num     float64
	text    string
}

// KeyOf returns the identity of t under cfg: plain numeric equality for numbers,
// exact strings for case-sensitive text, lowercase strings otherwise.
func KeyOf(t Token, cfg Config) Key {
	if t.numeric {
		n := t.num
		if n == 0 {
			n = 0 // collapse -0
		}
		return Key{numeric: true, num: n}
	}
	if cfg.foldsCase() {
		return Key{text: strings.ToLower(t.text)}
	}
	return Key{text: t.text}
}

// Equal reports whether a and b are the same value under cfg.
func Equal(a, b Token, cfg Config) bool {
	return KeyOf(a, cfg) == KeyOf(b, cfg)
}

// FormatNumber renders a float the way list content is displayed: integers
// without a fraction, plain decimals for ordinary magnitudes and exponent
// notation outside [1e-6, 1e21).
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case value == 0:
		return "0"
	}
	abs := math.Abs(value)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(value, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
