package tokens

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// separatorPattern treats any run of commas and newlines as a single boundary.
var separatorPattern = regexp.MustCompile(`[\n,]+`)

// Items splits raw content into trimmed, non-empty fragments without any mode
// conversion. Fragment order follows the content.
func Items(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := separatorPattern.Split(raw, -1)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		items = append(items, trimmed)
	}
	return items
}

// ParseInput splits raw content into tokens for cfg. Fragments that are not
// numbers are dropped in numeric mode; text fragments are lowercased when the
// comparison is case-insensitive. No deduplication happens here.
func ParseInput(raw string, cfg Config) []Token {
	items := Items(raw)
	out := make([]Token, 0, len(items))
	for _, item := range items {
		if cfg.Mode == ModeNumeric {
			value, ok := ParseNumber(item)
			if !ok {
				continue
			}
			out = append(out, Number(value))
			continue
		}
		if !cfg.CaseSensitive {
			item = strings.ToLower(item)
		}
		out = append(out, Text(item))
	}
	return out
}

// numberPrefix matches the longest leading decimal literal of a fragment.
// Trailing text after the literal is ignored, so "3.5kg" reads as 3.5 and
// "1_000" as 1.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseNumber reads the leading decimal number of a fragment. Fragments
// without one ("abc", "inf", "NaN") are rejected. Literals beyond float64
// range read as signed infinity.
func ParseNumber(fragment string) (float64, bool) {
	literal := numberPrefix.FindString(strings.TrimSpace(fragment))
	if literal == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(value) {
		return 0, false
	}
	return value, true
}
