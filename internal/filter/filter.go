package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is wrapped by every compilation failure.
var ErrInvalidPattern = errors.New("invalid filter pattern")

// PatternError describes a pattern that could not be compiled.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidPattern, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}

// ErrorKind classifies pattern errors as validation failures.
func (e *PatternError) ErrorKind() string { return "validation" }

// Spec describes one list filter. IsRegex takes precedence over IsWildcard;
// MatchWholeWord only affects plain-text patterns.
type Spec struct {
	Pattern        string `json:"pattern"`
	IsRegex        bool   `json:"isRegex"`
	IsWildcard     bool   `json:"isWildcard"`
	CaseSensitive  bool   `json:"caseSensitive"`
	InvertMatch    bool   `json:"invertMatch"`
	MatchWholeWord bool   `json:"matchWholeWord"`
}

// Active reports whether the spec would change content when applied.
func (s Spec) Active() bool {
	return s.Pattern != ""
}

// Matcher tests lines against a compiled Spec.
type Matcher struct {
	re     *regexp.Regexp
	invert bool
}

// Compile builds a Matcher for spec. An empty pattern compiles to a matcher
// that accepts every line.
func Compile(spec Spec) (*Matcher, error) {
	expr := Expression(spec)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: spec.Pattern, Err: err}
	}
	return &Matcher{re: re, invert: spec.InvertMatch}, nil
}

// Validate reports whether spec compiles.
func Validate(spec Spec) error {
	_, err := Compile(spec)
	return err
}

// Expression returns the regular expression source a Spec compiles to.
func Expression(spec Spec) string {
	var expr string
	switch {
	case spec.IsRegex:
		expr = spec.Pattern
	case spec.IsWildcard:
		quoted := regexp.QuoteMeta(spec.Pattern)
		expr = "^" + strings.ReplaceAll(quoted, `\*`, ".*") + "$"
	default:
		expr = regexp.QuoteMeta(spec.Pattern)
		if spec.MatchWholeWord {
			expr = `\b` + expr + `\b`
		}
	}
	if !spec.CaseSensitive {
		expr = "(?i)" + expr
	}
	return expr
}

// Match reports whether line passes the filter, honouring InvertMatch.
func (m *Matcher) Match(line string) bool {
	return m.re.MatchString(line) != m.invert
}

// Lines splits content on runs of newlines and returns the non-blank lines
// that pass the filter, in order.
func (m *Matcher) Lines(content string) []string {
	var out []string
	for _, line := range splitLines(content) {
		if m.Match(line) {
			out = append(out, line)
		}
	}
	return out
}

// Apply returns the lines of content that match spec, joined with newlines.
// An empty pattern returns content unchanged.
func Apply(content string, spec Spec) (string, error) {
	if !spec.Active() {
		return content, nil
	}
	matcher, err := Compile(spec)
	if err != nil {
		return "", err
	}
	return strings.Join(matcher.Lines(content), "\n"), nil
}

var lineBreaks = regexp.MustCompile(`\n+`)

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	parts := lineBreaks.Split(content, -1)
	lines := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lines = append(lines, part)
	}
	return lines
}
