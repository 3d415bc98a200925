package textcase

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind selects a case transform.
type Kind int

const (
	Upper Kind = iota
	Lower
	Sentence
	Camel
	Pascal
)

var kindNames = map[Kind]string{
	Upper:    "upper",
	Lower:    "lower",
	Sentence: "sentence",
	Camel:    "camel",
	Pascal:   "pascal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the kind names plus a few common spellings
// ("uppercase", "camelCase", "PascalCase").
func ParseKind(value string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.TrimSuffix(normalized, "case")
	normalized = strings.TrimSuffix(normalized, "-")
	normalized = strings.TrimSuffix(normalized, "_")
	for kind, name := range kindNames {
		if name == normalized {
			return kind, nil
		}
	}
	return Upper, fmt.Errorf("case transform: unsupported value %q", value)
}

// Kinds lists every transform in display order.
func Kinds() []Kind {
	return []Kind{Upper, Lower, Sentence, Camel, Pascal}
}

// Transform applies kind to every non-blank line of content.
func Transform(content string, kind Kind) string {
	if content == "" {
		return content
	}
	t := newTransformer(kind)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = t.line(line)
	}
	return strings.Join(lines, "\n")
}

// transformer holds the casers for one Transform call; casers carry state
// and are not shared across calls.
type transformer struct {
	kind  Kind
	upper cases.Caser
	lower cases.Caser
	title cases.Caser
}

func newTransformer(kind Kind) *transformer {
	return &transformer{
		kind:  kind,
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
		title: cases.Title(language.Und),
	}
}

func (t *transformer) line(line string) string {
	switch t.kind {
	case Upper:
		return t.upper.String(line)
	case Lower:
		return t.lower.String(line)
	case Sentence:
		return t.sentence(line)
	case Camel:
		return t.joinWords(line, false)
	case Pascal:
		return t.joinWords(line, true)
	default:
		return line
	}
}

// sentence lowercases the line and capitalizes its first letter.
func (t *transformer) sentence(line string) string {
	lowered := t.lower.String(line)
	idx := strings.IndexFunc(lowered, unicode.IsLetter)
	if idx < 0 {
		return lowered
	}
	rest := lowered[idx:]
	first := []rune(rest)[0]
	return lowered[:idx] + t.upper.String(string(first)) + rest[len(string(first)):]
}

// joinWords splits the line on anything that is not a letter or digit and
// concatenates the words, capitalizing each one. The first word stays
// lowercase unless capitalizeFirst is set. Lines without words are returned
// unchanged.
func (t *transformer) joinWords(line string, capitalizeFirst bool) string {
	words := strings.FieldsFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return line
	}
	var b strings.Builder
	b.Grow(len(line))
	for i, word := range words {
		if i == 0 && !capitalizeFirst {
			b.WriteString(t.lower.String(word))
			continue
		}
		b.WriteString(t.title.String(word))
	}
	return b.String()
}
