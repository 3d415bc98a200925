package sorting

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"listcmp/internal/tokens"
)

// Direction is the sort order.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending".
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asc", "ascending", "":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return Asc, fmt.Errorf("sort direction: unsupported value %q", value)
	}
}

// Sorter orders values using the collation rules of a locale.
type Sorter struct {
	tag language.Tag
}

// NewSorter returns a Sorter for the given locale.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{tag: tag}
}

// NewSorterForLocale parses a BCP 47 locale such as "en" or "de-DE".
// An empty locale selects the root collation.
func NewSorterForLocale(locale string) (*Sorter, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return NewSorter(language.Und), nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return NewSorter(tag), nil
}

var defaultSorter = NewSorter(language.English)

// Sort orders tokens with the default English collation.
func Sort(values []tokens.Token, dir Direction, cfg tokens.Config) []tokens.Token {
	return defaultSorter.Sort(values, dir, cfg)
}

// SortContent reorders the items of raw list content with the default collation.
func SortContent(content string, dir Direction, cfg tokens.Config) string {
	return defaultSorter.SortContent(content, dir, cfg)
}

// Sort returns a new, stably ordered copy of values.
func (s *Sorter) Sort(values []tokens.Token, dir Direction, cfg tokens.Config) []tokens.Token {
	out := slices.Clone(values)
	if out == nil {
		return []tokens.Token{}
	}
	if cfg.Mode == tokens.ModeNumeric {
		slices.SortStableFunc(out, func(a, b tokens.Token) int {
			return directed(dir, cmp.Compare(a.Number(), b.Number()))
		})
		return out
	}
	compareText := s.textComparator(cfg)
	slices.SortStableFunc(out, func(a, b tokens.Token) int {
		return directed(dir, compareText(a.Text(), b.Text()))
	})
	return out
}

// SortContent splits content into items the way the tokenizer does, orders
// them, and joins them with newlines. Items keep their original spelling. In
// numeric mode, items that are not numbers follow the numbers in their
// original order so that sorting never discards content.
func (s *Sorter) SortContent(content string, dir Direction, cfg tokens.Config) string {
	items := tokens.Items(content)
	if cfg.Mode != tokens.ModeNumeric {
		compareText := s.textComparator(cfg)
		slices.SortStableFunc(items, func(a, b string) int {
			return directed(dir, compareText(a, b))
		})
		return strings.Join(items, "\n")
	}

	type numbered struct {
		text  string
		value float64
	}
	numbers := make([]numbered, 0, len(items))
	var rest []string
	for _, item := range items {
		if value, ok := tokens.ParseNumber(item); ok {
			numbers = append(numbers, numbered{text: item, value: value})
			continue
		}
		rest = append(rest, item)
	}
	slices.SortStableFunc(numbers, func(a, b numbered) int {
		return directed(dir, cmp.Compare(a.value, b.value))
	})
	out := make([]string, 0, len(items))
	for _, n := range numbers {
		out = append(out, n.text)
	}
	out = append(out, rest...)
	return strings.Join(out, "\n")
}

// textComparator returns a comparison bound to a fresh collator; collators
// keep scratch buffers and are not safe to share between goroutines.
func (s *Sorter) textComparator(cfg tokens.Config) func(a, b string) int {
	collator := collate.New(s.tag)
	if cfg.CaseSensitive {
		return collator.CompareString
	}
	return func(a, b string) int {
		return collator.CompareString(strings.ToLower(a), strings.ToLower(b))
	}
}

func directed(dir Direction, order int) int {
	if dir == Desc {
		return -order
	}
	return order
}
