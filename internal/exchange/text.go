package exchange

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrMalformedText is returned when block text has content before the first
// header.
var ErrMalformedText = errors.New("malformed list text")

// headerPattern matches "--- Name ---" and "--- Name [Category] ---".
// Backslash escapes a character in either part, so an escaped bracket never
// opens a category.
var headerPattern = regexp.MustCompile(`^---\s+((?:[^\\]|\\.)*?)(?:\s+\[((?:[^\\\]]|\\.)*)\])?\s+---\s*$`)

var headerEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

func unescapeHeader(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// headerLike reports whether line would read as a header once its leading
// backslashes are removed. Such content lines gain one backslash on encode
// and lose it on decode.
func headerLike(line string) bool {
	return headerPattern.MatchString(strings.TrimLeft(line, `\`))
}

// EncodeText writes every list as a block:
//
//	--- Name [Category] ---
//	content lines
//
// Blocks are separated by one blank line; the category is omitted when empty.
// Brackets and backslashes in names and categories are backslash-escaped, and
// content lines that look like headers are prefixed with a backslash.
func EncodeText(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	for i, rec := range doc.Lists {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(header(rec.Name, rec.Category))
		bw.WriteString("\n")
		content := strings.TrimRight(rec.Content, "\n")
		if content == "" {
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			if headerLike(line) {
				bw.WriteString(`\`)
			}
			bw.WriteString(line)
			bw.WriteString("\n")
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write list text: %w", err)
	}
	return nil
}

func header(name, category string) string {
	name = headerEscaper.Replace(name)
	if category == "" {
		return fmt.Sprintf("--- %s ---", name)
	}
	return fmt.Sprintf("--- %s [%s] ---", name, headerEscaper.Replace(category))
}

// DecodeText parses block text back into a document. Lists receive ids in
// block order starting at 1. Trailing blank lines of each block are dropped.
func DecodeText(r io.Reader) (Document, error) {
	doc := Document{Version: CurrentVersion}
	var current *ListRecord
	var lines []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimRight(strings.Join(lines, "\n"), "\n")
		doc.Lists = append(doc.Lists, *current)
		lines = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if match := headerPattern.FindStringSubmatch(line); match != nil {
			flush()
			current = &ListRecord{
				ID:       len(doc.Lists) + 1,
				Name:     unescapeHeader(strings.TrimSpace(match[1])),
				Category: unescapeHeader(strings.TrimSpace(match[2])),
			}
			continue
		}
		if strings.HasPrefix(line, `\`) && headerLike(line) {
			line = line[1:]
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return Document{}, fmt.Errorf("line %d: %w", lineNo, ErrMalformedText)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return Document{}, fmt.Errorf("read list text: %w", err)
	}
	flush()

	seen := make(map[string]struct{})
	doc.Categories = []string{}
	for _, rec := range doc.Lists {
		if rec.Category == "" {
			continue
		}
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		doc.Categories = append(doc.Categories, rec.Category)
	}
	return doc, nil
}
