package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"listcmp/internal/filter"
	"listcmp/internal/tokens"
	"listcmp/internal/workspace"
)

// CurrentVersion is the document version written by EncodeJSON.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned for documents written by a newer release.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// ListRecord is the serialized form of one list.
type ListRecord struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Content      string       `json:"content"`
	Category     string       `json:"category,omitempty"`
	ActiveFilter *filter.Spec `json:"activeFilter,omitempty"`
}

// ComparisonRecord captures the comparison settings in effect at export time.
type ComparisonRecord struct {
	Mode          string `json:"mode"`
	CaseSensitive bool   `json:"caseSensitive"`
}

// Document is a saved workspace.
type Document struct {
	Version    int               `json:"version"`
	Lists      []ListRecord      `json:"lists"`
	Categories []string          `json:"categories"`
	ExportedAt time.Time         `json:"exportedAt,omitzero"`
	Comparison *ComparisonRecord `json:"comparison,omitempty"`
}

// FromWorkspace captures every list of ws together with the comparison
// settings.
func FromWorkspace(ws *workspace.Workspace, cfg tokens.Config) Document {
	lists := ws.Lists()
	doc := Document{
		Version:    CurrentVersion,
		Lists:      make([]ListRecord, 0, len(lists)),
		Categories: ws.Categories(),
		Comparison: &ComparisonRecord{
			Mode:          cfg.Mode.String(),
			CaseSensitive: cfg.CaseSensitive,
		},
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}
	for _, l := range lists {
		doc.Lists = append(doc.Lists, ListRecord{
			ID:           l.ID,
			Name:         l.Name,
			Content:      l.Content,
			Category:     l.Category,
			ActiveFilter: l.Filter,
		})
	}
	return doc
}

// Workspace rebuilds a workspace from the document.
func (d Document) Workspace() (*workspace.Workspace, error) {
	lists := make([]workspace.List, 0, len(d.Lists))
	for _, rec := range d.Lists {
		lists = append(lists, workspace.List{
			ID:       rec.ID,
			Name:     rec.Name,
			Content:  rec.Content,
			Category: rec.Category,
			Filter:   rec.ActiveFilter,
		})
	}
	return workspace.Restore(lists)
}

// ComparisonConfig returns the stored comparison settings. The boolean is
// false when the document carries none.
func (d Document) ComparisonConfig() (tokens.Config, bool, error) {
	if d.Comparison == nil {
		return tokens.Config{}, false, nil
	}
	mode, err := tokens.ParseMode(d.Comparison.Mode)
	if err != nil {
		return tokens.Config{}, false, err
	}
	return tokens.Config{Mode: mode, CaseSensitive: d.Comparison.CaseSensitive}, true, nil
}

// EncodeJSON writes doc as indented JSON.
func EncodeJSON(w io.Writer, doc Document) error {
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	if doc.Lists == nil {
		doc.Lists = []ListRecord{}
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// DecodeJSON reads a document. A missing version is read as version 1.
func DecodeJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return checkVersion(doc)
}

// MarshalDocument returns the compact JSON form used by the store.
func MarshalDocument(doc Document) ([]byte, error) {
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// UnmarshalDocument parses data written by MarshalDocument or EncodeJSON.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return checkVersion(doc)
}

func checkVersion(doc Document) (Document, error) {
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	if doc.Version < 0 || doc.Version > CurrentVersion {
		return Document{}, fmt.Errorf("document version %d: %w", doc.Version, ErrUnsupportedVersion)
	}
	return doc, nil
}
