package workspace

import (
	"errors"
	"fmt"
	"strings"

	"listcmp/internal/filter"
	"listcmp/internal/setalgebra"
	"listcmp/internal/sorting"
	"listcmp/internal/textcase"
	"listcmp/internal/tokens"
)

const (
	// MinLists is the fewest lists a workspace may hold; comparison needs two.
	MinLists = 2
	// MaxLists caps the number of concurrent lists.
	MaxLists = 5
)

var (
	ErrListLimit    = fmt.Errorf("workspace holds at most %d lists", MaxLists)
	ErrMinimumLists = fmt.Errorf("workspace needs at least %d lists", MinLists)
	ErrListNotFound = errors.New("list not found")
)

// List is one user list.
type List struct {
	ID       int
	Name     string
	Content  string
	Category string
	Filter   *filter.Spec
}

func (l List) clone() List {
	if l.Filter != nil {
		spec := *l.Filter
		l.Filter = &spec
	}
	return l
}

// EffectiveContent returns the filtered content when a filter is active and
// the raw content otherwise.
func (l List) EffectiveContent() string {
	if l.Filter == nil || !l.Filter.Active() {
		return l.Content
	}
	filtered, err := filter.Apply(l.Content, *l.Filter)
	if err != nil {
		return l.Content
	}
	return filtered
}

// Workspace is an ordered collection of lists.
type Workspace struct {
	lists  []*List
	nextID int
}

// Option customizes New.
type Option func(*Workspace)

// WithListCount seeds the workspace with n empty lists, clamped to the
// allowed range.
func WithListCount(n int) Option {
	return func(w *Workspace) {
		n = max(MinLists, min(MaxLists, n))
		for len(w.lists) < n {
			w.appendList("", "")
		}
	}
}

// New returns a workspace seeded with MinLists empty lists unless an option
// says otherwise.
func New(opts ...Option) *Workspace {
	w := &Workspace{nextID: 1}
	for _, opt := range opts {
		opt(w)
	}
	for len(w.lists) < MinLists {
		w.appendList("", "")
	}
	return w
}

// Restore rebuilds a workspace from previously exported lists. Ids are kept
// when they are positive and unique, otherwise new ids are assigned. Missing
// lists are padded up to MinLists.
func Restore(lists []List) (*Workspace, error) {
	if len(lists) > MaxLists {
		return nil, fmt.Errorf("restore %d lists: %w", len(lists), ErrListLimit)
	}
	w := &Workspace{nextID: 1}
	seen := make(map[int]struct{}, len(lists))
	for _, l := range lists {
		if l.ID > 0 {
			if _, dup := seen[l.ID]; !dup {
				seen[l.ID] = struct{}{}
				w.nextID = max(w.nextID, l.ID+1)
			}
		}
	}
	used := make(map[int]struct{}, len(lists))
	for _, l := range lists {
		entry := l.clone()
		if _, taken := used[entry.ID]; entry.ID <= 0 || taken {
			entry.ID = w.nextID
			w.nextID++
		}
		used[entry.ID] = struct{}{}
		if entry.Filter != nil {
			if err := filter.Validate(*entry.Filter); err != nil {
				return nil, fmt.Errorf("restore list %d filter: %w", entry.ID, err)
			}
		}
		if strings.TrimSpace(entry.Name) == "" {
			entry.Name = defaultName(entry.ID)
		}
		w.lists = append(w.lists, &entry)
	}
	for len(w.lists) < MinLists {
		w.appendList("", "")
	}
	return w, nil
}

func defaultName(id int) string {
	return fmt.Sprintf("List %d", id)
}

func (w *Workspace) appendList(name, category string) *List {
	id := w.nextID
	w.nextID++
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName(id)
	}
	l := &List{ID: id, Name: name, Category: strings.TrimSpace(category)}
	w.lists = append(w.lists, l)
	return l
}

func (w *Workspace) find(id int) (*List, error) {
	for _, l := range w.lists {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("list %d: %w", id, ErrListNotFound)
}

// Len returns the number of lists.
func (w *Workspace) Len() int { return len(w.lists) }

// Lists returns copies of every list in display order.
func (w *Workspace) Lists() []List {
	out := make([]List, 0, len(w.lists))
	for _, l := range w.lists {
		out = append(out, l.clone())
	}
	return out
}

// Get returns a copy of the list with id.
func (w *Workspace) Get(id int) (List, error) {
	l, err := w.find(id)
	if err != nil {
		return List{}, err
	}
	return l.clone(), nil
}

// Add appends a new empty list. An empty name selects "List <id>".
func (w *Workspace) Add(name, category string) (List, error) {
	if len(w.lists) >= MaxLists {
		return List{}, ErrListLimit
	}
	return w.appendList(name, category).clone(), nil
}

// Remove deletes a list while more than MinLists remain.
func (w *Workspace) Remove(id int) error {
	idx := -1
	for i, l := range w.lists {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("list %d: %w", id, ErrListNotFound)
	}
	if len(w.lists) <= MinLists {
		return ErrMinimumLists
	}
	w.lists = append(w.lists[:idx], w.lists[idx+1:]...)
	return nil
}

// Rename changes a list's name. Blank names fall back to the default name.
func (w *Workspace) Rename(id int, name string) error {
	l, err := w.find(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName(id)
	}
	l.Name = name
	return nil
}

// SetCategory changes a list's category; an empty category clears it.
func (w *Workspace) SetCategory(id int, category string) error {
	l, err := w.find(id)
	if err != nil {
		return err
	}
	l.Category = strings.TrimSpace(category)
	return nil
}

// SetContent replaces a list's raw content.
func (w *Workspace) SetContent(id int, content string) error {
	l, err := w.find(id)
	if err != nil {
		return err
	}
	l.Content = content
	return nil
}

// ApplyFilter activates spec on a list; nil clears the filter. An invalid
// pattern is returned as an error and the previous filter stays active.
func (w *Workspace) ApplyFilter(id int, spec *filter.Spec) error {
	l, err := w.find(id)
	if err != nil {
		return err
	}
	if spec == nil {
		l.Filter = nil
		return nil
	}
	if err := filter.Validate(*spec); err != nil {
		return err
	}
	next := *spec
	l.Filter = &next
	return nil
}

// EffectiveContent returns the content a list contributes to comparison.
func (w *Workspace) EffectiveContent(id int) (string, error) {
	l, err := w.find(id)
	if err != nil {
		return "", err
	}
	return l.EffectiveContent(), nil
}

// SortContent rewrites a list's raw content in sorted order.
func (w *Workspace) SortContent(id int, dir sorting.Direction, cfg tokens.Config) error {
	l, err := w.find(id)
	if err != nil {
		return err
	}
	l.Content = sorting.SortContent(l.Content, dir, cfg)
	return nil
}

// TransformCase rewrites a list's raw content with a case transform.
func (w *Workspace) TransformCase(id int, kind textcase.Kind) error {
	l, err := w.find(id)
	if err != nil {
		return err
	}
	l.Content = textcase.Transform(l.Content, kind)
	return nil
}

// RemoveDuplicates rewrites a list's raw content keeping the first occurrence
// of each item, one item per line.
func (w *Workspace) RemoveDuplicates(id int, cfg tokens.Config) error {
	l, err := w.find(id)
	if err != nil {
		return err
	}
	l.Content = strings.Join(DedupeItems(l.Content, cfg), "\n")
	return nil
}

// DedupeItems returns the items of raw content with repeats removed, keeping
// each item's original spelling. In numeric mode numbers compare by value and
// other items compare by their exact text, so nothing is discarded.
func DedupeItems(content string, cfg tokens.Config) []string {
	items := tokens.Items(content)
	seen := make(map[tokens.Key]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		token := tokens.Text(item)
		keyCfg := cfg
		if cfg.Mode == tokens.ModeNumeric {
			if value, ok := tokens.ParseNumber(item); ok {
				token = tokens.Number(value)
			} else {
				keyCfg = tokens.Config{Mode: tokens.ModeText, CaseSensitive: true}
			}
		}
		key := tokens.KeyOf(token, keyCfg)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Categories returns the distinct non-empty categories in first-seen order.
func (w *Workspace) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range w.lists {
		if l.Category == "" {
			continue
		}
		if _, ok := seen[l.Category]; ok {
			continue
		}
		seen[l.Category] = struct{}{}
		out = append(out, l.Category)
	}
	return out
}

// Snapshot returns the engine view of every list with effective content.
func (w *Workspace) Snapshot() []setalgebra.List {
	out := make([]setalgebra.List, 0, len(w.lists))
	for _, l := range w.lists {
		out = append(out, setalgebra.List{
			ID:       l.ID,
			Name:     l.Name,
			Content:  l.EffectiveContent(),
			Category: l.Category,
		})
	}
	return out
}
