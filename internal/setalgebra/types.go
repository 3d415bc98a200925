package setalgebra

import (
	"encoding/json"
	"fmt"
	"strings"

	"listcmp/internal/tokens"
)

// List is the engine's view of a user list. Content is the effective content:
// the filtered text when a filter is active, the raw text otherwise.
type List struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// CommonKey is the identifier reported for the all-lists intersection.
const CommonKey = "common"

// Result holds the values unique to one list, or the common values when Common is set.
type Result struct {
	ListID       int
	Common       bool
	UniqueValues []tokens.Token
}

// Key returns an opaque identifier for the result, stable across recomputation.
func (r Result) Key() string {
	if r.Common {
		return CommonKey
	}
	return fmt.Sprintf("list-%d", r.ListID)
}

// MarshalJSON encodes listId as the numeric id, or "common" for the synthetic entry.
func (r Result) MarshalJSON() ([]byte, error) {
	var id any = r.ListID
	if r.Common {
		id = CommonKey
	}
	values := r.UniqueValues
	if values == nil {
		values = []tokens.Token{}
	}
	return json.Marshal(struct {
		ListID       any            `json:"listId"`
		UniqueValues []tokens.Token `json:"uniqueValues"`
	}{id, values})
}

// Op selects the subset operation.
type Op int

const (
	// OpIntersection keeps values present in every selected list.
	OpIntersection Op = iota
	// OpUnion keeps values present in any selected list.
	OpUnion
)

func (o Op) String() string {
	switch o {
	case OpIntersection:
		return "intersection"
	case OpUnion:
		return "union"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// ParseOp converts a user-facing operation name to an Op.
func ParseOp(value string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "intersection", "intersect", "and":
		return OpIntersection, nil
	case "union", "or":
		return OpUnion, nil
	default:
		return OpIntersection, fmt.Errorf("subset operation: unsupported value %q", value)
	}
}
