package workspace

import (
	"listcmp/internal/setalgebra"
	"listcmp/internal/tokens"
)

// Selection names the lists that take part in a subset operation. Fewer than
// two ids leaves the subset result empty.
type Selection struct {
	IDs []int
	Op  setalgebra.Op
}

// ListStats pairs a list with its token counts.
type ListStats struct {
	ListID int          `json:"listId"`
	Name   string       `json:"name"`
	Stats  tokens.Stats `json:"stats"`
}

// Report is the output of one explicit recomputation.
type Report struct {
	Mode          string              `json:"mode"`
	CaseSensitive bool                `json:"caseSensitive"`
	Results       []setalgebra.Result `json:"results"`
	Selection     []int               `json:"selection,omitempty"`
	SubsetOp      string              `json:"subsetOp,omitempty"`
	Subset        []tokens.Token      `json:"subset"`
	Stats         []ListStats         `json:"stats"`
}

// Common returns the values shared by every list.
func (r Report) Common() []tokens.Token {
	for _, res := range r.Results {
		if res.Common {
			return res.UniqueValues
		}
	}
	return nil
}

// Unique returns the values unique to listID.
func (r Report) Unique(listID int) []tokens.Token {
	for _, res := range r.Results {
		if !res.Common && res.ListID == listID {
			return res.UniqueValues
		}
	}
	return nil
}

// Compute runs every comparison over snapshot. It never mutates its inputs
// and returns the same Report for the same arguments.
func Compute(snapshot []setalgebra.List, cfg tokens.Config, sel Selection) Report {
	report := Report{
		Mode:          cfg.Mode.String(),
		CaseSensitive: cfg.CaseSensitive,
		Results:       setalgebra.CompareAll(snapshot, cfg),
		Subset:        []tokens.Token{},
		Stats:         make([]ListStats, 0, len(snapshot)),
	}
	if len(sel.IDs) > 0 {
		report.Selection = append([]int(nil), sel.IDs...)
		report.SubsetOp = sel.Op.String()
		report.Subset = setalgebra.CompareSubset(snapshot, sel.IDs, cfg, sel.Op)
	}
	for _, list := range snapshot {
		report.Stats = append(report.Stats, ListStats{
			ListID: list.ID,
			Name:   list.Name,
			Stats:  tokens.CountStats(list.Content, cfg),
		})
	}
	return report
}

// Compute is shorthand for Compute(w.Snapshot(), cfg, sel).
func (w *Workspace) Compute(cfg tokens.Config, sel Selection) Report {
	return Compute(w.Snapshot(), cfg, sel)
}
