package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"listcmp/internal/exchange"
	"listcmp/internal/fileutil"
	"listcmp/internal/logging"
	"listcmp/internal/setalgebra"
	"listcmp/internal/sorting"
	"listcmp/internal/tokens"
	"listcmp/internal/workspace"
)

// sourceFlags selects where a command reads its lists from.
type sourceFlags struct {
	workspace string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.workspace, "workspace", "w", "", "Read lists from a saved workspace instead of files")
}

// comparisonSource is a set of lists plus the policy used to compare them.
type comparisonSource struct {
	ws  *workspace.Workspace
	cfg tokens.Config
}

func (s comparisonSource) names() map[int]string {
	names := make(map[int]string, s.ws.Len())
	for _, l := range s.ws.Lists() {
		names[l.ID] = l.Name
	}
	return names
}

func loadComparisonSource(cmd *cobra.Command, ctx *commandContext, src sourceFlags, args []string) (comparisonSource, error) {
	name := strings.TrimSpace(src.workspace)
	if name != "" {
		if len(args) > 0 {
			return comparisonSource{}, fmt.Errorf("list files cannot be combined with --workspace")
		}
		doc, err := loadWorkspaceDocument(cmd, ctx, name)
		if err != nil {
			return comparisonSource{}, err
		}
		ws, err := doc.Workspace()
		if err != nil {
			return comparisonSource{}, fmt.Errorf("restore workspace %q: %w", name, err)
		}
		cfg, err := ctx.comparisonConfig(cmd, &doc)
		if err != nil {
			return comparisonSource{}, err
		}
		return comparisonSource{ws: ws, cfg: cfg}, nil
	}

	inputs, err := readListInputs(cmd, args)
	if err != nil {
		return comparisonSource{}, err
	}
	ws, err := workspaceFromInputs(inputs)
	if err != nil {
		return comparisonSource{}, err
	}
	cfg, err := ctx.comparisonConfig(cmd, nil)
	if err != nil {
		return comparisonSource{}, err
	}
	return comparisonSource{ws: ws, cfg: cfg}, nil
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags
	var sortFlag string
	var csvPath string

	cmd := &cobra.Command{
		Use:   "compare [FILE...]",
		Short: "Show the values unique to each list and the values common to all",
		Long: "Compare two to five lists. Each FILE is one list (use - for stdin); items are\n" +
			"separated by newlines or commas.",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := loadComparisonSource(cmd, ctx, src, args)
			if err != nil {
				return err
			}
			report := source.ws.Compute(source.cfg, workspace.Selection{})
			if strings.TrimSpace(sortFlag) != "" {
				if report, err = sortReport(ctx, report, sortFlag, source.cfg); err != nil {
					return err
				}
			}
			logger := ctx.loggerFor(cmd)
			logger.Debug("comparison computed",
				logging.Int("lists", source.ws.Len()),
				logging.String("mode", source.cfg.Mode.String()),
				logging.Bool("case_sensitive", source.cfg.CaseSensitive),
				logging.Int("common", len(report.Common())),
			)

			if csvPath != "" {
				if err := writeReportCSV(cmd, csvPath, report, source.names()); err != nil {
					return err
				}
				if csvPath == stdinArg {
					return nil
				}
				logger.Info("comparison exported", logging.String("path", csvPath))
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			renderComparison(cmd, ctx, source, report)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort result columns: asc, desc, or KEY=DIR per column (list-1, common)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the result columns as CSV to this path (- for stdout only)")
	return cmd
}

func renderComparison(cmd *cobra.Command, ctx *commandContext, source comparisonSource, report workspace.Report) {
	out := cmd.OutOrStdout()
	colorize := ctx.colorize(out)
	names := source.names()

	headers := make([]string, 0, len(report.Results))
	columns := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		if res.Common {
			headers = append(headers, exchange.CommonColumn)
		} else {
			headers = append(headers, "Unique to "+names[res.ListID])
		}
		columns = append(columns, tokenTexts(res.UniqueValues))
	}
	align := alignLeft
	if source.cfg.Mode == tokens.ModeNumeric {
		align = alignRight
	}
	fmt.Fprintln(out, renderTable(headers, columnsToRows(columns), uniformAlignment(len(headers), align), colorize))

	summary := fmt.Sprintf("Compared %d lists (%s, %s): %d common",
		source.ws.Len(), report.Mode, caseLabel(report.CaseSensitive), len(report.Common()))
	fmt.Fprintln(out, emphasize(summary, colorize, text.Faint))
}

func newSubsetCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags
	var opFlag string
	var selectFlag []int
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "subset [FILE...]",
		Short: "Intersect or union a selection of lists",
		Long: "Combine the selected lists with an intersection or a union. Lists are numbered\n" +
			"from 1 in argument order; all lists are selected when --select is omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := setalgebra.ParseOp(opFlag)
			if err != nil {
				return err
			}
			source, err := loadComparisonSource(cmd, ctx, src, args)
			if err != nil {
				return err
			}
			ids := selectFlag
			if len(ids) == 0 {
				for _, l := range source.ws.Lists() {
					ids = append(ids, l.ID)
				}
			}
			report := source.ws.Compute(source.cfg, workspace.Selection{IDs: ids, Op: op})
			if strings.TrimSpace(sortFlag) != "" {
				if report, err = sortReport(ctx, report, sortFlag, source.cfg); err != nil {
					return err
				}
			}
			ctx.loggerFor(cmd).Debug("subset computed",
				logging.String("op", op.String()),
				logging.Any("selection", ids),
				logging.Int("values", len(report.Subset)),
			)

			if ctx.jsonOutput() {
				return writeJSON(cmd, subsetView{Op: report.SubsetOp, Selection: report.Selection, Values: report.Subset})
			}
			names := source.names()
			selected := make([]string, 0, len(ids))
			for _, id := range ids {
				if name, ok := names[id]; ok {
					selected = append(selected, name)
				}
			}
			out := cmd.OutOrStdout()
			header := fmt.Sprintf("%s of %s", capitalize(op.String()), strings.Join(selected, ", "))
			align := alignLeft
			if source.cfg.Mode == tokens.ModeNumeric {
				align = alignRight
			}
			fmt.Fprintln(out, renderTable([]string{header}, columnsToRows([][]string{tokenTexts(report.Subset)}), []columnAlignment{align}, ctx.colorize(out)))
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&opFlag, "op", "intersection", "Subset operation: intersection or union")
	cmd.Flags().IntSliceVar(&selectFlag, "select", nil, "List ids to combine, e.g. 1,3")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort the result: asc or desc")
	return cmd
}

type subsetView struct {
	Op        string         `json:"op"`
	Selection []int          `json:"selection"`
	Values    []tokens.Token `json:"values"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "stats [FILE...]",
		Short: "Count total, distinct, and duplicate items per list",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := loadComparisonSource(cmd, ctx, src, args)
			if err != nil {
				return err
			}
			report := source.ws.Compute(source.cfg, workspace.Selection{})
			if ctx.jsonOutput() {
				return writeJSON(cmd, report.Stats)
			}
			rows := make([][]string, 0, len(report.Stats))
			for _, s := range report.Stats {
				rows = append(rows, []string{
					strconv.Itoa(s.ListID),
					s.Name,
					strconv.Itoa(s.Stats.Total),
					strconv.Itoa(s.Stats.Distinct),
					strconv.Itoa(s.Stats.Duplicates),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "List", "Total", "Distinct", "Duplicates"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
				ctx.colorize(out),
			))
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

// sortReport orders every result column and the subset with the configured
// locale.
const (
	sortAllKey    = "*"
	subsetSortKey = "subset"
)

// parseSortState reads a --sort value. A bare direction applies to every
// result; KEY=DIR entries (list-2=desc, common=asc, subset=desc) set one.
func parseSortState(value string) (*sorting.State, error) {
	state := sorting.NewState()
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, dirValue, ok := strings.Cut(entry, "=")
		if !ok {
			key, dirValue = sortAllKey, entry
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("sort entry %q: missing result key", entry)
		}
		dir, err := sorting.ParseDirection(dirValue)
		if err != nil {
			return nil, err
		}
		state.Set(key, dir)
	}
	return state, nil
}

func sortDirection(state *sorting.State, key string) (sorting.Direction, bool) {
	if dir, ok := state.Get(key); ok {
		return dir, true
	}
	return state.Get(sortAllKey)
}

// sortReport sorts each result column by the direction recorded for its key.
// Columns without a direction keep their computed order.
func sortReport(ctx *commandContext, report workspace.Report, sortValue string, cfg tokens.Config) (workspace.Report, error) {
	state, err := parseSortState(sortValue)
	if err != nil {
		return report, err
	}
	sorter, err := ctx.sorter()
	if err != nil {
		return report, err
	}
	results := make([]setalgebra.Result, len(report.Results))
	for i, res := range report.Results {
		if dir, ok := sortDirection(state, res.Key()); ok {
			res.UniqueValues = sorter.Sort(res.UniqueValues, dir, cfg)
		}
		results[i] = res
	}
	report.Results = results
	if dir, ok := sortDirection(state, subsetSortKey); ok {
		report.Subset = sorter.Sort(report.Subset, dir, cfg)
	}
	return report, nil
}

func writeReportCSV(cmd *cobra.Command, path string, report workspace.Report, names map[int]string) error {
	if path == stdinArg {
		return exchange.WriteResultsCSV(cmd.OutOrStdout(), report, names)
	}
	return fileutil.WriteFileAtomic(path, func(w io.Writer) error {
		return exchange.WriteResultsCSV(w, report, names)
	})
}

func tokenTexts(values []tokens.Token) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Text())
	}
	return out
}

func caseLabel(caseSensitive bool) string {
	if caseSensitive {
		return "case-sensitive"
	}
	return "case-insensitive"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
