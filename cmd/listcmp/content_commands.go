package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"listcmp/internal/filter"
	"listcmp/internal/logging"
	"listcmp/internal/sorting"
	"listcmp/internal/textcase"
	"listcmp/internal/tokens"
	"listcmp/internal/workspace"
)

// listTarget points a content command at a stored list instead of a file.
type listTarget struct {
	workspace string
	listID    int
}

func (t *listTarget) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.workspace, "workspace", "w", "", "Rewrite a list of a saved workspace in place")
	cmd.Flags().IntVarP(&t.listID, "list", "l", 0, "List id within --workspace")
}

func (t listTarget) active() bool {
	return strings.TrimSpace(t.workspace) != ""
}

// runContentCommand transforms either a stored list (in place) or the content
// of a file or stdin (to stdout).
func runContentCommand(
	cmd *cobra.Command,
	ctx *commandContext,
	target listTarget,
	args []string,
	action string,
	transform func(content string, cfg tokens.Config) (string, error),
) error {
	if !target.active() {
		if len(args) > 1 {
			return fmt.Errorf("expected at most one input file, got %d", len(args))
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		content, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		cfg, err := ctx.comparisonConfig(cmd, nil)
		if err != nil {
			return err
		}
		result, err := transform(content, cfg)
		if err != nil {
			return err
		}
		return writeContent(cmd, result)
	}

	if len(args) > 0 {
		return fmt.Errorf("input files cannot be combined with --workspace")
	}
	if target.listID <= 0 {
		return fmt.Errorf("--list is required with --workspace")
	}
	ws, err := updateWorkspace(cmd, ctx, target.workspace, func(ws *workspace.Workspace, cfg tokens.Config) error {
		list, err := ws.Get(target.listID)
		if err != nil {
			return err
		}
		result, err := transform(list.Content, cfg)
		if err != nil {
			return err
		}
		return ws.SetContent(target.listID, result)
	})
	if err != nil {
		return err
	}
	list, err := ws.Get(target.listID)
	if err != nil {
		return err
	}
	ctx.loggerFor(cmd).Info("list content rewritten",
		logging.String(logging.FieldWorkspace, target.workspace),
		logging.Int(logging.FieldListID, list.ID),
		logging.String("action", action),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %s to list %d (%s) in workspace %s\n", action, list.ID, list.Name, strings.TrimSpace(target.workspace))
	return nil
}

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var target listTarget
	cmd := &cobra.Command{
		Use:   "dedupe [FILE]",
		Short: "Remove repeated items, keeping the first occurrence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentCommand(cmd, ctx, target, args, "dedupe", func(content string, cfg tokens.Config) (string, error) {
				return strings.Join(workspace.DedupeItems(content, cfg), "\n"), nil
			})
		},
	}
	target.register(cmd)
	return cmd
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	var target listTarget
	var direction string
	cmd := &cobra.Command{
		Use:   "sort [FILE]",
		Short: "Sort items using the configured comparison mode and locale",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := sorting.ParseDirection(direction)
			if err != nil {
				return err
			}
			sorter, err := ctx.sorter()
			if err != nil {
				return err
			}
			return runContentCommand(cmd, ctx, target, args, "sort "+dir.String(), func(content string, cfg tokens.Config) (string, error) {
				return sorter.SortContent(content, dir, cfg), nil
			})
		},
	}
	target.register(cmd)
	cmd.Flags().StringVarP(&direction, "direction", "d", "asc", "Sort direction: asc or desc")
	return cmd
}

// filterFlags binds a filter.Spec to command flags.
type filterFlags struct {
	spec filter.Spec
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.spec.Pattern, "pattern", "p", "", "Pattern to match")
	flags.BoolVar(&f.spec.IsRegex, "regex", false, "Treat the pattern as a regular expression")
	flags.BoolVar(&f.spec.IsWildcard, "wildcard", false, "Treat * in the pattern as a wildcard; the pattern must match the whole line")
	flags.BoolVar(&f.spec.CaseSensitive, "match-case", false, "Match the pattern case-sensitively")
	flags.BoolVarP(&f.spec.InvertMatch, "invert", "v", false, "Keep the lines that do not match")
	flags.BoolVar(&f.spec.MatchWholeWord, "whole-word", false, "Match plain patterns on word boundaries only")
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "filter [FILE]",
		Short: "Keep the lines that match a pattern",
		Long: "Filter lines of a file or stdin. Plain patterns match anywhere in a line,\n" +
			"--wildcard patterns match whole lines, and --regex uses RE2 syntax.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentCommand(cmd, ctx, listTarget{}, args, "filter", func(content string, _ tokens.Config) (string, error) {
				return filter.Apply(content, flags.spec)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newCaseCommand(ctx *commandContext) *cobra.Command {
	var target listTarget
	kinds := make([]string, 0, len(textcase.Kinds()))
	for _, k := range textcase.Kinds() {
		kinds = append(kinds, k.String())
	}
	cmd := &cobra.Command{
		Use:       "case KIND [FILE]",
		Short:     "Change the letter case of every line (" + strings.Join(kinds, ", ") + ")",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := textcase.ParseKind(args[0])
			if err != nil {
				return err
			}
			return runContentCommand(cmd, ctx, target, args[1:], kind.String()+" case", func(content string, _ tokens.Config) (string, error) {
				return textcase.Transform(content, kind), nil
			})
		},
	}
	target.register(cmd)
	return cmd
}
