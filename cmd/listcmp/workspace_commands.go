package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"listcmp/internal/exchange"
	"listcmp/internal/fileutil"
	"listcmp/internal/filter"
	"listcmp/internal/logging"
	"listcmp/internal/store"
	"listcmp/internal/tokens"
	"listcmp/internal/workspace"
)

const (
	formatJSON = "json"
	formatText = "text"
	formatCSV  = "csv"
)

func newWorkspaceCommand(ctx *commandContext) *cobra.Command {
	wsCmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage saved workspaces",
	}

	wsCmd.AddCommand(newWorkspaceListCommand(ctx))
	wsCmd.AddCommand(newWorkspaceShowCommand(ctx))
	wsCmd.AddCommand(newWorkspaceCreateCommand(ctx))
	wsCmd.AddCommand(newWorkspaceDeleteCommand(ctx))
	wsCmd.AddCommand(newWorkspaceImportCommand(ctx))
	wsCmd.AddCommand(newWorkspaceExportCommand(ctx))
	wsCmd.AddCommand(newWorkspaceAddCommand(ctx))
	wsCmd.AddCommand(newWorkspaceRemoveCommand(ctx))
	wsCmd.AddCommand(newWorkspaceSetCommand(ctx))
	wsCmd.AddCommand(newWorkspaceRenameCommand(ctx))
	wsCmd.AddCommand(newWorkspaceCategoryCommand(ctx))
	wsCmd.AddCommand(newWorkspaceFilterCommand(ctx))

	return wsCmd
}

func workspaceNotFound(name string) error {
	return fmt.Errorf("workspace %q not found", name)
}

func loadWorkspaceDocument(cmd *cobra.Command, ctx *commandContext, name string) (exchange.Document, error) {
	var doc exchange.Document
	err := ctx.withStore(func(st *store.Store) error {
		rec, err := st.Load(cmd.Context(), name)
		if err != nil {
			return err
		}
		if rec == nil {
			return workspaceNotFound(name)
		}
		doc = rec.Document
		return nil
	})
	return doc, err
}

// updateWorkspace applies fn to the named workspace and saves the result in
// one locked read-modify-write. Nothing is saved when fn fails.
func updateWorkspace(
	cmd *cobra.Command,
	ctx *commandContext,
	name string,
	fn func(*workspace.Workspace, tokens.Config) error,
) (*workspace.Workspace, error) {
	name = strings.TrimSpace(name)
	var updated *workspace.Workspace
	err := ctx.withStore(func(st *store.Store) error {
		rec, err := st.Update(cmd.Context(), name, false, func(doc *exchange.Document) error {
			ws, err := doc.Workspace()
			if err != nil {
				return fmt.Errorf("restore workspace %q: %w", name, err)
			}
			cfg, err := ctx.comparisonConfig(cmd, doc)
			if err != nil {
				return err
			}
			if err := fn(ws, cfg); err != nil {
				return err
			}
			*doc = exchange.FromWorkspace(ws, cfg)
			updated = ws
			return nil
		})
		if err != nil {
			return err
		}
		if rec == nil {
			return workspaceNotFound(name)
		}
		logger := logging.WithContext(logging.ContextWithWorkspace(cmd.Context(), rec.Name), ctx.loggerFor(cmd))
		logger.Debug("workspace saved", logging.String("revision", rec.Revision))
		return nil
	})
	return updated, err
}

func parseListID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid list id %q", value)
	}
	return id, nil
}

func newWorkspaceListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				summaries, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if summaries == nil {
						summaries = []store.Summary{}
					}
					return writeJSON(cmd, summaries)
				}
				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintln(out, "No saved workspaces")
					return nil
				}
				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{
						s.Name,
						strconv.Itoa(s.Lists),
						s.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
						shortRevision(s.Revision),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Name", "Lists", "Updated", "Revision"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
					ctx.colorize(out),
				))
				return nil
			})
		},
	}
}

func shortRevision(revision string) string {
	if len(revision) > 8 {
		return revision[:8]
	}
	return revision
}

func newWorkspaceShowCommand(ctx *commandContext) *cobra.Command {
	var showContent bool
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the lists of a saved workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadWorkspaceDocument(cmd, ctx, args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return exchange.EncodeJSON(cmd.OutOrStdout(), doc)
			}
			ws, err := doc.Workspace()
			if err != nil {
				return fmt.Errorf("restore workspace %q: %w", args[0], err)
			}
			cfg, err := ctx.comparisonConfig(cmd, &doc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, ws.Len())
			for _, l := range ws.Lists() {
				stats := tokens.CountStats(l.EffectiveContent(), cfg)
				rows = append(rows, []string{
					strconv.Itoa(l.ID),
					l.Name,
					dashIfEmpty(l.Category),
					strconv.Itoa(stats.Distinct),
					describeFilter(l.Filter),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Category", "Distinct", "Filter"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
				ctx.colorize(out),
			))
			fmt.Fprintf(out, "Comparison: %s, %s\n", cfg.Mode, caseLabel(cfg.CaseSensitive))
			if showContent {
				fmt.Fprintln(out)
				return exchange.EncodeText(out, doc)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showContent, "content", false, "Also print the raw content of every list")
	return cmd
}

func describeFilter(spec *filter.Spec) string {
	if spec == nil || !spec.Active() {
		return "-"
	}
	var flags []string
	switch {
	case spec.IsRegex:
		flags = append(flags, "regex")
	case spec.IsWildcard:
		flags = append(flags, "wildcard")
	case spec.MatchWholeWord:
		flags = append(flags, "whole word")
	}
	if spec.CaseSensitive {
		flags = append(flags, "match case")
	}
	if spec.InvertMatch {
		flags = append(flags, "inverted")
	}
	if len(flags) == 0 {
		return strconv.Quote(spec.Pattern)
	}
	return fmt.Sprintf("%q (%s)", spec.Pattern, strings.Join(flags, ", "))
}

func dashIfEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func newWorkspaceCreateCommand(ctx *commandContext) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			cfg := ctx.configValue()
			n := cfg.Lists.DefaultCount
			if cmd.Flags().Changed("lists") {
				n = count
			}
			if n < workspace.MinLists || n > workspace.MaxLists {
				return fmt.Errorf("--lists must be between %d and %d", workspace.MinLists, workspace.MaxLists)
			}
			cmpCfg, err := ctx.comparisonConfig(cmd, nil)
			if err != nil {
				return err
			}
			ws := workspace.New(workspace.WithListCount(n))
			err = ctx.withStore(func(st *store.Store) error {
				rec, err := st.Update(cmd.Context(), name, true, func(doc *exchange.Document) error {
					if len(doc.Lists) > 0 {
						return fmt.Errorf("workspace %q already exists", name)
					}
					*doc = exchange.FromWorkspace(ws, cmpCfg)
					return nil
				})
				if err != nil {
					return err
				}
				ctx.loggerFor(cmd).Info("workspace created",
					logging.String(logging.FieldWorkspace, rec.Name),
					logging.Int("lists", n),
				)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created workspace %s with %d lists\n", name, n)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "lists", "n", 0, "Number of empty lists (defaults to lists.default_count)")
	return cmd
}

func newWorkspaceDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			return ctx.withStore(func(st *store.Store) error {
				removed, err := st.Delete(cmd.Context(), name)
				if err != nil {
					return err
				}
				if !removed {
					return workspaceNotFound(name)
				}
				ctx.loggerFor(cmd).Info("workspace deleted", logging.String(logging.FieldWorkspace, name))
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted workspace %s\n", name)
				return nil
			})
		},
	}
}

func newWorkspaceImportCommand(ctx *commandContext) *cobra.Command {
	var inputFormat string
	cmd := &cobra.Command{
		Use:   "import NAME [FILE]",
		Short: "Import lists from a JSON document or block text, replacing the workspace",
		Long: "Import a workspace from FILE (or stdin). JSON documents are the format written by\n" +
			"export; block text uses \"--- Name [Category] ---\" headers before each list.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			format, err := resolveDocumentFormat(inputFormat, path, false)
			if err != nil {
				return err
			}
			content, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			var doc exchange.Document
			switch format {
			case formatText:
				doc, err = exchange.DecodeText(strings.NewReader(content))
			default:
				doc, err = exchange.DecodeJSON(strings.NewReader(content))
			}
			if err != nil {
				return fmt.Errorf("import %s: %w", dashIfEmpty(path), err)
			}
			ws, err := doc.Workspace()
			if err != nil {
				return fmt.Errorf("import %s: %w", dashIfEmpty(path), err)
			}
			cmpCfg, err := ctx.comparisonConfig(cmd, &doc)
			if err != nil {
				return err
			}
			normalized := exchange.FromWorkspace(ws, cmpCfg)
			err = ctx.withStore(func(st *store.Store) error {
				rec, err := st.Save(cmd.Context(), name, normalized)
				if err != nil {
					return err
				}
				ctx.loggerFor(cmd).Info("workspace imported",
					logging.String(logging.FieldWorkspace, rec.Name),
					logging.String("format", format),
					logging.Int("lists", len(normalized.Lists)),
				)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lists into workspace %s\n", len(normalized.Lists), name)
			return nil
		},
	}
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format: json or text (detected from the file extension by default)")
	return cmd
}

func newWorkspaceExportCommand(ctx *commandContext) *cobra.Command {
	var outputFormat string
	var outputPath string
	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Export a workspace as JSON, block text, or comparison CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			format, err := resolveDocumentFormat(outputFormat, outputPath, true)
			if err != nil {
				return err
			}
			doc, err := loadWorkspaceDocument(cmd, ctx, name)
			if err != nil {
				return err
			}

			write := func(w io.Writer) error {
				switch format {
				case formatText:
					return exchange.EncodeText(w, doc)
				case formatCSV:
					ws, err := doc.Workspace()
					if err != nil {
						return fmt.Errorf("restore workspace %q: %w", name, err)
					}
					cmpCfg, err := ctx.comparisonConfig(cmd, &doc)
					if err != nil {
						return err
					}
					source := comparisonSource{ws: ws, cfg: cmpCfg}
					return exchange.WriteResultsCSV(w, ws.Compute(cmpCfg, workspace.Selection{}), source.names())
				default:
					doc.ExportedAt = time.Now().UTC()
					return exchange.EncodeJSON(w, doc)
				}
			}

			if outputPath == "" || outputPath == stdinArg {
				return write(cmd.OutOrStdout())
			}
			if err := fileutil.WriteFileAtomic(outputPath, write); err != nil {
				return err
			}
			ctx.loggerFor(cmd).Info("workspace exported",
				logging.String(logging.FieldWorkspace, name),
				logging.String("format", format),
				logging.String("path", outputPath),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported workspace %s to %s\n", name, outputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "Output format: json, text, or csv (detected from --output by default)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (stdout by default)")
	return cmd
}

// resolveDocumentFormat picks the explicit format, else the one implied by
// path's extension, else JSON.
func resolveDocumentFormat(explicit, path string, allowCSV bool) (string, error) {
	format := strings.ToLower(strings.TrimSpace(explicit))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".text":
			format = formatText
		case ".csv":
			format = formatCSV
		default:
			format = formatJSON
		}
	}
	switch format {
	case formatJSON, formatText:
		return format, nil
	case formatCSV:
		if allowCSV {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

func newWorkspaceAddCommand(ctx *commandContext) *cobra.Command {
	var listName, category, file string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a list to a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := ""
			if file != "" {
				var err error
				if content, err = readInput(cmd, file); err != nil {
					return err
				}
			}
			var added workspace.List
			_, err := updateWorkspace(cmd, ctx, args[0], func(ws *workspace.Workspace, _ tokens.Config) error {
				list, err := ws.Add(listName, category)
				if err != nil {
					if errors.Is(err, workspace.ErrListLimit) {
						return fmt.Errorf("workspace %q already has %d lists: %w", args[0], workspace.MaxLists, err)
					}
					return err
				}
				if err := ws.SetContent(list.ID, content); err != nil {
					return err
				}
				added = list
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added list %d (%s) to workspace %s\n", added.ID, added.Name, strings.TrimSpace(args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&listName, "name", "", "List name (defaults to \"List N\")")
	cmd.Flags().StringVar(&category, "category", "", "List category")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Initial content (- for stdin)")
	return cmd
}

func newWorkspaceRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME ID",
		Short: "Remove a list from a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListID(args[1])
			if err != nil {
				return err
			}
			_, err = updateWorkspace(cmd, ctx, args[0], func(ws *workspace.Workspace, _ tokens.Config) error {
				if err := ws.Remove(id); err != nil {
					if errors.Is(err, workspace.ErrMinimumLists) {
						return fmt.Errorf("workspace %q must keep at least %d lists: %w", args[0], workspace.MinLists, err)
					}
					return err
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed list %d from workspace %s\n", id, strings.TrimSpace(args[0]))
			return nil
		},
	}
}

func newWorkspaceSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME ID [FILE]",
		Short: "Replace the content of a list from a file or stdin",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListID(args[1])
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 3 {
				path = args[2]
			}
			content, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			ws, err := updateWorkspace(cmd, ctx, args[0], func(ws *workspace.Workspace, _ tokens.Config) error {
				return ws.SetContent(id, content)
			})
			if err != nil {
				return err
			}
			list, err := ws.Get(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated list %d (%s) in workspace %s\n", list.ID, list.Name, strings.TrimSpace(args[0]))
			return nil
		},
	}
}

func newWorkspaceRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename NAME ID NEW_NAME",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListID(args[1])
			if err != nil {
				return err
			}
			ws, err := updateWorkspace(cmd, ctx, args[0], func(ws *workspace.Workspace, _ tokens.Config) error {
				return ws.Rename(id, args[2])
			})
			if err != nil {
				return err
			}
			list, err := ws.Get(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed list %d to %s\n", list.ID, list.Name)
			return nil
		},
	}
}

func newWorkspaceCategoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "category NAME ID [CATEGORY]",
		Short: "Set or clear the category of a list",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListID(args[1])
			if err != nil {
				return err
			}
			category := ""
			if len(args) == 3 {
				category = args[2]
			}
			ws, err := updateWorkspace(cmd, ctx, args[0], func(ws *workspace.Workspace, _ tokens.Config) error {
				return ws.SetCategory(id, category)
			})
			if err != nil {
				return err
			}
			list, err := ws.Get(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if list.Category == "" {
				fmt.Fprintf(out, "Cleared category of list %d\n", list.ID)
				return nil
			}
			fmt.Fprintf(out, "Set category of list %d to %s\n", list.ID, list.Category)
			return nil
		},
	}
}

func newWorkspaceFilterCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	var clearFilter bool
	cmd := &cobra.Command{
		Use:   "filter NAME ID",
		Short: "Set or clear the filter applied to a list before comparison",
		Long: "Attach a filter to a stored list. The raw content is kept; only the lines the\n" +
			"filter keeps take part in comparison. An invalid pattern leaves the previous\n" +
			"filter in place.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListID(args[1])
			if err != nil {
				return err
			}
			var spec *filter.Spec
			if !clearFilter {
				if flags.spec.Pattern == "" {
					return fmt.Errorf("--pattern is required unless --clear is set")
				}
				next := flags.spec
				spec = &next
			}
			_, err = updateWorkspace(cmd, ctx, args[0], func(ws *workspace.Workspace, _ tokens.Config) error {
				return ws.ApplyFilter(id, spec)
			})
			if err != nil {
				var patternErr *filter.PatternError
				if errors.As(err, &patternErr) {
					logging.WarnWithContext(ctx.loggerFor(cmd), "filter rejected", "filter_invalid",
						logging.String(logging.FieldWorkspace, args[0]),
						logging.Int(logging.FieldListID, id),
						logging.String(logging.FieldErrorKind, patternErr.ErrorKind()),
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "check the pattern syntax"),
						logging.String(logging.FieldImpact, "previous filter kept"),
					)
				}
				return err
			}
			out := cmd.OutOrStdout()
			if spec == nil {
				fmt.Fprintf(out, "Cleared filter on list %d\n", id)
				return nil
			}
			fmt.Fprintf(out, "Filter on list %d set to %s\n", id, describeFilter(spec))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&clearFilter, "clear", false, "Remove the active filter")
	return cmd
}
