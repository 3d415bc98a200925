package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"listcmp/internal/exchange"
	"listcmp/internal/filter"
	"listcmp/internal/testsupport"
	"listcmp/internal/workspace"
)

func loadStoredDocument(t *testing.T, env *cliTestEnv, name string) exchange.Document {
	t.Helper()
	st := testsupport.MustOpenStore(t, env.cfg)
	rec, err := st.Load(context.Background(), name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec == nil {
		t.Fatalf("workspace %q not stored", name)
	}
	return rec.Document
}

func TestWorkspaceLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.mustRun(t, "workspace", "list")
	requireContains(t, out, "No saved workspaces")

	out = env.mustRun(t, "workspace", "create", "groceries", "--lists", "3")
	requireContains(t, out, "Created workspace groceries with 3 lists")

	if _, _, err := env.run(t, "workspace", "create", "groceries"); err == nil {
		t.Fatal("expected error when creating an existing workspace")
	}

	first := env.writeList(t, "mine.txt", "milk\neggs\nbread")
	env.mustRun(t, "workspace", "set", "groceries", "1", first)
	if _, _, err := env.runWithInput(t, "eggs, bread, butter", "workspace", "set", "groceries", "2"); err != nil {
		t.Fatalf("set from stdin: %v", err)
	}
	out = env.mustRun(t, "workspace", "rename", "groceries", "1", "Mine")
	requireContains(t, out, "Renamed list 1 to Mine")
	out = env.mustRun(t, "workspace", "category", "groceries", "2", "shared")
	requireContains(t, out, "Set category of list 2 to shared")

	out = env.mustRun(t, "workspace", "list")
	requireContains(t, out, "groceries")

	out = env.mustRun(t, "workspace", "show", "groceries")
	requireContains(t, out, "Mine")
	requireContains(t, out, "shared")
	requireContains(t, out, "Comparison: text, case-insensitive")

	report := decodeReport(t, env.mustRun(t, "--format", "json", "compare", "--workspace", "groceries"))
	if len(report.Results) != 4 {
		t.Fatalf("expected 3 lists plus common, got %d results", len(report.Results))
	}
	if got := report.Results[0].UniqueValues; !slices.Equal(got, []any{"milk"}) {
		t.Fatalf("unexpected unique values for Mine: %v", got)
	}
	if got := report.Results[3].UniqueValues; len(got) != 0 {
		t.Fatalf("empty third list leaves nothing common, got %v", got)
	}

	out = env.mustRun(t, "workspace", "remove", "groceries", "3")
	requireContains(t, out, "Removed list 3")
	_, _, err := env.run(t, "workspace", "remove", "groceries", "2")
	if !errors.Is(err, workspace.ErrMinimumLists) {
		t.Fatalf("expected ErrMinimumLists, got %v", err)
	}

	report = decodeReport(t, env.mustRun(t, "--format", "json", "compare", "-w", "groceries"))
	if got := report.Results[2].UniqueValues; !slices.Equal(got, []any{"eggs", "bread"}) {
		t.Fatalf("unexpected common values: %v", got)
	}

	out = env.mustRun(t, "workspace", "delete", "groceries")
	requireContains(t, out, "Deleted workspace groceries")
	if _, _, err := env.run(t, "workspace", "delete", "groceries"); err == nil {
		t.Fatal("expected error deleting a missing workspace")
	}
	_, _, err = env.run(t, "workspace", "show", "groceries")
	if err == nil {
		t.Fatal("expected error showing a missing workspace")
	}
	requireContains(t, err.Error(), `workspace "groceries" not found`)
}

func TestWorkspaceAddRespectsLimit(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mustRun(t, "workspace", "create", "w", "-n", "4")

	out, _, err := env.runWithInput(t, "x\ny", "workspace", "add", "w", "--name", "Extra", "--category", "misc", "-f", "-")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added list 5 (Extra) to workspace w")

	doc := loadStoredDocument(t, env, "w")
	if len(doc.Lists) != 5 || doc.Lists[4].Content != "x\ny" || doc.Lists[4].Category != "misc" {
		t.Fatalf("unexpected stored lists: %+v", doc.Lists)
	}
	if !slices.Equal(doc.Categories, []string{"misc"}) {
		t.Fatalf("unexpected categories: %v", doc.Categories)
	}

	_, _, err = env.run(t, "workspace", "add", "w")
	if !errors.Is(err, workspace.ErrListLimit) {
		t.Fatalf("expected ErrListLimit, got %v", err)
	}

	if _, _, err := env.run(t, "workspace", "add", "missing"); err == nil {
		t.Fatal("expected error adding to a missing workspace")
	}
}

func TestWorkspaceFilterAffectsComparisonOnly(t *testing.T) {
	env := setupCLITestEnv(t)
	st := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SaveWorkspace(t, st, "w", "apple\napricot\nbanana", "banana\napricot")

	out := env.mustRun(t, "workspace", "filter", "w", "1", "-p", "ap*", "--wildcard")
	requireContains(t, out, `Filter on list 1 set to "ap*" (wildcard)`)

	report := decodeReport(t, env.mustRun(t, "--format", "json", "compare", "-w", "w"))
	if got := report.Results[0].UniqueValues; !slices.Equal(got, []any{"apple"}) {
		t.Fatalf("filtered list should only contribute apple and apricot, got unique %v", got)
	}
	if got := report.Results[1].UniqueValues; !slices.Equal(got, []any{"banana"}) {
		t.Fatalf("unexpected unique values for list 2: %v", got)
	}

	doc := loadStoredDocument(t, env, "w")
	if doc.Lists[0].Content != "apple\napricot\nbanana" {
		t.Fatalf("filter must not change raw content, got %q", doc.Lists[0].Content)
	}

	_, stderr, err := env.run(t, "workspace", "filter", "w", "1", "-p", "(", "--regex")
	if !errors.Is(err, filter.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	requireContains(t, stderr, "filter rejected")
	requireContains(t, stderr, "error_kind=validation")
	doc = loadStoredDocument(t, env, "w")
	if doc.Lists[0].ActiveFilter == nil || doc.Lists[0].ActiveFilter.Pattern != "ap*" {
		t.Fatalf("previous filter should be kept, got %+v", doc.Lists[0].ActiveFilter)
	}

	out = env.mustRun(t, "workspace", "filter", "w", "1", "--clear")
	requireContains(t, out, "Cleared filter on list 1")
	doc = loadStoredDocument(t, env, "w")
	if doc.Lists[0].ActiveFilter != nil {
		t.Fatalf("expected filter cleared, got %+v", doc.Lists[0].ActiveFilter)
	}

	if _, _, err := env.run(t, "workspace", "filter", "w", "1"); err == nil {
		t.Fatal("expected error without --pattern or --clear")
	}
}

func TestWorkspaceContentCommandsRewriteInPlace(t *testing.T) {
	env := setupCLITestEnv(t)
	st := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SaveWorkspace(t, st, "w", "pear, Apple, pear, fig", "x")

	out := env.mustRun(t, "dedupe", "-w", "w", "-l", "1")
	requireContains(t, out, "Applied dedupe to list 1 (List 1) in workspace w")
	env.mustRun(t, "sort", "-w", "w", "-l", "1")
	env.mustRun(t, "case", "upper", "-w", "w", "-l", "1")

	doc := loadStoredDocument(t, env, "w")
	if doc.Lists[0].Content != "APPLE\nFIG\nPEAR" {
		t.Fatalf("unexpected rewritten content %q", doc.Lists[0].Content)
	}
	if doc.Lists[1].Content != "x" {
		t.Fatalf("other lists must be untouched, got %q", doc.Lists[1].Content)
	}

	if _, _, err := env.run(t, "sort", "-w", "w", "-l", "9"); !errors.Is(err, workspace.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestWorkspaceExportImportRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	st := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SaveWorkspace(t, st, "src", "a\nb", "b\nc")
	env.mustRun(t, "workspace", "category", "src", "1", "letters")

	textPath := filepath.Join(env.baseDir, "exports", "src.txt")
	out := env.mustRun(t, "workspace", "export", "src", "-o", textPath)
	requireContains(t, out, "Exported workspace src to "+textPath)
	data, err := os.ReadFile(textPath)
	if err != nil {
		t.Fatalf("read text export: %v", err)
	}
	want := "--- List 1 [letters] ---\na\nb\n\n--- List 2 ---\nb\nc\n"
	if string(data) != want {
		t.Fatalf("unexpected text export:\n%q\nwant\n%q", data, want)
	}

	out = env.mustRun(t, "workspace", "import", "copy", textPath)
	requireContains(t, out, "Imported 2 lists into workspace copy")
	doc := loadStoredDocument(t, env, "copy")
	if doc.Lists[0].Category != "letters" || doc.Lists[1].Content != "b\nc" {
		t.Fatalf("unexpected imported document: %+v", doc.Lists)
	}

	jsonOut := env.mustRun(t, "workspace", "export", "src")
	var exported exchange.Document
	if err := json.Unmarshal([]byte(jsonOut), &exported); err != nil {
		t.Fatalf("decode json export: %v", err)
	}
	if exported.Version != exchange.CurrentVersion || exported.ExportedAt.IsZero() || len(exported.Lists) != 2 {
		t.Fatalf("unexpected json export: %+v", exported)
	}

	if _, _, err := env.runWithInput(t, jsonOut, "workspace", "import", "from-json", "--input-format", "json"); err != nil {
		t.Fatalf("import json from stdin: %v", err)
	}
	if got := loadStoredDocument(t, env, "from-json"); got.Lists[0].Content != "a\nb" {
		t.Fatalf("unexpected json import: %+v", got.Lists)
	}

	csvOut := env.mustRun(t, "workspace", "export", "src", "--output-format", "csv")
	if csvOut != "List 1,List 2,Common\na,c,b\n" {
		t.Fatalf("unexpected csv export %q", csvOut)
	}

	_, _, err = env.runWithInput(t, "stray\n--- A ---\nx", "workspace", "import", "bad", "--input-format", "text")
	if !errors.Is(err, exchange.ErrMalformedText) {
		t.Fatalf("expected ErrMalformedText, got %v", err)
	}
	if _, _, err := env.run(t, "workspace", "import", "bad", "x.yaml", "--input-format", "yaml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWorkspaceStoredComparisonSettings(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mustRun(t, "--mode", "numeric", "workspace", "create", "nums")
	env.mustRun(t, "workspace", "set", "nums", "1", env.writeList(t, "a.txt", "1\n2.0"))
	env.mustRun(t, "workspace", "set", "nums", "2", env.writeList(t, "b.txt", "2"))

	report := decodeReport(t, env.mustRun(t, "--format", "json", "compare", "-w", "nums"))
	if report.Mode != "numeric" {
		t.Fatalf("expected stored numeric mode, got %q", report.Mode)
	}
	if got := report.Results[2].UniqueValues; !slices.Equal(got, []any{float64(2)}) {
		t.Fatalf("unexpected common values: %v", got)
	}

	report = decodeReport(t, env.mustRun(t, "--format", "json", "--mode", "text", "compare", "-w", "nums"))
	if report.Mode != "text" {
		t.Fatalf("flag should override stored mode, got %q", report.Mode)
	}

	out := env.mustRun(t, "--format", "json", "workspace", "list")
	if !strings.Contains(out, `"name": "nums"`) {
		t.Fatalf("expected json summary, got %q", out)
	}
}
