package main

import (
	"errors"
	"testing"

	"listcmp/internal/filter"
)

func TestDedupeKeepsFirstSpelling(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.runWithInput(t, "b\na\nB\na, c", "dedupe")
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	if out != "b\na\nc\n" {
		t.Fatalf("unexpected dedupe output %q", out)
	}

	out, _, err = env.runWithInput(t, "b\na\nB", "--case-sensitive", "dedupe", "-")
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	if out != "b\na\nB\n" {
		t.Fatalf("unexpected case-sensitive dedupe output %q", out)
	}
}

func TestDedupeNumericKeepsText(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.writeList(t, "n.txt", "1\n1.0\nx\n2\nx")

	out := env.mustRun(t, "--mode", "numeric", "dedupe", path)
	if out != "1\nx\n2\n" {
		t.Fatalf("unexpected numeric dedupe output %q", out)
	}
}

func TestSortDirectionsAndModes(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.runWithInput(t, "banana,apple,Cherry", "sort")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if out != "apple\nbanana\nCherry\n" {
		t.Fatalf("unexpected ascending sort %q", out)
	}

	out, _, err = env.runWithInput(t, "banana,apple,Cherry", "sort", "-d", "desc")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if out != "Cherry\nbanana\napple\n" {
		t.Fatalf("unexpected descending sort %q", out)
	}

	out, _, err = env.runWithInput(t, "10\n9\nx\n1", "--mode", "numeric", "sort")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if out != "1\n9\n10\nx\n" {
		t.Fatalf("unexpected numeric sort %q", out)
	}

	if _, _, err := env.runWithInput(t, "a", "sort", "--direction", "sideways"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestFilterCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	input := "apple pie\nbanana\n\nApple\npineapple"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"filter", "-p", "apple"}, "apple pie\nApple\npineapple\n"},
		{"match case", []string{"filter", "-p", "apple", "--match-case"}, "apple pie\npineapple\n"},
		{"whole word", []string{"filter", "-p", "apple", "--whole-word"}, "apple pie\nApple\n"},
		{"wildcard", []string{"filter", "-p", "*apple", "--wildcard"}, "Apple\npineapple\n"},
		{"regex inverted", []string{"filter", "-p", "^a", "--regex", "-v"}, "banana\npineapple\n"},
		{"empty pattern keeps content", []string{"filter"}, input + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := env.runWithInput(t, input, tt.args...)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if out != tt.want {
				t.Fatalf("got %q want %q", out, tt.want)
			}
		})
	}

	_, _, err := env.runWithInput(t, input, "filter", "-p", "(", "--regex")
	if !errors.Is(err, filter.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestCaseCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		kind string
		want string
	}{
		{"upper", "HELLO WORLD\nFOO BAR\n"},
		{"lower", "hello world\nfoo bar\n"},
		{"sentence", "Hello world\nFoo bar\n"},
		{"camelCase", "helloWorld\nfooBar\n"},
		{"pascal", "HelloWorld\nFooBar\n"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			out, _, err := env.runWithInput(t, "hello World\nFOO bar", "case", tt.kind)
			if err != nil {
				t.Fatalf("case %s: %v", tt.kind, err)
			}
			if out != tt.want {
				t.Fatalf("got %q want %q", out, tt.want)
			}
		})
	}

	if _, _, err := env.runWithInput(t, "x", "case", "shouting"); err == nil {
		t.Fatal("expected error for unknown case kind")
	}
}

func TestContentCommandWorkspaceFlagsRequireList(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := env.run(t, "dedupe", "--workspace", "w")
	if err == nil {
		t.Fatal("expected error without --list")
	}
	requireContains(t, err.Error(), "--list is required")
}
