package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"listcmp/internal/workspace"
)

const stdinArg = "-"

// listInput is one list read from a file or stdin.
type listInput struct {
	Name    string
	Content string
}

// readListInputs reads every path as one list. "-" reads stdin, which can
// only be consumed once.
func readListInputs(cmd *cobra.Command, paths []string) ([]listInput, error) {
	inputs := make([]listInput, 0, len(paths))
	stdinUsed := false
	for _, path := range paths {
		if path == stdinArg {
			if stdinUsed {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			stdinUsed = true
		}
		content, err := readInput(cmd, path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, listInput{Name: inputName(path), Content: content})
	}
	return inputs, nil
}

// readInput returns the content of path, or stdin for "" and "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read list file: %w", err)
	}
	return string(data), nil
}

func inputName(path string) string {
	if path == stdinArg {
		return "stdin"
	}
	base := filepath.Base(path)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}

// workspaceFromInputs builds a workspace holding one list per input, with ids
// assigned in argument order.
func workspaceFromInputs(inputs []listInput) (*workspace.Workspace, error) {
	if len(inputs) < workspace.MinLists {
		return nil, fmt.Errorf("need at least %d lists, got %d", workspace.MinLists, len(inputs))
	}
	if len(inputs) > workspace.MaxLists {
		return nil, fmt.Errorf("at most %d lists can be compared, got %d: %w", workspace.MaxLists, len(inputs), workspace.ErrListLimit)
	}
	lists := make([]workspace.List, 0, len(inputs))
	for i, in := range inputs {
		lists = append(lists, workspace.List{ID: i + 1, Name: in.Name, Content: in.Content})
	}
	return workspace.Restore(lists)
}

func writeContent(cmd *cobra.Command, content string) error {
	out := cmd.OutOrStdout()
	if content == "" {
		return nil
	}
	if _, err := fmt.Fprintln(out, content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
