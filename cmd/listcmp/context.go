package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"listcmp/internal/config"
	"listcmp/internal/exchange"
	"listcmp/internal/logging"
	"listcmp/internal/sorting"
	"listcmp/internal/store"
	"listcmp/internal/tokens"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	config        string
	logLevel      string
	format        string
	mode          string
	caseSensitive bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// applyOverrides folds flag values into cfg. --case-sensitive is applied per
// command by comparisonConfig because only the command knows if it was set.
func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if level := strings.TrimSpace(c.flags.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if format := strings.TrimSpace(c.flags.format); format != "" {
		cfg.Output.Format = strings.ToLower(format)
	}
	if mode := strings.TrimSpace(c.flags.mode); mode != "" {
		cfg.Comparison.Mode = strings.ToLower(mode)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("command line flags: %w", err)
	}
	return nil
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerFor returns the process logger tagged with the command path. Log
// records go to the command's stderr so stdout only carries results.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	})
	if c.loggerErr != nil || c.logger == nil {
		return logging.NewNop()
	}
	ctx := logging.ContextWithCommand(cmd.Context(), cmd.CommandPath())
	return logging.WithContext(ctx, logging.NewComponentLogger(c.logger, "cli"))
}

// comparisonConfig resolves the comparison policy. Explicit flags win over a
// workspace's stored settings, which win over the config file.
func (c *commandContext) comparisonConfig(cmd *cobra.Command, doc *exchange.Document) (tokens.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return tokens.Config{}, err
	}
	result := cfg.ComparisonConfig()
	if doc != nil {
		stored, ok, err := doc.ComparisonConfig()
		if err != nil {
			return tokens.Config{}, fmt.Errorf("workspace comparison settings: %w", err)
		}
		if ok {
			if strings.TrimSpace(c.flags.mode) == "" {
				result.Mode = stored.Mode
			}
			result.CaseSensitive = stored.CaseSensitive
		}
	}
	if cmd.Flags().Changed("case-sensitive") {
		result.CaseSensitive = c.flags.caseSensitive
	}
	return result, nil
}

func (c *commandContext) sorter() (*sorting.Sorter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return sorting.NewSorterForLocale(cfg.Comparison.Locale)
}

func (c *commandContext) jsonOutput() bool {
	cfg := c.configValue()
	return cfg != nil && cfg.Output.Format == "json"
}

func (c *commandContext) colorize(w io.Writer) bool {
	cfg := c.configValue()
	if cfg == nil {
		return false
	}
	switch cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return shouldColorize(w)
	}
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open workspace store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
