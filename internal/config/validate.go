package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"listcmp/internal/tokens"
)

const (
	minListCount = 2
	maxListCount = 5
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateComparison(); err != nil {
		return err
	}
	if err := c.validateLists(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateComparison() error {
	if _, err := tokens.ParseMode(c.Comparison.Mode); err != nil {
		return fmt.Errorf("comparison.mode must be \"text\" or \"numeric\", got %q", c.Comparison.Mode)
	}
	if _, err := language.Parse(c.Comparison.Locale); err != nil {
		return fmt.Errorf("comparison.locale %q is not a valid language tag: %w", c.Comparison.Locale, err)
	}
	return nil
}

func (c *Config) validateLists() error {
	if c.Lists.DefaultCount < minListCount || c.Lists.DefaultCount > maxListCount {
		return fmt.Errorf("lists.default_count must be between %d and %d", minListCount, maxListCount)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "table", "json":
	default:
		return errors.New("output.format must be \"table\" or \"json\"")
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.New("output.color must be one of auto, always, never")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not recognized (use debug, info, warn, or error)", c.Logging.Level)
	}
}
