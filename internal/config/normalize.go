package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeComparison(); err != nil {
		return err
	}
	c.normalizeLists()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeComparison() error {
	if value, ok := os.LookupEnv(envMode); ok && strings.TrimSpace(value) != "" {
		c.Comparison.Mode = value
	}
	if value, ok := os.LookupEnv(envCaseSensitive); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", envCaseSensitive, value)
		}
		c.Comparison.CaseSensitive = parsed
	}
	c.Comparison.Mode = strings.ToLower(strings.TrimSpace(c.Comparison.Mode))
	if c.Comparison.Mode == "" {
		c.Comparison.Mode = defaultMode
	}
	c.Comparison.Locale = strings.TrimSpace(c.Comparison.Locale)
	if c.Comparison.Locale == "" {
		c.Comparison.Locale = defaultLocale
	}
	return nil
}

func (c *Config) normalizeLists() {
	if c.Lists.DefaultCount == 0 {
		c.Lists.DefaultCount = defaultListCount
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultOutputColor
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
