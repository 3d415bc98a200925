package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"listcmp/internal/config"
	"listcmp/internal/tokens"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "listcmp", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "listcmp")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected file logging off by default, got %q", cfg.Paths.LogDir)
	}
	if cfg.LogFilePath() != "" {
		t.Fatalf("expected empty log file path, got %q", cfg.LogFilePath())
	}
	if cfg.StorePath() != filepath.Join(wantData, "workspaces.db") {
		t.Fatalf("unexpected store path: %q", cfg.StorePath())
	}
	if got := cfg.ComparisonConfig(); got != (tokens.Config{Mode: tokens.ModeText}) {
		t.Fatalf("unexpected comparison config: %+v", got)
	}
	if cfg.Lists.DefaultCount != 2 {
		t.Fatalf("unexpected default list count: %d", cfg.Lists.DefaultCount)
	}
	if cfg.Output.Format != "table" || cfg.Output.Color != "auto" {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.DataDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected data dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "listcmp.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
			LogDir  string `toml:"log_dir"`
		} `toml:"paths"`
		Comparison struct {
			Mode          string `toml:"mode"`
			CaseSensitive bool   `toml:"case_sensitive"`
			Locale        string `toml:"locale"`
		} `toml:"comparison"`
		Output struct {
			Format string `toml:"format"`
		} `toml:"output"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Paths.LogDir = filepath.Join(tempDir, "logs")
	custom.Comparison.Mode = "  Numeric "
	custom.Comparison.CaseSensitive = true
	custom.Comparison.Locale = "de-DE"
	custom.Output.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Comparison.Mode != "numeric" {
		t.Fatalf("expected normalized mode, got %q", cfg.Comparison.Mode)
	}
	if got := cfg.ComparisonConfig(); got != (tokens.Config{Mode: tokens.ModeNumeric, CaseSensitive: true}) {
		t.Fatalf("unexpected comparison config: %+v", got)
	}
	if cfg.Comparison.Locale != "de-DE" {
		t.Fatalf("unexpected locale: %q", cfg.Comparison.Locale)
	}
	if cfg.Output.Format != "json" {
		t.Fatalf("expected lowercased output format, got %q", cfg.Output.Format)
	}
	if cfg.LogFilePath() != filepath.Join(tempDir, "logs", "listcmp.log") {
		t.Fatalf("unexpected log file path: %q", cfg.LogFilePath())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "listcmp.toml")
	if err := os.WriteFile(configPath, []byte("[comparison]\nmodee = \"text\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvOverridesComparison(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LISTCMP_MODE", "numeric")
	t.Setenv("LISTCMP_CASE_SENSITIVE", "true")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.ComparisonConfig(); got != (tokens.Config{Mode: tokens.ModeNumeric, CaseSensitive: true}) {
		t.Fatalf("env overrides not applied: %+v", got)
	}

	t.Setenv("LISTCMP_CASE_SENSITIVE", "sometimes")
	if _, _, _, err := config.Load(""); err == nil || !strings.Contains(err.Error(), "LISTCMP_CASE_SENSITIVE") {
		t.Fatalf("expected invalid boolean error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if !strings.Contains(cfg.Paths.DataDir, "listcmp") {
		t.Fatalf("expected data dir to mention listcmp, got %q", cfg.Paths.DataDir)
	}
	if cfg.Comparison.Mode != "text" || cfg.Comparison.Locale != "en" {
		t.Fatalf("unexpected sample comparison section: %+v", cfg.Comparison)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"mode", func(c *config.Config) { c.Comparison.Mode = "fuzzy" }, "comparison.mode"},
		{"locale", func(c *config.Config) { c.Comparison.Locale = "not a locale" }, "comparison.locale"},
		{"list count low", func(c *config.Config) { c.Lists.DefaultCount = 1 }, "lists.default_count"},
		{"list count high", func(c *config.Config) { c.Lists.DefaultCount = 6 }, "lists.default_count"},
		{"output format", func(c *config.Config) { c.Output.Format = "yaml" }, "output.format"},
		{"output color", func(c *config.Config) { c.Output.Color = "rainbow" }, "output.color"},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q should mention %s", err, tt.want)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
