package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "listcmp.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigInitSkipsBrokenConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	broken := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(broken, []byte("[comparison]\nmode = \"fuzzy\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	target := filepath.Join(t.TempDir(), "fresh.toml")

	if _, _, err := runCLI(t, []string{"config", "init", "-p", target}, broken, ""); err != nil {
		t.Fatalf("config init should not load the existing config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, broken, ""); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestConfigValidateReportsDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout := env.mustRun(t, "config", "validate")
	requireContains(t, stdout, "Config path: "+env.configPath)
	requireContains(t, stdout, "Comparison: text, case-insensitive, locale en")
	requireContains(t, stdout, "Configuration valid")
	requireNotContains(t, stdout, "did not exist")

	missing := filepath.Join(env.baseDir, "missing.toml")
	stdout, _, err := runCLI(t, []string{"config", "validate"}, missing, "")
	if err != nil {
		t.Fatalf("validate missing config: %v", err)
	}
	requireContains(t, stdout, "Config file did not exist; defaults were used")
}
