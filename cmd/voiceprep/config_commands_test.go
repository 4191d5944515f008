package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "zh,ja,en")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("expected init without --overwrite to refuse an existing file")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, env.configPath); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigInitStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"config", "init", "--stdout"}, env.configPath)
	if err != nil {
		t.Fatalf("config init --stdout: %v", err)
	}
	requireContains(t, out, "[realign]")
	requireContains(t, out, "min_length_ratio")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := filepath.Join(env.baseDir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[checkpoint]\nkeep = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, bad); err == nil {
		t.Fatal("expected validation error")
	}
}
