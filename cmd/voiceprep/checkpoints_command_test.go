package main

import (
	"strings"
	"testing"

	"voiceprep/internal/annotation"
	"voiceprep/internal/testsupport"
)

func TestCheckpointsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"checkpoints"}, env.configPath)
	if err != nil {
		t.Fatalf("checkpoints: %v", err)
	}
	requireContains(t, out, "No checkpoints")

	if _, _, err := runCLI(t, []string{"checkpoints", "--latest"}, env.configPath); err == nil {
		t.Fatal("expected --latest to fail without checkpoints")
	}

	store := testsupport.MustOpenCheckpoints(t, env.cfg)
	testsupport.SeedCheckpoint(t, store, []annotation.Record{{Path: "a.wav", Text: "[EN]hi[EN]"}})
	latest := testsupport.SeedCheckpoint(t, store, []annotation.Record{
		{Path: "a.wav", Text: "[EN]hi[EN]"},
		{Path: "b.wav", Text: "[ZH]你好[ZH]"},
	})

	out, _, err = runCLI(t, []string{"checkpoints"}, env.configPath)
	if err != nil {
		t.Fatalf("checkpoints: %v", err)
	}
	requireContains(t, out, env.cfg.Checkpoint.Prefix+"1.txt")
	requireContains(t, out, env.cfg.Checkpoint.Prefix+"2.txt")

	out, _, err = runCLI(t, []string{"checkpoints", "--latest"}, env.configPath)
	if err != nil {
		t.Fatalf("checkpoints --latest: %v", err)
	}
	if strings.TrimSpace(out) != latest.Path {
		t.Fatalf("expected latest %q, got %q", latest.Path, out)
	}
}
