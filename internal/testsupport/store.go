package testsupport

import (
	"testing"

	"voiceprep/internal/annotation"
	"voiceprep/internal/checkpoint"
	"voiceprep/internal/config"
	"voiceprep/internal/logging"
)

// MustOpenCheckpoints opens the checkpoint store described by cfg for tests.
func MustOpenCheckpoints(t testing.TB, cfg *config.Config) *checkpoint.Store {
	t.Helper()

	return checkpoint.New(cfg.Paths.CheckpointDir, cfg.Checkpoint.Prefix, cfg.Checkpoint.Keep, logging.NewNop())
}

// SeedCheckpoint saves records as a checkpoint snapshot for tests.
func SeedCheckpoint(t testing.TB, store *checkpoint.Store, records []annotation.Record) checkpoint.Info {
	t.Helper()

	info, err := store.Save(records)
	if err != nil {
		t.Fatalf("checkpoint.Save: %v", err)
	}
	return info
}
