package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"voiceprep/internal/config"
)

// ConfigOption adjusts a test configuration after its temp layout exists.
// base is the temp root every default path lives under.
type ConfigOption func(t testing.TB, base string, cfg *config.Config)

// NewConfig returns a valid configuration whose every path points inside a
// fresh t.TempDir():
//
//	<base>/voices/           audio root (speaker dirs go here)
//	<base>/checkpoints/
//	<base>/scratch/
//	<base>/logs/
//	<base>/text.csv          reference table
//	<base>/out/anno.txt      annotation output
//	<base>/out/aligned.txt   realign output
//	<base>/out/log.txt       mismatch log
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	out := filepath.Join(base, "out")

	cfg := config.Default()
	cfg.Paths.AudioDir = filepath.Join(base, "voices")
	cfg.Paths.CheckpointDir = filepath.Join(base, "checkpoints")
	cfg.Paths.ScratchDir = filepath.Join(base, "scratch")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AnnotationFile = filepath.Join(out, "anno.txt")
	cfg.Realign.ReferenceFile = filepath.Join(base, "text.csv")
	cfg.Realign.OutputFile = filepath.Join(out, "aligned.txt")
	cfg.Realign.MismatchLog = filepath.Join(out, "log.txt")

	for _, opt := range opts {
		opt(t, base, &cfg)
	}
	return &cfg
}

// BaseDir returns the temp root behind a config built by NewConfig.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.AudioDir)
}

func WithSpeaker(name string) ConfigOption {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.Paths.Speaker = name
	}
}

func WithEngine(engine string) ConfigOption {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.Transcribe.Engine = engine
	}
}

// WithStubbedBinaries puts no-op executables for names at the front of PATH
// for the duration of the test. With no names it stubs ffmpeg, ffprobe and
// uvx.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(t testing.TB, base string, _ *config.Config) {
		t.Helper()
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe", "uvx"}
		}
		binDir := filepath.Join(base, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			t.Fatalf("create stub dir: %v", err)
		}
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
				t.Fatalf("write %s stub: %v", name, err)
			}
		}
		t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}
