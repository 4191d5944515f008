package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"voiceprep/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("OPENAI_API_KEY", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "voiceprep", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if !filepath.IsAbs(cfg.Paths.AudioDir) || filepath.Base(cfg.Paths.AudioDir) != "custom_character_voice" {
		t.Fatalf("unexpected audio dir: %q", cfg.Paths.AudioDir)
	}
	if cfg.Transcribe.Engine != "whisperx" {
		t.Fatalf("expected whisperx engine by default, got %q", cfg.Transcribe.Engine)
	}
	if cfg.Transcribe.Languages != "CJE" {
		t.Fatalf("expected CJE languages by default, got %q", cfg.Transcribe.Languages)
	}
	if cfg.Checkpoint.SaveInterval != 100 {
		t.Fatalf("unexpected save interval: %d", cfg.Checkpoint.SaveInterval)
	}
	if cfg.Checkpoint.Keep != config.Default().Checkpoint.Keep {
		t.Fatalf("unexpected checkpoint keep: %d", cfg.Checkpoint.Keep)
	}
	if cfg.Realign.MinScore != 72.5 || cfg.Realign.MinLengthRatio != 0.71 {
		t.Fatalf("unexpected realign thresholds: %v / %v", cfg.Realign.MinScore, cfg.Realign.MinLengthRatio)
	}
	if cfg.RealignInput() != cfg.Paths.AnnotationFile {
		t.Fatalf("expected realign input to default to annotation file, got %q", cfg.RealignInput())
	}
	if cfg.WhisperX.VADMethod != "silero" {
		t.Fatalf("expected silero VAD by default, got %q", cfg.WhisperX.VADMethod)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "voiceprep.toml")

	type payload struct {
		Paths struct {
			AudioDir string `toml:"audio_dir"`
			Speaker  string `toml:"speaker"`
		} `toml:"paths"`
		Transcribe struct {
			Engine    string `toml:"engine"`
			Languages string `toml:"languages"`
		} `toml:"transcribe"`
		OpenAI struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"openai"`
		Checkpoint struct {
			Keep int `toml:"keep"`
		} `toml:"checkpoint"`
	}
	custom := payload{}
	custom.Paths.AudioDir = filepath.Join(tempDir, "voices")
	custom.Paths.Speaker = " alice "
	custom.Transcribe.Engine = "OpenAI"
	custom.Transcribe.Languages = "zh,ko"
	custom.OpenAI.APIKey = "sk-test"
	custom.OpenAI.BaseURL = "http://localhost:9000/v1/"
	custom.Checkpoint.Keep = 3
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
	if cfg.Paths.Speaker != "alice" {
		t.Fatalf("expected trimmed speaker, got %q", cfg.Paths.Speaker)
	}
	if cfg.Transcribe.Engine != "openai" {
		t.Fatalf("expected lower-cased engine, got %q", cfg.Transcribe.Engine)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:9000/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.OpenAI.BaseURL)
	}
	if cfg.Checkpoint.Keep != 3 {
		t.Fatalf("expected keep override, got %d", cfg.Checkpoint.Keep)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "voiceprep.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\naudio_dirr = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to fail")
	}
}

func TestOpenAIKeyFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "voiceprep.toml")
	if err := os.WriteFile(configPath, []byte("[transcribe]\nengine = \"openai\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "")
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.ValidateTranscribe(); err == nil || !strings.Contains(err.Error(), "openai.api_key") {
		t.Fatalf("expected missing api key error, got %v", err)
	}
	if err := cfg.ValidateRealign(); err != nil {
		t.Fatalf("realign should not need engine credentials: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "  env-key ")
	cfg, _, _, err = config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OpenAI.APIKey != "env-key" {
		t.Fatalf("expected key from env, got %q", cfg.OpenAI.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"keep", func(c *config.Config) { c.Checkpoint.Keep = 0 }, "checkpoint.keep"},
		{"interval", func(c *config.Config) { c.Checkpoint.SaveInterval = 0 }, "checkpoint.save_interval"},
		{"languages", func(c *config.Config) { c.Transcribe.Languages = "zh,q1" }, "transcribe.languages"},
		{"engine", func(c *config.Config) { c.Transcribe.Engine = "vosk" }, "transcribe.engine"},
		{"score", func(c *config.Config) { c.Realign.MinScore = 120 }, "realign.min_score"},
		{"scorer", func(c *config.Config) { c.Realign.Scorer = "jaro" }, "realign.scorer"},
		{"sample rate", func(c *config.Config) { c.Transcribe.TargetSampleRate = 0 }, "target_sample_rate"},
		{"prefix", func(c *config.Config) { c.Checkpoint.Prefix = "a/b" }, "checkpoint.prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateSplitsByJob(t *testing.T) {
	cfg := config.Default()
	cfg.Transcribe.Languages = "zh,q1"
	if err := cfg.ValidateRealign(); err != nil {
		t.Fatalf("realign validation should ignore transcribe settings: %v", err)
	}
	if err := cfg.ValidateTranscribe(); err == nil {
		t.Fatal("expected transcribe validation to reject languages")
	}

	cfg = config.Default()
	cfg.Realign.Scorer = "jaro"
	if err := cfg.ValidateTranscribe(); err != nil {
		t.Fatalf("transcribe validation should ignore realign settings: %v", err)
	}
	if err := cfg.ValidateRealign(); err == nil {
		t.Fatal("expected realign validation to reject scorer")
	}
}

func TestCreateSampleLoads(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CheckpointDir = filepath.Join(base, "ckpt")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AnnotationFile = filepath.Join(base, "out", "anno.txt")
	cfg.Realign.OutputFile = filepath.Join(base, "out", "aligned.txt")
	cfg.Realign.MismatchLog = filepath.Join(base, "out", "log.txt")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CheckpointDir, cfg.Paths.LogDir, filepath.Join(base, "out")} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q, err=%v", dir, err)
		}
	}
}
