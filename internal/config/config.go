package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"voiceprep/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input and output locations shared by both jobs.
type Paths struct {
	AudioDir       string `toml:"audio_dir"`
	Speaker        string `toml:"speaker"`
	AnnotationFile string `toml:"annotation_file"`
	CheckpointDir  string `toml:"checkpoint_dir"`
	ScratchDir     string `toml:"scratch_dir"`
	LogDir         string `toml:"log_dir"`
}

// Transcribe contains settings for the transcription job.
type Transcribe struct {
	// Engine selects the recognizer backend ("whisperx" or "openai").
	Engine string `toml:"engine"`
	// Languages is a preset ("CJE", "CJ", "C") or a comma separated list of ISO 639-1 codes.
	Languages string `toml:"languages"`
	// TargetSampleRate is the rate audio is resampled to before recognition.
	TargetSampleRate int `toml:"target_sample_rate"`
	// HParamsPath points at a model hyper-parameter JSON file whose
	// data.sampling_rate overrides TargetSampleRate when set.
	HParamsPath        string  `toml:"hparams_path"`
	MaxDurationSeconds float64 `toml:"max_duration_seconds"`
	// KeepResampled stores resampled audio next to the source as processed_<name>.wav
	// and records that path in the annotation file.
	KeepResampled bool `toml:"keep_resampled"`
	// FFmpegBinary and FFprobeBinary override the tools looked up on PATH.
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
}

// WhisperX contains settings for the local WhisperX engine.
type WhisperX struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	BeamSize    int    `toml:"beam_size"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
}

// OpenAI contains settings for an OpenAI-compatible transcription endpoint.
type OpenAI struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Checkpoint controls periodic snapshots of the annotation set.
type Checkpoint struct {
	Prefix       string `toml:"prefix"`
	SaveInterval int    `toml:"save_interval"`
	Keep         int    `toml:"keep"`
}

// Realign contains settings for the realignment job.
type Realign struct {
	InputFile      string  `toml:"input_file"`
	ReferenceFile  string  `toml:"reference_file"`
	OutputFile     string  `toml:"output_file"`
	MismatchLog    string  `toml:"mismatch_log"`
	MinScore       float64 `toml:"min_score"`
	MinLengthRatio float64 `toml:"min_length_ratio"`
	Scorer         string  `toml:"scorer"`
	Normalize      bool    `toml:"normalize"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Metrics controls the optional node_exporter textfile export.
type Metrics struct {
	TextfilePath string `toml:"textfile_path"`
}

// Config encapsulates all configuration values for voiceprep.
//
// Configuration sections by subsystem:
//   - Paths: audio input, annotation output, checkpoints, scratch and logs
//   - Transcribe: engine selection, language set, resampling and duration limits
//   - WhisperX / OpenAI: recognizer backend settings
//   - Checkpoint: snapshot naming, interval and retention
//   - Realign: reference table, thresholds and outputs
//   - Logging: log format, level and rotation
//   - Metrics: textfile export of job counters
type Config struct {
	Paths      Paths      `toml:"paths"`
	Transcribe Transcribe `toml:"transcribe"`
	WhisperX   WhisperX   `toml:"whisperx"`
	OpenAI     OpenAI     `toml:"openai"`
	Checkpoint Checkpoint `toml:"checkpoint"`
	Realign    Realign    `toml:"realign"`
	Logging    Logging    `toml:"logging"`
	Metrics    Metrics    `toml:"metrics"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates and parses a configuration file. The returned config has all
// path fields expanded and normalized; job-specific validation is left to
// ValidateTranscribe and ValidateRealign so one job never fails on settings
// only the other uses.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("voiceprep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the jobs write into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.CheckpointDir, c.Paths.LogDir}
	if c.Paths.ScratchDir != "" {
		dirs = append(dirs, c.Paths.ScratchDir)
	}
	for _, file := range []string{c.Paths.AnnotationFile, c.Realign.OutputFile, c.Realign.MismatchLog} {
		if strings.TrimSpace(file) != "" {
			dirs = append(dirs, filepath.Dir(file))
		}
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for resampling.
func (c *Config) FFmpegBinary() string {
	if c.Transcribe.FFmpegBinary != "" {
		return c.Transcribe.FFmpegBinary
	}
	return "ffmpeg"
}

// FFprobeBinary returns the configured ffprobe executable, or empty when
// unset so callers can resolve it next to ffmpeg.
func (c *Config) FFprobeBinary() string {
	return c.Transcribe.FFprobeBinary
}

// RealignInput returns the annotation file the realignment job reads.
func (c *Config) RealignInput() string {
	if strings.TrimSpace(c.Realign.InputFile) != "" {
		return c.Realign.InputFile
	}
	return c.Paths.AnnotationFile
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// Sample returns the annotated sample configuration.
func Sample() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to path, replacing any
// existing file atomically.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
