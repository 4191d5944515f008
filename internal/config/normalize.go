package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscribe()
	c.normalizeWhisperX()
	c.normalizeOpenAI()
	c.normalizeCheckpoint()
	if err := c.normalizeRealign(); err != nil {
		return err
	}
	c.normalizeLogging()
	return c.normalizeMetrics()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	c.Paths.Speaker = strings.TrimSpace(c.Paths.Speaker)
	if strings.TrimSpace(c.Paths.AnnotationFile) == "" {
		c.Paths.AnnotationFile = defaultAnnotationFile
	}
	if c.Paths.AnnotationFile, err = expandPath(c.Paths.AnnotationFile); err != nil {
		return fmt.Errorf("paths.annotation_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.CheckpointDir) == "" {
		c.Paths.CheckpointDir = defaultCheckpointDir
	}
	if c.Paths.CheckpointDir, err = expandPath(c.Paths.CheckpointDir); err != nil {
		return fmt.Errorf("paths.checkpoint_dir: %w", err)
	}
	if c.Paths.ScratchDir, err = expandPath(strings.TrimSpace(c.Paths.ScratchDir)); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscribe() {
	c.Transcribe.Engine = strings.ToLower(strings.TrimSpace(c.Transcribe.Engine))
	if c.Transcribe.Engine == "" {
		c.Transcribe.Engine = defaultEngine
	}
	c.Transcribe.Languages = strings.TrimSpace(c.Transcribe.Languages)
	if c.Transcribe.Languages == "" {
		c.Transcribe.Languages = defaultLanguages
	}
	c.Transcribe.HParamsPath = strings.TrimSpace(c.Transcribe.HParamsPath)
	if c.Transcribe.HParamsPath != "" {
		if expanded, err := expandPath(c.Transcribe.HParamsPath); err == nil {
			c.Transcribe.HParamsPath = expanded
		}
	}
	c.Transcribe.FFmpegBinary = strings.TrimSpace(c.Transcribe.FFmpegBinary)
	c.Transcribe.FFprobeBinary = strings.TrimSpace(c.Transcribe.FFprobeBinary)
	if c.Transcribe.MaxDurationSeconds < 0 {
		c.Transcribe.MaxDurationSeconds = 0
	}
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = defaultWhisperXModel
	}
	if c.WhisperX.BeamSize <= 0 {
		c.WhisperX.BeamSize = defaultWhisperXBeamSize
	}
	c.WhisperX.VADMethod = strings.ToLower(strings.TrimSpace(c.WhisperX.VADMethod))
	if c.WhisperX.VADMethod == "" {
		c.WhisperX.VADMethod = defaultWhisperXVADMethod
	}
	c.WhisperX.HFToken = strings.TrimSpace(c.WhisperX.HFToken)
	if c.WhisperX.HFToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeOpenAI() {
	c.OpenAI.BaseURL = strings.TrimRight(strings.TrimSpace(c.OpenAI.BaseURL), "/")
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = defaultOpenAIBaseURL
	}
	c.OpenAI.Model = strings.TrimSpace(c.OpenAI.Model)
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = defaultOpenAIModel
	}
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	if c.OpenAI.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.OpenAI.APIKey = strings.TrimSpace(value)
		}
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		c.OpenAI.TimeoutSeconds = defaultOpenAITimeoutSeconds
	}
}

func (c *Config) normalizeCheckpoint() {
	c.Checkpoint.Prefix = strings.TrimSpace(c.Checkpoint.Prefix)
	if c.Checkpoint.Prefix == "" {
		c.Checkpoint.Prefix = defaultCheckpointPrefix
	}
}

func (c *Config) normalizeRealign() error {
	var err error
	if c.Realign.InputFile, err = expandPath(strings.TrimSpace(c.Realign.InputFile)); err != nil {
		return fmt.Errorf("realign.input_file: %w", err)
	}
	if strings.TrimSpace(c.Realign.ReferenceFile) == "" {
		c.Realign.ReferenceFile = defaultReferenceFile
	}
	if c.Realign.ReferenceFile, err = expandPath(c.Realign.ReferenceFile); err != nil {
		return fmt.Errorf("realign.reference_file: %w", err)
	}
	if strings.TrimSpace(c.Realign.OutputFile) == "" {
		c.Realign.OutputFile = defaultRealignOutput
	}
	if c.Realign.OutputFile, err = expandPath(c.Realign.OutputFile); err != nil {
		return fmt.Errorf("realign.output_file: %w", err)
	}
	if strings.TrimSpace(c.Realign.MismatchLog) == "" {
		c.Realign.MismatchLog = defaultMismatchLog
	}
	if c.Realign.MismatchLog, err = expandPath(c.Realign.MismatchLog); err != nil {
		return fmt.Errorf("realign.mismatch_log: %w", err)
	}
	c.Realign.Scorer = strings.ToLower(strings.TrimSpace(c.Realign.Scorer))
	if c.Realign.Scorer == "" {
		c.Realign.Scorer = defaultScorer
	}
	return nil
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
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
}

func (c *Config) normalizeMetrics() error {
	var err error
	if c.Metrics.TextfilePath, err = expandPath(strings.TrimSpace(c.Metrics.TextfilePath)); err != nil {
		return fmt.Errorf("metrics.textfile_path: %w", err)
	}
	return nil
}
