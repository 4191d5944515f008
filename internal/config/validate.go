package config

import (
	"errors"
	"fmt"
	"strings"

	"voiceprep/internal/language"
)

// Validate checks every section, as `voiceprep config validate` reports it.
func (c *Config) Validate() error {
	if err := c.ValidateTranscribe(); err != nil {
		return err
	}
	return c.ValidateRealign()
}

// ValidateTranscribe checks the sections the transcription job reads:
// paths, transcribe, the selected engine, and checkpoints.
func (c *Config) ValidateTranscribe() error {
	if err := c.validateTranscribe(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	return c.validateCheckpoint()
}

// ValidateRealign checks only the realign section; engine credentials are
// irrelevant to realignment.
func (c *Config) ValidateRealign() error {
	return c.validateRealign()
}

func (c *Config) validateTranscribe() error {
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		return errors.New("paths.audio_dir must be set")
	}
	if _, err := language.ParseTokenSet(c.Transcribe.Languages); err != nil {
		return fmt.Errorf("transcribe.languages: %w", err)
	}
	if c.Transcribe.HParamsPath == "" && c.Transcribe.TargetSampleRate <= 0 {
		return errors.New("transcribe.target_sample_rate must be positive when transcribe.hparams_path is unset")
	}
	return nil
}

func (c *Config) validateEngine() error {
	switch c.Transcribe.Engine {
	case "whisperx":
		switch c.WhisperX.VADMethod {
		case "silero", "pyannote":
		default:
			return fmt.Errorf("whisperx.vad_method must be silero or pyannote, got %q", c.WhisperX.VADMethod)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return errors.New("openai.api_key is required when transcribe.engine is openai (or set OPENAI_API_KEY)")
		}
	default:
		return fmt.Errorf("transcribe.engine must be whisperx or openai, got %q", c.Transcribe.Engine)
	}
	return nil
}

func (c *Config) validateCheckpoint() error {
	if c.Checkpoint.SaveInterval <= 0 {
		return errors.New("checkpoint.save_interval must be positive")
	}
	if c.Checkpoint.Keep < 1 {
		return errors.New("checkpoint.keep must be >= 1")
	}
	if strings.ContainsAny(c.Checkpoint.Prefix, `/\`) {
		return errors.New("checkpoint.prefix must not contain path separators")
	}
	return nil
}

func (c *Config) validateRealign() error {
	if c.Realign.MinScore < 0 || c.Realign.MinScore > 100 {
		return errors.New("realign.min_score must be between 0 and 100")
	}
	if c.Realign.MinLengthRatio < 0 {
		return errors.New("realign.min_length_ratio must be >= 0")
	}
	switch c.Realign.Scorer {
	case "ratio", "partial_ratio", "token_sort_ratio", "token_set_ratio", "wratio":
	default:
		return fmt.Errorf("realign.scorer: unsupported value %q", c.Realign.Scorer)
	}
	return nil
}
