package transcription

import (
	"fmt"
	"time"

	"voiceprep/internal/config"
	"voiceprep/internal/language"
	"voiceprep/internal/services"
	"voiceprep/internal/services/openai"
	"voiceprep/internal/services/whisperx"
	"voiceprep/internal/speech"
)

// NewRecognizer builds the engine selected by transcribe.engine.
func NewRecognizer(cfg *config.Config) (speech.Recognizer, error) {
	switch cfg.Transcribe.Engine {
	case "whisperx":
		return whisperx.NewService(whisperx.Config{
			Model:       cfg.WhisperX.Model,
			CUDAEnabled: cfg.WhisperX.CUDAEnabled,
			BeamSize:    cfg.WhisperX.BeamSize,
			VADMethod:   cfg.WhisperX.VADMethod,
			HFToken:     cfg.WhisperX.HFToken,
			WorkDir:     cfg.Paths.ScratchDir,
		}), nil
	case "openai":
		return openai.NewClient(cfg.OpenAI.APIKey,
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithTimeout(time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second),
		), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "engine",
			fmt.Sprintf("unsupported engine %q", cfg.Transcribe.Engine), nil)
	}
}

// OptionsFromConfig resolves the speaker directory, sample rate, and
// language tokens for a run.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	speakerDir, err := ResolveSpeakerDir(cfg.Paths.AudioDir, cfg.Paths.Speaker)
	if err != nil {
		return Options{}, err
	}
	rate, err := ResolveSampleRate(cfg)
	if err != nil {
		return Options{}, services.Wrap(services.ErrConfiguration, "transcribe", "sample rate", "resolve target rate", err)
	}
	tokens, err := language.ParseTokenSet(cfg.Transcribe.Languages)
	if err != nil {
		return Options{}, services.Wrap(services.ErrConfiguration, "transcribe", "languages", cfg.Transcribe.Languages, err)
	}
	return Options{
		SpeakerDir:         speakerDir,
		OutputPath:         cfg.Paths.AnnotationFile,
		ScratchDir:         cfg.Paths.ScratchDir,
		SampleRate:         rate,
		MaxDurationSeconds: cfg.Transcribe.MaxDurationSeconds,
		KeepResampled:      cfg.Transcribe.KeepResampled,
		SaveInterval:       cfg.Checkpoint.SaveInterval,
		Languages:          tokens,
	}, nil
}
