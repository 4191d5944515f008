package transcription

import (
	"encoding/json"
	"fmt"
	"os"

	"voiceprep/internal/config"
)

type hyperParams struct {
	Data struct {
		SamplingRate int `json:"sampling_rate"`
	} `json:"data"`
}

// LoadSampleRate reads data.sampling_rate from a model hyper-parameter file
// (the finetune_speaker.json shipped with VITS-style training recipes).
func LoadSampleRate(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read hparams: %w", err)
	}
	var hp hyperParams
	if err := json.Unmarshal(raw, &hp); err != nil {
		return 0, fmt.Errorf("parse hparams %s: %w", path, err)
	}
	if hp.Data.SamplingRate <= 0 {
		return 0, fmt.Errorf("hparams %s: data.sampling_rate missing or not positive", path)
	}
	return hp.Data.SamplingRate, nil
}

// ResolveSampleRate picks the resampling target: the hparams file wins when
// configured, otherwise transcribe.target_sample_rate.
func ResolveSampleRate(cfg *config.Config) (int, error) {
	if cfg.Transcribe.HParamsPath != "" {
		return LoadSampleRate(cfg.Transcribe.HParamsPath)
	}
	return cfg.Transcribe.TargetSampleRate, nil
}
