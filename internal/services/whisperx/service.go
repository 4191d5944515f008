package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	langpkg "voiceprep/internal/language"
	"voiceprep/internal/services"
	"voiceprep/internal/speech"
)

// Service runs WhisperX through uvx and implements speech.Recognizer.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Name identifies the engine.
func (s *Service) Name() string { return "whisperx" }

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Device returns the torch device passed to --device.
func (s *Service) Device() string {
	if s.cfg.CUDAEnabled {
		return CUDADevice
	}
	return CPUDevice
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	// Force legacy behavior so bundled WhisperX binaries can load checkpoints safely.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Recognize transcribes a WAV file with language auto-detection.
func (s *Service) Recognize(ctx context.Context, audioPath string) (speech.Recognition, error) {
	if strings.TrimSpace(audioPath) == "" {
		return speech.Recognition{}, services.Wrap(services.ErrValidation, "transcribe", "whisperx", "audio path required", nil)
	}
	if s.cfg.WorkDir != "" {
		if err := os.MkdirAll(s.cfg.WorkDir, 0o755); err != nil {
			return speech.Recognition{}, fmt.Errorf("whisperx: ensure work dir: %w", err)
		}
	}
	outputDir, err := os.MkdirTemp(s.cfg.WorkDir, "whisperx-")
	if err != nil {
		return speech.Recognition{}, fmt.Errorf("whisperx: create output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	if err := s.run(ctx, UVXCommand, s.buildArgs(audioPath, outputDir)...); err != nil {
		if ctx.Err() != nil {
			return speech.Recognition{}, ctx.Err()
		}
		return speech.Recognition{}, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", "run whisperx", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	transcript, err := LoadTranscript(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		return speech.Recognition{}, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", "read output", err)
	}
	return speech.Recognition{
		Language: langpkg.ToISO2(transcript.Language),
		Text:     transcript.Text(),
	}, nil
}

// buildArgs constructs the uvx command arguments for WhisperX. No
// --language flag is passed so WhisperX detects the language itself.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 32)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	beam := s.cfg.BeamSize
	if beam <= 0 {
		beam = DefaultBeamSize
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--beam_size", strconv.Itoa(beam),
		"--best_of", BestOf,
		"--temperature", Temperature,
		"--no_align",
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	args = append(args, "--device", s.Device())
	if !s.cfg.CUDAEnabled {
		args = append(args, "--compute_type", CPUComputeType)
	}

	return args
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the JSON document WhisperX writes per input file.
type Transcript struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Text concatenates non-empty segment texts. Chinese, Cantonese and
// Japanese segments are joined without a separator since those scripts do
// not put spaces between words.
func (t Transcript) Text() string {
	var parts []string
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	sep := " "
	switch langpkg.ToISO2(t.Language) {
	case "zh", "ja", "yue":
		sep = ""
	}
	return strings.Join(parts, sep)
}

// LoadTranscript loads a WhisperX JSON file.
func LoadTranscript(jsonPath string) (Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Transcript{}, err
	}
	var payload Transcript
	if err := json.Unmarshal(data, &payload); err != nil {
		return Transcript{}, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload, nil
}
