package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"voiceprep/internal/media/ffprobe"
)

// Runner executes an external command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec
}

// Toolkit wraps the ffmpeg/ffprobe binaries used by the transcription job.
type Toolkit struct {
	FFmpeg  string
	FFprobe string
	runner  Runner
}

// NewToolkit returns a toolkit using the given binaries (defaults apply when empty).
func NewToolkit(ffmpegBinary, ffprobeBinary string) *Toolkit {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(ffprobeBinary) == "" {
		ffprobeBinary = "ffprobe"
	}
	return &Toolkit{FFmpeg: ffmpegBinary, FFprobe: ffprobeBinary}
}

// WithRunner swaps the command runner (for testing).
func (t *Toolkit) WithRunner(runner Runner) *Toolkit {
	if runner != nil {
		t.runner = runner
	}
	return t
}

// Probe inspects a clip with ffprobe.
func (t *Toolkit) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	if t.runner == nil {
		return ffprobe.Inspect(ctx, t.FFprobe, path)
	}
	if strings.TrimSpace(path) == "" {
		return ffprobe.Result{}, fmt.Errorf("ffprobe inspect: empty path")
	}
	output, err := t.runner(ctx, t.FFprobe, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	if err != nil {
		return ffprobe.Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return ffprobe.Parse(output)
}

// Resample converts the first audio stream of source to a mono PCM s16le WAV
// at rate Hz, overwriting dest.
func (t *Toolkit) Resample(ctx context.Context, source, dest string, rate int) error {
	args, err := BuildResampleArgs(source, dest, rate)
	if err != nil {
		return err
	}
	run := t.runner
	if run == nil {
		run = execRunner
	}
	if output, err := run(ctx, t.FFmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg resample: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// BuildResampleArgs returns the ffmpeg arguments used by Resample.
func BuildResampleArgs(source, dest string, rate int) ([]string, error) {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return nil, fmt.Errorf("resample: source and destination required")
	}
	if rate <= 0 {
		return nil, fmt.Errorf("resample: invalid sample rate %d", rate)
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", strconv.Itoa(rate),
		"-c:a", "pcm_s16le",
		dest,
	}, nil
}
