package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"voiceprep/internal/services"
)

// fakeRunner writes payload to the JSON file WhisperX would produce.
func fakeRunner(t *testing.T, payload string, calls *[][]string) func(context.Context, string, ...string) error {
	t.Helper()
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, append([]string{name}, args...))
		source := args[slices.Index(args, "whisperx")+1]
		outDir := args[slices.Index(args, "--output_dir")+1]
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		return os.WriteFile(filepath.Join(outDir, base+".json"), []byte(payload), 0o644)
	}
}

func TestRecognizeReadsLanguageAndText(t *testing.T) {
	work := t.TempDir()
	svc := NewService(Config{Model: "small", BeamSize: 3, WorkDir: work})
	var calls [][]string
	svc.WithCommandRunner(fakeRunner(t, `{"language":"zh","segments":[{"text":" 你好 "},{"text":""},{"text":"世界"}]}`, &calls))

	got, err := svc.Recognize(context.Background(), "/voices/a/line01.wav")
	if err != nil {
		t.Fatalf("Recognize returned error: %v", err)
	}
	if got.Language != "zh" || got.Text != "你好世界" {
		t.Fatalf("unexpected recognition: %#v", got)
	}

	if len(calls) != 1 || calls[0][0] != UVXCommand {
		t.Fatalf("expected a single uvx invocation, got %v", calls)
	}
	args := calls[0]
	if slices.Contains(args, "--language") {
		t.Fatalf("language must be auto-detected, got %v", args)
	}
	if i := slices.Index(args, "--beam_size"); i < 0 || args[i+1] != "3" {
		t.Fatalf("expected beam size 3, got %v", args)
	}
	if i := slices.Index(args, "--model"); i < 0 || args[i+1] != "small" {
		t.Fatalf("expected model small, got %v", args)
	}

	entries, err := os.ReadDir(work)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected output directory cleanup, found %d entries", len(entries))
	}
}

func TestTranscriptTextSeparator(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"zh", "我们走吧。好的"},
		{"Japanese", "我们走吧。好的"},
		{"en", "我们走吧。 好的"},
		{"", "我们走吧。 好的"},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			tr := Transcript{Language: tt.language, Segments: []Segment{{Text: " 我们走吧。"}, {Text: "好的 "}}}
			if got := tr.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}

	en := Transcript{Language: "en", Segments: []Segment{{Text: "let's go"}, {Text: "okay"}}}
	if got := en.Text(); got != "let's go okay" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestRecognizeNormalizesLanguageNames(t *testing.T) {
	svc := NewService(Config{WorkDir: t.TempDir()})
	var calls [][]string
	svc.WithCommandRunner(fakeRunner(t, `{"language":"Japanese","segments":[{"text":"こんにちは"}]}`, &calls))

	got, err := svc.Recognize(context.Background(), "clip.wav")
	if err != nil {
		t.Fatalf("Recognize returned error: %v", err)
	}
	if got.Language != "ja" {
		t.Fatalf("expected ja, got %q", got.Language)
	}
}

func TestRecognizeWrapsToolFailure(t *testing.T) {
	svc := NewService(Config{WorkDir: t.TempDir()})
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("exit status 1")
	})

	_, err := svc.Recognize(context.Background(), "clip.wav")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRecognizeMissingOutput(t *testing.T) {
	svc := NewService(Config{WorkDir: t.TempDir()})
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return nil })

	if _, err := svc.Recognize(context.Background(), "clip.wav"); err == nil {
		t.Fatal("expected error when whisperx writes no json")
	}
}

func TestBuildArgsDevices(t *testing.T) {
	cpu := NewService(Config{VADMethod: VADMethodPyannote, HFToken: "hf_x"}).buildArgs("a.wav", "/out")
	if !slices.Contains(cpu, CPUComputeType) || slices.Contains(cpu, CUDADevice) {
		t.Fatalf("unexpected cpu args: %v", cpu)
	}
	if i := slices.Index(cpu, "--hf_token"); i < 0 || cpu[i+1] != "hf_x" {
		t.Fatalf("expected hf token for pyannote, got %v", cpu)
	}

	if i := slices.Index(cpu, "--device"); i < 0 || cpu[i+1] != CPUDevice {
		t.Fatalf("expected cpu device, got %v", cpu)
	}

	gpuService := NewService(Config{CUDAEnabled: true})
	if gpuService.Device() != CUDADevice {
		t.Fatalf("unexpected device %q", gpuService.Device())
	}
	gpu := gpuService.buildArgs("a.wav", "/out")
	if gpu[1] != CUDAIndexURL || !slices.Contains(gpu, CUDADevice) || slices.Contains(gpu, CPUComputeType) {
		t.Fatalf("unexpected cuda args: %v", gpu)
	}
	if slices.Contains(gpu, "--hf_token") {
		t.Fatalf("silero must not receive hf token: %v", gpu)
	}
}
