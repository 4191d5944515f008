package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"voiceprep/internal/config"
	"voiceprep/internal/deps"
)

// CheckEngineFromConfig evaluates the configured recognizer backend.
func CheckEngineFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Recognizer"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	switch cfg.Transcribe.Engine {
	case "whisperx":
		status := deps.CheckBinaries([]deps.Requirement{{Name: "uvx", Command: "uvx"}})[0]
		if !status.Available {
			return Result{Name: name, Detail: "whisperx: " + status.Detail}
		}
		device := "cpu"
		if cfg.WhisperX.CUDAEnabled {
			device = "cuda"
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("whisperx %s on %s", cfg.WhisperX.Model, device)}
	case "openai":
		if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
			return Result{Name: name, Detail: "openai: Missing API key"}
		}
		check := CheckOpenAI(ctx, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey)
		detail := fmt.Sprintf("openai %s: %s", cfg.OpenAI.Model, check.Detail)
		return Result{Name: name, Passed: check.Passed, Detail: detail}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("unsupported engine %q", cfg.Transcribe.Engine)}
	}
}

// CheckFileReadable verifies that path is a regular file the process can read.
func CheckFileReadable(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, formatBytes(uint64(info.Size())))}
}
