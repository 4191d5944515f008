package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"voiceprep/internal/config"
	"voiceprep/internal/deps"
)

// MinScratchFreeBytes is the free space required where resampled audio is written.
const MinScratchFreeBytes = 512 << 20

// CheckOpenAI verifies that the transcription endpoint is reachable and the key is valid.
// It uses a 10-second timeout and a single attempt.
func CheckOpenAI(ctx context.Context, baseURL, apiKey string) Result {
	const name = "OpenAI endpoint"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/models", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(apiKey))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeHTTPError(err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", resp.StatusCode)}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least minBytes available.
func CheckFreeSpace(name, path string, minBytes uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s free, need %s)", path, formatBytes(free), formatBytes(minBytes))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s free)", path, formatBytes(free))}
}

// CheckSystemDeps evaluates the external binaries needed by the configured engine.
// Both the transcribe command and "voiceprep deps" use this so the
// requirements list lives in one place.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for resampling",
		},
	}
	if cfg.Transcribe.Engine == "whisperx" {
		requirements = append(requirements, deps.Requirement{
			Name:        "uvx",
			Command:     "uvx",
			Description: "Required for WhisperX-driven transcription",
		})
	}
	statuses := deps.CheckBinaries(requirements)
	return append(statuses, deps.ResolveFFprobe(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
}

// summarizeHTTPError produces a human-readable summary for endpoint check failures.
func summarizeHTTPError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (endpoint unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (endpoint unreachable)"
	}
	return err.Error()
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
