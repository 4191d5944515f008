package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFprobe reports the ffprobe binary used for duration probing.
//
// An explicit ffprobe command wins. Otherwise an ffprobe that sits next to
// the resolved ffmpeg binary is preferred so custom ffmpeg builds probe with
// their matching ffprobe, falling back to resolving "ffprobe" from PATH.
func ResolveFFprobe(ffmpegCommand, ffprobeCommand string) Status {
	result := Status{
		Name:        "FFprobe",
		Description: "Required for duration probing",
	}

	if explicit := strings.TrimSpace(ffprobeCommand); explicit != "" {
		result.Command = explicit
		path, err := exec.LookPath(explicit)
		if err != nil {
			result.Detail = fmt.Sprintf("binary %q not found", explicit)
			return result
		}
		result.Path = path
		result.Available = true
		return result
	}

	ffmpegBinary := strings.TrimSpace(ffmpegCommand)
	if ffmpegBinary != "" {
		if resolved, err := exec.LookPath(ffmpegBinary); err == nil {
			if candidate, ok := siblingCandidate(resolved, "ffprobe"); ok {
				if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
					result.Command = candidate
					result.Path = candidate
					result.Available = true
					return result
				}
			}
		}
	}

	ffprobeName := "ffprobe"
	if ffprobePath, err := exec.LookPath(ffprobeName); err == nil {
		result.Command = ffprobePath
		result.Path = ffprobePath
		result.Available = true
		return result
	}

	result.Command = ffprobeName
	result.Available = false
	result.Detail = fmt.Sprintf("binary %q not found", ffprobeName)
	return result
}

func siblingCandidate(binaryPath, name string) (string, bool) {
	if binaryPath == "" {
		return "", false
	}
	dir := filepath.Dir(binaryPath)
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(dir, name), true
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
