package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether a per-file failure should abort the whole job
// instead of being logged and skipped. Only configuration problems qualify
// on their own: a wrapped context.DeadlineExceeded may come from a per-request
// timeout, so callers decide about cancellation from their own ctx.Err().
func IsFatal(err error) bool {
	return err != nil && errors.Is(err, ErrConfiguration)
}

// Hint returns the next step an operator should take for err, keyed by its
// marker. Unmarked errors get no hint.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "check the configuration with `voiceprep config validate`"
	case errors.Is(err, ErrNotFound):
		return "check paths.audio_dir and the speaker name"
	case errors.Is(err, ErrExternalTool):
		return "run `voiceprep deps` to verify ffmpeg, ffprobe and the recognizer"
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrTransient):
		return "retry; the run resumes from the last checkpoint"
	case errors.Is(err, ErrValidation):
		return "inspect the input file named in the error"
	default:
		return ""
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
