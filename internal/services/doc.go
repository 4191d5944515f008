// Package services defines shared utilities consumed by the batch jobs and
// their external integrations (recognizer engines, ffmpeg, ffprobe).
//
// Key responsibilities:
//   - Context helpers that stamp job stage, speaker, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper, IsFatal, which picks
//     out configuration errors that abort a run, and Hint.
//
// Use these helpers when wiring new job logic so error handling and
// observability stay uniform across both stages.
package services
