// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result expose the primary audio stream, its sample rate,
// and the clip duration used by the transcription job's length filter.
package ffprobe
