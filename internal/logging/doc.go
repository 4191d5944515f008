// Package logging assembles structured slog loggers and formatting helpers used
// across voiceprep commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing (including size-based rotation of on-disk logs), and exposes
// context-aware helpers so job code can automatically tag log lines with the
// stage, speaker, and run correlation ID. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
