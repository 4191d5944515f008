package logging

import (
	"context"
	"log/slog"

	"voiceprep/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldStage is the standardized structured logging key for job stage names (transcribe, realign).
	FieldStage = "stage"
	// FieldSpeaker is the standardized structured logging key for the speaker directory being processed.
	FieldSpeaker = "speaker"
	// FieldFile is the standardized structured logging key for the audio or annotation path a line refers to.
	FieldFile = "file"
	// FieldCorrelationID is the standardized structured logging key for run correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies a log line for filtering (e.g. file_skipped, checkpoint_saved).
	FieldEventType = "event_type"
	// FieldErrorHint carries the next step an operator should take after a warning or error.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if speaker, ok := services.SpeakerFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSpeaker, speaker))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
