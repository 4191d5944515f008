package services

import "context"

type contextKey string

const (
	stageKey     contextKey = "stage"
	speakerKey   contextKey = "speaker"
	requestIDKey contextKey = "request_id"
)

// WithStage annotates ctx with the job stage (transcribe, realign).
func WithStage(ctx context.Context, stage string) context.Context {
	return withString(ctx, stageKey, stage)
}

func StageFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, stageKey)
}

// WithSpeaker annotates ctx with the speaker whose clips are being processed.
func WithSpeaker(ctx context.Context, speaker string) context.Context {
	return withString(ctx, speakerKey, speaker)
}

func SpeakerFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, speakerKey)
}

// WithRequestID annotates ctx with the correlation id shared by every log
// line of one run.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey)
}

// Empty values leave ctx untouched so an outer annotation survives.
func withString(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}
