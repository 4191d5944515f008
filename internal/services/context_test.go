package services_test

import (
	"context"
	"testing"

	"voiceprep/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "transcribe")
	ctx = services.WithSpeaker(ctx, "alice")
	ctx = services.WithRequestID(ctx, "req-123")

	if stage, ok := services.StageFromContext(ctx); !ok || stage != "transcribe" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if speaker, ok := services.SpeakerFromContext(ctx); !ok || speaker != "alice" {
		t.Fatalf("unexpected speaker: %v %v", speaker, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithSpeaker(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.SpeakerFromContext(ctx); ok {
		t.Fatal("expected no speaker value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id")
	}
}
