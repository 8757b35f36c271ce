package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestIsHandlerSpan(t *testing.T) {
	tests := map[string]bool{
		"httpapi.Handler.RecordMatch": true,
		"httpapi.Handler.":            false,
		"httpapi.RequestLogging":      false,
		"httpapi.recoverPanic":        false,
	}
	for name, want := range tests {
		if got := isHandlerSpan(name); got != want {
			t.Fatalf("isHandlerSpan(%q)=%v want=%v", name, got, want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.ListTournaments")
	if got != ctx {
		t.Fatalf("expected ctx to be returned unchanged")
	}
	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Fatalf("expected a no-op span")
	}
	if trace.SpanFromContext(got).SpanContext().IsValid() {
		t.Fatalf("expected no span in ctx")
	}
}
