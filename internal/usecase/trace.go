package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer   = otel.Tracer("tournament-league/internal/usecase")
	usecaseNoopSpan = trace.SpanFromContext(context.Background())
)

const (
	attrTournamentID = attribute.Key("tournament.id")
	attrMatchID      = attribute.Key("match.id")
	attrUserID       = attribute.Key("user.id")
)

// startUsecaseSpan only opens child spans; calls made outside a traced
// request (tests, bootstrap) get a no-op span.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
