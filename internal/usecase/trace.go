package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("sports-answer/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only opens a child span when the caller is already traced.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name)
}

func endUsecaseSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Kind(err))
		span.SetAttributes(attribute.String("error.kind", Kind(err)))
	}
	span.End()
}

func observeStage(rec *metrics.Recorder, stage Stage, started time.Time, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = Kind(err)
	}
	rec.ObserveStage(string(stage), outcome, time.Since(started))
}
