package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of all hfbridge spans.
const TracerName = "github.com/rhuss/hfbridge"

// Span attribute keys.
const (
	AttrProvider     = "hfbridge.provider"
	AttrModel        = "hfbridge.model"
	AttrMode         = "hfbridge.mode"
	AttrRequestID    = "hfbridge.request_id"
	AttrTokensInput  = "hfbridge.tokens.input"
	AttrTokensOutput = "hfbridge.tokens.output"
	AttrFinishReason = "hfbridge.finish_reason"
	AttrOutcome      = "hfbridge.interceptor.outcome"
	AttrTargetURL    = "hfbridge.interceptor.target"
)

// StartSpan starts a span using the globally registered tracer provider.
// Without a registered provider the span is a no-op.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
