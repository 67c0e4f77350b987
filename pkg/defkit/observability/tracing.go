package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the defkit tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("defkit")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span for a single name resolution.
	// Returns the context with span and the span itself.
	StartResolveSpan(ctx context.Context, kind, name string) (context.Context, trace.Span)

	// StartDiscoverySpan starts a span for a discovery run.
	// Any resolution the run triggers should use the returned context.
	StartDiscoverySpan(ctx context.Context, kind string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartResolveSpan starts a span for a single name resolution.
func (m *otelSpanManager) StartResolveSpan(ctx context.Context, kind, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "defkit.resolve",
		trace.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("name", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDiscoverySpan starts a span for a discovery run.
func (m *otelSpanManager) StartDiscoverySpan(ctx context.Context, kind string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "defkit.discovery",
		trace.WithAttributes(
			attribute.String("kind", kind),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
