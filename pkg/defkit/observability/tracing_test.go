package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("defkit")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartResolveSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with kind and name attributes", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartResolveSpan(ctx, "job", "ingest")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "defkit.resolve", s.Name)

		var kind, name string
		for _, attr := range s.Attributes {
			switch attr.Key {
			case "kind":
				kind = attr.Value.AsString()
			case "name":
				name = attr.Value.AsString()
			}
		}
		assert.Equal(t, "job", kind)
		assert.Equal(t, "ingest", name)
	})

	t.Run("returns context with span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		newCtx, span := sm.StartResolveSpan(ctx, "job", "report")

		assert.NotEqual(t, ctx, newCtx)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
	})
}

func TestStartDiscoverySpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with kind attribute", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartDiscoverySpan(ctx, "schedule")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "defkit.discovery", s.Name)

		var kind string
		for _, attr := range s.Attributes {
			if attr.Key == "kind" {
				kind = attr.Value.AsString()
			}
		}
		assert.Equal(t, "schedule", kind)
	})

	t.Run("resolve spans parent under the discovery span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		ctx, discoverySpan := sm.StartDiscoverySpan(ctx, "job")

		_, resolveSpan := sm.StartResolveSpan(ctx, "job", "ingest")
		resolveSpan.End()

		discoverySpan.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		var resolveData *tracetest.SpanStub
		for i := range spans {
			if spans[i].Name == "defkit.resolve" {
				resolveData = &spans[i]
				break
			}
		}
		require.NotNil(t, resolveData)
		assert.True(t, resolveData.Parent.IsValid())
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("sets OK status for nil error", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartResolveSpan(ctx, "job", "ingest")

		sm.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		assert.Equal(t, codes.Ok, spans[0].Status.Code)
		assert.Equal(t, "", spans[0].Status.Description)
	})

	t.Run("sets Error status and records error", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		_, span := sm.StartResolveSpan(ctx, "job", "broken")
		testErr := errors.New("factory exploded")

		sm.EndSpanWithError(span, testErr)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, codes.Error, s.Status.Code)
		assert.Equal(t, "factory exploded", s.Status.Description)

		require.NotEmpty(t, s.Events)
		found := false
		for _, event := range s.Events {
			if event.Name == "exception" {
				found = true
			}
		}
		assert.True(t, found, "Expected exception event")
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, errors.New("test"))
		})
	})
}

func TestNoopSpanManager(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NoopSpanManager{}

	ctx := context.Background()
	sameCtx, span := sm.StartResolveSpan(ctx, "job", "ingest")
	assert.Equal(t, ctx, sameCtx)
	sm.EndSpanWithError(span, errors.New("ignored"))

	_, span = sm.StartDiscoverySpan(ctx, "job")
	sm.EndSpanWithError(span, nil)

	assert.Empty(t, exporter.GetSpans())
}
