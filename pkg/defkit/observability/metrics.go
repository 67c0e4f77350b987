package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records definition index metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolve records a name resolution and whether it hit the cache.
	RecordResolve(ctx context.Context, kind, name string, cacheHit bool)

	// RecordFactory records a factory invocation with its duration and
	// error status.
	RecordFactory(ctx context.Context, kind, name string, duration time.Duration, err error)

	// RecordDiscovery records a discovery run with the number of
	// definitions produced, its duration, and error status.
	RecordDiscovery(ctx context.Context, kind string, count int, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resolutions      metric.Int64Counter
	cacheHits        metric.Int64Counter
	factoryCalls     metric.Int64Counter
	factoryErrors    metric.Int64Counter
	factoryLatency   metric.Float64Histogram
	discoveryRuns    metric.Int64Counter
	discoveryCount   metric.Int64Histogram
	discoveryLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("defkit")

	resolutions, err := meter.Int64Counter("defkit.index.resolutions",
		metric.WithDescription("Number of definition resolutions"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter("defkit.index.cache_hits",
		metric.WithDescription("Number of resolutions served from the resolved cache"),
	)
	if err != nil {
		return nil, err
	}

	factoryCalls, err := meter.Int64Counter("defkit.factory.invocations",
		metric.WithDescription("Number of definition factory invocations"),
	)
	if err != nil {
		return nil, err
	}

	factoryErrors, err := meter.Int64Counter("defkit.factory.errors",
		metric.WithDescription("Number of failed definition factory invocations"),
	)
	if err != nil {
		return nil, err
	}

	factoryLatency, err := meter.Float64Histogram("defkit.factory.latency_ms",
		metric.WithDescription("Definition factory latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	discoveryRuns, err := meter.Int64Counter("defkit.discovery.runs",
		metric.WithDescription("Number of discovery runs"),
	)
	if err != nil {
		return nil, err
	}

	discoveryCount, err := meter.Int64Histogram("defkit.discovery.definitions",
		metric.WithDescription("Definitions produced per discovery run"),
	)
	if err != nil {
		return nil, err
	}

	discoveryLatency, err := meter.Float64Histogram("defkit.discovery.latency_ms",
		metric.WithDescription("Discovery run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions:      resolutions,
		cacheHits:        cacheHits,
		factoryCalls:     factoryCalls,
		factoryErrors:    factoryErrors,
		factoryLatency:   factoryLatency,
		discoveryRuns:    discoveryRuns,
		discoveryCount:   discoveryCount,
		discoveryLatency: discoveryLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordResolve records a name resolution.
func (m *otelMetrics) RecordResolve(ctx context.Context, kind, name string, cacheHit bool) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.String("name", name),
	}

	m.resolutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	if cacheHit {
		m.cacheHits.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordFactory records a factory invocation.
func (m *otelMetrics) RecordFactory(ctx context.Context, kind, name string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.String("name", name),
	}

	m.factoryCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.factoryLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
	if err != nil {
		m.factoryErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordDiscovery records a discovery run.
func (m *otelMetrics) RecordDiscovery(ctx context.Context, kind string, count int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.Bool("success", err == nil),
	}
	m.discoveryRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.discoveryCount.Record(ctx, int64(count), metric.WithAttributes(attrs...))
	m.discoveryLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
}
