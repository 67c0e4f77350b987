package defkit

import (
	"log/slog"
	"reflect"

	"github.com/randalmurphal/defkit/pkg/defkit/observability"
)

// indexConfig holds configuration for an Index.
type indexConfig[T Definition] struct {
	validate func(T) (T, error)
	equals   func(a, b T) bool
	discover func() ([]T, error)
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	tracing  observability.SpanManager
}

// defaultIndexConfig returns the default index configuration: identity
// validation, deep-equality comparison, empty discovery, no logging, no
// metrics, no tracing.
func defaultIndexConfig[T Definition]() indexConfig[T] {
	return indexConfig[T]{
		validate: func(def T) (T, error) { return def, nil },
		equals:   func(a, b T) bool { return reflect.DeepEqual(a, b) },
		discover: func() ([]T, error) { return nil, nil },
		metrics:  observability.NoopMetrics{},
		tracing:  observability.NoopSpanManager{},
	}
}

// Option configures an Index.
type Option[T Definition] func(*indexConfig[T])

// WithValidation sets the external validation function run on every
// definition before it is cached or returned. The function's result, not
// its input, is what gets cached; it may transform or replace the
// definition. Errors it returns are propagated to callers unchanged.
//
// Default: identity (every definition passes, unmodified).
func WithValidation[T Definition](fn func(T) (T, error)) Option[T] {
	return func(c *indexConfig[T]) {
		if fn != nil {
			c.validate = fn
		}
	}
}

// WithDiscovery sets the deferred bulk source of definitions. The
// function runs at most once per index, on the first call that needs the
// full namespace, and its results merge into the namespace after the
// eager entries. Errors it returns are propagated to the triggering
// caller unchanged, and a failed run commits nothing.
//
// Default: no discovery (empty result).
func WithDiscovery[T Definition](fn func() ([]T, error)) Option[T] {
	return func(c *indexConfig[T]) {
		if fn != nil {
			c.discover = fn
		}
	}
}

// WithEquals sets the equality relation used to compare an eager
// definition against a discovered one carrying the same name. Definition
// types holding function fields need a custom relation, since
// reflect.DeepEqual treats non-nil funcs as unequal.
//
// Default: reflect.DeepEqual.
func WithEquals[T Definition](fn func(a, b T) bool) Option[T] {
	return func(c *indexConfig[T]) {
		if fn != nil {
			c.equals = fn
		}
	}
}

// WithLogger sets the structured logger for resolution and discovery
// events. A nil logger disables logging.
//
// Default: no logging.
func WithLogger[T Definition](logger *slog.Logger) Option[T] {
	return func(c *indexConfig[T]) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder for resolution, factory, and
// discovery activity.
//
// Default: observability.NoopMetrics.
func WithMetrics[T Definition](recorder observability.MetricsRecorder) Option[T] {
	return func(c *indexConfig[T]) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

// WithTracing sets the span manager opening spans around resolutions and
// discovery runs. A failed resolution or discovery run ends its span with
// the error recorded.
//
// Default: observability.NoopSpanManager.
func WithTracing[T Definition](sm observability.SpanManager) Option[T] {
	return func(c *indexConfig[T]) {
		if sm != nil {
			c.tracing = sm
		}
	}
}
