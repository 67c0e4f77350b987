// Package observability provides structured logging and metrics for
// defkit definition indexes.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every logging helper is nil-safe: passing a nil logger does nothing.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds repository context to a logger.
// Returns a new logger with repository and load_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "etl", loadID)
//	enriched.Info("resolving") // includes repository, load_id
func EnrichLogger(logger *slog.Logger, repository, loadID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("repository", repository),
		slog.String("load_id", loadID),
	)
}

// LogResolve logs a successful name resolution.
func LogResolve(logger *slog.Logger, kind, name string, cacheHit bool) {
	if logger == nil {
		return
	}
	logger.Debug("definition resolved",
		slog.String("kind", kind),
		slog.String("name", name),
		slog.Bool("cache_hit", cacheHit),
	)
}

// LogFactoryInvoked logs a factory invocation for a named definition.
func LogFactoryInvoked(logger *slog.Logger, kind, name string, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("definition factory invoked",
		slog.String("kind", kind),
		slog.String("name", name),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
}

// LogDiscoveryComplete logs a completed discovery run.
func LogDiscoveryComplete(logger *slog.Logger, kind string, count int, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Info("definition discovery completed",
		slog.String("kind", kind),
		slog.Int("count", count),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
}

// LogDiscoveryError logs a failed discovery run.
func LogDiscoveryError(logger *slog.Logger, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Error("definition discovery failed",
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// LogValidationFailure logs a definition rejected by validation.
func LogValidationFailure(logger *slog.Logger, kind, name string, err error) {
	if logger == nil {
		return
	}
	logger.Error("definition validation failed",
		slog.String("kind", kind),
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
}
