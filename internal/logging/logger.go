// Package logging defines the structured-logging interface used by the client,
// the view-models and the development server. The default implementation wraps
// log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs:
//
//	log.Info(ctx, "list fetched", "resource", "clients", "count", n)
type Logger interface {
	// Debug logs request-level detail that is noisy in normal operation.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs recoverable failures, e.g. a list fetch that ended in an error state.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures the user cannot recover from without intervention.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
