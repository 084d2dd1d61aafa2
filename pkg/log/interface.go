// Package log provides the structured logging interface used across pricefit.
//
// The Logger interface mirrors log/slog's key/value calling convention so
// call sites read the same regardless of backend. The default backend is
// zerolog (see NewZerologLogger); tests use TestLogger to capture output.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "GradientDescentRegressor",
//	)
//	logger.Info("training finished",
//	    log.OperationKey, log.OperationFit,
//	    log.IterationKey, 412,
//	)
package log

import (
	"context"
)

// Logger is a leveled, structured logger taking alternating key/value fields.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs a condition that does not stop the operation.
	Warn(msg string, fields ...any)

	// Error logs an error condition. If the first field is an error value
	// it is attached as the error of the record, followed by the
	// remaining key/value pairs:
	//
	//	logger.Error("training failed", err, log.OperationKey, log.OperationFit)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level. Values match slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
