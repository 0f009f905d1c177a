package logging

import (
	"context"
	"log/slog"

	"stylus/internal/services"
)

// Attribute keys every package shares, so log lines stay greppable.
const (
	// FieldComponent names the subsystem emitting the record; the console
	// handler promotes it into the line prefix.
	FieldComponent = "component"
	// FieldRunID identifies the batch run a record belongs to.
	FieldRunID = "run_id"
	// FieldFile is the path of the file being processed.
	FieldFile = "file"
	// FieldEventType is a machine-readable event name.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact states the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts the standardized attributes carried by ctx, in a
// stable order.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]Attr, 0, 2)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, String(FieldRunID, id))
	}
	if path, ok := services.FileFromContext(ctx); ok {
		fields = append(fields, String(FieldFile, path))
	}
	return fields
}

// WithContext returns logger augmented with every standardized field ctx
// carries; a context without fields returns logger unchanged.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
