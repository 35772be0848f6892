package logging

import (
	"context"
	"log/slog"
	"strings"
)

type contextKey int

const (
	runIDKey contextKey = iota
	operationKey
)

// WithRun tags ctx with the active run id and operation.
func WithRun(ctx context.Context, runID, operation string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if runID = strings.TrimSpace(runID); runID != "" {
		ctx = context.WithValue(ctx, runIDKey, runID)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		ctx = context.WithValue(ctx, operationKey, operation)
	}
	return ctx
}

// RunIDFromContext returns the run id stored by WithRun.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if op, ok := ctx.Value(operationKey).(string); ok && op != "" {
		fields = append(fields, slog.String(FieldOperation, op))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
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
