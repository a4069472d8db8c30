// internal/logging/context.go
package logging

import (
	"context"
	"fmt"
	"regexp"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 6)

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if id := RunIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("run.id", id))
	}
	if week := WeekFromContext(ctx); week != "" {
		fields = append(fields, zap.String("week", week))
	}
	if month := MonthFromContext(ctx); month != "" {
		fields = append(fields, zap.String("month", month))
	}
	return fields
}

type runIDCtxKey struct{}
type weekCtxKey struct{}
type monthCtxKey struct{}

var (
	idPattern    = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)
	weekPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// RunIDFromContext extracts the run ID from context.
func RunIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(runIDCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// WithRunID adds a run ID to context.
// Panics if id is empty or contains invalid characters.
func WithRunID(ctx context.Context, id string) context.Context {
	if !idPattern.MatchString(id) {
		panic(fmt.Sprintf("logging: invalid run id %q", id))
	}
	return context.WithValue(ctx, runIDCtxKey{}, id)
}

// WeekFromContext extracts the week label from context.
func WeekFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(weekCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// WithWeek adds a YYYY-MM-DD week label to context. Labels in any other
// shape are ignored.
func WithWeek(ctx context.Context, week string) context.Context {
	if !weekPattern.MatchString(week) {
		return ctx
	}
	return context.WithValue(ctx, weekCtxKey{}, week)
}

// MonthFromContext extracts the month label from context.
func MonthFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(monthCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// WithMonth adds a YYYY-MM month label to context. Labels in any other
// shape are ignored.
func WithMonth(ctx context.Context, month string) context.Context {
	if !monthPattern.MatchString(month) {
		return ctx
	}
	return context.WithValue(ctx, monthCtxKey{}, month)
}

type loggerCtxKey struct{}

// WithLogger stores logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves logger from context.
// Returns a nop logger if not found.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return NewNop()
}
