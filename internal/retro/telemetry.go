package retro

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/habits"
)

const (
	// InstrumentationName is the name used for OTEL instrumentation.
	InstrumentationName = "github.com/fyrsmithlabs/retro/internal/retro"
)

// Metrics provides OpenTelemetry metrics for retro runs.
type Metrics struct {
	weekProcessedTotal  metric.Int64Counter
	monthProcessedTotal metric.Int64Counter
	habitEvaluations    metric.Int64Counter
	sectionItems        metric.Int64Histogram

	initialized bool
}

// NewMetrics creates a new Metrics instance with the provided meter.
// If meter is nil, uses the global meter provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(InstrumentationName)
	}

	m := &Metrics{}
	var err error

	m.weekProcessedTotal, err = meter.Int64Counter(
		"retro.week.processed.total",
		metric.WithDescription("Total number of weekly extractions, per mode"),
		metric.WithUnit("{week}"),
	)
	if err != nil {
		return nil, err
	}

	m.monthProcessedTotal, err = meter.Int64Counter(
		"retro.month.processed.total",
		metric.WithDescription("Total number of monthly rollups, per mode"),
		metric.WithUnit("{month}"),
	)
	if err != nil {
		return nil, err
	}

	m.habitEvaluations, err = meter.Int64Counter(
		"retro.habit.evaluations.total",
		metric.WithDescription("Habit rule classifications by status"),
		metric.WithUnit("{rule}"),
	)
	if err != nil {
		return nil, err
	}

	m.sectionItems, err = meter.Int64Histogram(
		"retro.section.items",
		metric.WithDescription("Items extracted or rolled up per section"),
		metric.WithUnit("{item}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 5, 10, 20, 50),
	)
	if err != nil {
		return nil, err
	}

	m.initialized = true
	return m, nil
}

// RecordWeek records one weekly extraction.
func (m *Metrics) RecordWeek(ctx context.Context, mode extract.Mode) {
	if m == nil || !m.initialized {
		return
	}
	m.weekProcessedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", string(mode))))
}

// RecordMonth records one monthly rollup.
func (m *Metrics) RecordMonth(ctx context.Context, mode extract.Mode) {
	if m == nil || !m.initialized {
		return
	}
	m.monthProcessedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", string(mode))))
}

// RecordSectionItems records the item count of one section.
// Section names come from configuration, so cardinality is bounded.
func (m *Metrics) RecordSectionItems(ctx context.Context, section string, mode extract.Mode, n int) {
	if m == nil || !m.initialized {
		return
	}
	m.sectionItems.Record(ctx, int64(n), metric.WithAttributes(
		attribute.String("section", section),
		attribute.String("mode", string(mode)),
	))
}

// RecordHabit records one habit classification.
func (m *Metrics) RecordHabit(ctx context.Context, rule string, status habits.Status) {
	if m == nil || !m.initialized {
		return
	}
	m.habitEvaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("rule", rule),
		attribute.String("status", status.String()),
	))
}

// Tracer returns the package tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// recordError marks span failed with err.
func recordError(span trace.Span, err error) {
	if span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
