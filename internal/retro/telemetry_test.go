package retro

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/habits"
)

func TestNewMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewMetrics(provider.Meter(InstrumentationName))
	require.NoError(t, err)
	require.NotNil(t, metrics)
	assert.True(t, metrics.initialized)
}

func TestNewMetrics_NilMeter(t *testing.T) {
	metrics, err := NewMetrics(nil)
	require.NoError(t, err)
	assert.True(t, metrics.initialized)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordWeek(ctx, extract.ModeGood)
		m.RecordMonth(ctx, extract.ModeBad)
		m.RecordSectionItems(ctx, "TRIPS", extract.ModeGood, 3)
		m.RecordHabit(ctx, "sleep", habits.StatusGood)
	})

	uninit := &Metrics{}
	assert.NotPanics(t, func() {
		uninit.RecordWeek(ctx, extract.ModeGood)
	})
}

func TestMetrics_RecordSectionItemsAndHabits(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(provider.Meter(InstrumentationName))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordSectionItems(ctx, "TRIPS", extract.ModeGood, 2)
	metrics.RecordSectionItems(ctx, "TRIPS", extract.ModeGood, 4)
	metrics.RecordHabit(ctx, "sleep", habits.StatusGood)
	metrics.RecordHabit(ctx, "weight", habits.StatusWarning)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	foundHistogram := false
	statuses := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "retro.section.items":
				foundHistogram = true
				hist, ok := m.Data.(metricdata.Histogram[int64])
				require.True(t, ok)
				require.Len(t, hist.DataPoints, 1)
				assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
				assert.Equal(t, int64(6), hist.DataPoints[0].Sum)
			case "retro.habit.evaluations.total":
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				for _, dp := range sum.DataPoints {
					v, _ := dp.Attributes.Value(attribute.Key("status"))
					statuses[v.AsString()] += dp.Value
				}
			}
		}
	}
	assert.True(t, foundHistogram)
	assert.Equal(t, map[string]int64{
		habits.StatusGood.String():    1,
		habits.StatusWarning.String(): 1,
	}, statuses)
}

func TestTracer(t *testing.T) {
	assert.NotNil(t, Tracer())
}
