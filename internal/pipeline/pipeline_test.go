package pipeline_test

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/gridtrend/internal/pipeline"
	"github.com/jgoulah/gridtrend/internal/store"
	"github.com/jgoulah/gridtrend/internal/trend"
	"github.com/jgoulah/gridtrend/pkg/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openTestStore(t *testing.T) *store.ModelStore {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func linearSeries(n int) models.DailySeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.DailySeries, n)
	for i := range series {
		usage := 100 + float64(i)
		series[i] = models.DailyRecord{
			Date:        start.AddDate(0, 0, i),
			UsageKWh:    usage,
			PricePerKWh: 0.25,
			DailyCost:   usage * 0.25,
		}
	}
	return series
}

func TestRun_EndToEnd(t *testing.T) {
	modelStore := openTestStore(t)
	log := testLogger()
	p := pipeline.New(trend.NewCache(modelStore, log), log)

	result, err := p.Run(context.Background(), linearSeries(10), 90)
	require.NoError(t, err)

	// All three metrics forecast, no failures
	assert.Empty(t, result.Unavailable)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Forecasts, 3)

	usage := result.Forecasts[models.MetricUsage]
	require.Len(t, usage, 90)
	assert.InDelta(t, 1.0, result.Models[models.MetricUsage].Slope, 1e-6)
	assert.InDelta(t, 110.0, usage[0].Value, 1e-6)

	// Forecast starts strictly after the last observed date
	assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), usage[0].Date)

	// Seasonality covers January only for this series
	jan := result.Seasonality[0]
	require.True(t, jan.HasData)
	assert.InDelta(t, 104.5, jan.MeanUsage, 1e-9)
	for _, stats := range result.Seasonality[1:] {
		assert.False(t, stats.HasData)
	}
}

func TestRun_ReusesCachedModels(t *testing.T) {
	modelStore := openTestStore(t)
	log := testLogger()
	cache := trend.NewCache(modelStore, log)
	p := pipeline.New(cache, log)
	series := linearSeries(10)

	_, err := p.Run(context.Background(), series, 90)
	require.NoError(t, err)
	require.Equal(t, int64(3), cache.Retrains())

	_, err = p.Run(context.Background(), series, 90)
	require.NoError(t, err)

	// Unchanged data: all three models come from the cache
	assert.Equal(t, int64(3), cache.Retrains())
}

func TestRun_ValidationFailureWritesNothing(t *testing.T) {
	modelStore := openTestStore(t)
	log := testLogger()
	p := pipeline.New(trend.NewCache(modelStore, log), log)

	series := linearSeries(5)
	series[3].Date = series[2].Date // duplicate date

	_, err := p.Run(context.Background(), series, 90)

	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, 3, validation.Row)

	// No partial cache writes happened
	for _, metric := range models.Metrics() {
		got, err := modelStore.Get(metric)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestRun_InvalidHorizon(t *testing.T) {
	modelStore := openTestStore(t)
	log := testLogger()
	p := pipeline.New(trend.NewCache(modelStore, log), log)

	_, err := p.Run(context.Background(), linearSeries(5), 0)

	var invalid *trend.InvalidHorizonError
	require.ErrorAs(t, err, &invalid)
}

func TestRun_EmptySeriesReportsMetricsUnavailable(t *testing.T) {
	modelStore := openTestStore(t)
	log := testLogger()
	p := pipeline.New(trend.NewCache(modelStore, log), log)

	result, err := p.Run(context.Background(), nil, 90)
	require.NoError(t, err)

	// No forecasts, but the bundle is still produced
	assert.Empty(t, result.Forecasts)
	require.Len(t, result.Unavailable, 3)
	for _, metric := range models.Metrics() {
		var insufficient *trend.InsufficientDataError
		assert.ErrorAs(t, result.Unavailable[metric], &insufficient)
	}
	for _, stats := range result.Seasonality {
		assert.False(t, stats.HasData)
	}
}

// failingStore trains fine but cannot persist
type failingStore struct{}

func (failingStore) Get(models.Metric) (*models.TrendModel, error) { return nil, nil }
func (failingStore) Put(*models.TrendModel) error                  { return fmt.Errorf("disk full") }
func (failingStore) Delete(models.Metric) error                    { return nil }

func TestRun_PersistenceFailureBecomesWarning(t *testing.T) {
	log := testLogger()
	p := pipeline.New(trend.NewCache(failingStore{}, log), log)

	result, err := p.Run(context.Background(), linearSeries(10), 90)
	require.NoError(t, err)

	// Forecasts are produced anyway; the failures surface as warnings
	require.Len(t, result.Forecasts, 3)
	assert.Len(t, result.Warnings, 3)
	assert.InDelta(t, 110.0, result.Forecasts[models.MetricUsage][0].Value, 1e-6)
}
