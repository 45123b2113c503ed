package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(date string, usage, price, cost float64) DailyRecord {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return DailyRecord{Date: t, UsageKWh: usage, PricePerKWh: price, DailyCost: cost}
}

func TestValidate_OK(t *testing.T) {
	series := DailySeries{
		rec("2024-01-01", 100, 0.25, 25),
		rec("2024-01-02", 110, 0.25, 27.5),
		rec("2024-01-05", 90, 0.26, 23.4), // gaps are fine
	}
	assert.NoError(t, series.Validate())
	assert.NoError(t, DailySeries(nil).Validate())
}

func TestValidate_DuplicateDate(t *testing.T) {
	series := DailySeries{
		rec("2024-01-01", 100, 0.25, 25),
		rec("2024-01-01", 110, 0.25, 27.5),
	}

	err := series.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Row)
	assert.Equal(t, "date", verr.Field)
}

func TestValidate_OutOfOrder(t *testing.T) {
	series := DailySeries{
		rec("2024-01-02", 100, 0.25, 25),
		rec("2024-01-01", 110, 0.25, 27.5),
	}

	var verr *ValidationError
	require.ErrorAs(t, series.Validate(), &verr)
	assert.Equal(t, 1, verr.Row)
}

func TestValidate_NegativeValues(t *testing.T) {
	cases := []struct {
		name   string
		record DailyRecord
		field  string
	}{
		{"usage", rec("2024-01-01", -1, 0.25, 25), "usage_kwh"},
		{"price", rec("2024-01-01", 100, -0.25, 25), "price_per_kwh"},
		{"cost", rec("2024-01-01", 100, 0.25, -25), "daily_cost"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *ValidationError
			require.ErrorAs(t, DailySeries{tc.record}.Validate(), &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidate_TimeOfDayRejected(t *testing.T) {
	series := DailySeries{{
		Date:     time.Date(2024, 1, 1, 13, 30, 0, 0, time.UTC),
		UsageKWh: 100,
	}}

	var verr *ValidationError
	require.ErrorAs(t, series.Validate(), &verr)
	assert.Equal(t, "date", verr.Field)
}

func TestLastDate(t *testing.T) {
	assert.True(t, DailySeries(nil).LastDate().IsZero())

	series := DailySeries{
		rec("2024-01-01", 100, 0.25, 25),
		rec("2024-02-01", 110, 0.25, 27.5),
	}
	assert.Equal(t, rec("2024-02-01", 0, 0, 0).Date, series.LastDate())
}

func TestValues(t *testing.T) {
	series := DailySeries{
		rec("2024-01-01", 100, 0.25, 25),
		rec("2024-01-02", 110, 0.3, 33),
	}

	assert.Equal(t, []float64{100, 110}, series.Values(MetricUsage))
	assert.Equal(t, []float64{0.25, 0.3}, series.Values(MetricPrice))
	assert.Equal(t, []float64{25, 33}, series.Values(MetricCost))
}

func TestMetricValid(t *testing.T) {
	for _, metric := range Metrics() {
		assert.True(t, metric.Valid())
	}
	assert.False(t, Metric("voltage").Valid())
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), DayOf(ts))
}
