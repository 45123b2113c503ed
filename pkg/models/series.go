package models

import (
	"fmt"
	"time"
)

// Metric identifies one of the tracked daily quantities
type Metric string

const (
	MetricUsage Metric = "usage" // kWh consumed per day
	MetricPrice Metric = "price" // $/kWh
	MetricCost  Metric = "cost"  // $ per day
)

// Metrics returns all tracked metrics in display order
func Metrics() []Metric {
	return []Metric{MetricUsage, MetricPrice, MetricCost}
}

// Valid reports whether m is a known metric
func (m Metric) Valid() bool {
	switch m {
	case MetricUsage, MetricPrice, MetricCost:
		return true
	}
	return false
}

// DailyRecord represents a single day's electricity usage, price, and cost
type DailyRecord struct {
	Date        time.Time `json:"date"` // Just the date, normalized to UTC midnight
	UsageKWh    float64   `json:"usage_kwh"`
	PricePerKWh float64   `json:"price_per_kwh"`
	DailyCost   float64   `json:"daily_cost"`
}

// Value returns the record's value for the given metric
func (r DailyRecord) Value(metric Metric) float64 {
	switch metric {
	case MetricUsage:
		return r.UsageKWh
	case MetricPrice:
		return r.PricePerKWh
	case MetricCost:
		return r.DailyCost
	}
	return 0
}

// DailySeries is a sequence of daily records ordered by date ascending
type DailySeries []DailyRecord

// ValidationError describes a malformed input series
type ValidationError struct {
	Row   int    // zero-based row index
	Field string // offending field
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid series at row %d (%s): %s", e.Row, e.Field, e.Msg)
}

// Validate checks the series invariants: strictly increasing dates with no
// duplicates, day resolution only, and non-negative values
func (s DailySeries) Validate() error {
	for i, rec := range s {
		if rec.Date.IsZero() {
			return &ValidationError{Row: i, Field: "date", Msg: "missing date"}
		}
		if !rec.Date.Equal(DayOf(rec.Date)) {
			return &ValidationError{Row: i, Field: "date", Msg: "date has a time-of-day component"}
		}
		if i > 0 && !s[i-1].Date.Before(rec.Date) {
			return &ValidationError{
				Row:   i,
				Field: "date",
				Msg:   fmt.Sprintf("date %s not after previous date %s", rec.Date.Format("2006-01-02"), s[i-1].Date.Format("2006-01-02")),
			}
		}
		if rec.UsageKWh < 0 {
			return &ValidationError{Row: i, Field: "usage_kwh", Msg: "negative value"}
		}
		if rec.PricePerKWh < 0 {
			return &ValidationError{Row: i, Field: "price_per_kwh", Msg: "negative value"}
		}
		if rec.DailyCost < 0 {
			return &ValidationError{Row: i, Field: "daily_cost", Msg: "negative value"}
		}
	}
	return nil
}

// LastDate returns the date of the final record, or the zero time for an
// empty series
func (s DailySeries) LastDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// Values returns the series values for one metric, in series order
func (s DailySeries) Values(metric Metric) []float64 {
	values := make([]float64, len(s))
	for i, rec := range s {
		values[i] = rec.Value(metric)
	}
	return values
}

// DayOf normalizes a timestamp to its calendar date at UTC midnight
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
