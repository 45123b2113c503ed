package models

import "time"

// TrendModel is a fitted linear trend for one metric: value = Slope*ordinal(date) + Intercept.
// Exactly one model is live per metric at any time; the fingerprint ties it to
// the series it was trained on.
type TrendModel struct {
	Metric      Metric    `json:"metric"`
	Fingerprint string    `json:"fingerprint"`
	Slope       float64   `json:"slope"`
	Intercept   float64   `json:"intercept"`
	TrainedAt   time.Time `json:"trained_at"`
}

// ForecastPoint is a single extrapolated value. Produced fresh on every run,
// never persisted.
type ForecastPoint struct {
	Date   time.Time `json:"date"`
	Metric Metric    `json:"metric"`
	Value  float64   `json:"value"`
}
