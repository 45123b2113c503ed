package models

import "time"

// MonthStats holds the per-calendar-month means for one bucket. HasData is
// false when no record fell into the month; MeanUsage and MeanCost are only
// meaningful when it is true, so consumers must branch on it rather than
// treat an empty month as zero.
type MonthStats struct {
	Month     time.Month `json:"month"`
	MeanUsage float64    `json:"mean_usage"`
	MeanCost  float64    `json:"mean_cost"`
	HasData   bool       `json:"has_data"`
}

// MonthlySeasonality always contains twelve entries in January→December
// order, regardless of which months appear in the input
type MonthlySeasonality [12]MonthStats
