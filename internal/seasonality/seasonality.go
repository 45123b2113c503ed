// Package seasonality summarizes a daily series into calendar-month means.
package seasonality

import (
	"time"

	"github.com/jgoulah/gridtrend/pkg/models"
)

// Aggregate groups the series by month-of-year (years pooled together) and
// computes the mean usage and mean cost per month. The result always has
// twelve entries in January→December order; months with no records carry
// HasData=false instead of a numeric zero.
//
// Means are computed sum-then-divide in series order, so reordering input
// rows changes the result only within floating-point tolerance.
func Aggregate(series models.DailySeries) models.MonthlySeasonality {
	var usageSums, costSums [12]float64
	var counts [12]int

	for _, rec := range series {
		bucket := int(rec.Date.Month()) - 1
		usageSums[bucket] += rec.UsageKWh
		costSums[bucket] += rec.DailyCost
		counts[bucket]++
	}

	var result models.MonthlySeasonality
	for i := range result {
		result[i].Month = time.Month(i + 1)
		if counts[i] == 0 {
			continue
		}
		result[i].MeanUsage = usageSums[i] / float64(counts[i])
		result[i].MeanCost = costSums[i] / float64(counts[i])
		result[i].HasData = true
	}

	return result
}
