package trend

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/jgoulah/gridtrend/pkg/models"
)

// fit trains an ordinary least-squares model of value ~ ordinal(date) for one
// metric. The series must be non-empty; a single row is legal and produces a
// flat model (slope 0, intercept = that row's value).
func fit(metric models.Metric, series models.DailySeries, now time.Time) (*models.TrendModel, error) {
	if len(series) == 0 {
		return nil, &InsufficientDataError{Metric: metric}
	}

	model := &models.TrendModel{
		Metric:      metric,
		Fingerprint: Fingerprint(metric, series),
		TrainedAt:   now.UTC(),
	}

	if len(series) == 1 {
		model.Intercept = series[0].Value(metric)
		return model, nil
	}

	xs := make([]float64, len(series))
	for i, rec := range series {
		xs[i] = float64(OrdinalDay(rec.Date))
	}
	ys := series.Values(metric)

	model.Intercept, model.Slope = stat.LinearRegression(xs, ys, nil, false)
	return model, nil
}
