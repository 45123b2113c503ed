package trend

import (
	"time"

	"github.com/jgoulah/gridtrend/pkg/models"
)

// Forecast extrapolates the model over the horizonDays calendar days strictly
// after startExclusive, one point per day in ascending order. Pure function
// of its arguments: identical inputs yield identical outputs. Values are the
// raw linear extrapolation and may go negative on long horizons; they are not
// clamped here.
func Forecast(model *models.TrendModel, startExclusive time.Time, horizonDays int) ([]models.ForecastPoint, error) {
	if horizonDays <= 0 {
		return nil, &InvalidHorizonError{Horizon: horizonDays}
	}

	start := models.DayOf(startExclusive)
	points := make([]models.ForecastPoint, horizonDays)
	for i := range points {
		date := start.AddDate(0, 0, i+1)
		points[i] = models.ForecastPoint{
			Date:   date,
			Metric: model.Metric,
			Value:  model.Slope*float64(OrdinalDay(date)) + model.Intercept,
		}
	}

	return points, nil
}
