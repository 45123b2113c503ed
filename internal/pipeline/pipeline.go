// Package pipeline wires series validation, the model cache, the forecaster,
// and the seasonality aggregator into one run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jgoulah/gridtrend/internal/seasonality"
	"github.com/jgoulah/gridtrend/internal/trend"
	"github.com/jgoulah/gridtrend/pkg/models"
)

// Result is the bundle handed to the presentation layer: one forecast per
// metric that could be trained, the twelve-month seasonality summary, and
// any non-fatal warnings collected along the way.
type Result struct {
	Models      map[models.Metric]*models.TrendModel
	Forecasts   map[models.Metric][]models.ForecastPoint
	Unavailable map[models.Metric]error
	Seasonality models.MonthlySeasonality
	Warnings    []string
}

// Pipeline orchestrates a single run over a validated daily series
type Pipeline struct {
	cache *trend.Cache
	log   *logrus.Logger
}

// New creates a pipeline around the given model cache
func New(cache *trend.Cache, log *logrus.Logger) *Pipeline {
	return &Pipeline{cache: cache, log: log}
}

// Run validates the series, trains or fetches a model per metric, forecasts
// horizonDays past the last date, and aggregates seasonality. Validation and
// horizon errors are fatal and happen before any cache work. A metric with no
// trainable data is reported in Unavailable while the others proceed; a model
// that trained but could not be persisted still produces its forecast and is
// reported in Warnings.
//
// The three per-metric passes and the seasonality aggregation read disjoint
// parts of the immutable series and run concurrently.
func (p *Pipeline) Run(ctx context.Context, series models.DailySeries, horizonDays int) (*Result, error) {
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("validating series: %w", err)
	}
	if horizonDays <= 0 {
		return nil, &trend.InvalidHorizonError{Horizon: horizonDays}
	}

	result := &Result{
		Models:      make(map[models.Metric]*models.TrendModel),
		Forecasts:   make(map[models.Metric][]models.ForecastPoint),
		Unavailable: make(map[models.Metric]error),
	}
	lastDate := series.LastDate()

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)

	for _, metric := range models.Metrics() {
		g.Go(func() error {
			model, err := p.cache.GetOrTrain(metric, series)

			var writeErr *trend.PersistenceWriteError
			switch {
			case err == nil:
			case errors.As(err, &writeErr):
				// Model is still usable; caching just failed for this run
				p.log.WithFields(logrus.Fields{"metric": metric}).
					WithError(err).Warn("model trained but not persisted")
				mu.Lock()
				result.Warnings = append(result.Warnings, writeErr.Error())
				mu.Unlock()
			default:
				var insufficient *trend.InsufficientDataError
				if errors.As(err, &insufficient) {
					mu.Lock()
					result.Unavailable[metric] = err
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("obtaining %s model: %w", metric, err)
			}

			points, err := trend.Forecast(model, lastDate, horizonDays)
			if err != nil {
				return fmt.Errorf("forecasting %s: %w", metric, err)
			}

			mu.Lock()
			result.Models[metric] = model
			result.Forecasts[metric] = points
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		agg := seasonality.Aggregate(series)
		mu.Lock()
		result.Seasonality = agg
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"rows":        len(series),
		"horizon":     horizonDays,
		"forecasts":   len(result.Forecasts),
		"unavailable": len(result.Unavailable),
		"warnings":    len(result.Warnings),
	}).Info("pipeline run complete")

	return result, nil
}
