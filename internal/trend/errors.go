package trend

import (
	"fmt"

	"github.com/jgoulah/gridtrend/pkg/models"
)

// InsufficientDataError means a metric's series had zero usable rows, so no
// model could be trained. Other metrics may still proceed.
type InsufficientDataError struct {
	Metric models.Metric
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("no usable rows to train %s model", e.Metric)
}

// InvalidHorizonError means a non-positive forecast horizon was requested
type InvalidHorizonError struct {
	Horizon int
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("forecast horizon must be positive, got %d", e.Horizon)
}

// CacheCorruptionError means a persisted model could not be read back. The
// cache recovers by retraining; callers of the cache never see it.
type CacheCorruptionError struct {
	Metric models.Metric
	Err    error
}

func (e *CacheCorruptionError) Error() string {
	return fmt.Sprintf("persisted %s model is unreadable: %v", e.Metric, e.Err)
}

func (e *CacheCorruptionError) Unwrap() error {
	return e.Err
}

// PersistenceWriteError means a freshly trained model could not be persisted.
// The in-memory model is still returned alongside it, so the current run's
// forecast proceeds; the next run will retrain.
type PersistenceWriteError struct {
	Metric models.Metric
	Err    error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("persisting %s model: %v", e.Metric, e.Err)
}

func (e *PersistenceWriteError) Unwrap() error {
	return e.Err
}
