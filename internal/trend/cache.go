package trend

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jgoulah/gridtrend/pkg/models"
)

// Store persists one trend model per metric. Get returns (nil, nil) when no
// model exists for the metric, and a *CacheCorruptionError when the stored
// artifact cannot be read back.
type Store interface {
	Get(metric models.Metric) (*models.TrendModel, error)
	Put(model *models.TrendModel) error
	Delete(metric models.Metric) error
}

// Cache maps a metric plus data fingerprint to a fitted trend model, reusing
// the persisted model when the fingerprint still matches and retraining
// otherwise. Safe for concurrent use across metrics; calls for the same
// metric serialize so two trainers never race on one slot.
type Cache struct {
	store    Store
	log      *logrus.Logger
	now      func() time.Time
	retrains atomic.Int64

	mu    sync.Mutex
	slots map[models.Metric]*sync.Mutex
}

// NewCache creates a model cache backed by the given store
func NewCache(store Store, log *logrus.Logger) *Cache {
	return &Cache{
		store: store,
		log:   log,
		now:   time.Now,
		slots: make(map[models.Metric]*sync.Mutex),
	}
}

// Retrains returns how many models have been trained since the cache was
// created, across all metrics
func (c *Cache) Retrains() int64 {
	return c.retrains.Load()
}

func (c *Cache) slot(metric models.Metric) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.slots[metric]
	if !ok {
		m = &sync.Mutex{}
		c.slots[metric] = m
	}
	return m
}

// GetOrTrain returns the live model for the metric and series. On a cache
// hit (stored fingerprint matches the series) the persisted model is returned
// unchanged with no retraining. On any kind of miss — no stored model, an
// unreadable one, or a fingerprint mismatch — a new model is trained and
// persisted, overwriting the old slot.
//
// If persisting the fresh model fails, GetOrTrain returns both the usable
// in-memory model and a *PersistenceWriteError; callers should treat that as
// a warning, not a failure.
func (c *Cache) GetOrTrain(metric models.Metric, series models.DailySeries) (*models.TrendModel, error) {
	if len(series) == 0 {
		return nil, &InsufficientDataError{Metric: metric}
	}

	fingerprint := Fingerprint(metric, series)

	slot := c.slot(metric)
	slot.Lock()
	defer slot.Unlock()

	cached, err := c.store.Get(metric)
	if err != nil {
		// Unreadable persisted state fails closed: log and retrain
		var corrupt *CacheCorruptionError
		if errors.As(err, &corrupt) {
			c.log.WithFields(logrus.Fields{"metric": metric}).
				WithError(err).Warn("persisted model corrupt, retraining")
		} else {
			c.log.WithFields(logrus.Fields{"metric": metric}).
				WithError(err).Warn("reading persisted model failed, retraining")
		}
		cached = nil
	}

	if cached != nil && cached.Fingerprint == fingerprint {
		c.log.WithFields(logrus.Fields{
			"metric":      metric,
			"fingerprint": fingerprint,
		}).Debug("model cache hit")
		return cached, nil
	}

	model, err := fit(metric, series, c.now())
	if err != nil {
		return nil, err
	}
	c.retrains.Add(1)

	c.log.WithFields(logrus.Fields{
		"metric":      metric,
		"fingerprint": fingerprint,
		"slope":       model.Slope,
		"intercept":   model.Intercept,
		"rows":        len(series),
	}).Info("trained trend model")

	if err := c.store.Put(model); err != nil {
		return model, &PersistenceWriteError{Metric: metric, Err: err}
	}

	return model, nil
}

// Invalidate drops the persisted model for a metric so the next GetOrTrain
// retrains regardless of fingerprint
func (c *Cache) Invalidate(metric models.Metric) error {
	slot := c.slot(metric)
	slot.Lock()
	defer slot.Unlock()

	return c.store.Delete(metric)
}
