package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jgoulah/gridtrend/internal/trend"
	"github.com/jgoulah/gridtrend/pkg/models"
)

// ModelStore persists trend models in SQLite, one row per metric. It is the
// only durable state in the pipeline; each metric owns a distinct row, so
// writers for different metrics never touch the same slot.
type ModelStore struct {
	conn *sql.DB
}

// Open creates a model store at the given path and initializes the schema
func Open(path string) (*ModelStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening model store: %w", err)
	}

	s := &ModelStore{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing model store schema: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection
func (s *ModelStore) Close() error {
	return s.conn.Close()
}

func (s *ModelStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trend_models (
		metric TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		slope REAL NOT NULL,
		intercept REAL NOT NULL,
		trained_at TEXT NOT NULL
	);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Get retrieves the persisted model for a metric. Returns (nil, nil) when no
// model has been stored. A row that cannot be read back cleanly is reported
// as a *trend.CacheCorruptionError so the cache can treat it as a miss.
func (s *ModelStore) Get(metric models.Metric) (*models.TrendModel, error) {
	query := `
	SELECT fingerprint, slope, intercept, trained_at
	FROM trend_models
	WHERE metric = ?
	`

	row := s.conn.QueryRow(query, string(metric))

	var model models.TrendModel
	var trainedAt string

	err := row.Scan(&model.Fingerprint, &model.Slope, &model.Intercept, &trainedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &trend.CacheCorruptionError{Metric: metric, Err: err}
	}

	if model.Fingerprint == "" {
		return nil, &trend.CacheCorruptionError{Metric: metric, Err: fmt.Errorf("empty fingerprint")}
	}

	model.Metric = metric
	model.TrainedAt, err = time.Parse(time.RFC3339, trainedAt)
	if err != nil {
		return nil, &trend.CacheCorruptionError{Metric: metric, Err: fmt.Errorf("parsing trained_at: %w", err)}
	}

	return &model, nil
}

// Put stores a model, replacing any prior model for the same metric
func (s *ModelStore) Put(model *models.TrendModel) error {
	query := `
	INSERT OR REPLACE INTO trend_models (metric, fingerprint, slope, intercept, trained_at)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.conn.Exec(query,
		string(model.Metric),
		model.Fingerprint,
		model.Slope,
		model.Intercept,
		model.TrainedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing %s model: %w", model.Metric, err)
	}

	return nil
}

// Delete removes the persisted model for a metric, if any
func (s *ModelStore) Delete(metric models.Metric) error {
	_, err := s.conn.Exec(`DELETE FROM trend_models WHERE metric = ?`, string(metric))
	if err != nil {
		return fmt.Errorf("deleting %s model: %w", metric, err)
	}
	return nil
}
