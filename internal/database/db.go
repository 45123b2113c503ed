package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jgoulah/gridtrend/pkg/models"
)

// DB wraps the connection to the canonical daily usage table. The table is
// populated by the ingestion step (merged usage, price, and cost per day);
// this side only reads it back as a validated series.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_usage (
		date TEXT PRIMARY KEY,
		usage_kwh REAL NOT NULL,
		price_per_kwh REAL NOT NULL,
		daily_cost REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// UpsertDaily inserts a daily record, replacing any prior row for the same
// date so re-ingesting a corrected export updates in place
func (db *DB) UpsertDaily(rec *models.DailyRecord) error {
	query := `
	INSERT OR REPLACE INTO daily_usage (date, usage_kwh, price_per_kwh, daily_cost, created_at)
	VALUES (?, ?, ?, ?, ?)
	`

	dateStr := rec.Date.Format("2006-01-02")
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err := db.conn.Exec(query, dateStr, rec.UsageKWh, rec.PricePerKWh, rec.DailyCost, createdAt)
	if err != nil {
		return fmt.Errorf("inserting daily record: %w", err)
	}

	return nil
}

// LoadSeries retrieves the full daily series ordered by date ascending and
// validates it before returning
func (db *DB) LoadSeries() (models.DailySeries, error) {
	query := `
	SELECT date, usage_kwh, price_per_kwh, daily_cost
	FROM daily_usage
	ORDER BY date ASC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying daily usage: %w", err)
	}
	defer rows.Close()

	var series models.DailySeries
	for rows.Next() {
		var rec models.DailyRecord
		var dateStr string

		if err := rows.Scan(&dateStr, &rec.UsageKWh, &rec.PricePerKWh, &rec.DailyCost); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		rec.Date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		rec.Date = models.DayOf(rec.Date)

		series = append(series, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("loading series: %w", err)
	}

	return series, nil
}

// CountDaily returns how many daily rows are stored
func (db *DB) CountDaily() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM daily_usage`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting daily records: %w", err)
	}
	return count, nil
}
