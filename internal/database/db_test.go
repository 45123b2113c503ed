package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/gridtrend/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func record(date string, usage float64) *models.DailyRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &models.DailyRecord{
		Date:        d,
		UsageKWh:    usage,
		PricePerKWh: 0.25,
		DailyCost:   usage * 0.25,
	}
}

func TestLoadSeries_OrderedByDate(t *testing.T) {
	db := openTestDB(t)

	// Insert out of order; LoadSeries sorts by date ascending
	require.NoError(t, db.UpsertDaily(record("2024-01-03", 103)))
	require.NoError(t, db.UpsertDaily(record("2024-01-01", 101)))
	require.NoError(t, db.UpsertDaily(record("2024-01-02", 102)))

	series, err := db.LoadSeries()
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, 101.0, series[0].UsageKWh)
	assert.Equal(t, 102.0, series[1].UsageKWh)
	assert.Equal(t, 103.0, series[2].UsageKWh)
	assert.NoError(t, series.Validate())
}

func TestUpsertDaily_ReplacesSameDate(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.UpsertDaily(record("2024-01-01", 100)))
	require.NoError(t, db.UpsertDaily(record("2024-01-01", 150)))

	series, err := db.LoadSeries()
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 150.0, series[0].UsageKWh)

	count, err := db.CountDaily()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadSeries_Empty(t *testing.T) {
	db := openTestDB(t)

	series, err := db.LoadSeries()
	require.NoError(t, err)
	assert.Empty(t, series)
}
