package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/gridtrend/pkg/models"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [csv-file]",
	Short: "Import a merged daily usage CSV into the database",
	Long: `Imports the merged daily table produced by the preprocessing step.
Expected columns: date (YYYY-MM-DD), usage_kwh, price_per_kwh, daily_cost.
Rows for dates already present are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Ingest started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	// Header row
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) < 4 {
		return fmt.Errorf("unexpected CSV header: %v (want date,usage_kwh,price_per_kwh,daily_cost)", header)
	}

	totalRecords := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading CSV row: %w", err)
		}

		rec, err := parseDailyRow(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", totalRecords+2, err)
		}

		if err := db.UpsertDaily(rec); err != nil {
			return fmt.Errorf("inserting daily record: %w", err)
		}
		totalRecords++
	}

	fmt.Printf("✓ Imported %d records\n", totalRecords)
	return nil
}

func parseDailyRow(row []string) (*models.DailyRecord, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("expected 4 columns, got %d", len(row))
	}

	date, err := time.Parse("2006-01-02", row[0])
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", row[0], err)
	}

	usage, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing usage_kwh %q: %w", row[1], err)
	}

	price, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing price_per_kwh %q: %w", row[2], err)
	}

	cost, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing daily_cost %q: %w", row[3], err)
	}

	return &models.DailyRecord{
		Date:        models.DayOf(date),
		UsageKWh:    usage,
		PricePerKWh: price,
		DailyCost:   cost,
	}, nil
}
