package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jgoulah/gridtrend/internal/seasonality"
)

var seasonalityCSV string

var seasonalityCmd = &cobra.Command{
	Use:   "seasonality",
	Short: "Show average usage and cost per calendar month",
	Long: `Groups the stored daily series by calendar month (years pooled together)
and prints the mean usage and mean cost for each of the twelve months.
Months with no data are marked explicitly.`,
	RunE: runSeasonality,
}

func init() {
	seasonalityCmd.Flags().StringVar(&seasonalityCSV, "csv", "", "Also write the summary to a CSV file")
	rootCmd.AddCommand(seasonalityCmd)
}

func runSeasonality(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	series, err := db.LoadSeries()
	if err != nil {
		return fmt.Errorf("loading series: %w", err)
	}

	summary := seasonality.Aggregate(series)

	fmt.Println("\nMonthly Seasonality:")
	fmt.Println("--------------------------------------------------")
	fmt.Printf("%-10s  %14s  %14s\n", "Month", "Avg kWh", "Avg Cost ($)")
	fmt.Println("--------------------------------------------------")
	for _, stats := range summary {
		if !stats.HasData {
			fmt.Printf("%-10s  %14s  %14s\n", stats.Month, "no data", "no data")
			continue
		}
		fmt.Printf("%-10s  %14.2f  %14.2f\n", stats.Month, stats.MeanUsage, stats.MeanCost)
	}

	if seasonalityCSV == "" {
		return nil
	}

	f, err := os.Create(seasonalityCSV)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Month", "Usage (kWh)", "Cost ($)"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, stats := range summary {
		record := []string{stats.Month.String(), "", ""}
		if stats.HasData {
			record[1] = strconv.FormatFloat(stats.MeanUsage, 'f', 4, 64)
			record[2] = strconv.FormatFloat(stats.MeanCost, 'f', 4, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	fmt.Printf("\n✓ Wrote %s\n", seasonalityCSV)
	return nil
}
