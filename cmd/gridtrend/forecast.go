package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/gridtrend/internal/pipeline"
	"github.com/jgoulah/gridtrend/internal/trend"
	"github.com/jgoulah/gridtrend/pkg/models"
)

var forecastDays int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Train trend models and forecast the next 90 days",
	Long: `Loads the daily usage series, fetches or trains a linear trend model per
metric (usage, price, cost), and prints the forecast for the configured
horizon. Models are reused from the cache when the data is unchanged.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().IntVar(&forecastDays, "days", 0, "Forecast horizon in days (default from config, 90)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Forecast started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	modelStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening model store: %w", err)
	}
	defer modelStore.Close()

	series, err := db.LoadSeries()
	if err != nil {
		return fmt.Errorf("loading series: %w", err)
	}

	horizon := cfg.GetForecastDays()
	if forecastDays > 0 {
		horizon = forecastDays
	}

	log := newLogger(cfg)
	p := pipeline.New(trend.NewCache(modelStore, log), log)

	result, err := p.Run(context.Background(), series, horizon)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	for _, metric := range models.Metrics() {
		if reason, ok := result.Unavailable[metric]; ok {
			fmt.Printf("\n⚠ No %s forecast: %v\n", metric, reason)
			continue
		}

		model := result.Models[metric]
		points := result.Forecasts[metric]

		fmt.Printf("\n%s forecast (slope %.6f/day, trained %s):\n",
			metric, model.Slope, model.TrainedAt.Format("2006-01-02 15:04:05"))
		fmt.Println("----------------------------------------")
		fmt.Printf("%-12s  %12s\n", "Date", "Value")
		fmt.Println("----------------------------------------")
		for _, point := range points {
			fmt.Printf("%-12s  %12.2f\n", point.Date.Format("2006-01-02"), point.Value)
		}
	}

	for _, warning := range result.Warnings {
		fmt.Printf("\n⚠ Warning: %s\n", warning)
	}

	fmt.Printf("\n✓ Forecast complete (%d day horizon, %d of %d metrics)\n",
		horizon, len(result.Forecasts), len(models.Metrics()))
	return nil
}
