package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/gridtrend/internal/pipeline"
	"github.com/jgoulah/gridtrend/internal/publisher"
	"github.com/jgoulah/gridtrend/internal/trend"
	"github.com/jgoulah/gridtrend/pkg/models"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish forecast and seasonality results",
	Long: `Runs the forecast pipeline and publishes tomorrow's predicted value per
metric to Home Assistant, and the monthly seasonality summary over MQTT.
Enable and configure the targets in config.yaml.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.HomeAssistant.Enabled && !cfg.MQTT.Enabled {
		return fmt.Errorf("neither Home Assistant nor MQTT publishing is enabled in config")
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

	log := newLogger(cfg)
	p := pipeline.New(trend.NewCache(modelStore, log), log)

	result, err := p.Run(context.Background(), series, cfg.GetForecastDays())
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	if cfg.HomeAssistant.Enabled {
		for _, metric := range models.Metrics() {
			points, ok := result.Forecasts[metric]
			if !ok || len(points) == 0 {
				fmt.Printf("⚠ Skipping %s: no forecast available\n", metric)
				continue
			}

			// Tomorrow's prediction is the first forecast point
			if err := pub.PublishForecast(metric, points[0]); err != nil {
				return fmt.Errorf("publishing %s forecast: %w", metric, err)
			}
			fmt.Printf("✓ Published %s forecast (%s: %.2f)\n",
				metric, points[0].Date.Format("2006-01-02"), points[0].Value)
		}
	}

	if cfg.MQTT.Enabled {
		if err := pub.PublishSeasonality(result.Seasonality); err != nil {
			return fmt.Errorf("publishing seasonality: %w", err)
		}
		fmt.Println("✓ Published seasonality summary")
	}

	return nil
}
