package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/gridtrend/pkg/models"
)

var invalidateCmd = &cobra.Command{
	Use:   "invalidate [metric]",
	Short: "Drop cached trend models",
	Long: `Removes persisted trend models so the next forecast run retrains from
scratch. Pass a metric (usage, price, cost) to drop one model, or no
argument to drop all three.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInvalidate,
}

func init() {
	rootCmd.AddCommand(invalidateCmd)
}

func runInvalidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	modelStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening model store: %w", err)
	}
	defer modelStore.Close()

	metrics := models.Metrics()
	if len(args) == 1 {
		metric := models.Metric(args[0])
		if !metric.Valid() {
			return fmt.Errorf("unknown metric: %s (available: usage, price, cost)", args[0])
		}
		metrics = []models.Metric{metric}
	}

	for _, metric := range metrics {
		if err := modelStore.Delete(metric); err != nil {
			return fmt.Errorf("invalidating %s model: %w", metric, err)
		}
		fmt.Printf("✓ Dropped %s model\n", metric)
	}

	return nil
}
