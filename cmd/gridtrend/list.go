package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored daily usage data",
	Long:  `Displays the stored daily usage, price, and cost rows from the database.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	if len(series) == 0 {
		fmt.Println("No data found")
		return nil
	}

	fmt.Println("\nDaily Usage Data:")
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("%-12s  %10s  %12s  %12s\n", "Date", "kWh", "$/kWh", "Cost ($)")
	fmt.Println("------------------------------------------------------------")

	var totalKWh, totalCost float64
	for _, rec := range series {
		fmt.Printf("%-12s  %10.2f  %12.4f  %12.2f\n",
			rec.Date.Format("2006-01-02"), rec.UsageKWh, rec.PricePerKWh, rec.DailyCost)
		totalKWh += rec.UsageKWh
		totalCost += rec.DailyCost
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Total: %.2f kWh, $%.2f (%d records)\n", totalKWh, totalCost, len(series))

	return nil
}
