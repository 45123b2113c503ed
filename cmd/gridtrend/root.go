package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jgoulah/gridtrend/internal/config"
	"github.com/jgoulah/gridtrend/internal/database"
	"github.com/jgoulah/gridtrend/internal/store"
)

var (
	cfgFile     string
	dbPath      string
	modelDBPath string
)

var rootCmd = &cobra.Command{
	Use:   "gridtrend",
	Short: "Forecast electricity usage, price, and cost trends",
	Long: `GridTrend fits linear trend models over the daily electricity usage table,
extrapolates a 90-day forecast per metric, and summarizes monthly seasonality.
Trained models are cached in a local SQLite store and reused until the
underlying data changes.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "daily usage database (default is ./data.db)")
	rootCmd.PersistentFlags().StringVar(&modelDBPath, "models", "", "model store database (default is ./models.db)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// getDBPath returns the daily usage database path
func getDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.GetDBPath()
}

// getModelDBPath returns the model store path
func getModelDBPath(cfg *config.Config) string {
	if modelDBPath != "" {
		return modelDBPath
	}
	return cfg.GetModelDBPath()
}

// openDB opens the daily usage database
func openDB(cfg *config.Config) (*database.DB, error) {
	path := getDBPath(cfg)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// openStore opens the persisted model store
func openStore(cfg *config.Config) (*store.ModelStore, error) {
	path := getModelDBPath(cfg)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating model store directory: %w", err)
	}

	return store.Open(path)
}

// newLogger builds the logger shared by pipeline components
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
