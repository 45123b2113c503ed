package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	DBPath        string     `yaml:"db_path,omitempty"`       // Daily usage database (default: ./data.db)
	ModelDBPath   string     `yaml:"model_db_path,omitempty"` // Persisted trend models (default: ./models.db)
	ForecastDays  int        `yaml:"forecast_days,omitempty"` // Forecast horizon (default: 90)
	LogLevel      string     `yaml:"log_level,omitempty"`     // debug, info, warn, error (default: info)
	HomeAssistant HAConfig   `yaml:"home_assistant,omitempty"`
	MQTT          MQTTConfig `yaml:"mqtt,omitempty"`
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled      bool   `yaml:"enabled"`
	URL          string `yaml:"url"`           // e.g., "http://yourdomain.local:8123"
	Token        string `yaml:"token"`         // Long-lived access token
	EntityPrefix string `yaml:"entity_prefix"` // e.g., "sensor.electricity_forecast"
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // e.g., "localhost:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default: "gridtrend"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDBPath returns the daily usage database path with a local default
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return "data.db"
}

// GetModelDBPath returns the model store path with a local default
func (c *Config) GetModelDBPath() string {
	if c.ModelDBPath != "" {
		return c.ModelDBPath
	}
	return "models.db"
}

// GetForecastDays returns the forecast horizon with a default of 90 (3 months)
func (c *Config) GetForecastDays() int {
	if c.ForecastDays <= 0 {
		return 90 // Default to 3 months
	}
	return c.ForecastDays
}

// GetLogLevel returns the configured log level, defaulting to info
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetTopicPrefix returns the MQTT topic prefix with a default
func (c *MQTTConfig) GetTopicPrefix() string {
	if c.TopicPrefix == "" {
		return "gridtrend"
	}
	return c.TopicPrefix
}
