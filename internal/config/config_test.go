package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data.db", cfg.GetDBPath())
	assert.Equal(t, "models.db", cfg.GetModelDBPath())
	assert.Equal(t, 90, cfg.GetForecastDays())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, "gridtrend", cfg.MQTT.GetTopicPrefix())
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := &Config{
		DBPath:       "/var/lib/gridtrend/data.db",
		ForecastDays: 30,
		LogLevel:     "debug",
		MQTT: MQTTConfig{
			Enabled:     true,
			Broker:      "localhost:1883",
			TopicPrefix: "energy",
		},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/gridtrend/data.db", loaded.GetDBPath())
	assert.Equal(t, 30, loaded.GetForecastDays())
	assert.Equal(t, "debug", loaded.GetLogLevel())
	assert.True(t, loaded.MQTT.Enabled)
	assert.Equal(t, "energy", loaded.MQTT.GetTopicPrefix())
}
