package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/gridtrend/internal/config"
	"github.com/jgoulah/gridtrend/pkg/models"
)

// Publisher pushes forecast and seasonality results to Home Assistant
// (HTTP states API) and/or an MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	haConfig    config.HAConfig
}

// New creates a new publisher (supports both MQTT and HA HTTP API)
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig) (*Publisher, error) {
	// Validate HA config if enabled
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityPrefix == "" {
			return nil, fmt.Errorf("Home Assistant entity_prefix is required when enabled")
		}
	}

	var client mqtt.Client

	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		// Configure MQTT client options
		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID("gridtrend")
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(true)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		// Create and connect client
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
	}

	return &Publisher{
		client:      client,
		topicPrefix: mqttCfg.GetTopicPrefix(),
		haConfig:    haCfg,
	}, nil
}

// haState matches the Home Assistant states API payload
type haState struct {
	State      string            `json:"state"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// PublishForecast sends the next forecast point for one metric to Home
// Assistant as a sensor state (e.g. sensor.electricity_forecast_usage)
func (p *Publisher) PublishForecast(metric models.Metric, point models.ForecastPoint) error {
	if !p.haConfig.Enabled {
		return fmt.Errorf("Home Assistant publishing is not enabled in config")
	}

	entityID := fmt.Sprintf("%s_%s", p.haConfig.EntityPrefix, metric)
	apiURL := fmt.Sprintf("%s/api/states/%s", p.haConfig.URL, entityID)

	payload := haState{
		State: fmt.Sprintf("%.2f", point.Value),
		Attributes: map[string]string{
			"forecast_date": point.Date.Format("2006-01-02"),
			"metric":        string(metric),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// PublishSeasonality sends the twelve-month summary over MQTT, one retained
// message per month under <prefix>/seasonality/<month>
func (p *Publisher) PublishSeasonality(summary models.MonthlySeasonality) error {
	if p.client == nil {
		return fmt.Errorf("MQTT publishing is not enabled in config")
	}

	for _, stats := range summary {
		topic := fmt.Sprintf("%s/seasonality/%s", p.topicPrefix, strings.ToLower(stats.Month.String()))

		body, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("encoding %s seasonality: %w", stats.Month, err)
		}

		if token := p.client.Publish(topic, 0, true, body); token.Wait() && token.Error() != nil {
			return fmt.Errorf("publishing %s seasonality: %w", stats.Month, token.Error())
		}
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
