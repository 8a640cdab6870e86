package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/airgraph/chart"
	"gopkg.in/yaml.v3"
)

// Config is the complete node configuration.
type Config struct {
	Display DisplayConfig `json:"display" yaml:"display"`
	Sensor  SensorConfig  `json:"sensor" yaml:"sensor"`
	MQTT    MQTTConfig    `json:"mqtt" yaml:"mqtt"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Node    NodeConfig    `json:"node" yaml:"node"`
}

// DisplayConfig holds panel geometry and chart axis settings.
type DisplayConfig struct {
	Driver string `json:"driver" yaml:"driver"` // "image" or "null"
	// SnapshotPath is where the image driver writes its PNG frame.
	SnapshotPath string `json:"snapshot_path,omitempty" yaml:"snapshot_path,omitempty"`

	FullWidth   int `json:"full_width" yaml:"full_width"`
	FullHeight  int `json:"full_height" yaml:"full_height"`
	GraphWidth  int `json:"graph_width" yaml:"graph_width"`
	GraphHeight int `json:"graph_height" yaml:"graph_height"`

	YStep   float64 `json:"y_step" yaml:"y_step"`
	YTicks  int     `json:"y_ticks" yaml:"y_ticks"`
	XLabels int     `json:"x_labels" yaml:"x_labels"`
	XTicks  int     `json:"x_ticks" yaml:"x_ticks"`
	XStep   int     `json:"x_step" yaml:"x_step"`
	XUnit   string  `json:"x_unit" yaml:"x_unit"`

	PadLow  int `json:"pad_low" yaml:"pad_low"`
	PadHigh int `json:"pad_high" yaml:"pad_high"`

	FallbackMin float64 `json:"fallback_min" yaml:"fallback_min"`
	FallbackMax float64 `json:"fallback_max" yaml:"fallback_max"`
}

// SensorConfig selects the reading source.
type SensorConfig struct {
	Type string `json:"type" yaml:"type"` // "sim" or "scd30"
	Seed int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// MQTTConfig holds broker settings for the publish leg.
type MQTTConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Broker    string `json:"broker,omitempty" yaml:"broker,omitempty"`
	ClientID  string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
	Topic     string `json:"topic,omitempty" yaml:"topic,omitempty"`
	QoS       byte   `json:"qos" yaml:"qos"`
	KeepAlive bool   `json:"keepalive" yaml:"keepalive"`
}

// JournalConfig selects reading persistence.
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	ReadingsFile string `json:"readings_file,omitempty" yaml:"readings_file,omitempty"`
}

// NodeConfig holds run-loop cadence and backpressure settings.
type NodeConfig struct {
	SampleInterval string `json:"sample_interval" yaml:"sample_interval"` // e.g. "30s"
	RenderBudget   string `json:"render_budget" yaml:"render_budget"`     // e.g. "2s"
	QueueSize      int    `json:"queue_size" yaml:"queue_size"`
}

// ChartConfig converts the display section into the chart engine's config.
func (d DisplayConfig) ChartConfig() chart.Config {
	return chart.Config{
		Mode:        chart.ModeCandle,
		FullWidth:   d.FullWidth,
		FullHeight:  d.FullHeight,
		GraphWidth:  d.GraphWidth,
		GraphHeight: d.GraphHeight,
		YStep:       d.YStep,
		YTicks:      d.YTicks,
		XLabels:     d.XLabels,
		XTicks:      d.XTicks,
		XStep:       d.XStep,
		XUnit:       d.XUnit,
		PadLow:      d.PadLow,
		PadHigh:     d.PadHigh,
		FallbackMin: d.FallbackMin,
		FallbackMax: d.FallbackMax,
	}
}

// ParseSampleInterval parses the configured cadence.
func (n NodeConfig) ParseSampleInterval() (time.Duration, error) {
	return time.ParseDuration(n.SampleInterval)
}

// ParseRenderBudget parses the render-timeout guard duration.
func (n NodeConfig) ParseRenderBudget() (time.Duration, error) {
	return time.ParseDuration(n.RenderBudget)
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Display.Driver != "image" && c.Display.Driver != "null" {
		return fmt.Errorf("display.driver must be 'image' or 'null'")
	}
	if err := c.Display.ChartConfig().Validate(); err != nil {
		return err
	}
	switch c.Sensor.Type {
	case "sim", "scd30":
	default:
		return fmt.Errorf("sensor.type must be 'sim' or 'scd30', got %q", c.Sensor.Type)
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" {
			return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
		}
		if c.MQTT.Topic == "" {
			return fmt.Errorf("mqtt.topic is required when mqtt is enabled")
		}
		if c.MQTT.QoS > 1 {
			return fmt.Errorf("mqtt.qos must be 0 or 1")
		}
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.ReadingsFile == "" {
			return fmt.Errorf("journal.readings_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if d, err := c.Node.ParseSampleInterval(); err != nil || d <= 0 {
		return fmt.Errorf("node.sample_interval must be a positive duration")
	}
	if d, err := c.Node.ParseRenderBudget(); err != nil || d <= 0 {
		return fmt.Errorf("node.render_budget must be a positive duration")
	}
	if c.Node.QueueSize <= 0 {
		return fmt.Errorf("node.queue_size must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults: the 2.9" panel
// geometry, a simulated sensor and no network side effects.
func Default() *Config {
	cc := chart.DefaultConfig()
	return &Config{
		Display: DisplayConfig{
			Driver:       "image",
			SnapshotPath: "./frame.png",
			FullWidth:    cc.FullWidth,
			FullHeight:   cc.FullHeight,
			GraphWidth:   cc.GraphWidth,
			GraphHeight:  cc.GraphHeight,
			YStep:        cc.YStep,
			YTicks:       cc.YTicks,
			XLabels:      cc.XLabels,
			XTicks:       cc.XTicks,
			XStep:        cc.XStep,
			XUnit:        cc.XUnit,
			PadLow:       cc.PadLow,
			PadHigh:      cc.PadHigh,
			FallbackMin:  cc.FallbackMin,
			FallbackMax:  cc.FallbackMax,
		},
		Sensor: SensorConfig{
			Type: "sim",
			Seed: 1,
		},
		MQTT: MQTTConfig{
			Enabled:  false,
			ClientID: "airgraph",
			Topic:    "home/airgraph/readings",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./airgraph.sqlite",
		},
		Node: NodeConfig{
			SampleInterval: "30s",
			RenderBudget:   "2s",
			QueueSize:      8,
		},
	}
}
