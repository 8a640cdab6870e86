package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 296, cfg.Display.FullWidth)

	iv, err := cfg.Node.ParseSampleInterval()
	require.NoError(t, err)
	assert.Positive(t, iv)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad driver", func(c *Config) { c.Display.Driver = "vga" }},
		{"bad x unit", func(c *Config) { c.Display.XUnit = "fortnight" }},
		{"bad sensor", func(c *Config) { c.Sensor.Type = "dht9000" }},
		{"mqtt missing broker", func(c *Config) { c.MQTT.Enabled = true; c.MQTT.Broker = "" }},
		{"mqtt qos2", func(c *Config) {
			c.MQTT.Enabled = true
			c.MQTT.Broker = "tcp://broker:1883"
			c.MQTT.QoS = 2
		}},
		{"csv without file", func(c *Config) { c.Journal.Type = "csv"; c.Journal.ReadingsFile = "" }},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.DBPath = "" }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "tape" }},
		{"bad interval", func(c *Config) { c.Node.SampleInterval = "soon" }},
		{"zero queue", func(c *Config) { c.Node.QueueSize = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airgraph.yaml")

	cfg := Default()
	cfg.Display.XStep = 24
	cfg.Display.XUnit = "h"
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, "h", got.Display.XUnit)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [not, a, mapping"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
