package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/airgraph/slogx"
)

var rootCmd = &cobra.Command{
	Use:   "airgraph",
	Short: "A CO2 sensor node with a rolling e-paper chart",
	Long: `Airgraph reads CO2, temperature and humidity from a sensor and keeps a
rolling min/max chart on a small e-paper panel.

It provides tools for:
  - Running the sensor-to-display loop on a device
  - Journaling readings to SQLite or CSV
  - Publishing readings over MQTT
  - Exporting journaled readings as PNG charts
  - Rendering demo frames without hardware

Complete documentation is available at https://github.com/rustyeddy/airgraph`,
}

var logLevel string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// logger builds the process logger from the global flag.
func logger() *slog.Logger {
	return slogx.New(logLevel)
}
