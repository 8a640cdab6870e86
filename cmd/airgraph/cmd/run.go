package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/airgraph/config"
	"github.com/rustyeddy/airgraph/node"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sensor node from a config file",
	Long: `Run the sensor-to-display loop using settings from a configuration file.

The config file specifies the display geometry, sensor source, journal
backend and MQTT broker. Without a config file the built-in defaults are
used: a simulated sensor drawing to ./frame.png.

Example:
  airgraph run -f examples/configs/node.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	log := logger()

	n, err := node.FromConfig(cfg, log)
	if err != nil {
		return fmt.Errorf("build node: %w", err)
	}
	defer n.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return n.Run(ctx)
}
