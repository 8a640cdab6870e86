package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/airgraph/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for the sensor node.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  airgraph config init -o node.yaml
  airgraph config validate -f node.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings: the 2.9" panel
geometry, a simulated sensor and a SQLite journal.

Example:
  airgraph config init -o node.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  airgraph config validate -f node.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "node.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("✓ Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  airgraph run -f %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("✓ Configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Display: %s %dx%d\n", cfg.Display.Driver, cfg.Display.FullWidth, cfg.Display.FullHeight)
	fmt.Printf("  Sensor: %s\n", cfg.Sensor.Type)
	fmt.Printf("  Journal: %s\n", cfg.Journal.Type)
	fmt.Printf("  MQTT: enabled=%v\n", cfg.MQTT.Enabled)
	return nil
}
