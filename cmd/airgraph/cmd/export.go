package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/airgraph/config"
	"github.com/rustyeddy/airgraph/export"
	"github.com/rustyeddy/airgraph/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journaled readings as PNG charts",
	Long: `Read journaled sensor readings and write CO2, temperature and humidity
charts as PNG files.

The journal backend comes from the config file; by default the newest
readings are charted, or use --since for a time window.

Examples:
  airgraph export -f node.yaml -o charts/
  airgraph export -f node.yaml -o charts/ --since 24h`,
	RunE: runExport,
}

var (
	exportConfigPath string
	exportOutDir     string
	exportLast       int
	exportSince      time.Duration
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportConfigPath, "config", "f", "", "path to config file (required)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "output directory for PNG files")
	exportCmd.Flags().IntVar(&exportLast, "last", 1000, "chart the newest N readings")
	exportCmd.Flags().DurationVar(&exportSince, "since", 0, "chart readings from the last duration instead of --last")
	exportCmd.MarkFlagRequired("config")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(exportConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	var recs []journal.ReadingRecord
	if exportSince > 0 {
		now := time.Now().UTC()
		recs, err = j.Between(now.Add(-exportSince), now)
	} else {
		recs, err = j.Recent(exportLast)
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	if err := os.MkdirAll(exportOutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := export.WriteCharts(exportOutDir, recs); err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %d readings to %s/{co2,temperature,humidity}.png\n", len(recs), exportOutDir)
	return nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.ReadingsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("journal type %q has nothing to export", cfg.Type)
	}
}
