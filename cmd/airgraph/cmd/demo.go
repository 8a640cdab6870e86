package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/airgraph/chart"
	"github.com/rustyeddy/airgraph/display"
	"github.com/rustyeddy/airgraph/sensor"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render a demo frame without hardware",
	Long: `Feed simulated readings through the chart engine and write the frame
as a PNG, exactly as the e-paper panel would show it.

Useful for checking geometry and axis settings before flashing a device.

Example:
  airgraph demo -o frame.png --samples 600`,
	RunE: runDemo,
}

var (
	demoOutput  string
	demoSamples int
)

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "frame.png", "output PNG path")
	demoCmd.Flags().IntVar(&demoSamples, "samples", 600, "number of simulated readings")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := chart.DefaultConfig()

	surf := display.NewImage(cfg.FullWidth, cfg.FullHeight)
	surf.SnapshotPath = demoOutput

	disp, err := chart.New(cfg, surf, logger())
	if err != nil {
		return fmt.Errorf("build display: %w", err)
	}

	sim := sensor.NewSim(1)
	step := int64(cfg.SecondsPerBin()) + 1

	ctx := context.Background()
	for i := 0; i < demoSamples; i++ {
		r, err := sim.Read(ctx)
		if err != nil {
			return err
		}
		disp.SetTemp(r.TemperatureC)
		disp.SetSecondText([]string{fmt.Sprintf("RH: %4.1f %%", r.HumidityRH)})
		if err := disp.Add(r.CO2, int64(i)*step); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	fulls, partials := surf.Refreshes()
	fmt.Printf("Wrote %s after %d readings (%d full, %d partial refreshes)\n",
		demoOutput, demoSamples, fulls, partials)
	return nil
}
