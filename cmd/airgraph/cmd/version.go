package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the airgraph CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("airgraph version %s\n", version)
		fmt.Println("A CO2 sensor node with a rolling e-paper chart")
		fmt.Println("https://github.com/rustyeddy/airgraph")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
