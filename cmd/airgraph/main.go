package main

import (
	"os"

	"github.com/rustyeddy/airgraph/cmd/airgraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
