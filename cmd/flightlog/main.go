package main

import (
	"fmt"
	"os"

	"github.com/garnizeh/flightlog/cmd"
	"github.com/garnizeh/flightlog/internal/config"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	ctx := &config.Context{}

	rootCmd := cmd.RootCommand(ctx, version, buildTime)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
