package cmd

import (
	"github.com/spf13/cobra"

	"github.com/garnizeh/flightlog/cmd/backup"
	"github.com/garnizeh/flightlog/cmd/importflights"
	"github.com/garnizeh/flightlog/cmd/migrate"
	"github.com/garnizeh/flightlog/cmd/restore"
	"github.com/garnizeh/flightlog/cmd/serve"
	"github.com/garnizeh/flightlog/internal/config"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *config.Context, version, buildTime string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flightlog",
		Short:         "Paragliding flight log",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.ConfigPath, "config", "c", "", "Path to config YAML file")

	rootCmd.AddCommand(
		serve.Command(ctx, version, buildTime),
		migrate.Command(ctx),
		backup.Command(ctx),
		restore.Command(ctx),
		importflights.Command(ctx),
	)

	// Every subcommand needs the configuration and the logger.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return ctx.Load()
	}

	return rootCmd
}
