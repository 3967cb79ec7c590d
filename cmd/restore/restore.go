package restore

import (
	"github.com/spf13/cobra"

	"github.com/garnizeh/flightlog/internal/config"
	"github.com/garnizeh/flightlog/internal/db"
)

// Command creates the restore command. The server must not be running.
func Command(ctx *config.Context) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the database with a backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := input
			if src == "" {
				src = db.BackupPath(ctx.Config.DatabasePath)
			}
			return db.Restore(cmd.Context(), src, ctx.Config.DatabasePath, ctx.Logger)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Backup file path")

	return cmd
}
