package backup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garnizeh/flightlog/internal/config"
	"github.com/garnizeh/flightlog/internal/db"
)

// Command creates the backup command.
func Command(ctx *config.Context) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a consistent copy of the database",
		Long:  `Write a consistent copy of the database. Without --output the copy goes next to the database with a .bak suffix.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dst := output
			if dst == "" {
				dst = db.BackupPath(ctx.Config.DatabasePath)
			}

			database, err := db.New(cmd.Context(), ctx.Config.DatabasePath, ctx.Logger)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			return db.Backup(cmd.Context(), database, dst)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Backup file path")

	return cmd
}
