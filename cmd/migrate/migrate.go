package migrate

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	dbfs "github.com/garnizeh/flightlog/db"
	"github.com/garnizeh/flightlog/internal/config"
	"github.com/garnizeh/flightlog/internal/db"
)

// Command creates the migrate command that brings the schema up to date.
func Command(ctx *config.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.New(cmd.Context(), ctx.Config.DatabasePath, ctx.Logger)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			if err := db.Migrate(cmd.Context(), database, dbfs.Migrations); err != nil {
				return err
			}

			ctx.Logger.Info("database migrated", slog.String("path", ctx.Config.DatabasePath))
			return nil
		},
	}
}
