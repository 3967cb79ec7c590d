package importflights

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/garnizeh/flightlog/internal/config"
	"github.com/garnizeh/flightlog/internal/db"
	"github.com/garnizeh/flightlog/internal/importcsv"
	"github.com/garnizeh/flightlog/internal/repository/sqlite"
)

// Command creates the import command that runs a CSV flight book through the
// importer and prints the report as JSON.
func Command(ctx *config.Context) *cobra.Command {
	var (
		pilotID int64
		mode    string
	)

	cmd := &cobra.Command{
		Use:   "import [flights.csv]",
		Short: "Analyze or import a CSV flight book",
		Long:  `Analyze or import a CSV flight book for a pilot. Use - to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := importcsv.ParseMode(mode)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			database, err := db.New(cmd.Context(), ctx.Config.DatabasePath, ctx.Logger)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			repo := sqlite.New(database, ctx.Logger)
			pilot, err := repo.GetPilot(cmd.Context(), pilotID)
			if err != nil {
				return err
			}
			if pilot == nil {
				return fmt.Errorf("pilot %d not found", pilotID)
			}

			res, err := importcsv.New(repo, ctx.Logger).Run(cmd.Context(), pilotID, m, in)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}

			if m == importcsv.ModeImport && res.HasErrors() {
				return fmt.Errorf("nothing imported: the file has %d errors", len(res.Errors))
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&pilotID, "pilot", "p", 0, "Pilot id")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(importcsv.ModeAnalyze), "analyze or import")
	_ = cmd.MarkFlagRequired("pilot")

	return cmd
}
