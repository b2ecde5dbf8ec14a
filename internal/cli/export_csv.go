package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IslamGh2004/sawtlib/internal/config"
	"github.com/IslamGh2004/sawtlib/internal/database"
	"github.com/IslamGh2004/sawtlib/internal/database/authors"
	"github.com/IslamGh2004/sawtlib/internal/database/books"
	"github.com/IslamGh2004/sawtlib/internal/database/categories"
	"github.com/IslamGh2004/sawtlib/internal/database/progress"
	"github.com/IslamGh2004/sawtlib/internal/database/users"
	"github.com/IslamGh2004/sawtlib/internal/exporters"
)

// newExportCSVCommand writes one resource as CSV, straight from the
// database, without going through the HTTP layer.
func newExportCSVCommand() *cobra.Command {
	var (
		dbPath string
		output string
	)

	cmd := &cobra.Command{
		Use:       "export-csv <resource>",
		Short:     "Export books, users, categories, authors or progress as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{exporters.ResourceBooks, exporters.ResourceUsers, exporters.ResourceCategories, exporters.ResourceAuthors, exporters.ResourceProgress},
		RunE: func(cmd *cobra.Command, args []string) error {
			resource := args[0]
			if !exporters.IsExportable(resource) {
				return fmt.Errorf("unknown resource %q", resource)
			}

			db, err := database.NewDatabase(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			exporter := exporters.NewCSVExporter(
				books.NewRepository(db.DB),
				users.NewRepository(db.DB),
				categories.NewRepository(db.DB),
				authors.NewRepository(db.DB),
				progress.NewRepository(db.DB),
			)

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			rows, err := exporter.Write(out, resource)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d %s\n", rows, resource)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", config.DefaultDatabasePath, "Path to the database file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
