package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/spf13/cobra"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/repo"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending trip store migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url := a.v.GetString("DATABASE_URL")
			if url == "" {
				return fmt.Errorf("migrate: DATABASE_URL is not set")
			}
			db, err := sql.Open("pgx", url)
			if err != nil {
				return fmt.Errorf("migrate: open: %w", err)
			}
			defer db.Close()

			versions, err := repo.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				a.log.Info("trip store is up to date")
				return nil
			}
			a.log.Info("migrations applied", "versions", versions)
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var city, file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a city CSV file into the Postgres trip store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := service.Validate(domain.RawRequest{"city": city, "month": domain.AllValues, "day": domain.AllValues})
			if err != nil {
				return err
			}
			url := a.v.GetString("DATABASE_URL")
			if url == "" {
				return fmt.Errorf("import: DATABASE_URL is not set")
			}
			if file == "" {
				file = filepath.Join(a.v.GetString("DATA_DIR"), q.City.SourceName())
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			defer f.Close()

			table, err := repo.ReadCSV(cmd.Context(), q.City.SourceName(), f)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			// Reject a file the pipeline could not load before storing it.
			if _, err := service.DecodeTable(q.City, table); err != nil {
				return fmt.Errorf("import: %w", err)
			}

			pool, err := repo.OpenPool(cmd.Context(), url)
			if err != nil {
				return err
			}
			defer pool.Close()

			imp, err := repo.NewTripStore(pool).Import(cmd.Context(), q.City, table)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s rows for %s from %s (import %s)\n",
				humanize.Comma(int64(imp.RowCount)), imp.City, file, imp.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "City the file belongs to")
	cmd.Flags().StringVar(&file, "file", "", "CSV file to import (default <data-dir>/<city file>)")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}
