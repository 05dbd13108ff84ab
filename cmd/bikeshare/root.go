package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/bikeshare-stats/internal/config"
	"github.com/pkordes/bikeshare-stats/internal/repo"
)

// app carries what every subcommand shares: the viper instance the flags are
// bound to and the logger built from it.
type app struct {
	v   *viper.Viper
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), log: slog.Default()}

	root := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Bikeshare trip statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			var level slog.Level
			if err := level.UnmarshalText([]byte(a.v.GetString("LOG_LEVEL"))); err != nil {
				level = slog.LevelInfo
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	flags := root.PersistentFlags()
	flags.String("data-dir", "", "Directory holding the city CSV files (DATA_DIR)")
	flags.String("row-source", "", "Where trips are read from: csv or postgres (ROW_SOURCE)")
	flags.String("database-url", "", "Postgres connection string (DATABASE_URL)")
	flags.String("log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	for key, flag := range map[string]string{
		"DATA_DIR":     "data-dir",
		"ROW_SOURCE":   "row-source",
		"DATABASE_URL": "database-url",
		"LOG_LEVEL":    "log-level",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newStatsCmd(a),
		newRawCmd(a),
		newImportCmd(a),
		newMigrateCmd(a),
	)
	return root
}

// config returns the validated configuration after flags are applied.
func (a *app) config() (config.Config, error) {
	return config.FromViper(a.v)
}

// rowSource opens the configured row source. The returned func releases it.
func (a *app) rowSource(ctx context.Context, cfg config.Config) (repo.RowSource, func(), error) {
	if cfg.RowSource != config.RowSourcePostgres {
		a.log.Debug("reading trips from CSV files", "data_dir", cfg.DataDir)
		return repo.NewCSVSource(cfg.DataDir), func() {}, nil
	}
	pool, err := repo.OpenPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return repo.NewTripStore(pool), pool.Close, nil
}
