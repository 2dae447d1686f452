package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"treetroopers/internal/adapters/storage"
	calendarStore "treetroopers/internal/adapters/storage/calendar"
	"treetroopers/internal/config"
)

// site is what every subcommand works against: the loaded config, the
// migrated SQLite database and the events store the config selects.
type site struct {
	cfg    *config.Config
	db     *sql.DB
	events calendarStore.Store
	close  func()
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Administer a Tree Troopers site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default $CLUB_CONFIG)")

	open := func(cmd *cobra.Command) (*site, error) {
		path := cfgFile
		if path == "" {
			path = config.PathFromEnv()
		}
		return openSite(cmd.Context(), path)
	}

	root.AddCommand(
		newMigrateCmd(open),
		newContentCmd(open),
		newThemeCmd(open),
		newEventsCmd(open),
		newDevAccountCmd(open),
	)
	return root
}

type opener func(cmd *cobra.Command) (*site, error)

// openSite loads config from path and opens the database, migrating it to
// the latest schema.
// POST: on success the caller must call site.close
func openSite(ctx context.Context, path string) (*site, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	db, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s := &site{cfg: cfg, db: db, events: calendarStore.NewSQLiteStore(db), close: func() { db.Close() }}
	if cfg.DatabaseURL != "" {
		pool, err := calendarStore.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			db.Close()
			return nil, err
		}
		pg := calendarStore.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			db.Close()
			return nil, fmt.Errorf("failed to prepare events table: %w", err)
		}
		s.events = pg
		s.close = func() {
			pool.Close()
			db.Close()
		}
	}
	return s, nil
}

func newMigrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			v, err := storage.SchemaVersion(s.db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
}
