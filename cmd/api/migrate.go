// AngelaMos | 2026
// migrate.go

package main

import (
	"github.com/spf13/cobra"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

func newMigrateCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			if err := migrateUp(cfg.Database.URL); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}

			m, err := core.NewMigrator(cfg.Database.URL)
			if err != nil {
				return err
			}
			defer m.Close() //nolint:errcheck

			if err := m.Down(steps); err != nil {
				return err
			}
			logger.Info("migrations rolled back", "steps", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 for all")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}

			m, err := core.NewMigrator(cfg.Database.URL)
			if err != nil {
				return err
			}
			defer m.Close() //nolint:errcheck

			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			logger.Info("schema version", "version", v, "dirty", dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func migrateUp(databaseURL string) error {
	m, err := core.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck

	return m.Up()
}
