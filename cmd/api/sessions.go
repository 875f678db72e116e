// AngelaMos | 2026
// sessions.go

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vipinpawar/jeopardy-app/internal/auth"
	"github.com/vipinpawar/jeopardy-app/internal/core"
)

func newSessionsCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage stored refresh sessions",
	}

	var retention time.Duration
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete refresh tokens that expired before the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, logger, err := load()
			if err != nil {
				return err
			}

			db, err := core.NewDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			svc := auth.NewService(auth.ServiceConfig{
				Repo:   auth.NewRepository(db.DB),
				Logger: logger,
			})

			n, err := svc.PruneSessions(ctx, retention)
			if err != nil {
				return err
			}
			logger.Info("expired sessions pruned", "deleted", n, "retention", retention)
			return nil
		},
	}
	prune.Flags().DurationVar(&retention, "retention", 24*time.Hour, "keep expired tokens this long for reuse detection")

	cmd.AddCommand(prune)
	return cmd
}
