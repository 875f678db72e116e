// AngelaMos | 2026
// worker.go

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/mailer"
	"github.com/vipinpawar/jeopardy-app/internal/mq"
	"github.com/vipinpawar/jeopardy-app/internal/notify"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

func newWorkerCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Deliver queued download notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, logger, err := load()
			if err != nil {
				return err
			}

			broker, err := mq.New(ctx, cfg.Queue)
			if err != nil {
				return err
			}
			if broker == nil {
				return errors.New("worker requires a queue backend")
			}
			defer broker.Close() //nolint:errcheck

			db, err := core.NewDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			mail := mailer.New(cfg.Mail, logger)
			notifier := notify.NewMailNotifier(user.NewRepository(db.DB), mail)

			worker := notify.NewWorker(broker, cfg.Queue.NotificationChannel, notifier, logger)
			return worker.Run(ctx)
		},
	}
}
