// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("application error", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "jeopardy",
		Short:         "Jeopardy quiz game and store backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(
		&configPath,
		"config",
		"config.yaml",
		"path to config file",
	)

	load := func() (*config.Config, *slog.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		logger := setupLogger(cfg.Log)
		slog.SetDefault(logger)
		return cfg, logger, nil
	}

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newWorkerCmd(load),
		newKeygenCmd(load),
		newSessionsCmd(load),
	)

	return root
}

type loader func() (*config.Config, *slog.Logger, error)

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
