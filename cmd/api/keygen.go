// AngelaMos | 2026
// keygen.go

package main

import (
	"github.com/spf13/cobra"

	"github.com/vipinpawar/jeopardy-app/internal/auth"
)

func newKeygenCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate the ES256 key pair used to sign tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}

			if err := auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
				return err
			}
			logger.Info("key pair written",
				"private", cfg.JWT.PrivateKeyPath,
				"public", cfg.JWT.PublicKeyPath,
			)
			return nil
		},
	}
}
