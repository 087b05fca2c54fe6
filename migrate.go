package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/config"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create history tables for the configured SQL backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			log := logger.New(cfg.AppEnv, cfg.LogLevel)

			backend, err := openHistory(cmd.Context(), cfg, log)
			if err != nil {
				log.Error().Err(err).Str("backend", cfg.HistoryBackend).Msg("❌ Failed to open history backend")
				return err
			}
			defer backend.close()

			if err := backend.migrate(cmd.Context()); err != nil {
				log.Error().Err(err).Msg("❌ Migration failed")
				return err
			}
			log.Info().Str("backend", cfg.HistoryBackend).Msg("✅ History tables ready")
			return nil
		},
	}
}
