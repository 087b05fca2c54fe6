package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/account"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/config"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/gemini"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/storage"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/studio"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the studio HTTP/WebSocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}
	cmd.Flags().String("port", "", "listen port")
	cmd.Flags().Bool("migrate", false, "create history tables before serving")
	_ = v.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("MIGRATE_ON_START", cmd.Flags().Lookup("migrate"))
	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openKV(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.KVBackend).Msg("❌ Failed to open kv store")
		return err
	}
	defer store.Close()

	backend, err := openHistory(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.HistoryBackend).Msg("❌ Failed to open history backend")
		return err
	}
	defer backend.close()

	if v.GetBool("MIGRATE_ON_START") {
		if err := backend.migrate(ctx); err != nil {
			return err
		}
	}

	registry := account.NewRegistry(store, backend.drivers, cfg.SessionIdleTTL, log)
	go registry.Run(ctx, account.DefaultReapInterval)

	builder := prompt.NewBuilder(prompt.Models{
		Image:     cfg.ImageModel,
		Text:      cfg.TextModel,
		Reasoning: cfg.ReasoningModel,
	})

	srv := studio.NewServer(studio.Options{
		ServerAPIKey:      cfg.GeminiAPIKey,
		MaxAttachmentEdge: cfg.MaxAttachmentEdge,
		AllowAnonymous:    cfg.AllowAnonymous,
		AllowedOrigins:    cfg.AllowedOrigins,
	}, registry, gemini.NewFactory(log), builder, storage.NewClient(cfg, log), auth.NewVerifier(cfg.SupabaseJWTSecret), log)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("history", cfg.HistoryBackend).
			Str("kv", cfg.KVBackend).
			Bool("serverKey", cfg.GeminiAPIKey != "").
			Msg("🚀 Lumina Studio server starting")
		log.Info().Msgf("📡 WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
		log.Info().Msgf("❤️  Health check: http://localhost:%s/health", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("🛑 Shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("❌ Server failed to start")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	srv.Hub().Close()
	registry.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ Graceful shutdown failed")
		return err
	}
	log.Info().Msg("👋 Server stopped")
	return nil
}
