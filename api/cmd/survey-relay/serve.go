package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"survey-relay/api/internal/config"
	"survey-relay/api/internal/handle"
	"survey-relay/api/internal/httpserver"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		boot := config.NewLogger(os.Getenv("ENV"), "info")
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	logger := cfg.Logger()

	svc, err := buildService(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build relay")
	}
	if cfg.SlackWebhookURL == "" {
		logger.Warn().Msg("SLACK_WEBHOOK_URL is not set; submissions will fail until it is")
	}

	h := handle.New(svc, logger, cfg.CORSOrigins)
	e := httpserver.New(h, logger, cfg.CORSOrigins)
	// the model call alone may take LLM_TIMEOUT
	e.Server.WriteTimeout = cfg.LLMTimeout + 30*time.Second

	go func() {
		addr := ":" + cfg.Port
		logger.Info().
			Str("addr", addr).
			Str("llm", cfg.LLMProvider).
			Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
