package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"empire-builder/bootstrap"
	"empire-builder/internal/config"
	"empire-builder/internal/pkg/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}
	logging.Setup(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("App create failed")
	}

	log.Info().Msgf("Game API: http://localhost:%s/api/v1/game/state", cfg.Port)
	log.Info().Msgf("Health check: http://localhost:%s/health/json", cfg.Port)
	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
