package main

import (
	"os"
	"os/signal"
	"syscall"

	"shopapi/internal/app"
	"shopapi/internal/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := config.NewLogger(cfg.Logger)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise application")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Listen(); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logger.Info().Msg("shutting down server")
	if err := application.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
	logger.Info().Msg("server gracefully stopped")
}
