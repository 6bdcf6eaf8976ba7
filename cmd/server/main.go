package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/team-matches-service/internal/config"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
	"github.com/preston-bernstein/team-matches-service/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "team-matches-service"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	// A missing .env is normal outside local development.
	envErr := godotenv.Load()

	cfg, err := config.LoadFile(config.PathFromEnv())
	if err != nil {
		logging.Error(logging.NewLogger(logging.Config{Service: serviceName, Version: appVersion}), "failed to load config", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: appVersion,
	})
	if envErr == nil {
		logging.Info(logger, "loaded .env")
	}
	logging.Info(logger, "configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "failed to build server", err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
