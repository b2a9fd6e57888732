package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nba-league-service/internal/config"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "nba-league-service"
	envFile     = ".env"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	loadedEnv, envErr := config.LoadEnvFile(envFile)

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: appVersion,
	})
	if envErr != nil {
		logging.Warn(logger, "ignoring unreadable env file", "file", envFile, "err", envErr)
	} else if loadedEnv {
		logging.Debug(logger, "env file loaded", "file", envFile)
	}
	if err := cfg.Validate(); err != nil {
		logging.Error(logger, "invalid configuration", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
