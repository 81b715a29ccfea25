package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Testeur1337/myPomodoro/internal/cli"
	"github.com/Testeur1337/myPomodoro/internal/config"
	"github.com/Testeur1337/myPomodoro/internal/logger"
)

// Configured through POMODORO_* variables; PORT and DATABASE_URL are
// honored for container platforms.
func main() {
	cfg, err := config.Load(os.Getenv("POMODORO_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Data.Driver = "postgres"
		cfg.Data.DSN = dbURL
	}
	cfg.LogConsole = true
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:   logger.ParseLevel(cfg.LogLevel),
		Format:  logger.ParseFormat(cfg.LogFormat),
		Console: true,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := cli.Serve(ctx, cfg); err != nil {
		logger.Error("Server failed", logger.F("error", err))
		os.Exit(1)
	}
}
