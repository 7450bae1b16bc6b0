package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rate_audit/internal/application"
	"rate_audit/internal/config"
	"rate_audit/pkg/contextx"
	"rate_audit/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.New(os.Stdout, cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log.With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
	))

	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	log.Info("application stopped")
}
