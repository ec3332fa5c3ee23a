// Package main Readiness Entitlements API
//
// @title           Readiness Entitlements API
// @version         1.0
// @description     Статус подписки и доступ к премиум-функциям.

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/readiness-entitlements/internal/app/entitlements"
	"github.com/magabrotheeeer/readiness-entitlements/internal/config"
	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env)

	logger.Info("starting entitlements", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := entitlements.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("entitlements stopped gracefully")
}
