package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Shashi960/money-balancer-backend/internal/auth"
	"github.com/Shashi960/money-balancer-backend/internal/config"
	"github.com/Shashi960/money-balancer-backend/internal/events"
	internalhttp "github.com/Shashi960/money-balancer-backend/internal/http"
	"github.com/Shashi960/money-balancer-backend/internal/services"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.SQLiteDBPath, "error", err)
		os.Exit(1)
	}

	// The event stream is optional: without AMQP the API still works,
	// only the sheet export pipeline is off.
	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to connect to AMQP, continuing without events", "error", err)
			eventsClient = nil
		}
	}

	expenseService := services.NewExpenseService(repo, eventsClient)
	defer func() {
		if err := expenseService.Close(); err != nil {
			slog.Error("Failed to close services", "error", err)
		}
	}()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	srv := internalhttp.NewServer(":"+cfg.Port, internalhttp.Deps{
		Expenses:           expenseService,
		Debts:              services.NewDebtService(repo, eventsClient),
		Limits:             services.NewLimitService(repo),
		Summary:            services.NewSummaryService(repo),
		Auth:               auth.NewService(repo, issuer),
		AuthRequired:       cfg.AuthRequired,
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("Shutting down", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting server",
		"port", cfg.Port,
		"auth_required", cfg.AuthRequired,
		"events_enabled", eventsClient != nil)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
