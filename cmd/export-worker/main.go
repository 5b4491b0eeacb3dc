// The export worker consumes change messages and mirrors expense rows
// to a Google Sheets spreadsheet.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Shashi960/money-balancer-backend/internal/config"
	"github.com/Shashi960/money-balancer-backend/internal/events"
	"github.com/Shashi960/money-balancer-backend/internal/export"
	"github.com/Shashi960/money-balancer-backend/internal/export/google"
	"github.com/Shashi960/money-balancer-backend/internal/export/memory"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
	"github.com/Shashi960/money-balancer-backend/internal/worker"
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
	if cfg.AMQPURL == "" {
		slog.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.SQLiteDBPath, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	var appender export.RowAppender
	if cfg.GoogleSpreadsheetID != "" {
		appender, err = google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			slog.Error("Failed to create sheets client", "error", err)
			os.Exit(1)
		}
		slog.Info("Exporting to Google Sheets",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		appender = memory.New()
		slog.Warn("GOOGLE_SPREADSHEET_ID not set, exported rows are kept in memory only")
	}

	eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer eventsClient.Close()

	exportWorker := worker.NewExportWorker(repo, appender)

	slog.Info("Export worker started", "queue", cfg.AMQPQueue)
	if err := eventsClient.ConsumeChanges(ctx, exportWorker.HandleChange); err != nil &&
		!errors.Is(err, context.Canceled) {
		slog.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	slog.Info("Export worker stopped")
}
