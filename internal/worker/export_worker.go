// Package worker mirrors expense rows to an external spreadsheet by
// consuming change messages.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/Shashi960/money-balancer-backend/internal/events"
	"github.com/Shashi960/money-balancer-backend/internal/export"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

// ExportWorker appends created and updated expenses to a RowAppender.
// Debt events and deletions are acknowledged without action: the sheet
// is an append-only journal, not a replica.
type ExportWorker struct {
	storage  *storage.Repository
	appender export.RowAppender
	attempts uint
	delay    time.Duration
}

func NewExportWorker(storage *storage.Repository, appender export.RowAppender) *ExportWorker {
	return &ExportWorker{
		storage:  storage,
		appender: appender,
		attempts: 3,
		delay:    5 * time.Second,
	}
}

// HandleChange processes one change message. A nil return acknowledges
// the message; an error causes a requeue.
func (w *ExportWorker) HandleChange(ctx context.Context, msg *events.ChangeMessage) error {
	if msg.Entity != events.EntityExpense || msg.Action == events.ActionDeleted {
		slog.DebugContext(ctx, "Skipping change message",
			"entity", msg.Entity, "id", msg.ID, "action", msg.Action)
		return nil
	}

	expense, err := w.storage.GetExpense(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted between publish and consume; nothing to export.
		slog.WarnContext(ctx, "Expense vanished before export", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load expense %s: %w", msg.ID, err)
	}

	err = retry.Do(
		func() error {
			return w.appender.AppendExpense(ctx, expense)
		},
		retry.Attempts(w.attempts),
		retry.Delay(w.delay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return fmt.Errorf("append expense %s: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Expense exported",
		"id", expense.ID,
		"title", expense.Title,
		"action", msg.Action)

	return nil
}
