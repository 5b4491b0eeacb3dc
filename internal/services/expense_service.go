// Package services orchestrates domain operations across storage and
// the change-event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/events"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

// ExpenseService coordinates expense writes with the export pipeline.
// Event publishing is best effort: the SQLite write is the source of
// truth and a failed publish never fails the request.
type ExpenseService struct {
	storage *storage.Repository
	events  *events.Client
}

func NewExpenseService(storage *storage.Repository, eventsClient *events.Client) *ExpenseService {
	return &ExpenseService{
		storage: storage,
		events:  eventsClient,
	}
}

func (s *ExpenseService) Create(ctx context.Context, e core.Expense) error {
	if err := s.storage.CreateExpense(ctx, e); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	s.publish(ctx, e.ID, events.ActionCreated)
	return nil
}

func (s *ExpenseService) List(ctx context.Context, filter storage.ExpenseFilter) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx, filter)
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.storage.GetExpense(ctx, id)
}

func (s *ExpenseService) Update(ctx context.Context, e core.Expense) error {
	if err := s.storage.UpdateExpense(ctx, e); err != nil {
		return err
	}
	s.publish(ctx, e.ID, events.ActionUpdated)
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, events.ActionDeleted)
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, id, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishChange(ctx, events.EntityExpense, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense change",
			"id", id, "action", action, "error", err)
	}
}

func (s *ExpenseService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}
