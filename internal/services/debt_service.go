package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/events"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

// DebtService owns the debt lifecycle, including the pending -> paid
// transition rule.
type DebtService struct {
	storage *storage.Repository
	events  *events.Client
}

func NewDebtService(storage *storage.Repository, eventsClient *events.Client) *DebtService {
	return &DebtService{
		storage: storage,
		events:  eventsClient,
	}
}

func (s *DebtService) Create(ctx context.Context, d core.Debt) error {
	if err := s.storage.CreateDebt(ctx, d); err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	s.publish(ctx, d.ID, events.ActionCreated)
	return nil
}

func (s *DebtService) List(ctx context.Context) ([]core.Debt, error) {
	return s.storage.ListDebts(ctx)
}

// MarkStatus transitions a debt to the given status and returns the
// updated record. Only pending -> paid is allowed; re-asserting the
// current status is a no-op.
func (s *DebtService) MarkStatus(ctx context.Context, id string, status core.DebtStatus) (core.Debt, error) {
	if err := status.Validate(); err != nil {
		return core.Debt{}, err
	}

	debt, err := s.storage.GetDebt(ctx, id)
	if err != nil {
		return core.Debt{}, err
	}

	if !debt.Status.CanTransitionTo(status) {
		return core.Debt{}, fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, debt.Status, status)
	}

	if debt.Status != status {
		if err := s.storage.UpdateDebtStatus(ctx, id, status); err != nil {
			return core.Debt{}, err
		}
		debt.Status = status
		s.publish(ctx, id, events.ActionUpdated)
	}

	return debt, nil
}

func (s *DebtService) Delete(ctx context.Context, id string) error {
	if err := s.storage.DeleteDebt(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, events.ActionDeleted)
	return nil
}

func (s *DebtService) publish(ctx context.Context, id, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishChange(ctx, events.EntityDebt, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish debt change",
			"id", id, "action", action, "error", err)
	}
}
