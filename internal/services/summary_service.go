package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

// SummaryService assembles the spending summary. The three reads it
// needs are independent, so they run concurrently and join before the
// engine computes.
type SummaryService struct {
	storage *storage.Repository
	now     func() time.Time
}

func NewSummaryService(storage *storage.Repository) *SummaryService {
	return &SummaryService{
		storage: storage,
		now:     time.Now,
	}
}

func (s *SummaryService) Get(ctx context.Context) (core.Summary, error) {
	var (
		expenses []core.Expense
		debts    []core.Debt
		limit    core.Limit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.storage.ListExpenses(gctx, storage.ExpenseFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		debts, err = s.storage.ListDebts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		limit, err = s.storage.GetLimit(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Summary{}, fmt.Errorf("load summary inputs: %w", err)
	}

	return core.ComputeSummary(s.now(), expenses, debts, limit), nil
}
