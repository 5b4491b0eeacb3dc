// Package memory is an in-process RowAppender used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/export"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Expense
}

var _ export.RowAppender = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) AppendExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, e)
	return nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.rows))
	copy(out, s.rows)
	return out
}
