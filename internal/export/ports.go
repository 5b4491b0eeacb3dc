// Package export defines the outbound port for mirroring expense rows
// to an external spreadsheet.
package export

import (
	"context"

	"github.com/Shashi960/money-balancer-backend/internal/core"
)

// RowAppender appends one expense row to an external sheet.
type RowAppender interface {
	AppendExpense(ctx context.Context, e core.Expense) error
}
