// Package storage implements the SQLite repository behind the API.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Shashi960/money-balancer-backend/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// limitRowID is the primary key of the singleton limits row.
const limitRowID = "limit_settings"

type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the SQLite database at dbPath and
// applies migrations. Use ":memory:" for an ephemeral database.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dbPath != ":memory:" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Single connection: SQLite has one writer anyway, and in-memory
	// databases exist per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ---- Expenses ----

func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, title, amount_cents, date, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Amount.Cents, e.Date.String(), string(e.Category), e.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"title", e.Title,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return nil
}

// ExpenseFilter restricts ListExpenses to a date range. Nil bounds are
// open ended.
type ExpenseFilter struct {
	From *core.Date
	To   *core.Date
}

// ListExpenses returns expenses matching the filter, newest date first.
func (r *Repository) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]core.Expense, error) {
	query := `SELECT id, title, amount_cents, date, category, created_at FROM expenses`
	var args []any
	var conds []string

	if filter.From != nil {
		conds = append(conds, "date >= ?")
		args = append(args, filter.From.String())
	}
	if filter.To != nil {
		conds = append(conds, "date <= ?")
		args = append(args, filter.To.String())
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *Repository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, amount_cents, date, category, created_at FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	return e, err
}

// UpdateExpense replaces the mutable fields of an expense.
func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount_cents = ?, date = ?, category = ? WHERE id = ?`,
		e.Title, e.Amount.Cents, e.Date.String(), string(e.Category), e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

// ---- Debts ----

func (r *Repository) CreateDebt(ctx context.Context, d core.Debt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (id, name, amount_cents, reason, date, debt_type, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Amount.Cents, d.Reason, d.Date.String(), string(d.Type), string(d.Status), d.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}

	slog.InfoContext(ctx, "Debt saved",
		"id", d.ID,
		"name", d.Name,
		"amount_cents", d.Amount.Cents,
		"debt_type", d.Type)

	return nil
}

// ListDebts returns all debts, newest date first.
func (r *Repository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, reason, date, debt_type, status, created_at
		 FROM debts ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (r *Repository) GetDebt(ctx context.Context, id string) (core.Debt, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, amount_cents, reason, date, debt_type, status, created_at
		 FROM debts WHERE id = ?`, id)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Debt{}, ErrNotFound
	}
	return d, err
}

func (r *Repository) UpdateDebtStatus(ctx context.Context, id string, status core.DebtStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE debts SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update debt status: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteDebt(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireRow(res)
}

// ---- Limit ----

// GetLimit returns the configured spending limits. An unset
// configuration yields zero limits, not an error.
func (r *Repository) GetLimit(ctx context.Context) (core.Limit, error) {
	var limit core.Limit
	err := r.db.QueryRowContext(ctx,
		`SELECT weekly_cents, monthly_cents FROM limits WHERE id = ?`, limitRowID).
		Scan(&limit.Weekly.Cents, &limit.Monthly.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Limit{}, nil
	}
	if err != nil {
		return core.Limit{}, fmt.Errorf("get limit: %w", err)
	}
	return limit, nil
}

// SaveLimit replaces the limit configuration wholesale.
func (r *Repository) SaveLimit(ctx context.Context, limit core.Limit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO limits (id, weekly_cents, monthly_cents) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET weekly_cents = excluded.weekly_cents, monthly_cents = excluded.monthly_cents`,
		limitRowID, limit.Weekly.Cents, limit.Monthly.Cents)
	if err != nil {
		return fmt.Errorf("save limit: %w", err)
	}

	slog.InfoContext(ctx, "Limit saved",
		"weekly_cents", limit.Weekly.Cents,
		"monthly_cents", limit.Monthly.Cents)

	return nil
}

// ---- Users ----

func (r *Repository) CreateUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ---- scanning helpers ----

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e        core.Expense
		dateStr  string
		category string
		created  time.Time
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Amount.Cents, &dateStr, &category, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, err
		}
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored expense date %q: %w", dateStr, err)
	}
	e.Date = date
	e.Category = core.Category(category)
	e.Timestamp = created
	return e, nil
}

func scanDebt(row rowScanner) (core.Debt, error) {
	var (
		d        core.Debt
		dateStr  string
		debtType string
		status   string
		created  time.Time
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Amount.Cents, &d.Reason, &dateStr, &debtType, &status, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Debt{}, err
		}
		return core.Debt{}, fmt.Errorf("scan debt: %w", err)
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Debt{}, fmt.Errorf("stored debt date %q: %w", dateStr, err)
	}
	d.Date = date
	d.Type = core.DebtType(debtType)
	d.Status = core.DebtStatus(status)
	d.Timestamp = created
	return d, nil
}

// requireRow maps a zero-row result to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
