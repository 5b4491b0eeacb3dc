package core

import (
	"errors"
	"strings"
	"time"
)

// Category is the fixed set of expense categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryTravel, CategoryShopping, CategoryBills,
		CategoryEntertainment, CategoryHealthcare, CategoryEducation, CategoryOther,
	}
}

// DebtType distinguishes money lent from money borrowed.
type DebtType string

const (
	DebtGave DebtType = "gave"
	DebtOwe  DebtType = "owe"
)

// DebtStatus tracks whether a debt has been settled.
// The only allowed transition is pending -> paid.
type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtPaid    DebtStatus = "paid"
)

// WarningLevel indicates proximity of spending to a configured limit.
type WarningLevel string

const (
	WarningNone   WarningLevel = "none"
	WarningYellow WarningLevel = "yellow"
	WarningRed    WarningLevel = "red"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyTitle        = errors.New("empty title")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidDate       = errors.New("invalid date")
	ErrEmptyName         = errors.New("empty name")
	ErrInvalidDebtType   = errors.New("invalid debt type")
	ErrInvalidStatus     = errors.New("invalid debt status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type (
	// Date is a calendar date without a time component. It marshals
	// as "YYYY-MM-DD" on the wire and in SQLite.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID        string
		Title     string
		Amount    Money
		Date      Date
		Category  Category
		Timestamp time.Time
	}

	Debt struct {
		ID        string
		Name      string
		Amount    Money
		Reason    string
		Date      Date
		Type      DebtType
		Status    DebtStatus
		Timestamp time.Time
	}

	// Limit is the singleton spending limit configuration.
	// Zero cents means the limit is not configured.
	Limit struct {
		Weekly  Money
		Monthly Money
	}

	User struct {
		ID           string
		Email        string
		PasswordHash string
		FullName     string
		CreatedAt    time.Time
	}
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d falls before other, comparing dates only.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls after other, comparing dates only.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether both values are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (c Category) Validate() error {
	for _, valid := range Categories() {
		if c == valid {
			return nil
		}
	}
	return ErrInvalidCategory
}

func (t DebtType) Validate() error {
	switch t {
	case DebtGave, DebtOwe:
		return nil
	}
	return ErrInvalidDebtType
}

func (s DebtStatus) Validate() error {
	switch s {
	case DebtPending, DebtPaid:
		return nil
	}
	return ErrInvalidStatus
}

// CanTransitionTo reports whether a status change is allowed.
// Setting the same status again is a no-op and therefore allowed.
func (s DebtStatus) CanTransitionTo(next DebtStatus) bool {
	if s == next {
		return true
	}
	return s == DebtPending && next == DebtPaid
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return e.Category.Validate()
}

func (d Debt) Validate() error {
	if len(strings.TrimSpace(d.Name)) == 0 {
		return ErrEmptyName
	}
	if len(d.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if err := d.Date.Validate(); err != nil {
		return err
	}
	if err := d.Type.Validate(); err != nil {
		return err
	}
	return d.Status.Validate()
}

func (l Limit) Validate() error {
	if err := l.Weekly.Validate(); err != nil {
		return err
	}
	return l.Monthly.Validate()
}
