package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

type expensePayload struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Amount   amount  `json:"amount" validate:"min=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Category string  `json:"category" validate:"required,oneof=Food Travel Shopping Bills Entertainment Healthcare Education Other"`
}

type expenseJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    e.Amount.Float64(),
		Date:      e.Date.String(),
		Category:  string(e.Category),
		Timestamp: e.Timestamp,
	}
}

// expenseFromPayload builds a domain expense; the payload has already
// passed struct validation so the conversions cannot fail.
func expenseFromPayload(id string, timestamp time.Time, p expensePayload) (core.Expense, error) {
	amt, err := core.MoneyFromFloat(float64(p.Amount))
	if err != nil {
		return core.Expense{}, err
	}
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		ID:        id,
		Title:     p.Title,
		Amount:    amt,
		Date:      date,
		Category:  core.Category(p.Category),
		Timestamp: timestamp,
	}
	return e, e.Validate()
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	expense, err := expenseFromPayload(uuid.NewString(), time.Now().UTC(), payload)
	if err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.expenses.Create(r.Context(), expense); err != nil {
		writeServiceError(w, r, err, "Expense")
		return
	}

	respondJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseExpenseFilter(w, r)
	if !ok {
		return
	}

	expenses, err := s.expenses.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, "Expense")
		return
	}

	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseJSON(e))
	}
	respondJSON(w, http.StatusOK, out)
}

// parseExpenseFilter resolves the list query parameters. An explicit
// from_date/to_date range wins over the named filter shortcuts.
func parseExpenseFilter(w http.ResponseWriter, r *http.Request) (storage.ExpenseFilter, bool) {
	q := r.URL.Query()
	var filter storage.ExpenseFilter

	if from := q.Get("from_date"); from != "" {
		d, err := core.ParseDate(from)
		if err != nil {
			respondDetail(w, http.StatusUnprocessableEntity, "Invalid from_date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.From = &d
	}
	if to := q.Get("to_date"); to != "" {
		d, err := core.ParseDate(to)
		if err != nil {
			respondDetail(w, http.StatusUnprocessableEntity, "Invalid to_date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.To = &d
	}
	if filter.From != nil || filter.To != nil {
		return filter, true
	}

	today := core.DateOf(time.Now())
	switch q.Get("filter") {
	case "":
	case "day":
		filter.From, filter.To = &today, &today
	case "week":
		start := core.WeekStart(today)
		filter.From, filter.To = &start, &today
	case "month":
		start := core.MonthStart(today)
		filter.From, filter.To = &start, &today
	default:
		respondDetail(w, http.StatusUnprocessableEntity, "Invalid filter, expected day, week or month")
		return filter, false
	}
	return filter, true
}

// handleUpdateExpense replaces every mutable field of an expense; the
// payload is the same shape as creation.
func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload expensePayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	existing, err := s.expenses.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Expense")
		return
	}

	expense, err := expenseFromPayload(existing.ID, existing.Timestamp, payload)
	if err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.expenses.Update(r.Context(), expense); err != nil {
		writeServiceError(w, r, err, "Expense")
		return
	}

	respondJSON(w, http.StatusOK, toExpenseJSON(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.expenses.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Expense")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}
