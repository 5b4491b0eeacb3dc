package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Shashi960/money-balancer-backend/internal/core"
)

type debtPayload struct {
	Name   string  `json:"name" validate:"required,max=200"`
	Amount amount  `json:"amount" validate:"min=0"`
	Reason string  `json:"reason" validate:"max=500"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Type   string  `json:"debt_type" validate:"required,oneof=gave owe"`
	Status string  `json:"status" validate:"omitempty,oneof=pending paid"`
}

type debtStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

type debtJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Date      string    `json:"date"`
	Type      string    `json:"debt_type"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func toDebtJSON(d core.Debt) debtJSON {
	return debtJSON{
		ID:        d.ID,
		Name:      d.Name,
		Amount:    d.Amount.Float64(),
		Reason:    d.Reason,
		Date:      d.Date.String(),
		Type:      string(d.Type),
		Status:    string(d.Status),
		Timestamp: d.Timestamp,
	}
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var payload debtPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	amt, err := core.MoneyFromFloat(float64(payload.Amount))
	if err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	date, err := core.ParseDate(payload.Date)
	if err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, "Invalid date, expected YYYY-MM-DD")
		return
	}

	status := core.DebtStatus(payload.Status)
	if status == "" {
		status = core.DebtPending
	}

	debt := core.Debt{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Amount:    amt,
		Reason:    payload.Reason,
		Date:      date,
		Type:      core.DebtType(payload.Type),
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
	if err := debt.Validate(); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.debts.Create(r.Context(), debt); err != nil {
		writeServiceError(w, r, err, "Debt")
		return
	}

	respondJSON(w, http.StatusCreated, toDebtJSON(debt))
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.debts.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Debt")
		return
	}

	out := make([]debtJSON, 0, len(debts))
	for _, d := range debts {
		out = append(out, toDebtJSON(d))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleUpdateDebtStatus is the only mutation debts support after
// creation. Settling is one way: a paid debt cannot go back to pending.
func (s *Server) handleUpdateDebtStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload debtStatusPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	debt, err := s.debts.MarkStatus(r.Context(), id, core.DebtStatus(payload.Status))
	if err != nil {
		writeServiceError(w, r, err, "Debt")
		return
	}

	respondJSON(w, http.StatusOK, toDebtJSON(debt))
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.debts.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Debt")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Debt deleted successfully"})
}
