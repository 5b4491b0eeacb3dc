package http

import (
	"net/http"

	"github.com/Shashi960/money-balancer-backend/internal/core"
)

type limitPayload struct {
	WeeklyLimit  amount `json:"weekly_limit" validate:"min=0"`
	MonthlyLimit amount `json:"monthly_limit" validate:"min=0"`
}

type limitJSON struct {
	WeeklyLimit  float64 `json:"weekly_limit"`
	MonthlyLimit float64 `json:"monthly_limit"`
}

// handleGetLimit returns the configured limits, or zeros when none have
// been saved yet.
func (s *Server) handleGetLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limits.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Limit")
		return
	}

	respondJSON(w, http.StatusOK, limitJSON{
		WeeklyLimit:  limit.Weekly.Float64(),
		MonthlyLimit: limit.Monthly.Float64(),
	})
}

// handleSaveLimit replaces both limits at once. Zero disables a limit.
func (s *Server) handleSaveLimit(w http.ResponseWriter, r *http.Request) {
	var payload limitPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	weekly, err := core.MoneyFromFloat(float64(payload.WeeklyLimit))
	if err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	monthly, err := core.MoneyFromFloat(float64(payload.MonthlyLimit))
	if err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	limit := core.Limit{Weekly: weekly, Monthly: monthly}
	if err := s.limits.Save(r.Context(), limit); err != nil {
		writeServiceError(w, r, err, "Limit")
		return
	}

	respondJSON(w, http.StatusOK, limitJSON{
		WeeklyLimit:  limit.Weekly.Float64(),
		MonthlyLimit: limit.Monthly.Float64(),
	})
}
