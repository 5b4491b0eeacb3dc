package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// generateRequestID creates a short random identifier for request
// tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "req_unknown"
	}
	return "req_" + hex.EncodeToString(bytes)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondDetail writes an error body of the form {"detail": "..."}.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// decodeValid decodes the request body into dst and runs struct
// validation. It writes the error response itself and reports whether
// the handler should continue.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			respondDetail(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("Invalid field %q: failed on %q", fe.Field(), fe.Tag()))
			return false
		}
		respondDetail(w, http.StatusUnprocessableEntity, "Validation failed")
		return false
	}
	return true
}

// writeServiceError maps service and storage errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondDetail(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, core.ErrInvalidTransition):
		respondDetail(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrInvalidStatus):
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
