package http

import (
	"errors"
	"net/http"

	"github.com/Shashi960/money-balancer-backend/internal/auth"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"max=200"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userJSON struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type tokenJSON struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	user, err := s.auth.Register(r.Context(), payload.Email, payload.Password, payload.FullName)
	if errors.Is(err, auth.ErrEmailTaken) {
		respondDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "User")
		return
	}

	respondJSON(w, http.StatusCreated, userJSON{
		Email:    user.Email,
		FullName: user.FullName,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	token, err := s.auth.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondDetail(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "User")
		return
	}

	respondJSON(w, http.StatusOK, tokenJSON{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}
