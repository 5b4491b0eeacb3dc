// Package http exposes the money balancer JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Shashi960/money-balancer-backend/internal/auth"
	"github.com/Shashi960/money-balancer-backend/internal/services"
)

type Server struct {
	http.Server

	expenses *services.ExpenseService
	debts    *services.DebtService
	limits   *services.LimitService
	summary  *services.SummaryService
	auth     *auth.Service

	authRequired bool
	corsOrigins  []string
	validate     *validator.Validate
	rateLimiter  *rateLimiter

	shutdownOnce sync.Once
}

// Deps carries everything the server needs.
type Deps struct {
	Expenses *services.ExpenseService
	Debts    *services.DebtService
	Limits   *services.LimitService
	Summary  *services.SummaryService
	Auth     *auth.Service

	// AuthRequired enforces bearer tokens on all /api routes except
	// the auth endpoints themselves.
	AuthRequired bool

	// CORSOrigins lists origins allowed to call the API from a
	// browser. "*" allows any origin; empty disables CORS.
	CORSOrigins []string

	// RateLimitPerMinute caps mutating requests per client IP.
	// Zero uses the default.
	RateLimitPerMinute int
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		expenses:     deps.Expenses,
		debts:        deps.Debts,
		limits:       deps.Limits,
		summary:      deps.Summary,
		auth:         deps.Auth,
		authRequired: deps.AuthRequired,
		corsOrigins:  deps.CORSOrigins,
		validate:     validator.New(),
		rateLimiter:  newRateLimiter(deps.RateLimitPerMinute),
	}
	s.Server.Handler = s.withCORS(mux)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/register", s.public(s.handleRegister))
	mux.HandleFunc("POST /api/auth/login", s.public(s.handleLogin))

	mux.HandleFunc("GET /api/expenses", s.api(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.api(s.handleCreateExpense))
	mux.HandleFunc("PATCH /api/expenses/{id}", s.api(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.api(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/debts", s.api(s.handleListDebts))
	mux.HandleFunc("POST /api/debts", s.api(s.handleCreateDebt))
	mux.HandleFunc("PATCH /api/debts/{id}", s.api(s.handleUpdateDebtStatus))
	mux.HandleFunc("DELETE /api/debts/{id}", s.api(s.handleDeleteDebt))

	mux.HandleFunc("GET /api/limit", s.api(s.handleGetLimit))
	mux.HandleFunc("POST /api/limit", s.api(s.handleSaveLimit))

	mux.HandleFunc("GET /api/summary", s.api(s.handleSummary))

	return s
}

// api wraps a handler with the full middleware chain, including bearer
// auth when enforcement is enabled.
func (s *Server) api(next http.HandlerFunc) http.HandlerFunc {
	return s.withMiddleware(next, true)
}

// public wraps a handler with the middleware chain but never requires a
// token; the auth endpoints must stay reachable.
func (s *Server) public(next http.HandlerFunc) http.HandlerFunc {
	return s.withMiddleware(next, false)
}

// withCORS wraps the whole mux so browser frontends on other origins
// can call the API, including OPTIONS preflights, which the method
// patterns below would otherwise reject.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			if allowed := s.allowOrigin(origin); allowed != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "600")
			}
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value for a
// request origin, or "" when the origin is not allowed.
func (s *Server) allowOrigin(origin string) string {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin {
			return origin
		}
	}
	return ""
}

func (s *Server) withMiddleware(next http.HandlerFunc, checkAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondDetail(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if checkAuth && s.authRequired {
			if _, err := s.auth.VerifyBearer(r.Header.Get("Authorization")); err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				respondDetail(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown gracefully shuts down the server and its helpers.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
