// Package server exposes the JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seisan-app/seisan/internal/auth"
	"github.com/seisan-app/seisan/internal/middleware"
	"github.com/seisan-app/seisan/internal/service"
	"github.com/seisan-app/seisan/internal/storage"
)

type Server struct {
	store         storage.Store
	contents      *service.ContentService
	settlements   *service.SettlementService
	authenticator *auth.PasswordAuthenticator
	tokens        *auth.JWTManager
}

func New(
	store storage.Store,
	contents *service.ContentService,
	settlements *service.SettlementService,
	authenticator *auth.PasswordAuthenticator,
	tokens *auth.JWTManager,
) *Server {
	return &Server{
		store:         store,
		contents:      contents,
		settlements:   settlements,
		authenticator: authenticator,
		tokens:        tokens,
	}
}

// Handler builds the full route table wrapped in the middleware stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)

	authed := middleware.RequireAuth(s.tokens)
	protected := func(h http.HandlerFunc) http.Handler { return authed(h) }

	mux.Handle("GET /api/profile", protected(s.handleProfile))
	mux.Handle("GET /api/members", protected(s.handleListMembers))
	mux.Handle("GET /api/categories", protected(s.handleListCategories))
	mux.Handle("POST /api/categories", protected(s.handleCreateCategory))
	mux.Handle("GET /api/contents", protected(s.handleListContents))
	mux.Handle("POST /api/contents", protected(s.handleCreateContent))
	mux.Handle("GET /api/contents/{id}", protected(s.handleGetContent))
	mux.Handle("PUT /api/contents/{id}", protected(s.handleUpdateContent))
	mux.Handle("GET /api/summary", protected(s.handleSummary))
	mux.Handle("POST /api/summary/settle", protected(s.handleSettle))

	return middleware.Logging(middleware.CORS(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps service and storage errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidSubmission),
		errors.Is(err, service.ErrInvalidFilter),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
