// Package api provides the HTTP JSON surface of the Qarzdaftar backend:
// login, the debt ledger with item edits and CSV export, the payment
// history, monthly reports, tariffs, and the owner-only user administration.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qarzdaftar/qarzdaftar/internal/auth"
	"github.com/qarzdaftar/qarzdaftar/internal/ledger"
	"github.com/qarzdaftar/qarzdaftar/internal/middleware"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/service"
)

// Server is the Qarzdaftar HTTP API server.
type Server struct {
	auths      *service.AuthService
	debts      *service.DebtService
	payments   *service.PaymentService
	reports    *service.ReportService
	users      *service.UserService
	tariffs    *service.TariffService
	jwtManager *auth.JWTManager
	logger     *slog.Logger

	metricsEnabled bool
}

// NewServer creates a new API server over the application services.
func NewServer(
	auths *service.AuthService,
	debts *service.DebtService,
	payments *service.PaymentService,
	reports *service.ReportService,
	users *service.UserService,
	tariffs *service.TariffService,
	jwtManager *auth.JWTManager,
	logger *slog.Logger,
) *Server {
	return &Server{
		auths:      auths,
		debts:      debts,
		payments:   payments,
		reports:    reports,
		users:      users,
		tariffs:    tariffs,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwtManager))
			r.Use(middleware.RequestLogger(s.logger))

			r.Get("/auth/me", s.handleCurrentUser)

			r.Route("/debts", func(r chi.Router) {
				r.Get("/", s.handleListDebts)
				r.Post("/", s.handleCreateDebt)
				r.Get("/export", s.handleExportDebts)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetDebt)
					r.Delete("/", s.handleDeleteDebt)
					r.Put("/paid", s.handleSetPaid)
					r.Post("/pay", s.handleCommitPayment)
					r.Post("/items", s.handleAddItem)
					r.Patch("/items/{idx}", s.handleUpdateItem)
					r.Delete("/items/{idx}", s.handleRemoveItem)
				})
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", s.handleListPayments)
				r.Delete("/{id}", s.handleDeletePayment)
			})

			r.Get("/reports/summary", s.handleReportSummary)
			r.Get("/tariffs", s.handleListTariffs)

			// Owner-only administration.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleOwner))

				r.Post("/tariffs", s.handleCreateTariff)
				r.Put("/tariffs/{id}", s.handleUpdateTariff)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", s.handleListUsers)
					r.Post("/", s.handleCreateUser)
					r.Get("/{id}", s.handleGetUser)
					r.Patch("/{id}", s.handleUpdateUser)
					r.Delete("/{id}", s.handleDeleteUser)
				})
			})
		})
	})

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses and writes a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ve *ledger.ValidationError
	var nf *ledger.NotFoundError

	switch {
	case errors.As(err, &ve),
		errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, errBody(err))
	case errors.As(err, &nf),
		errors.Is(err, models.ErrDebtNotFound),
		errors.Is(err, models.ErrPaymentNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrTariffNotFound):
		writeJSON(w, http.StatusNotFound, errBody(err))
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserInactive),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errBody(err))
	case errors.Is(err, service.ErrDebtorLimit),
		errors.Is(err, service.ErrExportDisabled),
		errors.Is(err, service.ErrOwnerUndeletable):
		writeJSON(w, http.StatusForbidden, errBody(err))
	case errors.Is(err, models.ErrPhoneExists):
		writeJSON(w, http.StatusConflict, errBody(err))
	default:
		s.logger.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ledger.ValidationError{Field: "body", Reason: "malformed JSON request"}
	}
	return nil
}
