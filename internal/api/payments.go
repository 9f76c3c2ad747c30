package api

import (
	"net/http"

	"github.com/qarzdaftar/qarzdaftar/internal/middleware"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

type commitPaymentRequest struct {
	PaidDate string `json:"paid_date"`
	Method   string `json:"method"`
}

// handleCommitPayment settles a paid debt into the payment history.
func (s *Server) handleCommitPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req commitPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	payment, err := s.payments.Commit(r.Context(), middleware.GetUserID(r.Context()), id, req.PaidDate, req.Method)
	if err != nil {
		s.writeError(w, err)
		return
	}

	paymentsCommitted.Inc()
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if payments == nil {
		payments = []models.PaymentRecord{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.payments.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
