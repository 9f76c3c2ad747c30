package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qarzdaftar/qarzdaftar/internal/ledger"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/storage"
)

// PaymentService commits settled debts into the payment history. A commit
// snapshots the debt's identity fields, so later edits or deletions of the
// customer's other records never rewrite the history.
type PaymentService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPaymentService creates a new payment history service.
func NewPaymentService(store storage.Store, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		store:  store,
		logger: logger,
	}
}

// Commit turns a paid debt record into a payment record and removes it from
// the active ledger, atomically. The paid date must not precede the debt
// date, and the method must be a known payment method.
func (s *PaymentService) Commit(ctx context.Context, ownerID string, debtID int64, paidDate, method string) (*models.PaymentRecord, error) {
	debt, err := s.store.GetDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.OwnerID != ownerID {
		return nil, fmt.Errorf("debt %d: %w", debtID, models.ErrDebtNotFound)
	}
	if !debt.Paid {
		return nil, &ledger.ValidationError{Field: "paid", Reason: "only paid records can be committed to the payment history"}
	}

	parsedMethod, err := models.ParsePaymentMethod(method)
	if err != nil {
		return nil, &ledger.ValidationError{Field: "method", Reason: err.Error()}
	}

	if _, err := time.Parse("2006-01-02", paidDate); err != nil {
		return nil, &ledger.ValidationError{Field: "paidDate", Reason: "must be an ISO date (YYYY-MM-DD)"}
	}
	// ISO dates compare correctly as strings.
	if paidDate < debt.DebtDate {
		return nil, &ledger.ValidationError{Field: "paidDate", Reason: "paid date cannot precede the debt date"}
	}

	payment := &models.PaymentRecord{
		DebtID:    debt.ID,
		OwnerID:   debt.OwnerID,
		FirstName: debt.FirstName,
		LastName:  debt.LastName,
		Phone:     debt.Phone,
		DebtDate:  debt.DebtDate,
		PaidDate:  paidDate,
		Amount:    debt.TotalDebt,
		Method:    parsedMethod,
	}

	if err := s.store.SettleDebt(ctx, debt.ID, payment); err != nil {
		return nil, fmt.Errorf("failed to settle debt: %w", err)
	}

	s.logger.Info("Payment committed",
		"payment_id", payment.ID, "debt_id", debt.ID, "owner_id", ownerID,
		"amount", payment.Amount, "method", string(parsedMethod))
	return payment, nil
}

// List returns the owner's payment history, most recent first.
func (s *PaymentService) List(ctx context.Context, ownerID string) ([]models.PaymentRecord, error) {
	return s.store.ListPayments(ctx, ownerID)
}

// Delete removes one payment from the owner's history. Payments belonging to
// other owners are reported as not found.
func (s *PaymentService) Delete(ctx context.Context, ownerID string, id int64) error {
	payments, err := s.store.ListPayments(ctx, ownerID)
	if err != nil {
		return err
	}

	found := false
	for _, p := range payments {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("payment %d: %w", id, models.ErrPaymentNotFound)
	}

	if err := s.store.DeletePayment(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Payment deleted", "payment_id", id, "owner_id", ownerID)
	return nil
}
