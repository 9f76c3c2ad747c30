package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// SettleDebt records a payment and removes the settled debt in one
// transaction, so the ledger and the history can never disagree about a
// settled record.
func (s *PostgresStore) SettleDebt(ctx context.Context, debtID int64, payment *models.PaymentRecord) error {
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO payments (debt_id, owner_id, first_name, last_name, phone, debt_date, paid_date, amount, method, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		payment.DebtID, payment.OwnerID, payment.FirstName, payment.LastName, payment.Phone,
		payment.DebtDate, payment.PaidDate, payment.Amount, string(payment.Method), payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM debts WHERE id = $1", debtID)
	if err != nil {
		return fmt.Errorf("failed to remove settled debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("debt %d: %w", debtID, models.ErrDebtNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPayments retrieves an owner's payment history, most recent first.
func (s *PostgresStore) ListPayments(ctx context.Context, ownerID string) ([]models.PaymentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, debt_id, owner_id, first_name, last_name, phone, debt_date, paid_date, amount, method, created_at
		 FROM payments WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.PaymentRecord
	for rows.Next() {
		var p models.PaymentRecord
		var method string
		if err := rows.Scan(&p.ID, &p.DebtID, &p.OwnerID, &p.FirstName, &p.LastName, &p.Phone,
			&p.DebtDate, &p.PaidDate, &p.Amount, &method, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Method = models.PaymentMethod(method)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// DeletePayment removes a payment record from the history.
func (s *PostgresStore) DeletePayment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %d: %w", id, models.ErrPaymentNotFound)
	}
	return nil
}
