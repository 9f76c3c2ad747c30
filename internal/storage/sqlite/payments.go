package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// SettleDebt records a payment and removes the settled debt in one
// transaction, so the ledger and the history can never disagree about a
// settled record.
func (s *SQLiteStore) SettleDebt(ctx context.Context, debtID int64, payment *models.PaymentRecord) error {
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO payments (debt_id, owner_id, first_name, last_name, phone, debt_date, paid_date, amount, method, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.DebtID, payment.OwnerID, payment.FirstName, payment.LastName, payment.Phone,
		payment.DebtDate, payment.PaidDate, payment.Amount, string(payment.Method), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read payment id: %w", err)
	}
	payment.ID = id

	del, err := tx.ExecContext(ctx, "DELETE FROM debts WHERE id = ?", debtID)
	if err != nil {
		return fmt.Errorf("failed to remove settled debt: %w", err)
	}
	if n, err := del.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("debt %d: %w", debtID, models.ErrDebtNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPayments retrieves an owner's payment history, most recent first.
func (s *SQLiteStore) ListPayments(ctx context.Context, ownerID string) ([]models.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, debt_id, owner_id, first_name, last_name, phone, debt_date, paid_date, amount, method, created_at
		 FROM payments WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
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
func (s *SQLiteStore) DeletePayment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("payment %d: %w", id, models.ErrPaymentNotFound)
	}
	return nil
}
