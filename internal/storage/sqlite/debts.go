package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// CreateDebt persists a new debt record and its items.
func (s *SQLiteStore) CreateDebt(ctx context.Context, debt *models.DebtRecord) error {
	if debt.CreatedAt == 0 {
		debt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO debts (owner_id, first_name, last_name, phone, debt_date, total_debt, paid, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.OwnerID, debt.FirstName, debt.LastName, debt.Phone,
		debt.DebtDate, debt.TotalDebt, debt.Paid, debt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read debt id: %w", err)
	}
	debt.ID = id

	if err := insertItems(ctx, tx, debt.ID, debt.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetDebt retrieves a debt record by ID, including its items in order.
func (s *SQLiteStore) GetDebt(ctx context.Context, id int64) (*models.DebtRecord, error) {
	debt := &models.DebtRecord{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, first_name, last_name, phone, debt_date, total_debt, paid, created_at
		 FROM debts WHERE id = ?`,
		id,
	).Scan(&debt.ID, &debt.OwnerID, &debt.FirstName, &debt.LastName, &debt.Phone,
		&debt.DebtDate, &debt.TotalDebt, &debt.Paid, &debt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt %d: %w", id, models.ErrDebtNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	items, err := s.loadItems(ctx, debt.ID)
	if err != nil {
		return nil, err
	}
	debt.Items = items

	return debt, nil
}

// ListDebts retrieves all debt records for an owner, in creation order.
func (s *SQLiteStore) ListDebts(ctx context.Context, ownerID string) ([]models.DebtRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, first_name, last_name, phone, debt_date, total_debt, paid, created_at
		 FROM debts WHERE owner_id = ? ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []models.DebtRecord
	for rows.Next() {
		var debt models.DebtRecord
		if err := rows.Scan(&debt.ID, &debt.OwnerID, &debt.FirstName, &debt.LastName, &debt.Phone,
			&debt.DebtDate, &debt.TotalDebt, &debt.Paid, &debt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	// Attach items per record. Ledgers are small (tariff-capped), so the
	// N+1 query here stays cheap.
	for i := range debts {
		items, err := s.loadItems(ctx, debts[i].ID)
		if err != nil {
			return nil, err
		}
		debts[i].Items = items
	}

	return debts, nil
}

// UpdateDebt rewrites a record's fields and items.
func (s *SQLiteStore) UpdateDebt(ctx context.Context, debt *models.DebtRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE debts SET first_name = ?, last_name = ?, phone = ?, debt_date = ?, total_debt = ?, paid = ?
		 WHERE id = ?`,
		debt.FirstName, debt.LastName, debt.Phone, debt.DebtDate, debt.TotalDebt, debt.Paid, debt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("debt %d: %w", debt.ID, models.ErrDebtNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM debt_items WHERE debt_id = ?", debt.ID); err != nil {
		return fmt.Errorf("failed to clear debt items: %w", err)
	}
	if err := insertItems(ctx, tx, debt.ID, debt.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteDebt removes a debt record; its items cascade.
func (s *SQLiteStore) DeleteDebt(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM debts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("debt %d: %w", id, models.ErrDebtNotFound)
	}
	return nil
}

// CountDebts returns the number of active debt records for an owner.
func (s *SQLiteStore) CountDebts(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM debts WHERE owner_id = ?", ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count debts: %w", err)
	}
	return count, nil
}

// loadItems fetches a debt's items in position order.
func (s *SQLiteStore) loadItems(ctx context.Context, debtID int64) ([]models.DebtItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, qty, price FROM debt_items WHERE debt_id = ? ORDER BY position",
		debtID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get debt items: %w", err)
	}
	defer rows.Close()

	var items []models.DebtItem
	for rows.Next() {
		var item models.DebtItem
		if err := rows.Scan(&item.Name, &item.Qty, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan debt item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt items: %w", err)
	}
	return items, nil
}

// insertItems writes a debt's items with their positions inside tx.
func insertItems(ctx context.Context, tx *sql.Tx, debtID int64, items []models.DebtItem) error {
	for i, item := range items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO debt_items (debt_id, position, name, qty, price) VALUES (?, ?, ?, ?, ?)",
			debtID, i, item.Name, item.Qty, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt item: %w", err)
		}
	}
	return nil
}
