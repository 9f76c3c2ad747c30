package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// CreateDebt persists a new debt record and its items.
func (s *PostgresStore) CreateDebt(ctx context.Context, debt *models.DebtRecord) error {
	if debt.CreatedAt == 0 {
		debt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO debts (owner_id, first_name, last_name, phone, debt_date, total_debt, paid, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		debt.OwnerID, debt.FirstName, debt.LastName, debt.Phone,
		debt.DebtDate, debt.TotalDebt, debt.Paid, debt.CreatedAt,
	).Scan(&debt.ID)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}

	if err := insertItems(ctx, tx, debt.ID, debt.Items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetDebt retrieves a debt record by ID, including its items in order.
func (s *PostgresStore) GetDebt(ctx context.Context, id int64) (*models.DebtRecord, error) {
	debt := &models.DebtRecord{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, first_name, last_name, phone, debt_date, total_debt, paid, created_at
		 FROM debts WHERE id = $1`,
		id,
	).Scan(&debt.ID, &debt.OwnerID, &debt.FirstName, &debt.LastName, &debt.Phone,
		&debt.DebtDate, &debt.TotalDebt, &debt.Paid, &debt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
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
func (s *PostgresStore) ListDebts(ctx context.Context, ownerID string) ([]models.DebtRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, first_name, last_name, phone, debt_date, total_debt, paid, created_at
		 FROM debts WHERE owner_id = $1 ORDER BY id`,
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
func (s *PostgresStore) UpdateDebt(ctx context.Context, debt *models.DebtRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE debts SET first_name = $1, last_name = $2, phone = $3, debt_date = $4, total_debt = $5, paid = $6
		 WHERE id = $7`,
		debt.FirstName, debt.LastName, debt.Phone, debt.DebtDate, debt.TotalDebt, debt.Paid, debt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("debt %d: %w", debt.ID, models.ErrDebtNotFound)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM debt_items WHERE debt_id = $1", debt.ID); err != nil {
		return fmt.Errorf("failed to clear debt items: %w", err)
	}
	if err := insertItems(ctx, tx, debt.ID, debt.Items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteDebt removes a debt record; its items cascade.
func (s *PostgresStore) DeleteDebt(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM debts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("debt %d: %w", id, models.ErrDebtNotFound)
	}
	return nil
}

// CountDebts returns the number of active debt records for an owner.
func (s *PostgresStore) CountDebts(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM debts WHERE owner_id = $1", ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count debts: %w", err)
	}
	return count, nil
}

// loadItems fetches a debt's items in position order.
func (s *PostgresStore) loadItems(ctx context.Context, debtID int64) ([]models.DebtItem, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT name, qty, price FROM debt_items WHERE debt_id = $1 ORDER BY position",
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
func insertItems(ctx context.Context, tx pgx.Tx, debtID int64, items []models.DebtItem) error {
	for i, item := range items {
		_, err := tx.Exec(ctx,
			"INSERT INTO debt_items (debt_id, position, name, qty, price) VALUES ($1, $2, $3, $4, $5)",
			debtID, i, item.Name, item.Qty, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt item: %w", err)
		}
	}
	return nil
}
