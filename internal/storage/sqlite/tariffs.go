package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// CreateTariff persists a new tariff plan and its feature list.
func (s *SQLiteStore) CreateTariff(ctx context.Context, tariff *models.Tariff) error {
	if tariff.CreatedAt == 0 {
		tariff.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tariffs (name, monthly_price, max_debtors, sms_per_month, export_enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tariff.Name, tariff.MonthlyPrice, tariff.MaxDebtors, tariff.SMSPerMonth,
		tariff.ExportEnabled, tariff.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tariff: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read tariff id: %w", err)
	}
	tariff.ID = id

	if err := insertFeatures(ctx, tx, tariff.ID, tariff.Features); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTariff retrieves a tariff by ID, including its feature list.
func (s *SQLiteStore) GetTariff(ctx context.Context, id int64) (*models.Tariff, error) {
	tariff := &models.Tariff{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, monthly_price, max_debtors, sms_per_month, export_enabled, created_at
		 FROM tariffs WHERE id = ?`,
		id,
	).Scan(&tariff.ID, &tariff.Name, &tariff.MonthlyPrice, &tariff.MaxDebtors,
		&tariff.SMSPerMonth, &tariff.ExportEnabled, &tariff.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tariff %d: %w", id, models.ErrTariffNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tariff: %w", err)
	}

	features, err := s.loadFeatures(ctx, tariff.ID)
	if err != nil {
		return nil, err
	}
	tariff.Features = features

	return tariff, nil
}

// ListTariffs retrieves all tariff plans, cheapest first.
func (s *SQLiteStore) ListTariffs(ctx context.Context) ([]models.Tariff, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, monthly_price, max_debtors, sms_per_month, export_enabled, created_at
		 FROM tariffs ORDER BY monthly_price, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tariffs: %w", err)
	}
	defer rows.Close()

	var tariffs []models.Tariff
	for rows.Next() {
		var t models.Tariff
		if err := rows.Scan(&t.ID, &t.Name, &t.MonthlyPrice, &t.MaxDebtors,
			&t.SMSPerMonth, &t.ExportEnabled, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tariff: %w", err)
		}
		tariffs = append(tariffs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tariffs: %w", err)
	}

	for i := range tariffs {
		features, err := s.loadFeatures(ctx, tariffs[i].ID)
		if err != nil {
			return nil, err
		}
		tariffs[i].Features = features
	}

	return tariffs, nil
}

// UpdateTariff rewrites a tariff's fields and feature list.
func (s *SQLiteStore) UpdateTariff(ctx context.Context, tariff *models.Tariff) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE tariffs SET name = ?, monthly_price = ?, max_debtors = ?, sms_per_month = ?, export_enabled = ?
		 WHERE id = ?`,
		tariff.Name, tariff.MonthlyPrice, tariff.MaxDebtors, tariff.SMSPerMonth,
		tariff.ExportEnabled, tariff.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tariff: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("tariff %d: %w", tariff.ID, models.ErrTariffNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tariff_features WHERE tariff_id = ?", tariff.ID); err != nil {
		return fmt.Errorf("failed to clear tariff features: %w", err)
	}
	if err := insertFeatures(ctx, tx, tariff.ID, tariff.Features); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountUsersOnTariff returns how many users subscribe to a plan.
func (s *SQLiteStore) CountUsersOnTariff(ctx context.Context, tariffID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE tariff_id = ?", tariffID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users on tariff: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) loadFeatures(ctx context.Context, tariffID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT feature FROM tariff_features WHERE tariff_id = ? ORDER BY position",
		tariffID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get tariff features: %w", err)
	}
	defer rows.Close()

	var features []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("failed to scan tariff feature: %w", err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tariff features: %w", err)
	}
	return features, nil
}

func insertFeatures(ctx context.Context, tx *sql.Tx, tariffID int64, features []string) error {
	for i, feature := range features {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO tariff_features (tariff_id, position, feature) VALUES (?, ?, ?)",
			tariffID, i, feature,
		)
		if err != nil {
			return fmt.Errorf("failed to insert tariff feature: %w", err)
		}
	}
	return nil
}
