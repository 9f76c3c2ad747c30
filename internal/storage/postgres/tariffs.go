package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// CreateTariff persists a new tariff plan and its feature list.
func (s *PostgresStore) CreateTariff(ctx context.Context, tariff *models.Tariff) error {
	if tariff.CreatedAt == 0 {
		tariff.CreatedAt = time.Now().Unix()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO tariffs (name, monthly_price, max_debtors, sms_per_month, export_enabled, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		tariff.Name, tariff.MonthlyPrice, tariff.MaxDebtors, tariff.SMSPerMonth,
		tariff.ExportEnabled, tariff.CreatedAt,
	).Scan(&tariff.ID)
	if err != nil {
		return fmt.Errorf("failed to insert tariff: %w", err)
	}

	if err := insertFeatures(ctx, tx, tariff.ID, tariff.Features); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTariff retrieves a tariff by ID, including its feature list.
func (s *PostgresStore) GetTariff(ctx context.Context, id int64) (*models.Tariff, error) {
	tariff := &models.Tariff{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, monthly_price, max_debtors, sms_per_month, export_enabled, created_at
		 FROM tariffs WHERE id = $1`,
		id,
	).Scan(&tariff.ID, &tariff.Name, &tariff.MonthlyPrice, &tariff.MaxDebtors,
		&tariff.SMSPerMonth, &tariff.ExportEnabled, &tariff.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
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
func (s *PostgresStore) ListTariffs(ctx context.Context) ([]models.Tariff, error) {
	rows, err := s.pool.Query(ctx,
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
func (s *PostgresStore) UpdateTariff(ctx context.Context, tariff *models.Tariff) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE tariffs SET name = $1, monthly_price = $2, max_debtors = $3, sms_per_month = $4, export_enabled = $5
		 WHERE id = $6`,
		tariff.Name, tariff.MonthlyPrice, tariff.MaxDebtors, tariff.SMSPerMonth,
		tariff.ExportEnabled, tariff.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tariff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tariff %d: %w", tariff.ID, models.ErrTariffNotFound)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM tariff_features WHERE tariff_id = $1", tariff.ID); err != nil {
		return fmt.Errorf("failed to clear tariff features: %w", err)
	}
	if err := insertFeatures(ctx, tx, tariff.ID, tariff.Features); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountUsersOnTariff returns how many users subscribe to a plan.
func (s *PostgresStore) CountUsersOnTariff(ctx context.Context, tariffID int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE tariff_id = $1", tariffID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users on tariff: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) loadFeatures(ctx context.Context, tariffID int64) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT feature FROM tariff_features WHERE tariff_id = $1 ORDER BY position",
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

func insertFeatures(ctx context.Context, tx pgx.Tx, tariffID int64, features []string) error {
	for i, feature := range features {
		_, err := tx.Exec(ctx,
			"INSERT INTO tariff_features (tariff_id, position, feature) VALUES ($1, $2, $3)",
			tariffID, i, feature,
		)
		if err != nil {
			return fmt.Errorf("failed to insert tariff feature: %w", err)
		}
	}
	return nil
}
