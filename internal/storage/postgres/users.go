package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

const userColumns = "id, name, phone, password_hash, role, status, tariff_id, created_at, updated_at"

// CreateUser inserts a new user into the database.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Name, user.Phone, user.PasswordHash,
		string(user.Role), string(user.Status), nullableTariff(user.TariffID),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrPhoneExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByPhone retrieves a user by their login phone number.
func (s *PostgresStore) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.getUser(ctx, "phone", phone)
}

// GetUserByID retrieves a user by their ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *PostgresStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value)

	user, err := scanUser(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s=%s: %w", column, value, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}

// ListUsers retrieves all users in creation order.
func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// UpdateUser rewrites a user's mutable fields.
func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().Unix()

	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET name = $1, phone = $2, password_hash = $3, role = $4, status = $5, tariff_id = $6, updated_at = $7
		 WHERE id = $8`,
		user.Name, user.Phone, user.PasswordHash, string(user.Role), string(user.Status),
		nullableTariff(user.TariffID), user.UpdatedAt, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrPhoneExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID, models.ErrUserNotFound)
	}
	return nil
}

// DeleteUser removes a user account; their debts and payments cascade.
func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, models.ErrUserNotFound)
	}
	return nil
}

// scanUser reads one user row via the given Scan function.
func scanUser(scan func(dest ...any) error) (*models.User, error) {
	user := &models.User{}
	var role, status string
	var tariffID *int64

	err := scan(&user.ID, &user.Name, &user.Phone, &user.PasswordHash,
		&role, &status, &tariffID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role)
	user.Status = models.UserStatus(status)
	if tariffID != nil {
		user.TariffID = *tariffID
	}
	return user, nil
}

// nullableTariff maps the zero tariff id to NULL so the foreign key holds.
func nullableTariff(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// isUniqueViolation reports whether err is a unique constraint error
// (SQLSTATE 23505), used to detect duplicate phone logins.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
