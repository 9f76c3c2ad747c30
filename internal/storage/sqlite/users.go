package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

const userColumns = "id, name, phone, password_hash, role, status, tariff_id, created_at, updated_at"

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Phone, user.PasswordHash,
		string(user.Role), string(user.Status), nullableTariff(user.TariffID),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.phone") {
			return models.ErrPhoneExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByPhone retrieves a user by their login phone number.
func (s *SQLiteStore) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.getUser(ctx, "phone", phone)
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = ?", value)

	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s=%s: %w", column, value, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}

// ListUsers retrieves all users in creation order.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
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
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, phone = ?, password_hash = ?, role = ?, status = ?, tariff_id = ?, updated_at = ?
		 WHERE id = ?`,
		user.Name, user.Phone, user.PasswordHash, string(user.Role), string(user.Status),
		nullableTariff(user.TariffID), user.UpdatedAt, user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.phone") {
			return models.ErrPhoneExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s: %w", user.ID, models.ErrUserNotFound)
	}
	return nil
}

// DeleteUser removes a user account; their debts and payments cascade.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s: %w", id, models.ErrUserNotFound)
	}
	return nil
}

// scanUser reads one user row via the given Scan function.
func scanUser(scan func(dest ...any) error) (*models.User, error) {
	user := &models.User{}
	var role, status string
	var tariffID sql.NullInt64

	err := scan(&user.ID, &user.Name, &user.Phone, &user.PasswordHash,
		&role, &status, &tariffID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role)
	user.Status = models.UserStatus(status)
	if tariffID.Valid {
		user.TariffID = tariffID.Int64
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
