// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// Store defines the interface for ledger storage operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL) without changing the
// service layer.
type Store interface {
	// CreateDebt persists a new debt record. The record's ID and CreatedAt
	// fields are populated by the store.
	CreateDebt(ctx context.Context, debt *models.DebtRecord) error

	// GetDebt retrieves a debt record by ID, including its items in order.
	GetDebt(ctx context.Context, id int64) (*models.DebtRecord, error)

	// ListDebts retrieves all active debt records for a business owner, in
	// creation order.
	ListDebts(ctx context.Context, ownerID string) ([]models.DebtRecord, error)

	// UpdateDebt rewrites an existing record's fields and items.
	UpdateDebt(ctx context.Context, debt *models.DebtRecord) error

	// DeleteDebt removes a debt record. The paid precondition is the service
	// layer's responsibility.
	DeleteDebt(ctx context.Context, id int64) error

	// CountDebts returns the number of active debt records for an owner,
	// used to enforce tariff limits.
	CountDebts(ctx context.Context, ownerID string) (int, error)

	// SettleDebt atomically records a payment and removes the settled debt
	// from the active ledger. The payment's ID and CreatedAt are populated
	// by the store.
	SettleDebt(ctx context.Context, debtID int64, payment *models.PaymentRecord) error

	// ListPayments retrieves an owner's payment history, most recent first.
	ListPayments(ctx context.Context, ownerID string) ([]models.PaymentRecord, error)

	// DeletePayment removes a payment record from the history.
	DeletePayment(ctx context.Context, id int64) error

	// CreateUser persists a new user. Fails with models.ErrPhoneExists when
	// the phone number is already a login.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByPhone retrieves a user by login phone number.
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers retrieves all users, in creation order.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser rewrites an existing user's mutable fields.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user account.
	DeleteUser(ctx context.Context, id string) error

	// CreateTariff persists a new tariff plan. The tariff's ID and CreatedAt
	// are populated by the store.
	CreateTariff(ctx context.Context, tariff *models.Tariff) error

	// GetTariff retrieves a tariff by ID, including its feature list.
	GetTariff(ctx context.Context, id int64) (*models.Tariff, error)

	// ListTariffs retrieves all tariff plans, cheapest first.
	ListTariffs(ctx context.Context) ([]models.Tariff, error)

	// UpdateTariff rewrites an existing tariff's fields and features.
	UpdateTariff(ctx context.Context, tariff *models.Tariff) error

	// CountUsersOnTariff returns how many users subscribe to a plan.
	CountUsersOnTariff(ctx context.Context, tariffID int64) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
