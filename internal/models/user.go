package models

import (
	"time"

	"github.com/google/uuid"
)

// Role gates access to platform surfaces.
type Role string

const (
	// RoleOwner is the platform owner: administers users and tariff plans.
	RoleOwner Role = "owner"

	// RoleBusiness is a business owner: keeps a debt ledger for one business.
	RoleBusiness Role = "business"
)

// UserStatus is the account activation state.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// User represents a registered platform account. The phone number is the
// login identifier.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Phone is the login phone number (unique).
	Phone string `json:"phone"`

	// PasswordHash is the bcrypt hash of the user's password. Never
	// serialized to the API.
	PasswordHash string `json:"-"`

	// Role determines which surfaces the user may access.
	Role Role `json:"role"`

	// Status marks the account active or deactivated. Inactive users cannot
	// log in.
	Status UserStatus `json:"status"`

	// TariffID is the subscription plan the user is on, empty for the
	// platform owner.
	TariffID int64 `json:"tariff_id,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewUser creates a user with a fresh UUID, active status, and timestamps.
func NewUser(name, phone, passwordHash string, role Role) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsOwner reports whether the user is the platform owner.
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
