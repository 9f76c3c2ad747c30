package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUserInactive       = errors.New("user account is inactive")
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// HashPassword hashes a plaintext password with bcrypt, for flows that set
// a password outside registration (admin resets).
func HashPassword(credential string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password. The phone
// number doubles as the login; duplicates fail with models.ErrPhoneExists.
func (a *PasswordAuthenticator) Register(ctx context.Context, phone, name, credential string, role models.Role) (*models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(name, phone, string(hashedPassword), role)

	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrPhoneExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the phone and password, returning the user if valid.
// Deactivated accounts cannot log in even with correct credentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, phone, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != models.StatusActive {
		return nil, ErrUserInactive
	}

	return user, nil
}
