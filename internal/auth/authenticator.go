package auth

import (
	"context"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// SMS one-time codes, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account with the given phone number and
	// credential. The credential format depends on the implementation.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, phone, name, credential string, role models.Role) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful. Returns an error if authentication fails.
	Authenticate(ctx context.Context, phone, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements. For passwords: check length, complexity, etc.
	ValidateCredential(credential string) error
}
