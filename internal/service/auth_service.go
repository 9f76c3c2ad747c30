package service

import (
	"context"
	"log/slog"

	"github.com/qarzdaftar/qarzdaftar/internal/auth"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/storage"
)

// AuthService handles login and session introspection.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Login authenticates a user by phone and password and returns the user with
// a signed session token.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*models.User, string, error) {
	if phone == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, phone, password)
	if err != nil {
		s.logger.Warn("Login failed", "phone", phone, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	s.logger.Info("User logged in", "user_id", user.ID, "phone", user.Phone)
	return user, token, nil
}

// CurrentUser returns the full account behind an authenticated session.
// With stateless JWTs, logout is handled client-side by discarding the token.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, auth.ErrMissingToken
	}
	return s.store.GetUserByID(ctx, userID)
}
