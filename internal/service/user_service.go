package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qarzdaftar/qarzdaftar/internal/auth"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/storage"
)

// UserService is the platform owner's administration surface: creating
// business accounts, changing their logins, toggling their status and
// assigning tariffs.
type UserService struct {
	store         storage.Store
	authenticator auth.Authenticator
	logger        *slog.Logger
}

// NewUserService creates a new user administration service.
func NewUserService(store storage.Store, authenticator auth.Authenticator, logger *slog.Logger) *UserService {
	return &UserService{
		store:         store,
		authenticator: authenticator,
		logger:        logger,
	}
}

// List returns all user accounts in creation order.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// Get retrieves one user account.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// Create registers a new business account and optionally assigns a tariff.
func (s *UserService) Create(ctx context.Context, name, phone, password string, role models.Role, tariffID int64) (*models.User, error) {
	user, err := s.authenticator.Register(ctx, phone, name, password, role)
	if err != nil {
		return nil, err
	}

	if tariffID != 0 {
		if _, err := s.store.GetTariff(ctx, tariffID); err != nil {
			return nil, err
		}
		user.TariffID = tariffID
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to assign tariff: %w", err)
		}
	}

	s.logger.Info("User created", "user_id", user.ID, "phone", phone, "role", string(role))
	return user, nil
}

// UserUpdate carries the fields an administrator may change. Nil pointers
// leave the current value untouched.
type UserUpdate struct {
	Name     *string
	Phone    *string
	Password *string
	Status   *models.UserStatus
	TariffID *int64
}

// Update applies a partial update to a user account. A new password is
// re-hashed; a new tariff must exist.
func (s *UserService) Update(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Password != nil {
		if err := s.authenticator.ValidateCredential(*update.Password); err != nil {
			return nil, err
		}
		hashed, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if update.Status != nil {
		user.Status = *update.Status
	}
	if update.TariffID != nil {
		if *update.TariffID != 0 {
			if _, err := s.store.GetTariff(ctx, *update.TariffID); err != nil {
				return nil, err
			}
		}
		user.TariffID = *update.TariffID
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", "user_id", user.ID)
	return user, nil
}

// Delete removes a business account and, via cascade, its ledger. Platform
// owner accounts cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsOwner() {
		return ErrOwnerUndeletable
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", "user_id", id, "phone", user.Phone)
	return nil
}
