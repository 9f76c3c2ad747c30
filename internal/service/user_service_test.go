package service

import (
	"context"
	"errors"
	"testing"

	"github.com/qarzdaftar/qarzdaftar/internal/auth"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

func TestUserServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.store, testAuthenticator(env.store), testLogger())
	ctx := context.Background()

	t.Run("creates business account with hashed password", func(t *testing.T) {
		user, err := svc.Create(ctx, "Shoxrux Abdullayev", "+998999649695", "parol1234", models.RoleBusiness, 0)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected UUID to be assigned")
		}
		if user.PasswordHash == "parol1234" {
			t.Error("password stored in plaintext")
		}
		if user.Status != models.StatusActive {
			t.Errorf("Status = %s, want active", user.Status)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Create(ctx, "X", "+998900000001", "qisqa", models.RoleBusiness, 0)
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		_, err := svc.Create(ctx, "Y", "+998999649695", "parol1234", models.RoleBusiness, 0)
		if !errors.Is(err, models.ErrPhoneExists) {
			t.Errorf("expected ErrPhoneExists, got %v", err)
		}
	})

	t.Run("assigns an existing tariff", func(t *testing.T) {
		tariff := &models.Tariff{Name: "Professional", MonthlyPrice: 99000, ExportEnabled: true}
		if err := env.store.CreateTariff(ctx, tariff); err != nil {
			t.Fatalf("CreateTariff failed: %v", err)
		}

		user, err := svc.Create(ctx, "Dilshod Nazarov", "+998912345678", "parol1234", models.RoleBusiness, tariff.ID)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if user.TariffID != tariff.ID {
			t.Errorf("TariffID = %d, want %d", user.TariffID, tariff.ID)
		}
	})

	t.Run("rejects unknown tariff", func(t *testing.T) {
		_, err := svc.Create(ctx, "Z", "+998900000002", "parol1234", models.RoleBusiness, 777)
		if !errors.Is(err, models.ErrTariffNotFound) {
			t.Errorf("expected ErrTariffNotFound, got %v", err)
		}
	})
}

func TestUserServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	authenticator := testAuthenticator(env.store)
	svc := NewUserService(env.store, authenticator, testLogger())
	ctx := context.Background()

	user, err := svc.Create(ctx, "Shoxrux Abdullayev", "+998999649695", "parol1234", models.RoleBusiness, 0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("changes phone and password", func(t *testing.T) {
		phone := "+998901111111"
		password := "yangisifr1"
		if _, err := svc.Update(ctx, user.ID, UserUpdate{Phone: &phone, Password: &password}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		// The new credentials work, the old do not.
		if _, err := authenticator.Authenticate(ctx, phone, password); err != nil {
			t.Errorf("new credentials rejected: %v", err)
		}
		if _, err := authenticator.Authenticate(ctx, phone, "parol1234"); err == nil {
			t.Error("old password still accepted")
		}
	})

	t.Run("short replacement password is rejected", func(t *testing.T) {
		password := "qisqa"
		if _, err := svc.Update(ctx, user.ID, UserUpdate{Password: &password}); !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		status := models.StatusInactive
		if _, err := svc.Update(ctx, user.ID, UserUpdate{Status: &status}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		_, err := authenticator.Authenticate(ctx, "+998901111111", "yangisifr1")
		if !errors.Is(err, auth.ErrUserInactive) {
			t.Errorf("expected ErrUserInactive, got %v", err)
		}
	})
}

func TestUserServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.store, testAuthenticator(env.store), testLogger())
	ctx := context.Background()

	t.Run("owner accounts are undeletable", func(t *testing.T) {
		admin, err := svc.Create(ctx, "Platforma Egasi", "+998909999999", "parol1234", models.RoleOwner, 0)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := svc.Delete(ctx, admin.ID); !errors.Is(err, ErrOwnerUndeletable) {
			t.Errorf("expected ErrOwnerUndeletable, got %v", err)
		}
	})

	t.Run("business deletion cascades to the ledger", func(t *testing.T) {
		user, err := svc.Create(ctx, "Shoxrux Abdullayev", "+998999649695", "parol1234", models.RoleBusiness, 0)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		debt := seedDebt(t, env.store, user.ID, "Aziz", "2026-02-01", 10000)

		if err := svc.Delete(ctx, user.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := env.store.GetUserByID(ctx, user.ID); !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := env.store.GetDebt(ctx, debt.ID); !errors.Is(err, models.ErrDebtNotFound) {
			t.Errorf("expected debts to cascade, got %v", err)
		}
	})
}
