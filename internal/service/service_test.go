package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/qarzdaftar/qarzdaftar/internal/auth"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/storage"
	"github.com/qarzdaftar/qarzdaftar/internal/storage/sqlite"
)

// testEnv wires the services against a throwaway SQLite store.
type testEnv struct {
	store storage.Store
	owner *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	owner := models.NewUser("Jamshid Toshmatov", "+998901234567", "hash", models.RoleBusiness)
	if err := store.CreateUser(context.Background(), owner); err != nil {
		t.Fatalf("Failed to create owner: %v", err)
	}
	return &testEnv{store: store, owner: owner}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAuthenticator(store storage.Store) auth.Authenticator {
	return auth.NewPasswordAuthenticator(store)
}

// seedDebt persists a simple one-item record and returns it with its ID set.
func seedDebt(t *testing.T, store storage.Store, ownerID, firstName, debtDate string, total int64) *models.DebtRecord {
	t.Helper()
	debt := &models.DebtRecord{
		OwnerID:   ownerID,
		FirstName: firstName,
		LastName:  "Karimov",
		Phone:     "+998 90 111 22 33",
		DebtDate:  debtDate,
		Items:     []models.DebtItem{{Name: "Un", Qty: 1, Price: total}},
		TotalDebt: total,
	}
	if err := store.CreateDebt(context.Background(), debt); err != nil {
		t.Fatalf("Failed to seed debt: %v", err)
	}
	return debt
}
