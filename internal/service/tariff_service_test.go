package service

import (
	"context"
	"errors"
	"testing"

	"github.com/qarzdaftar/qarzdaftar/internal/ledger"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

func TestTariffService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTariffService(env.store, testLogger())
	users := NewUserService(env.store, testAuthenticator(env.store), testLogger())
	ctx := context.Background()

	free := &models.Tariff{
		Name:        "Boshlang'ich",
		MaxDebtors:  10,
		SMSPerMonth: 10,
		Features:    []string{"10 tagacha qarz oluvchi"},
	}
	pro := &models.Tariff{
		Name:          "Professional",
		MonthlyPrice:  99000,
		ExportEnabled: true,
		Features:      []string{"Cheksiz qarz oluvchilar", "Eksport"},
	}

	t.Run("create", func(t *testing.T) {
		for _, tariff := range []*models.Tariff{free, pro} {
			if err := svc.Create(ctx, tariff); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			tariff models.Tariff
		}{
			{"empty name", models.Tariff{MonthlyPrice: 1000}},
			{"negative price", models.Tariff{Name: "X", MonthlyPrice: -1}},
			{"negative limit", models.Tariff{Name: "X", MaxDebtors: -1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tariff := tt.tariff
				err := svc.Create(ctx, &tariff)
				var ve *ledger.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			})
		}
	})

	t.Run("list counts subscribers", func(t *testing.T) {
		if _, err := users.Create(ctx, "Dilshod Nazarov", "+998912345678", "parol1234", models.RoleBusiness, pro.ID); err != nil {
			t.Fatalf("user Create failed: %v", err)
		}

		usage, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(usage) != 2 {
			t.Fatalf("got %d tariffs, want 2", len(usage))
		}
		// Cheapest first.
		if usage[0].Name != "Boshlang'ich" || usage[0].Subscribers != 0 {
			t.Errorf("usage[0] = %+v", usage[0])
		}
		if usage[1].Name != "Professional" || usage[1].Subscribers != 1 {
			t.Errorf("usage[1] = %+v", usage[1])
		}
	})

	t.Run("update", func(t *testing.T) {
		free.MonthlyPrice = 15000
		free.Features = append(free.Features, "SMS eslatmalar")
		if err := svc.Update(ctx, free); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		got, err := svc.Get(ctx, free.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.MonthlyPrice != 15000 || len(got.Features) != 2 {
			t.Errorf("got %+v", got)
		}
	})
}
