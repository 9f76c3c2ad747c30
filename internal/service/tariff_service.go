package service

import (
	"context"
	"log/slog"

	"github.com/qarzdaftar/qarzdaftar/internal/ledger"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/storage"
)

// TariffUsage pairs a plan with how many accounts subscribe to it.
type TariffUsage struct {
	models.Tariff
	Subscribers int `json:"subscribers"`
}

// TariffService manages subscription plans.
type TariffService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewTariffService creates a new tariff plan service.
func NewTariffService(store storage.Store, logger *slog.Logger) *TariffService {
	return &TariffService{
		store:  store,
		logger: logger,
	}
}

// List returns all plans, cheapest first, with subscriber counts.
func (s *TariffService) List(ctx context.Context) ([]TariffUsage, error) {
	tariffs, err := s.store.ListTariffs(ctx)
	if err != nil {
		return nil, err
	}

	usage := make([]TariffUsage, 0, len(tariffs))
	for _, tariff := range tariffs {
		count, err := s.store.CountUsersOnTariff(ctx, tariff.ID)
		if err != nil {
			return nil, err
		}
		usage = append(usage, TariffUsage{Tariff: tariff, Subscribers: count})
	}
	return usage, nil
}

// Get retrieves one plan.
func (s *TariffService) Get(ctx context.Context, id int64) (*models.Tariff, error) {
	return s.store.GetTariff(ctx, id)
}

// Create validates and persists a new plan.
func (s *TariffService) Create(ctx context.Context, tariff *models.Tariff) error {
	if err := validateTariff(tariff); err != nil {
		return err
	}
	if err := s.store.CreateTariff(ctx, tariff); err != nil {
		return err
	}
	s.logger.Info("Tariff created", "tariff_id", tariff.ID, "name", tariff.Name)
	return nil
}

// Update rewrites an existing plan.
func (s *TariffService) Update(ctx context.Context, tariff *models.Tariff) error {
	if err := validateTariff(tariff); err != nil {
		return err
	}
	if err := s.store.UpdateTariff(ctx, tariff); err != nil {
		return err
	}
	s.logger.Info("Tariff updated", "tariff_id", tariff.ID, "name", tariff.Name)
	return nil
}

func validateTariff(tariff *models.Tariff) error {
	if tariff.Name == "" {
		return &ledger.ValidationError{Field: "name", Reason: "tariff name is required"}
	}
	if tariff.MonthlyPrice < 0 {
		return &ledger.ValidationError{Field: "monthlyPrice", Reason: "price cannot be negative"}
	}
	if tariff.MaxDebtors < 0 {
		return &ledger.ValidationError{Field: "maxDebtors", Reason: "limit cannot be negative"}
	}
	return nil
}
