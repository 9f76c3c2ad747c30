package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qarzdaftar/qarzdaftar/internal/ledger"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/storage"
)

// DebtService manages an owner's active debt ledger. Reads go through the
// pure ledger view (filter + paginate); writes go through the ledger's
// copy-on-write record operations before being persisted, so the derived
// total invariant holds for every stored record.
type DebtService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewDebtService creates a new debt ledger service.
func NewDebtService(store storage.Store, logger *slog.Logger) *DebtService {
	return &DebtService{
		store:  store,
		logger: logger,
	}
}

// List returns one page of the owner's ledger, filtered by the search query.
func (s *DebtService) List(ctx context.Context, ownerID, query string, page, pageSize int) (*ledger.Page, error) {
	records, err := s.store.ListDebts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	view := ledger.View(records, query, page, pageSize)
	return &view, nil
}

// Create validates and persists a new debt record. The stored total is always
// recomputed from the items; the caller's TotalDebt is ignored. Owners on a
// capped tariff cannot exceed their debtor limit.
func (s *DebtService) Create(ctx context.Context, ownerID string, debt *models.DebtRecord) error {
	debt.OwnerID = ownerID
	debt.TotalDebt = debt.SumItems()
	debt.Paid = false

	if err := ledger.Validate(*debt); err != nil {
		return err
	}
	if debt.DebtDate == "" {
		return &ledger.ValidationError{Field: "debtDate", Reason: "debt date is required"}
	}
	if debt.FirstName == "" {
		return &ledger.ValidationError{Field: "firstName", Reason: "first name is required"}
	}

	if err := s.checkDebtorLimit(ctx, ownerID); err != nil {
		return err
	}

	if err := s.store.CreateDebt(ctx, debt); err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}

	s.logger.Info("Debt created", "debt_id", debt.ID, "owner_id", ownerID, "total", debt.TotalDebt)
	return nil
}

// Get retrieves one of the owner's debt records. Records belonging to other
// owners are reported as not found rather than forbidden.
func (s *DebtService) Get(ctx context.Context, ownerID string, id int64) (*models.DebtRecord, error) {
	debt, err := s.store.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}
	if debt.OwnerID != ownerID {
		return nil, fmt.Errorf("debt %d: %w", id, models.ErrDebtNotFound)
	}
	return debt, nil
}

// UpdateItem applies a partial edit to one item of a debt record and persists
// the result. The record's total is recomputed by the ledger core.
func (s *DebtService) UpdateItem(ctx context.Context, ownerID string, debtID int64, idx int, patch ledger.ItemPatch) (*models.DebtRecord, error) {
	debt, err := s.Get(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	updated, err := ledger.UpdateItem(*debt, idx, patch)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateDebt(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return &updated, nil
}

// AddItem appends a new item to a debt record. The item is validated as a
// whole, so a record never persists with an unnamed or zero-quantity row.
func (s *DebtService) AddItem(ctx context.Context, ownerID string, debtID int64, item models.DebtItem) (*models.DebtRecord, error) {
	debt, err := s.Get(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	// Append a blank row, then fill it through the patch path so the same
	// validation applies as for edits.
	updated := ledger.AddItem(*debt)
	updated, err = ledger.UpdateItem(updated, len(updated.Items)-1, ledger.ItemPatch{
		Name:  &item.Name,
		Qty:   &item.Qty,
		Price: &item.Price,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateDebt(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return &updated, nil
}

// RemoveItem deletes one item from a debt record. The last remaining item
// cannot be removed.
func (s *DebtService) RemoveItem(ctx context.Context, ownerID string, debtID int64, idx int) (*models.DebtRecord, error) {
	debt, err := s.Get(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	updated, err := ledger.RemoveItem(*debt, idx)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateDebt(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return &updated, nil
}

// SetPaid marks a debt record paid or unpaid.
func (s *DebtService) SetPaid(ctx context.Context, ownerID string, debtID int64, paid bool) (*models.DebtRecord, error) {
	debt, err := s.Get(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	toggled, err := ledger.TogglePaid([]models.DebtRecord{*debt}, debtID, paid)
	if err != nil {
		return nil, err
	}
	updated := toggled[0]

	if err := s.store.UpdateDebt(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	s.logger.Info("Debt paid flag changed", "debt_id", debtID, "owner_id", ownerID, "paid", paid)
	return &updated, nil
}

// Delete removes a debt record. Unpaid records cannot be deleted; they must
// be marked paid (or settled through a payment) first.
func (s *DebtService) Delete(ctx context.Context, ownerID string, debtID int64) error {
	debt, err := s.Get(ctx, ownerID, debtID)
	if err != nil {
		return err
	}

	if _, err := ledger.DeleteRecord([]models.DebtRecord{*debt}, debtID); err != nil {
		return err
	}

	if err := s.store.DeleteDebt(ctx, debtID); err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	s.logger.Info("Debt deleted", "debt_id", debtID, "owner_id", ownerID)
	return nil
}

// Export returns flat export rows for the owner's ledger, filtered by the
// search query. Owners whose tariff excludes exports are refused.
func (s *DebtService) Export(ctx context.Context, ownerID, query string) ([]ledger.Row, error) {
	user, err := s.store.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if user.TariffID != 0 {
		tariff, err := s.store.GetTariff(ctx, user.TariffID)
		if err != nil {
			return nil, err
		}
		if !tariff.ExportEnabled {
			return nil, ErrExportDisabled
		}
	}

	records, err := s.store.ListDebts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ledger.ExportRows(ledger.Filter(records, query)), nil
}

// checkDebtorLimit enforces the tariff's MaxDebtors cap. Owners without a
// tariff are unrestricted.
func (s *DebtService) checkDebtorLimit(ctx context.Context, ownerID string) error {
	user, err := s.store.GetUserByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if user.TariffID == 0 {
		return nil
	}

	tariff, err := s.store.GetTariff(ctx, user.TariffID)
	if err != nil {
		return err
	}

	count, err := s.store.CountDebts(ctx, ownerID)
	if err != nil {
		return err
	}

	if !tariff.AllowsDebtors(count + 1) {
		s.logger.Warn("Debtor limit reached", "owner_id", ownerID, "tariff", tariff.Name, "count", count)
		return ErrDebtorLimit
	}
	return nil
}
