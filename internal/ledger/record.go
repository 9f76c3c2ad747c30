package ledger

import "github.com/qarzdaftar/qarzdaftar/internal/models"

// ItemPatch carries the single-field edits UpdateItem applies. Nil fields are
// left untouched.
type ItemPatch struct {
	Name  *string
	Qty   *int
	Price *int64
}

// UpdateItem returns a copy of rec with one item's fields replaced and
// TotalDebt recomputed. Qty below 1 and negative Price are rejected with a
// ValidationError rather than clamped, so a bad edit can never corrupt the
// total.
func UpdateItem(rec models.DebtRecord, idx int, patch ItemPatch) (models.DebtRecord, error) {
	if idx < 0 || idx >= len(rec.Items) {
		return rec, validation("item index", "%d out of range [0, %d)", idx, len(rec.Items))
	}
	if patch.Qty != nil && *patch.Qty < 1 {
		return rec, validation("qty", "must be at least 1, got %d", *patch.Qty)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return rec, validation("price", "must be non-negative, got %d", *patch.Price)
	}

	out := rec.Clone()
	if patch.Name != nil {
		out.Items[idx].Name = *patch.Name
	}
	if patch.Qty != nil {
		out.Items[idx].Qty = *patch.Qty
	}
	if patch.Price != nil {
		out.Items[idx].Price = *patch.Price
	}
	out.TotalDebt = out.SumItems()
	return out, nil
}

// AddItem returns a copy of rec with a zero-value item row appended. The row
// only becomes valid once edited; Validate rejects a record saved with it
// untouched.
func AddItem(rec models.DebtRecord) models.DebtRecord {
	out := rec.Clone()
	out.Items = append(out.Items, models.DebtItem{})
	out.TotalDebt = out.SumItems()
	return out
}

// RemoveItem returns a copy of rec with the item at idx removed. A record
// must always retain at least one line item, so removing the last one is
// refused.
func RemoveItem(rec models.DebtRecord, idx int) (models.DebtRecord, error) {
	if idx < 0 || idx >= len(rec.Items) {
		return rec, validation("item index", "%d out of range [0, %d)", idx, len(rec.Items))
	}
	if len(rec.Items) == 1 {
		return rec, validation("items", "a record must keep at least one line item")
	}

	out := rec.Clone()
	out.Items = append(out.Items[:idx], out.Items[idx+1:]...)
	out.TotalDebt = out.SumItems()
	return out, nil
}

// Validate checks a record is fit to save: at least one item, every item
// named with qty ≥ 1 and price ≥ 0, and TotalDebt equal to the sum the items
// imply.
func Validate(rec models.DebtRecord) error {
	if len(rec.Items) == 0 {
		return validation("items", "a record must have at least one line item")
	}
	for i, it := range rec.Items {
		if it.Name == "" {
			return validation("items", "item %d has no name", i)
		}
		if it.Qty < 1 {
			return validation("qty", "item %d: must be at least 1, got %d", i, it.Qty)
		}
		if it.Price < 0 {
			return validation("price", "item %d: must be non-negative, got %d", i, it.Price)
		}
	}
	if rec.TotalDebt != rec.SumItems() {
		return validation("total_debt", "stored %d does not match items sum %d", rec.TotalDebt, rec.SumItems())
	}
	return nil
}

// TogglePaid returns a new collection with Paid set on the matching record.
// It does not itself create a PaymentRecord; committing a payment is the
// payment service's transition.
func TogglePaid(records []models.DebtRecord, id int64, paid bool) ([]models.DebtRecord, error) {
	idx := indexOf(records, id)
	if idx < 0 {
		return records, &NotFoundError{ID: id}
	}

	out := make([]models.DebtRecord, len(records))
	copy(out, records)
	out[idx] = out[idx].Clone()
	out[idx].Paid = paid
	return out, nil
}

// DeleteRecord returns a new collection without the matching record. Unpaid
// records may not be deleted from the ledger.
func DeleteRecord(records []models.DebtRecord, id int64) ([]models.DebtRecord, error) {
	idx := indexOf(records, id)
	if idx < 0 {
		return records, &NotFoundError{ID: id}
	}
	if !records[idx].Paid {
		return records, validation("paid", "record %d is unpaid and cannot be deleted", id)
	}

	out := make([]models.DebtRecord, 0, len(records)-1)
	out = append(out, records[:idx]...)
	out = append(out, records[idx+1:]...)
	return out, nil
}

func indexOf(records []models.DebtRecord, id int64) int {
	for i, rec := range records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
