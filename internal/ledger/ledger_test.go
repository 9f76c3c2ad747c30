package ledger

import (
	"errors"
	"testing"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

func TestFilter(t *testing.T) {
	records := []models.DebtRecord{
		{ID: 1, FirstName: "Aziz", LastName: "Karimov", Phone: "+998 90 111 22 33"},
		{ID: 2, FirstName: "Nilufar", LastName: "Tosheva", Phone: "+998 91 444 55 66"},
		{ID: 3, FirstName: "Sardor", LastName: "Aliyev", Phone: "+998 93 777 88 99"},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []int64
	}{
		{"empty query is identity", "", []int64{1, 2, 3}},
		{"first name match", "Aziz", []int64{1}},
		{"case-insensitive name match", "aziz", []int64{1}},
		{"match spans first and last name", "ufar tosh", []int64{2}},
		{"last name substring", "liyev", []int64{3}},
		{"partial phone match", "+998 90", []int64{1}},
		{"phone fragment", "444 55", []int64{2}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter(%q) returned %d records, want %d", tt.query, len(got), len(tt.wantIDs))
			}
			for i, rec := range got {
				if rec.ID != tt.wantIDs[i] {
					t.Errorf("Filter(%q)[%d].ID = %d, want %d", tt.query, i, rec.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterReturnsSubset(t *testing.T) {
	records := synthRecords(40)
	got := Filter(records, "Karimov")

	if len(got) == 0 {
		t.Fatal("expected at least one match in the synthesized set")
	}

	byID := make(map[int64]models.DebtRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	for _, rec := range got {
		if _, ok := byID[rec.ID]; !ok {
			t.Errorf("filtered record %d is not in the input set", rec.ID)
		}
		if rec.LastName != "Karimov" {
			t.Errorf("record %d does not satisfy the predicate: %q", rec.ID, rec.FullName())
		}
	}
}

func TestPaginate(t *testing.T) {
	records := synthRecords(75)

	t.Run("75 records at page size 15 make 5 pages", func(t *testing.T) {
		if got := TotalPages(len(records), 15); got != 5 {
			t.Fatalf("TotalPages(75, 15) = %d, want 5", got)
		}
	})

	t.Run("last page holds records 61 through 75", func(t *testing.T) {
		page := Paginate(records, 5, 15)
		if len(page) != 15 {
			t.Fatalf("page 5 has %d records, want 15", len(page))
		}
		if page[0].ID != 61 || page[14].ID != 75 {
			t.Errorf("page 5 spans ids %d..%d, want 61..75", page[0].ID, page[14].ID)
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		if page := Paginate(records, 6, 15); len(page) != 0 {
			t.Errorf("page 6 has %d records, want 0", len(page))
		}
	})

	t.Run("page zero is empty", func(t *testing.T) {
		if page := Paginate(records, 0, 15); len(page) != 0 {
			t.Errorf("page 0 has %d records, want 0", len(page))
		}
	})

	t.Run("pages partition the set exhaustively and disjointly", func(t *testing.T) {
		var rebuilt []models.DebtRecord
		for p := 1; p <= TotalPages(len(records), 15); p++ {
			rebuilt = append(rebuilt, Paginate(records, p, 15)...)
		}
		if len(rebuilt) != len(records) {
			t.Fatalf("concatenated pages hold %d records, want %d", len(rebuilt), len(records))
		}
		for i := range records {
			if rebuilt[i].ID != records[i].ID {
				t.Fatalf("record %d out of order: got id %d, want %d", i, rebuilt[i].ID, records[i].ID)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		a := Paginate(records, 3, 15)
		b := Paginate(records, 3, 15)
		if len(a) != len(b) {
			t.Fatalf("repeated call returned %d records, first returned %d", len(b), len(a))
		}
		for i := range a {
			if a[i].ID != b[i].ID {
				t.Errorf("record %d differs between identical calls", i)
			}
		}
	})

	t.Run("uneven final page", func(t *testing.T) {
		odd := synthRecords(32)
		if got := TotalPages(len(odd), 15); got != 3 {
			t.Fatalf("TotalPages(32, 15) = %d, want 3", got)
		}
		if page := Paginate(odd, 3, 15); len(page) != 2 {
			t.Errorf("final page has %d records, want 2", len(page))
		}
	})
}

func TestTotalPagesEmpty(t *testing.T) {
	if got := TotalPages(0, 15); got != 0 {
		t.Errorf("TotalPages(0, 15) = %d, want 0", got)
	}
	if got := TotalPages(1, 15); got != 1 {
		t.Errorf("TotalPages(1, 15) = %d, want 1", got)
	}
}

func TestView(t *testing.T) {
	records := synthRecords(75)

	page := View(records, "", 2, 15)
	if page.TotalPages != 5 || page.FilteredCount != 75 {
		t.Errorf("View totals = (%d pages, %d filtered), want (5, 75)", page.TotalPages, page.FilteredCount)
	}
	if len(page.Records) != 15 || page.Records[0].ID != 16 {
		t.Errorf("page 2 starts at id %d with %d records, want id 16 with 15", page.Records[0].ID, len(page.Records))
	}

	// Bad paging inputs fall back to defaults instead of erroring.
	fallback := View(records, "", 0, -3)
	if fallback.Page != 1 || fallback.PageSize != DefaultPageSize {
		t.Errorf("fallback view = page %d size %d, want page 1 size %d", fallback.Page, fallback.PageSize, DefaultPageSize)
	}
}

func TestUpdateItem(t *testing.T) {
	t.Run("qty edit recomputes total", func(t *testing.T) {
		rec := oneRecord() // Un x2 at 10000

		got, err := UpdateItem(rec, 0, ItemPatch{Qty: intPtr(5)})
		if err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}
		if got.TotalDebt != 50000 {
			t.Errorf("TotalDebt = %d, want 50000", got.TotalDebt)
		}
		if rec.Items[0].Qty != 2 || rec.TotalDebt != 20000 {
			t.Errorf("original record was mutated: qty=%d total=%d", rec.Items[0].Qty, rec.TotalDebt)
		}
	})

	t.Run("price edit recomputes total", func(t *testing.T) {
		got, err := UpdateItem(oneRecord(), 0, ItemPatch{Price: int64Ptr(7500)})
		if err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}
		if got.TotalDebt != 15000 {
			t.Errorf("TotalDebt = %d, want 15000", got.TotalDebt)
		}
	})

	t.Run("name edit keeps total", func(t *testing.T) {
		got, err := UpdateItem(oneRecord(), 0, ItemPatch{Name: strPtr("Shakar")})
		if err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}
		if got.Items[0].Name != "Shakar" || got.TotalDebt != 20000 {
			t.Errorf("got name=%q total=%d, want Shakar/20000", got.Items[0].Name, got.TotalDebt)
		}
	})

	rejections := []struct {
		name  string
		idx   int
		patch ItemPatch
	}{
		{"zero qty rejected", 0, ItemPatch{Qty: intPtr(0)}},
		{"negative qty rejected", 0, ItemPatch{Qty: intPtr(-3)}},
		{"negative price rejected", 0, ItemPatch{Price: int64Ptr(-1)}},
		{"index out of range", 5, ItemPatch{Qty: intPtr(2)}},
		{"negative index", -1, ItemPatch{Qty: intPtr(2)}},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			rec := oneRecord()
			got, err := UpdateItem(rec, tt.idx, tt.patch)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got.TotalDebt != rec.TotalDebt || got.Items[0] != rec.Items[0] {
				t.Error("rejected edit must keep the prior state")
			}
		})
	}
}

func TestAddItem(t *testing.T) {
	rec := oneRecord()
	got := AddItem(rec)

	if len(got.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got.Items))
	}
	if got.Items[1] != (models.DebtItem{}) {
		t.Errorf("appended row is not zero-value: %+v", got.Items[1])
	}
	if got.TotalDebt != rec.TotalDebt {
		t.Errorf("zero row changed total: %d -> %d", rec.TotalDebt, got.TotalDebt)
	}
	if len(rec.Items) != 1 {
		t.Error("original record was mutated")
	}
}

func TestRemoveItem(t *testing.T) {
	t.Run("refuses to remove the last item", func(t *testing.T) {
		rec := oneRecord()
		got, err := RemoveItem(rec, 0)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(got.Items) != 1 {
			t.Error("record must never end up with an empty items list")
		}
	})

	t.Run("removes and recomputes", func(t *testing.T) {
		rec := oneRecord()
		rec.Items = append(rec.Items, models.DebtItem{Name: "Shakar", Qty: 1, Price: 5000})
		rec.TotalDebt = rec.SumItems()

		got, err := RemoveItem(rec, 1)
		if err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		if len(got.Items) != 1 || got.TotalDebt != 20000 {
			t.Errorf("got %d items total %d, want 1 item total 20000", len(got.Items), got.TotalDebt)
		}
		if len(rec.Items) != 2 {
			t.Error("original record was mutated")
		}
	})
}

// TestTotalInvariant drives a record through a sequence of item mutations and
// checks the derived total never drifts from the items.
func TestTotalInvariant(t *testing.T) {
	rec := oneRecord()
	var err error

	rec = AddItem(rec)
	rec, err = UpdateItem(rec, 1, ItemPatch{Name: strPtr("Guruch"), Qty: intPtr(3), Price: int64Ptr(12000)})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	rec = AddItem(rec)
	rec, err = UpdateItem(rec, 2, ItemPatch{Name: strPtr("Choy"), Qty: intPtr(1), Price: int64Ptr(8000)})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	rec, err = RemoveItem(rec, 0)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	if rec.TotalDebt != rec.SumItems() {
		t.Errorf("TotalDebt %d drifted from items sum %d", rec.TotalDebt, rec.SumItems())
	}
	if rec.TotalDebt != 44000 {
		t.Errorf("TotalDebt = %d, want 44000", rec.TotalDebt)
	}
	if err := Validate(rec); err != nil {
		t.Errorf("record failed validation after mutations: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.DebtRecord)
		wantErr bool
	}{
		{"valid record", func(r *models.DebtRecord) {}, false},
		{"no items", func(r *models.DebtRecord) { r.Items = nil }, true},
		{"unnamed item", func(r *models.DebtRecord) { r.Items[0].Name = "" }, true},
		{"zero qty", func(r *models.DebtRecord) { r.Items[0].Qty = 0 }, true},
		{"negative price", func(r *models.DebtRecord) { r.Items[0].Price = -5 }, true},
		{"drifted total", func(r *models.DebtRecord) { r.TotalDebt = 999 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := oneRecord()
			tt.mutate(&rec)
			err := Validate(rec)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTogglePaid(t *testing.T) {
	records := []models.DebtRecord{oneRecord()}

	got, err := TogglePaid(records, 1, true)
	if err != nil {
		t.Fatalf("TogglePaid failed: %v", err)
	}
	if !got[0].Paid {
		t.Error("record not marked paid")
	}
	if records[0].Paid {
		t.Error("original collection was mutated")
	}

	_, err = TogglePaid(records, 99, true)
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nferr.ID != 99 {
		t.Errorf("NotFoundError.ID = %d, want 99", nferr.ID)
	}
}

func TestDeleteRecord(t *testing.T) {
	t.Run("unpaid record is rejected", func(t *testing.T) {
		records := []models.DebtRecord{oneRecord()}
		got, err := DeleteRecord(records, 1)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(got) != 1 {
			t.Error("rejected delete must keep the collection intact")
		}
	})

	t.Run("paid record is removed, others untouched", func(t *testing.T) {
		records := synthRecords(6) // ids 1,4 are paid (every third)
		got, err := DeleteRecord(records, 4)
		if err != nil {
			t.Fatalf("DeleteRecord failed: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("got %d records, want 5", len(got))
		}
		for _, rec := range got {
			if rec.ID == 4 {
				t.Error("record 4 still present after delete")
			}
		}
		if len(records) != 6 {
			t.Error("original collection was mutated")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := DeleteRecord(synthRecords(3), 42)
		var nferr *NotFoundError
		if !errors.As(err, &nferr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestExportRows(t *testing.T) {
	rec := oneRecord()
	rec.Items = append(rec.Items, models.DebtItem{Name: "Shakar", Qty: 1, Price: 5000})
	rec.TotalDebt = rec.SumItems()
	paid := rec.Clone()
	paid.ID = 2
	paid.Paid = true

	rows := ExportRows([]models.DebtRecord{rec, paid})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Name != "Aziz Karimov" {
		t.Errorf("Name = %q, want %q", first.Name, "Aziz Karimov")
	}
	if first.Items != "Un x2; Shakar x1" {
		t.Errorf("Items = %q, want %q", first.Items, "Un x2; Shakar x1")
	}
	if first.Total != 25000 {
		t.Errorf("Total = %d, want 25000", first.Total)
	}
	if first.Status != StatusUnpaid {
		t.Errorf("Status = %q, want %q", first.Status, StatusUnpaid)
	}
	if rows[1].Status != StatusPaid {
		t.Errorf("paid row status = %q, want %q", rows[1].Status, StatusPaid)
	}
}
