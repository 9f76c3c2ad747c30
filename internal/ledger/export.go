package ledger

import (
	"fmt"
	"strings"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// Row is one flat line of a spreadsheet-style export. Mapping records to rows
// is pure; writing the actual file is the export collaborator's job.
type Row struct {
	Name     string
	Phone    string
	DebtDate string
	Total    int64
	Items    string
	Status   string
}

// Status labels match what the presentation layer shows.
const (
	StatusPaid   = "To'langan"
	StatusUnpaid = "To'lanmagan"
)

// ExportRows maps each record to a flat row: name, phone, date, total, item
// summary, and paid label. Callers export the filtered set, so row order
// follows record order.
func ExportRows(records []models.DebtRecord) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		status := StatusUnpaid
		if rec.Paid {
			status = StatusPaid
		}
		rows[i] = Row{
			Name:     rec.FullName(),
			Phone:    rec.Phone,
			DebtDate: rec.DebtDate,
			Total:    rec.TotalDebt,
			Items:    itemSummary(rec.Items),
			Status:   status,
		}
	}
	return rows
}

// itemSummary renders items as "Un x2; Shakar x1".
func itemSummary(items []models.DebtItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s x%d", it.Name, it.Qty)
	}
	return strings.Join(parts, "; ")
}
