// Package export writes ledger export rows as downloadable files. It is the
// I/O side of the export boundary: the ledger package produces the rows, this
// package serializes them.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/qarzdaftar/qarzdaftar/internal/ledger"
)

// csvHeader matches the column labels the presentation layer uses.
var csvHeader = []string{"Mijoz", "Telefon", "Qarz sanasi", "Jami (so'm)", "Olgan narsalar", "Holat"}

// WriteCSV serializes rows as a CSV spreadsheet with a header line.
func WriteCSV(w io.Writer, rows []ledger.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			row.Phone,
			row.DebtDate,
			strconv.FormatInt(row.Total, 10),
			row.Items,
			row.Status,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
