// Package ledger computes derived views over an in-memory collection of debt
// records: search filtering, pagination, running totals, and the local
// mutations that keep derived fields consistent.
//
// Every function is pure and copy-on-write: inputs are never mutated, results
// are new values. Concurrent reads during a pending mutation are safe; the
// caller swaps in the returned collection when it commits.
package ledger

import (
	"strings"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// DefaultPageSize is the page size the presentation layer renders with.
const DefaultPageSize = 15

// MaxPageSize caps caller-supplied page sizes.
const MaxPageSize = 100

// Page is the exact slice of the filtered set to render, plus the aggregate
// counts the pagination controls need.
type Page struct {
	Records       []models.DebtRecord `json:"records"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"page_size"`
	TotalPages    int                 `json:"total_pages"`
	FilteredCount int                 `json:"filtered_count"`
}

// Filter retains records whose customer name or phone matches query.
// Name matching is a case-insensitive substring test over
// "FirstName LastName"; phone matching is a plain substring test, so partial
// numbers like "+998 90" match. An empty query returns the input unchanged.
func Filter(records []models.DebtRecord, query string) []models.DebtRecord {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)

	var out []models.DebtRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.FullName()), q) ||
			strings.Contains(rec.Phone, query) {
			out = append(out, rec)
		}
	}
	return out
}

// TotalPages returns ceil(count / pageSize), 0 when the set is empty.
func TotalPages(count, pageSize int) int {
	if count == 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the 1-indexed page of records. The pages partition the
// input exhaustively and disjointly; a page beyond the last yields an empty
// slice, not an error.
func Paginate(records []models.DebtRecord, page, pageSize int) []models.DebtRecord {
	if page < 1 || pageSize <= 0 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return nil
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// View combines Filter and Paginate into the snapshot the presentation layer
// renders. pageSize outside (0, MaxPageSize] falls back to DefaultPageSize;
// page < 1 falls back to 1.
func View(records []models.DebtRecord, query string, page, pageSize int) Page {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	filtered := Filter(records, query)
	return Page{
		Records:       Paginate(filtered, page, pageSize),
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    TotalPages(len(filtered), pageSize),
		FilteredCount: len(filtered),
	}
}
