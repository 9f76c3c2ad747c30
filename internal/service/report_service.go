package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/qarzdaftar/qarzdaftar/internal/storage"
)

// MonthlySummary aggregates one calendar month of ledger activity.
type MonthlySummary struct {
	// Month in "YYYY-MM" form.
	Month string `json:"month"`

	// DebtIssued is the sum of active debts dated in this month.
	DebtIssued int64 `json:"debt_issued"`

	// Collected is the sum of payments received in this month.
	Collected int64 `json:"collected"`

	// Net is Collected minus DebtIssued.
	Net int64 `json:"net"`
}

// ReportSummary is the owner's full reporting view: outstanding and collected
// totals plus a month-by-month breakdown.
type ReportSummary struct {
	// Outstanding is the sum of unpaid active debts.
	Outstanding int64 `json:"outstanding"`

	// Collected is the all-time sum of committed payments.
	Collected int64 `json:"collected"`

	// ActiveDebtors is the number of records in the active ledger.
	ActiveDebtors int `json:"active_debtors"`

	// Months is ordered oldest first.
	Months []MonthlySummary `json:"months"`
}

// ReportService derives reporting aggregates from the active ledger and the
// payment history. It holds no state of its own.
type ReportService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewReportService creates a new reporting service.
func NewReportService(store storage.Store, logger *slog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger,
	}
}

// Summary builds the owner's report from current debts and payments.
func (s *ReportService) Summary(ctx context.Context, ownerID string) (*ReportSummary, error) {
	debts, err := s.store.ListDebts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{ActiveDebtors: len(debts)}
	byMonth := make(map[string]*MonthlySummary)

	month := func(key string) *MonthlySummary {
		m, ok := byMonth[key]
		if !ok {
			m = &MonthlySummary{Month: key}
			byMonth[key] = m
		}
		return m
	}

	for _, debt := range debts {
		if !debt.Paid {
			summary.Outstanding += debt.TotalDebt
		}
		if key := monthOf(debt.DebtDate); key != "" {
			month(key).DebtIssued += debt.TotalDebt
		}
	}
	for _, payment := range payments {
		summary.Collected += payment.Amount
		if key := monthOf(payment.PaidDate); key != "" {
			month(key).Collected += payment.Amount
		}
	}

	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summary.Months = make([]MonthlySummary, 0, len(keys))
	for _, key := range keys {
		m := byMonth[key]
		m.Net = m.Collected - m.DebtIssued
		summary.Months = append(summary.Months, *m)
	}

	return summary, nil
}

// monthOf truncates an ISO date to its "YYYY-MM" month key.
func monthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
