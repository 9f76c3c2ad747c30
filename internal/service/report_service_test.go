package service

import (
	"context"
	"testing"
)

func TestReportServiceSummary(t *testing.T) {
	env := newTestEnv(t)
	debts := NewDebtService(env.store, testLogger())
	payments := NewPaymentService(env.store, testLogger())
	svc := NewReportService(env.store, testLogger())
	ctx := context.Background()

	// Two January debts, one of which gets settled in February; one
	// February debt still open.
	seedDebt(t, env.store, env.owner.ID, "Aziz", "2026-01-05", 10000)
	settled := seedDebt(t, env.store, env.owner.ID, "Nilufar", "2026-01-20", 30000)
	seedDebt(t, env.store, env.owner.ID, "Sardor", "2026-02-03", 20000)

	if _, err := debts.SetPaid(ctx, env.owner.ID, settled.ID, true); err != nil {
		t.Fatalf("SetPaid failed: %v", err)
	}
	if _, err := payments.Commit(ctx, env.owner.ID, settled.ID, "2026-02-15", "cash"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	summary, err := svc.Summary(ctx, env.owner.ID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.ActiveDebtors != 2 {
		t.Errorf("ActiveDebtors = %d, want 2", summary.ActiveDebtors)
	}
	if summary.Outstanding != 30000 {
		t.Errorf("Outstanding = %d, want 30000", summary.Outstanding)
	}
	if summary.Collected != 30000 {
		t.Errorf("Collected = %d, want 30000", summary.Collected)
	}

	if len(summary.Months) != 2 {
		t.Fatalf("got %d months, want 2: %+v", len(summary.Months), summary.Months)
	}

	jan := summary.Months[0]
	if jan.Month != "2026-01" || jan.DebtIssued != 10000 || jan.Collected != 0 {
		t.Errorf("january = %+v", jan)
	}
	if jan.Net != -10000 {
		t.Errorf("january net = %d, want -10000", jan.Net)
	}

	feb := summary.Months[1]
	if feb.Month != "2026-02" || feb.DebtIssued != 20000 || feb.Collected != 30000 {
		t.Errorf("february = %+v", feb)
	}
	if feb.Net != 10000 {
		t.Errorf("february net = %d, want 10000", feb.Net)
	}
}

func TestReportServiceSummaryEmpty(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(env.store, testLogger())

	summary, err := svc.Summary(context.Background(), env.owner.ID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.ActiveDebtors != 0 || summary.Outstanding != 0 || summary.Collected != 0 {
		t.Errorf("summary = %+v, want zeroes", summary)
	}
	if len(summary.Months) != 0 {
		t.Errorf("months = %+v, want empty", summary.Months)
	}
}
