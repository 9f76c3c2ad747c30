package ledger

import (
	"fmt"
	"math/rand"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// Test fixtures. Record synthesis is deterministic: a fixed seed produces the
// same ledger every run, so failures reproduce.

var fixtureNames = [][2]string{
	{"Aziz", "Karimov"},
	{"Nilufar", "Tosheva"},
	{"Sardor", "Aliyev"},
	{"Madina", "Rahimova"},
	{"Bobur", "Xasanov"},
	{"Gulnora", "Saidova"},
}

var fixtureGoods = []string{"Un", "Shakar", "Yog'", "Guruch", "Choy"}

// synthRecords builds n debt records with ids 1..n.
func synthRecords(n int) []models.DebtRecord {
	rng := rand.New(rand.NewSource(42))
	records := make([]models.DebtRecord, n)
	for i := range records {
		name := fixtureNames[i%len(fixtureNames)]
		items := make([]models.DebtItem, 1+rng.Intn(3))
		for j := range items {
			items[j] = models.DebtItem{
				Name:  fixtureGoods[rng.Intn(len(fixtureGoods))],
				Qty:   1 + rng.Intn(5),
				Price: int64(1000 * (1 + rng.Intn(50))),
			}
		}
		rec := models.DebtRecord{
			ID:        int64(i + 1),
			FirstName: name[0],
			LastName:  name[1],
			Phone:     fmt.Sprintf("+998 9%d %03d 22 33", i%10, 100+i),
			DebtDate:  "2026-02-01",
			Items:     items,
			Paid:      i%3 == 0,
		}
		rec.TotalDebt = rec.SumItems()
		records[i] = rec
	}
	return records
}

// oneRecord is the single-record ledger several mutation tests start from.
func oneRecord() models.DebtRecord {
	rec := models.DebtRecord{
		ID:        1,
		FirstName: "Aziz",
		LastName:  "Karimov",
		Phone:     "+998 90 111 22 33",
		DebtDate:  "2026-02-01",
		Items:     []models.DebtItem{{Name: "Un", Qty: 2, Price: 10000}},
	}
	rec.TotalDebt = rec.SumItems()
	return rec
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
