package models

// Tariff represents a subscription plan governing platform feature limits.
// Tariffs are unrelated to the debts themselves; they cap what a business
// owner's account may do.
type Tariff struct {
	// ID is the unique identifier for the tariff, assigned by the store.
	ID int64 `json:"id"`

	// Name is the display name of the plan (e.g., "Boshlang'ich",
	// "Professional").
	Name string `json:"name"`

	// MonthlyPrice is the subscription price in so'm per month, 0 for the
	// free plan.
	MonthlyPrice int64 `json:"monthly_price"`

	// MaxDebtors caps the number of active debt records an account may hold.
	// 0 means unlimited.
	MaxDebtors int `json:"max_debtors"`

	// SMSPerMonth caps reminder messages. 0 means unlimited.
	SMSPerMonth int `json:"sms_per_month"`

	// ExportEnabled gates the spreadsheet export of the ledger.
	ExportEnabled bool `json:"export_enabled"`

	// Features is the marketing feature list shown on the plan card.
	Features []string `json:"features"`

	// CreatedAt is the Unix timestamp when the plan was created.
	CreatedAt int64 `json:"created_at"`
}

// AllowsDebtors reports whether a plan permits holding count active debt
// records.
func (t Tariff) AllowsDebtors(count int) bool {
	return t.MaxDebtors == 0 || count <= t.MaxDebtors
}
