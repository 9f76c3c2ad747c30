package models

import "fmt"

// PaymentMethod is how a settled debt was paid.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodCard
}

// ParsePaymentMethod converts a wire string into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown payment method %q", s)
	}
	return m, nil
}

// PaymentRecord represents a settled debt, created once when a paid
// DebtRecord is committed to the payment history. It is immutable afterward
// except for deletion.
type PaymentRecord struct {
	// ID is the unique identifier for the payment, assigned by the store.
	ID int64 `json:"id"`

	// DebtID is the ledger record this payment settled.
	DebtID int64 `json:"debt_id"`

	// OwnerID is the business owner the payment belongs to.
	OwnerID string `json:"owner_id"`

	// Customer identity, snapshotted from the debt record.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	// DebtDate is the date the debt was incurred, ISO "2006-01-02".
	DebtDate string `json:"debt_date"`

	// PaidDate is the date the payment was received. Never earlier than
	// DebtDate.
	PaidDate string `json:"paid_date"`

	// Amount is the settled total in so'm.
	Amount int64 `json:"amount"`

	// Method is how the payment was made.
	Method PaymentMethod `json:"method"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"created_at"`
}

// FullName returns the customer's "FirstName LastName".
func (p PaymentRecord) FullName() string {
	return p.FirstName + " " + p.LastName
}
