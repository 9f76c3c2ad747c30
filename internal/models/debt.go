package models

// DebtItem represents a single line of goods taken on credit.
type DebtItem struct {
	// Name is the description of the goods (e.g., "Un", "Shakar").
	Name string `json:"name"`

	// Qty is the number of units taken. Must be at least 1 on a saved record.
	Qty int `json:"qty"`

	// Price is the per-unit price in so'm. Must be non-negative.
	Price int64 `json:"price"`
}

// Subtotal returns Qty × Price for this line.
func (it DebtItem) Subtotal() int64 {
	return int64(it.Qty) * it.Price
}

// DebtRecord represents one customer's itemized debt in the active ledger.
type DebtRecord struct {
	// ID is the unique identifier for the record, assigned by the store at
	// creation and immutable afterward.
	ID int64 `json:"id"`

	// OwnerID is the user (business owner) this record belongs to.
	OwnerID string `json:"owner_id"`

	// FirstName and LastName identify the customer.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Phone is the customer's phone number (e.g., "+998 90 111 22 33").
	Phone string `json:"phone"`

	// DebtDate is the calendar date the debt was incurred, ISO "2006-01-02".
	DebtDate string `json:"debt_date"`

	// Items are the goods taken. A record always has at least one item.
	Items []DebtItem `json:"items"`

	// TotalDebt is the derived sum over Items of Qty × Price. It must never
	// drift from the items; the ledger package recomputes it on every item
	// mutation.
	TotalDebt int64 `json:"total_debt"`

	// Paid marks the debt as settled but not yet committed to the payment
	// history. Defaults to false.
	Paid bool `json:"paid"`

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64 `json:"created_at"`
}

// FullName returns "FirstName LastName", the string the search filter
// matches against.
func (d DebtRecord) FullName() string {
	return d.FirstName + " " + d.LastName
}

// SumItems returns the total the items currently imply.
func (d DebtRecord) SumItems() int64 {
	var total int64
	for _, it := range d.Items {
		total += it.Subtotal()
	}
	return total
}

// Clone returns a deep copy of the record. Callers that derive a modified
// record start from a clone so the original is never mutated.
func (d DebtRecord) Clone() DebtRecord {
	out := d
	out.Items = make([]DebtItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}
