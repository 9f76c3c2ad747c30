// Package models defines the core domain models for Qarzdaftar.
//
// # Models
//
//   - DebtRecord: an itemized customer debt in the active ledger
//   - DebtItem: one line of goods taken on credit
//   - PaymentRecord: a settled debt, retained for historical reporting
//   - User: a platform account (business owner or platform owner)
//   - Tariff: a subscription plan governing platform feature limits
//
// # Design Principles
//
// 1. **Derived totals**: DebtRecord.TotalDebt is always a pure function of
// Items. It is recomputed on every item mutation and never stored
// independently of them.
//
// 2. **Integer money**: amounts are int64 so'm. The sums this system handles
// are whole so'm, and float arithmetic would drift.
//
// 3. **Copy-on-write friendliness**: the ledger package never mutates a
// record in place; Clone exists so derived views can be built from a private
// copy.
//
// 4. **Avoid circular references**: records reference their owner by ID
// string, never by pointer.
package models
