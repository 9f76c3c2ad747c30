package models

import "errors"

// Sentinel errors shared by the storage backends. Services translate these
// into API status codes with errors.Is.
var (
	ErrDebtNotFound    = errors.New("debt record not found")
	ErrPaymentNotFound = errors.New("payment record not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrTariffNotFound  = errors.New("tariff not found")

	// ErrPhoneExists is returned when creating a user with a phone number
	// that is already a login.
	ErrPhoneExists = errors.New("phone number already registered")
)
