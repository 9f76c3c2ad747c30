package service

import "errors"

var (
	// ErrDebtorLimit is returned when creating a debt would exceed the
	// owner's tariff debtor cap.
	ErrDebtorLimit = errors.New("tariff debtor limit reached")

	// ErrExportDisabled is returned when the owner's tariff does not
	// include exports.
	ErrExportDisabled = errors.New("export is not included in the current tariff")

	// ErrOwnerUndeletable is returned when trying to delete a platform
	// owner account.
	ErrOwnerUndeletable = errors.New("owner accounts cannot be deleted")
)
