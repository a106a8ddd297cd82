package domain

import "errors"

// Domain errors. The store's single-operation entry points report failure
// with a boolean; these sentinels classify failures on the richer
// orchestration paths so callers can map them to exit codes or HTTP statuses.
var (
	// ErrFormat marks unparsable text: dates, amounts, account numbers.
	ErrFormat = errors.New("malformed input")

	// ErrValidation marks business-rule violations: underage holders,
	// below-minimum deposits, invalid branches, terms, campuses, duplicates.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown account number or holder.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds marks a withdrawal exceeding the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
