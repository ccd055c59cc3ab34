package sim

import "errors"

// Error kinds surfaced by the factory and ledger. All are recoverable by the
// caller; match with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrNotFound = errors.New("cell not found")

	ErrOutOfRange = errors.New("current out of range")

	ErrEmptyLedger = errors.New("ledger is empty")
)
