package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrAccountNotFound is returned when no active account matches the
	// identifier. Inactive accounts intentionally return this same error
	// so they are indistinguishable from nonexistent ones.
	ErrAccountNotFound = errors.New("account not found")
)
