// Package errs defines the error taxonomy shared by the tracker core and
// its persistence adapters. Call sites wrap these sentinels with
// fmt.Errorf("...: %w", ...) and callers branch with errors.Is.
package errs

import "errors"

var (
	// ErrValidation marks caller-supplied data that violates a domain rule,
	// such as a nap ending before it starts. The operation has no effect.
	ErrValidation = errors.New("validation failed")

	// ErrPrecondition marks operations missing required context, such as
	// starting a nap with no baby selected.
	ErrPrecondition = errors.New("precondition failed")

	// ErrNotFound marks references to identifiers that do not exist
	ErrNotFound = errors.New("not found")

	// ErrAuthRequired marks remote persistence attempted without an
	// authenticated session
	ErrAuthRequired = errors.New("authentication required")

	// ErrPersistence marks a failed read or write in the backing store.
	// The in-memory state change that preceded the write is not rolled back.
	ErrPersistence = errors.New("persistence failed")
)
