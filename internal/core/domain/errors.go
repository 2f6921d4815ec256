package domain

import "errors"

// Engine error kinds. Every failure returned by the engine wraps one
// of these sentinels so callers can classify with errors.Is while the
// message carries the specific cause.
var (
	// ErrValidation indicates a malformed or incompatible document.
	// Reported before any output is written.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration indicates an out-of-range part count or word
	// target.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrStructural indicates the document structure cannot be
	// indexed: no <body>, an unresolvable group boundary, or no
	// groups in byte-exact mode.
	ErrStructural = errors.New("structural error")

	// ErrCompatibility indicates a part set that cannot be merged:
	// mismatched split ids, mismatched part totals, or gaps in the
	// segment ranges.
	ErrCompatibility = errors.New("incompatible split parts")

	// ErrIO indicates an output file could not be written. Part
	// writes are transactional, so no partial part set survives it.
	ErrIO = errors.New("write failed")

	// ErrStopped indicates the caller's stop predicate cancelled the
	// operation at a checkpoint.
	ErrStopped = errors.New("operation stopped")
)
