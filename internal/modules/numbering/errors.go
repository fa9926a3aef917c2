package numbering

import "errors"

var (
	// ErrAllocationExhausted means the retry bound was hit while racing
	// for a number. Transient under contention; callers may retry later.
	ErrAllocationExhausted = errors.New("document number allocation exhausted")

	ErrUnknownKind = errors.New("unknown document kind")
)
