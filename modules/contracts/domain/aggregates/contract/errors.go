package contract

import "errors"

var (
	ErrNotFound          = errors.New("contract not found")
	ErrConflict          = errors.New("contract was modified concurrently")
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAccessDenied covers every client-access failure: unknown contract,
	// wrong key, stale key, terminal status. Callers must not distinguish
	// between them.
	ErrAccessDenied = errors.New("access denied")
)
