package core

import "errors"

// Domain errors. The presentation layer maps each to its own status
// signal; they are never collapsed into one another.
var (
	// ErrNotFound means the target wish does not exist (or was deleted
	// concurrently, which leaves the same end state).
	ErrNotFound = errors.New("wish not found")
	// ErrUnauthorized means the supplied password does not match the
	// stored digest.
	ErrUnauthorized = errors.New("invalid password")
	// ErrStoreUnavailable means the backing store failed; the caller may
	// retry, the service does not.
	ErrStoreUnavailable = errors.New("store unavailable")
)
