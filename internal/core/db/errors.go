package db

import (
	"errors"
	"strings"
)

// Error taxonomy for the persistence layer. Read-path absence is never an
// error: lookups return (nil, nil) when no row matches, and callers branch
// on the nil result.
var (
	// ErrStorageUnavailable means the database could not be opened or
	// created. Fatal at startup.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSessionNotFound is returned by write paths that require an
	// existing owning session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrIntegrity means an invariant could not be completed atomically;
	// the enclosing transaction was rolled back and the call is retryable.
	ErrIntegrity = errors.New("integrity violation")

	// ErrBusy means engine lock contention outlived the bounded retries.
	ErrBusy = errors.New("database busy")
)

// isBusy reports whether the engine signalled transient lock contention.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
