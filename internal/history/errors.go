package history

import "errors"

// Errors returned by history operations.
var (
	// ErrSnapshotNotFound indicates a snapshot ID is not held by the store.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
