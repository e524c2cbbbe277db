package tree

import "errors"

// Errors returned by tree operations.
var (
	// ErrNilRoot indicates a cursor was requested for an absent tree.
	ErrNilRoot = errors.New("tree root is nil")
)
