package script

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when execution exceeds the state's timeout.
	ErrTimeout = errors.New("lua execution timeout")
)
