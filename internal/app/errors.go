package app

import "errors"

var (
	// ErrShutdown is returned by operations invoked after Shutdown.
	ErrShutdown = errors.New("application shut down")

	// ErrNoConfigFile indicates config watching was requested without a file.
	ErrNoConfigFile = errors.New("no config file to watch")
)

// InitError reports which component failed during New.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
