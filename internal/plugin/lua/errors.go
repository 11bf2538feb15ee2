package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past the state's
	// execution timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when a script does not define a function
	// the caller needs.
	ErrNotFunction = errors.New("lua value is not a function")
)
