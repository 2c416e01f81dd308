package script

import "errors"

// Errors for script operations.
var (
	// ErrScriptClosed is returned when operating on a closed runtime.
	ErrScriptClosed = errors.New("script runtime is closed")

	// ErrTimeout is returned when a chunk or callback runs past the
	// execution timeout.
	ErrTimeout = errors.New("lua execution timeout")
)
