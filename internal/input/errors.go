package input

import (
	"errors"

	"github.com/dshills/joyride/internal/input/keymap"
)

// Sentinel errors for the input package.
var (
	// ErrDestroyed is returned by every operation after Destroy.
	ErrDestroyed = errors.New("controller destroyed")

	// ErrInvalidThreshold is returned for a negative or NaN threshold.
	ErrInvalidThreshold = errors.New("threshold must be a non-negative number")

	// ErrNotConnectionEvent is returned by OnConnection for event types
	// other than connect and disconnect.
	ErrNotConnectionEvent = errors.New("not a connection event type")

	// ErrUnknownNamespace is returned by SetCustomMapping for a namespace
	// other than gamepad, axes or keyboard.
	ErrUnknownNamespace = keymap.ErrUnknownNamespace
)
