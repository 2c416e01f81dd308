package event

import "errors"

// Sentinel errors for the event package.
var (
	// ErrEmptyType is returned when a subscription names no event type.
	ErrEmptyType = errors.New("no event type given")

	// ErrEmptyKey is returned when a subscription names no logical key.
	ErrEmptyKey = errors.New("no logical key given")

	// ErrNilHandler is returned when a subscription has no handler.
	ErrNilHandler = errors.New("handler is nil")
)
