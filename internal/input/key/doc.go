// Package key provides the shared vocabulary of the input system.
//
// This package defines the fundamental types every other input package
// speaks:
//
//   - Logical: a source-independent input element ("button_1", "d_pad_up")
//   - Namespace: one of the three mapping tables (gamepad, axes, keyboard)
//   - EventType: press, hold, release, connect, disconnect
//   - Slot: a phase-tracking domain, one per gamepad plus the keyboard
//   - Value: the signal carried by an event (one component for buttons,
//     two for axes)
//
// # Lists
//
// Event types and logical keys are frequently given as whitespace-separated
// lists ("press hold", "button_1 start"). ParseList splits them; callers
// expand the cross-product into single (type, key) pairs before storing.
//
// # Key Codes
//
// Physical keyboard keys are identified by integer codes using the browser
// virtual key numbering (Space = 32, Escape = 27, arrows 37-40). Backends
// translate their native key identifiers into these codes.
package key
