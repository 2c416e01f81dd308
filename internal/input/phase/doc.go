// Package phase tracks the press/hold/release lifecycle of logical keys.
//
// Each device slot owns independent record stores: one for gamepad buttons
// and one for gamepad axes per connected gamepad, plus a single keyboard
// store that always exists. A record moves through
//
//	pressed -> hold -> released -> (removed)
//
// advancing by at most one state per sweep. Sweep runs once per frame and
// returns the transitions to emit, in a deterministic order: every gamepad
// slot's buttons (ascending slot), then every gamepad slot's axes, then the
// keyboard.
package phase
