package key

// EventType names a kind of event delivered to listeners.
// Any non-empty name may be triggered synthetically; the constants below are
// the ones the input system emits itself.
type EventType string

const (
	// Press is emitted once on the sweep after a key becomes active.
	Press EventType = "press"

	// Hold is emitted on every later sweep while the key stays active.
	Hold EventType = "hold"

	// Release is emitted once on the sweep after the key becomes inactive.
	Release EventType = "release"

	// Connect is emitted when a gamepad appears in a slot.
	Connect EventType = "connect"

	// Disconnect is emitted when a gamepad leaves a slot.
	Disconnect EventType = "disconnect"
)

// String returns the event type name.
func (t EventType) String() string {
	return string(t)
}

// IsPhase reports whether t is one of press, hold or release.
func (t EventType) IsPhase() bool {
	switch t {
	case Press, Hold, Release:
		return true
	default:
		return false
	}
}

// IsConnection reports whether t is connect or disconnect.
func (t EventType) IsConnection() bool {
	return t == Connect || t == Disconnect
}
