package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/joyride/internal/input/key"
)

// ID identifies one registered listener.
type ID string

// NewID returns a fresh random listener ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Options is opaque per-listener data handed back with every event.
type Options struct {
	// Tag groups listeners for RemoveTag.
	Tag string

	// Data is any caller value.
	Data any
}

// Handler is a listener callback.
// Returning an error aborts the rest of the dispatch unless listeners are
// isolated.
type Handler func(Event) error

// Listener is one stored (type, key) subscription.
type Listener struct {
	ID      ID
	Type    key.EventType
	Key     key.Logical
	Handler Handler
	Options Options
}

// Deliver calls the listener's handler with ev, filling in the listener
// fields.
func (l Listener) Deliver(ev Event) error {
	ev.Type = l.Type
	ev.Button = l.Key
	ev.Listener = l
	return l.Handler(ev)
}

// Event is the record passed to a listener.
type Event struct {
	Type      key.EventType
	Button    key.Logical
	Value     key.Value
	Player    key.Slot
	Listener  Listener
	Timestamp time.Time
}

// String returns a short description used in logs.
func (e Event) String() string {
	return fmt.Sprintf("%s %s player=%s value=%v", e.Type, e.Button, e.Player, []float64(e.Value))
}
