package phase

import (
	"sort"

	"github.com/dshills/joyride/internal/input/key"
)

// Pad holds the record stores of one gamepad slot.
type Pad struct {
	Buttons *Store
	Axes    *Store
}

// Transition is one event produced by a sweep.
type Transition struct {
	Type  key.EventType
	Key   key.Logical
	Value key.Value
	Slot  key.Slot
}

// Tracker owns every record store.
// It is not safe for concurrent use; the owner serializes access.
type Tracker struct {
	pads     map[key.Slot]*Pad
	keyboard *Store
}

// NewTracker creates a tracker with no gamepads and an empty keyboard store.
func NewTracker() *Tracker {
	return &Tracker{
		pads:     make(map[key.Slot]*Pad),
		keyboard: NewStore(),
	}
}

// Attach starts tracking a gamepad slot with empty stores.
// It returns false if the slot was already tracked.
func (t *Tracker) Attach(slot key.Slot) bool {
	if _, ok := t.pads[slot]; ok {
		return false
	}
	t.pads[slot] = &Pad{Buttons: NewStore(), Axes: NewStore()}
	return true
}

// Detach stops tracking a gamepad slot. In-flight records are discarded
// without a release transition.
func (t *Tracker) Detach(slot key.Slot) bool {
	if _, ok := t.pads[slot]; !ok {
		return false
	}
	delete(t.pads, slot)
	return true
}

// Has reports whether a gamepad slot is tracked.
func (t *Tracker) Has(slot key.Slot) bool {
	_, ok := t.pads[slot]
	return ok
}

// Pad returns the stores of a tracked gamepad slot.
func (t *Tracker) Pad(slot key.Slot) (*Pad, bool) {
	p, ok := t.pads[slot]
	return p, ok
}

// Keyboard returns the keyboard store.
func (t *Tracker) Keyboard() *Store {
	return t.keyboard
}

// Stores returns the stores fed by a namespace: the button or axis store
// of every tracked gamepad in slot order, or the keyboard store.
func (t *Tracker) Stores(ns key.Namespace) []*Store {
	switch ns {
	case key.NamespaceKeyboard:
		return []*Store{t.keyboard}
	case key.NamespaceGamepad, key.NamespaceAxes:
		var out []*Store
		for _, slot := range t.Slots() {
			p := t.pads[slot]
			if ns == key.NamespaceGamepad {
				out = append(out, p.Buttons)
			} else {
				out = append(out, p.Axes)
			}
		}
		return out
	}
	return nil
}

// Slots returns the tracked gamepad slots in ascending order.
func (t *Tracker) Slots() []key.Slot {
	slots := make([]key.Slot, 0, len(t.pads))
	for s := range t.pads {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// ResetGamepads forgets every gamepad slot so that connected devices are
// detected as fresh connections on the next poll.
func (t *Tracker) ResetGamepads() {
	t.pads = make(map[key.Slot]*Pad)
}

// Reset forgets every gamepad slot and keyboard record.
func (t *Tracker) Reset() {
	t.ResetGamepads()
	t.keyboard.Reset()
}

// Sweep advances every record by one state and returns the transitions in
// emission order.
func (t *Tracker) Sweep() []Transition {
	var out []Transition
	slots := t.Slots()

	for _, slot := range slots {
		out = sweepStore(out, t.pads[slot].Buttons, slot)
	}
	for _, slot := range slots {
		out = sweepStore(out, t.pads[slot].Axes, slot)
	}
	return sweepStore(out, t.keyboard, key.KeyboardSlot)
}

func sweepStore(out []Transition, s *Store, slot key.Slot) []Transition {
	for _, k := range s.Keys() {
		typ, v, ok := s.advance(k)
		if !ok {
			continue
		}
		out = append(out, Transition{Type: typ, Key: k, Value: v, Slot: slot})
	}
	return out
}
