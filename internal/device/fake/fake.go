// Package fake provides scripted input sources for tests and demos.
package fake

import (
	"sync"

	"github.com/dshills/joyride/internal/device"
)

// Standard layout sizes.
const (
	StandardButtons = 17
	StandardAxes    = 4
)

// Provider is a scripted gamepad provider. Each call to Devices returns
// a copy of the current slots.
type Provider struct {
	mu    sync.Mutex
	slots []*device.Snapshot
	polls int
}

// NewProvider creates a provider with the given number of empty slots.
func NewProvider(slots int) *Provider {
	return &Provider{slots: make([]*device.Snapshot, slots)}
}

// Devices returns a snapshot copy of every slot; empty slots are nil.
func (p *Provider) Devices() []*device.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.polls++
	out := make([]*device.Snapshot, len(p.slots))
	for i, s := range p.slots {
		out[i] = s.Clone()
	}
	return out
}

// Polls returns how many times Devices was called.
func (p *Provider) Polls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.polls
}

// Connect puts a standard gamepad with all controls idle into slot.
func (p *Provider) Connect(slot int, name string) {
	p.SetFrame(slot, &device.Snapshot{
		Name:      name,
		Connected: true,
		Buttons:   make([]device.Button, StandardButtons),
		Axes:      make([]float64, StandardAxes),
	})
}

// Disconnect empties slot.
func (p *Provider) Disconnect(slot int) {
	p.SetFrame(slot, nil)
}

// SetFrame replaces the snapshot in slot, growing the slot list if needed.
func (p *Provider) SetFrame(slot int, s *device.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.slots) <= slot {
		p.slots = append(p.slots, nil)
	}
	p.slots[slot] = s.Clone()
}

// Press presses a button with value 1.
func (p *Provider) Press(slot, button int) {
	p.SetButton(slot, button, true, 1)
}

// Release releases a button.
func (p *Provider) Release(slot, button int) {
	p.SetButton(slot, button, false, 0)
}

// SetButton sets the raw state of one button. Missing slots are ignored.
func (p *Provider) SetButton(slot, button int, pressed bool, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.slot(slot)
	if s == nil {
		return
	}
	for len(s.Buttons) <= button {
		s.Buttons = append(s.Buttons, device.Button{})
	}
	s.Buttons[button] = device.Button{Pressed: pressed, Value: value}
}

// SetAxis sets one raw axis value. Missing slots are ignored.
func (p *Provider) SetAxis(slot, axis int, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.slot(slot)
	if s == nil {
		return
	}
	for len(s.Axes) <= axis {
		s.Axes = append(s.Axes, 0)
	}
	s.Axes[axis] = value
}

func (p *Provider) slot(i int) *device.Snapshot {
	if i < 0 || i >= len(p.slots) {
		return nil
	}
	return p.slots[i]
}

// Keyboard is a scripted keyboard source.
type Keyboard struct {
	device.Keyboard
}

// NewKeyboard creates a keyboard with no handlers.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Down emits a key-down event.
func (k *Keyboard) Down(code int) {
	k.Emit(true, code)
}

// Up emits a key-up event.
func (k *Keyboard) Up(code int) {
	k.Emit(false, code)
}
