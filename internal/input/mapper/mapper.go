package mapper

import (
	"math"

	"github.com/dshills/joyride/internal/device"
	"github.com/dshills/joyride/internal/input/key"
	"github.com/dshills/joyride/internal/input/keymap"
	"github.com/dshills/joyride/internal/input/phase"
)

// DefaultThreshold is the axis activation threshold used when none is set.
const DefaultThreshold = 0.3

type observation struct {
	active bool
	value  float64
}

// Buttons maps one frame of raw gamepad buttons through the gamepad
// namespace. A logical key driven by several raw buttons is active while
// any of them is pressed and carries the largest value.
func Buttons(store *phase.Store, buttons []device.Button, m *keymap.Mapping) {
	var order []key.Logical
	obs := make(map[key.Logical]observation)

	for raw, b := range buttons {
		for _, k := range m.Resolve(raw, key.NamespaceGamepad) {
			o, seen := obs[k]
			if !seen {
				order = append(order, k)
			}
			if b.Pressed {
				o.active = true
				o.value = math.Max(o.value, b.Value)
			}
			obs[k] = o
		}
	}

	for _, k := range order {
		o := obs[k]
		if o.active {
			observe(store, k, true, key.Scalar(o.value))
			continue
		}
		// Released buttons keep the value of their last active frame.
		observe(store, k, false, nil)
	}
}

// Axes maps one frame of raw axis values through the axes namespace.
// Components outside the raw slice read as 0.
func Axes(store *phase.Store, axes []float64, m *keymap.Mapping, threshold float64) {
	for _, k := range m.Keys(key.NamespaceAxes) {
		start, end, ok := m.AxisRange(k)
		if !ok {
			continue
		}
		v := make(key.Value, end-start)
		active := false
		for i := range v {
			raw := start + i
			if raw < len(axes) {
				v[i] = axes[raw]
			}
			if math.Abs(v[i]) > threshold {
				active = true
			}
		}
		observe(store, k, active, v)
	}
}

// Snapshot maps a gamepad snapshot into a pad's stores.
// Disconnected snapshots are ignored.
func Snapshot(pad *phase.Pad, s *device.Snapshot, m *keymap.Mapping, threshold float64) {
	if pad == nil || s == nil || !s.Connected {
		return
	}
	Buttons(pad.Buttons, s.Buttons, m)
	Axes(pad.Axes, s.Axes, m, threshold)
}

// KeyDown records a key-down event through the keyboard namespace.
// Repeated key-downs for a held key only refresh its value.
func KeyDown(store *phase.Store, code int, m *keymap.Mapping) {
	for _, k := range m.Resolve(code, key.NamespaceKeyboard) {
		observe(store, k, true, key.Scalar(1))
	}
}

// KeyUp records a key-up event through the keyboard namespace.
func KeyUp(store *phase.Store, code int, m *keymap.Mapping) {
	for _, k := range m.Resolve(code, key.NamespaceKeyboard) {
		observe(store, k, false, key.Scalar(0))
	}
}

func observe(store *phase.Store, k key.Logical, active bool, v key.Value) {
	switch {
	case active:
		if !store.Begin(k, v) {
			store.Refresh(k, v)
		}
	case store.Has(k):
		store.Release(k, v)
	}
}
