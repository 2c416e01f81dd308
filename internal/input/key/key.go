package key

import (
	"math"
	"strconv"
)

// Logical identifies a unified input element, independent of the physical
// source that drives it.
type Logical string

// String returns the logical key name.
func (l Logical) String() string {
	return string(l)
}

// Default logical key names.
const (
	Button1             Logical = "button_1"
	Button2             Logical = "button_2"
	Button3             Logical = "button_3"
	Button4             Logical = "button_4"
	ShoulderTopLeft     Logical = "shoulder_top_left"
	ShoulderTopRight    Logical = "shoulder_top_right"
	ShoulderBottomLeft  Logical = "shoulder_bottom_left"
	ShoulderBottomRight Logical = "shoulder_bottom_right"
	Select              Logical = "select"
	Start               Logical = "start"
	StickButtonLeft     Logical = "stick_button_left"
	StickButtonRight    Logical = "stick_button_right"
	DPadUp              Logical = "d_pad_up"
	DPadDown            Logical = "d_pad_down"
	DPadLeft            Logical = "d_pad_left"
	DPadRight           Logical = "d_pad_right"
	Vendor              Logical = "vendor"
	StickAxisLeft       Logical = "stick_axis_left"
	StickAxisRight      Logical = "stick_axis_right"
)

// Slot identifies an independent phase-tracking domain.
// Gamepads use their index (0 and up); the keyboard uses KeyboardSlot.
type Slot int

// KeyboardSlot is the single implicit slot for keyboard input.
const KeyboardSlot Slot = -1

// IsKeyboard reports whether s is the keyboard slot.
func (s Slot) IsKeyboard() bool {
	return s == KeyboardSlot
}

// String returns "keyboard" for the keyboard slot and the index otherwise.
func (s Slot) String() string {
	if s == KeyboardSlot {
		return "keyboard"
	}
	return strconv.Itoa(int(s))
}

// Value is the signal carried by an observation or event.
// Buttons carry a single magnitude; axes carry an (x, y) pair.
type Value []float64

// Scalar returns a one-component value.
func Scalar(v float64) Value {
	return Value{v}
}

// Vector returns a two-component value.
func Vector(x, y float64) Value {
	return Value{x, y}
}

// Magnitude returns the largest absolute component.
func (v Value) Magnitude() float64 {
	var m float64
	for _, c := range v {
		if a := math.Abs(c); a > m {
			m = a
		}
	}
	return m
}

// At returns component i, or 0 if the value has fewer components.
func (v Value) At(i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// Clone returns a copy that does not alias v.
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}
	c := make(Value, len(v))
	copy(c, v)
	return c
}
