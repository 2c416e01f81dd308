package mapper

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/joyride/internal/device"
	"github.com/dshills/joyride/internal/input/key"
	"github.com/dshills/joyride/internal/input/keymap"
	"github.com/dshills/joyride/internal/input/phase"
)

func buttons(n int, pressed ...int) []device.Button {
	bs := make([]device.Button, n)
	for _, i := range pressed {
		bs[i] = device.Button{Pressed: true, Value: 1}
	}
	return bs
}

func TestButtons(t *testing.T) {
	m := keymap.Default()
	s := phase.NewStore()

	Buttons(s, buttons(17, 0, 9), m)
	if diff := cmp.Diff([]key.Logical{key.Button1, key.Start}, s.Keys()); diff != "" {
		t.Fatalf("keys after press mismatch (-want +got):\n%s", diff)
	}
	r, _ := s.Get(key.Button1)
	if !r.Pressed || r.Value.At(0) != 1 {
		t.Errorf("button_1 record = %+v, want pressed with value 1", r)
	}

	bs := buttons(17, 0)
	bs[0].Value = 0.4
	Buttons(s, bs, m)
	r, _ = s.Get(key.Button1)
	if !r.Pressed || r.Released || r.Value.At(0) != 0.4 {
		t.Errorf("button_1 after refresh = %+v", r)
	}
	r, _ = s.Get(key.Start)
	if !r.Released || r.Value.At(0) != 1 {
		t.Errorf("start after release = %+v, want released keeping value 1", r)
	}

	// Inactive without a record stays idle.
	Buttons(s, buttons(17), m)
	if s.Has(key.Select) {
		t.Error("inactive button created a record")
	}
}

func TestButtonsSharedLogicalKey(t *testing.T) {
	m := keymap.NewMapping()
	if err := m.Set(key.NamespaceGamepad, keymap.Table{key.Button1: {0, 1}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s := phase.NewStore()

	bs := buttons(2, 1)
	bs[1].Value = 0.6
	Buttons(s, bs, m)

	r, ok := s.Get(key.Button1)
	if !ok || !r.Pressed || r.Released {
		t.Fatalf("record = %+v, %v; want pressed", r, ok)
	}
	if r.Value.At(0) != 0.6 {
		t.Errorf("value = %v, want 0.6", r.Value)
	}
}

func TestButtonsUnmapped(t *testing.T) {
	s := phase.NewStore()
	Buttons(s, buttons(40, 30), keymap.Default())
	if s.Len() != 0 {
		t.Errorf("unmapped button created records: %v", s.Keys())
	}
}

func TestAxesThreshold(t *testing.T) {
	tests := []struct {
		name   string
		axes   []float64
		active bool
	}{
		{"at threshold", []float64{0.3, 0}, false},
		{"negative at threshold", []float64{0, -0.3}, false},
		{"above threshold", []float64{0.3000001, 0}, true},
		{"negative above", []float64{0, -0.9}, true},
		{"idle", []float64{0, 0}, false},
		{"short slice", []float64{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := phase.NewStore()
			Axes(s, tt.axes, keymap.Default(), 0.3)
			if got := s.Has(key.StickAxisLeft); got != tt.active {
				t.Errorf("stick_axis_left active = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestAxesLifecycle(t *testing.T) {
	m := keymap.Default()
	s := phase.NewStore()

	Axes(s, []float64{0, 0, 0.5, -0.1}, m, 0.3)
	r, ok := s.Get(key.StickAxisRight)
	if !ok || !r.Pressed {
		t.Fatalf("stick_axis_right = %+v, %v; want pressed", r, ok)
	}
	if diff := cmp.Diff(key.Vector(0.5, -0.1), r.Value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
	if s.Has(key.StickAxisLeft) {
		t.Error("idle left stick has a record")
	}

	Axes(s, []float64{0, 0, 0.7, 0}, m, 0.3)
	r, _ = s.Get(key.StickAxisRight)
	if !r.Pressed || r.Value.At(0) != 0.7 {
		t.Errorf("refresh = %+v, want still pressed with 0.7", r)
	}

	Axes(s, []float64{0, 0, 0.1, 0}, m, 0.3)
	r, _ = s.Get(key.StickAxisRight)
	if !r.Released {
		t.Errorf("below threshold = %+v, want released", r)
	}
	if diff := cmp.Diff(key.Vector(0.1, 0), r.Value); diff != "" {
		t.Errorf("release value mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyboard(t *testing.T) {
	m := keymap.Default()
	s := phase.NewStore()

	KeyDown(s, key.CodeSpace, m)
	KeyDown(s, key.CodeSpace, m)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d after repeated key-down, want 1", s.Len())
	}
	r, _ := s.Get(key.Button1)
	if !r.Pressed || r.Value.At(0) != 1 {
		t.Errorf("button_1 = %+v", r)
	}

	KeyUp(s, key.CodeSpace, m)
	r, _ = s.Get(key.Button1)
	if !r.Released || r.Value.At(0) != 0 {
		t.Errorf("button_1 after key-up = %+v", r)
	}

	KeyUp(s, key.CodeEscape, m)
	if s.Has(key.Start) {
		t.Error("key-up without record created one")
	}

	KeyDown(s, 255, m)
	if s.Len() != 1 {
		t.Errorf("unmapped code created records: %v", s.Keys())
	}
}

func TestKeyboardAliases(t *testing.T) {
	m := keymap.Default()
	s := phase.NewStore()

	KeyDown(s, key.CodeA+int('w'-'a'), m)
	KeyDown(s, key.CodeUp, m)
	if diff := cmp.Diff([]key.Logical{key.DPadUp}, s.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotDisconnected(t *testing.T) {
	pad := &phase.Pad{Buttons: phase.NewStore(), Axes: phase.NewStore()}
	snap := &device.Snapshot{Connected: false, Buttons: buttons(17, 0), Axes: []float64{1, 1, 1, 1}}

	Snapshot(pad, snap, keymap.Default(), DefaultThreshold)
	if pad.Buttons.Len() != 0 || pad.Axes.Len() != 0 {
		t.Error("disconnected snapshot was mapped")
	}

	snap.Connected = true
	Snapshot(pad, snap, keymap.Default(), DefaultThreshold)
	if pad.Buttons.Len() != 1 || pad.Axes.Len() != 2 {
		t.Errorf("connected snapshot mapped %d buttons and %d axes", pad.Buttons.Len(), pad.Axes.Len())
	}
}
