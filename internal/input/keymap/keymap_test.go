package keymap

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/joyride/internal/input/key"
)

func TestDefaultResolve(t *testing.T) {
	m := Default()

	tests := []struct {
		name string
		raw  int
		ns   key.Namespace
		want []key.Logical
	}{
		{"gamepad button 0", 0, key.NamespaceGamepad, []key.Logical{key.Button1}},
		{"gamepad start", 9, key.NamespaceGamepad, []key.Logical{key.Start}},
		{"gamepad vendor", 16, key.NamespaceGamepad, []key.Logical{key.Vendor}},
		{"gamepad unmapped", 42, key.NamespaceGamepad, nil},
		{"keyboard space", 32, key.NamespaceKeyboard, []key.Logical{key.Button1}},
		{"keyboard arrow up", 38, key.NamespaceKeyboard, []key.Logical{key.DPadUp}},
		{"keyboard w", 87, key.NamespaceKeyboard, []key.Logical{key.DPadUp}},
		{"keyboard unmapped", 13, key.NamespaceKeyboard, nil},
		{"axes left x", 0, key.NamespaceAxes, []key.Logical{key.StickAxisLeft}},
		{"axes left y", 1, key.NamespaceAxes, []key.Logical{key.StickAxisLeft}},
		{"axes right x", 2, key.NamespaceAxes, []key.Logical{key.StickAxisRight}},
		{"axes out of range", 4, key.NamespaceAxes, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Resolve(tt.raw, tt.ns)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%d, %s) = %v, want %v", tt.raw, tt.ns, got, tt.want)
			}
		})
	}
}

func TestResolveManyToMany(t *testing.T) {
	m := Default()
	err := m.Set(key.NamespaceGamepad, Table{
		"fire":   {0, 1},
		"accept": {0},
		"jump":   {1},
	})
	if err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got := m.Resolve(0, key.NamespaceGamepad)
	want := []key.Logical{"accept", "fire"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve(0) = %v, want %v", got, want)
	}

	got = m.Resolve(1, key.NamespaceGamepad)
	want = []key.Logical{"fire", "jump"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve(1) = %v, want %v", got, want)
	}
}

func TestSetReplacesWholeTable(t *testing.T) {
	m := Default()
	if err := m.Set(key.NamespaceGamepad, Table{"jump": {0}}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	for raw := 0; raw <= 16; raw++ {
		for _, k := range m.Resolve(raw, key.NamespaceGamepad) {
			if k != "jump" {
				t.Errorf("Resolve(%d) returned %q from the replaced table", raw, k)
			}
		}
	}
	if got := m.Keys(key.NamespaceGamepad); !reflect.DeepEqual(got, []key.Logical{"jump"}) {
		t.Errorf("Keys() = %v, want [jump]", got)
	}

	// Other namespaces are untouched.
	if got := m.Resolve(32, key.NamespaceKeyboard); len(got) != 1 {
		t.Errorf("keyboard mapping changed: %v", got)
	}
}

func TestSetUnknownNamespace(t *testing.T) {
	m := Default()
	before := m.Table(key.NamespaceGamepad)

	err := m.SetNamed("joystick", Table{"jump": {0}})
	if !errors.Is(err, ErrUnknownNamespace) {
		t.Fatalf("SetNamed(joystick) error = %v, want ErrUnknownNamespace", err)
	}
	var nsErr *NamespaceError
	if !errors.As(err, &nsErr) || nsErr.Namespace != "joystick" {
		t.Errorf("error = %#v, want NamespaceError{joystick}", err)
	}
	if !reflect.DeepEqual(before, m.Table(key.NamespaceGamepad)) {
		t.Error("gamepad table mutated by failed SetNamed")
	}
}

func TestSetInvalidTable(t *testing.T) {
	tests := []struct {
		name  string
		ns    key.Namespace
		table Table
	}{
		{"negative index", key.NamespaceGamepad, Table{"jump": {-1}}},
		{"no indices", key.NamespaceKeyboard, Table{"jump": {}}},
		{"axis single index", key.NamespaceAxes, Table{"stick": {0}}},
		{"axis reversed range", key.NamespaceAxes, Table{"stick": {2, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Default()
			before := m.Table(tt.ns)
			if err := m.Set(tt.ns, tt.table); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("Set() error = %v, want ErrInvalidTable", err)
			}
			if !reflect.DeepEqual(before, m.Table(tt.ns)) {
				t.Error("table mutated by failed Set")
			}
		})
	}
}

func TestSetCopiesTable(t *testing.T) {
	m := NewMapping()
	table := Table{"jump": {0}}
	if err := m.Set(key.NamespaceGamepad, table); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	table["jump"][0] = 5
	table["duck"] = Indices{1}

	if got := m.Resolve(0, key.NamespaceGamepad); !reflect.DeepEqual(got, []key.Logical{"jump"}) {
		t.Errorf("Resolve(0) = %v after caller mutation, want [jump]", got)
	}
	if got := m.Resolve(1, key.NamespaceGamepad); len(got) != 0 {
		t.Errorf("Resolve(1) = %v after caller mutation, want empty", got)
	}
}

func TestAxisRange(t *testing.T) {
	m := Default()

	start, end, ok := m.AxisRange(key.StickAxisRight)
	if !ok || start != 2 || end != 4 {
		t.Errorf("AxisRange(right) = %d, %d, %v; want 2, 4, true", start, end, ok)
	}
	if _, _, ok := m.AxisRange("missing"); ok {
		t.Error("AxisRange(missing) ok = true")
	}
}

func TestMappingClone(t *testing.T) {
	m := Default()
	c := m.Clone()
	if err := c.Set(key.NamespaceGamepad, Table{}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if len(m.Keys(key.NamespaceGamepad)) != 17 {
		t.Error("Clone() shares tables with the original")
	}
}

func TestDefaultTableUnknown(t *testing.T) {
	if _, err := DefaultTable("mouse"); !errors.Is(err, ErrUnknownNamespace) {
		t.Errorf("DefaultTable(mouse) error = %v, want ErrUnknownNamespace", err)
	}
}
