package keymap

import "github.com/dshills/joyride/internal/input/key"

// Default returns a mapping holding the built-in tables.
func Default() *Mapping {
	return &Mapping{
		tables: map[key.Namespace]Table{
			key.NamespaceGamepad:  DefaultGamepadTable(),
			key.NamespaceAxes:     DefaultAxesTable(),
			key.NamespaceKeyboard: DefaultKeyboardTable(),
		},
	}
}

// DefaultTable returns the built-in table for a namespace.
func DefaultTable(ns key.Namespace) (Table, error) {
	switch ns {
	case key.NamespaceGamepad:
		return DefaultGamepadTable(), nil
	case key.NamespaceAxes:
		return DefaultAxesTable(), nil
	case key.NamespaceKeyboard:
		return DefaultKeyboardTable(), nil
	default:
		return nil, &NamespaceError{Namespace: string(ns)}
	}
}

// DefaultGamepadTable returns the standard gamepad button layout.
func DefaultGamepadTable() Table {
	return Table{
		key.Button1:             {0},
		key.Button2:             {1},
		key.Button3:             {2},
		key.Button4:             {3},
		key.ShoulderTopLeft:     {4},
		key.ShoulderTopRight:    {5},
		key.ShoulderBottomLeft:  {6},
		key.ShoulderBottomRight: {7},
		key.Select:              {8},
		key.Start:               {9},
		key.StickButtonLeft:     {10},
		key.StickButtonRight:    {11},
		key.DPadUp:              {12},
		key.DPadDown:            {13},
		key.DPadLeft:            {14},
		key.DPadRight:           {15},
		key.Vendor:              {16},
	}
}

// DefaultAxesTable returns the two thumbstick ranges.
func DefaultAxesTable() Table {
	return Table{
		key.StickAxisLeft:  {0, 2},
		key.StickAxisRight: {2, 4},
	}
}

// DefaultKeyboardTable returns space/escape for the face buttons and both
// arrow keys and WASD for the d-pad.
func DefaultKeyboardTable() Table {
	return Table{
		key.Button1:   {key.CodeSpace},
		key.Start:     {key.CodeEscape},
		key.DPadUp:    {key.CodeUp, 87},
		key.DPadDown:  {key.CodeDown, 83},
		key.DPadLeft:  {key.CodeLeft, 65},
		key.DPadRight: {key.CodeRight, 68},
	}
}
