package macro

import (
	"fmt"
	"time"

	"github.com/dshills/joyride/internal/input/key"
)

// Step is one recorded event.
type Step struct {
	// Offset is the time since the recording started.
	Offset time.Duration
	Type   key.EventType
	Button key.Logical
	Value  key.Value
	Player key.Slot
}

// Macro is a named sequence of steps in offset order.
type Macro struct {
	Name  string
	Steps []Step
}

// Duration returns the offset of the last step.
func (m Macro) Duration() time.Duration {
	if len(m.Steps) == 0 {
		return 0
	}
	return m.Steps[len(m.Steps)-1].Offset
}

// Clone returns a deep copy of m.
func (m Macro) Clone() Macro {
	c := Macro{Name: m.Name, Steps: make([]Step, len(m.Steps))}
	for i, s := range m.Steps {
		s.Value = s.Value.Clone()
		c.Steps[i] = s
	}
	return c
}

// ValidName reports whether name can label a macro.
func ValidName(name string) bool {
	if name == "" || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func checkName(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
