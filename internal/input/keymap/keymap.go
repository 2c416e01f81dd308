package keymap

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/joyride/internal/input/key"
)

// Indices lists the raw indices (or key codes) a logical key maps to.
// For the axes namespace it holds a half-open range [start, end).
type Indices []int

// Contains reports whether raw is listed.
func (ix Indices) Contains(raw int) bool {
	return slices.Contains(ix, raw)
}

// Table maps logical keys to raw indices for one namespace.
type Table map[key.Logical]Indices

// Clone creates a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}
	clone := make(Table, len(t))
	for k, ix := range t {
		clone[k] = slices.Clone(ix)
	}
	return clone
}

// Keys returns the logical keys of the table in sorted order.
func (t Table) Keys() []key.Logical {
	keys := make([]key.Logical, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Validate checks that the table is usable for the given namespace.
func (t Table) Validate(ns key.Namespace) error {
	for _, k := range t.Keys() {
		ix := t[k]
		if k == "" {
			return fmt.Errorf("%w: empty logical key", ErrInvalidTable)
		}
		if len(ix) == 0 {
			return fmt.Errorf("%w: %s: no indices", ErrInvalidTable, k)
		}
		for _, raw := range ix {
			if raw < 0 {
				return fmt.Errorf("%w: %s: negative index %d", ErrInvalidTable, k, raw)
			}
		}
		if ns == key.NamespaceAxes {
			if len(ix) != 2 || ix[1] <= ix[0] {
				return fmt.Errorf("%w: %s: axis range must be [start, end) with end > start, got %v", ErrInvalidTable, k, []int(ix))
			}
		}
	}
	return nil
}
