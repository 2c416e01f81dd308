package keymap

import (
	"fmt"
	"sync"

	"github.com/dshills/joyride/internal/input/key"
)

// NamespaceError reports an operation on an unknown namespace.
type NamespaceError struct {
	Namespace string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("namespace %q is not supported (want gamepad, axes or keyboard)", e.Namespace)
}

// Unwrap allows errors.Is(err, ErrUnknownNamespace).
func (e *NamespaceError) Unwrap() error {
	return ErrUnknownNamespace
}

// Mapping holds one table per namespace.
// It is safe for concurrent use.
type Mapping struct {
	mu     sync.RWMutex
	tables map[key.Namespace]Table
}

// NewMapping creates a mapping with empty tables.
func NewMapping() *Mapping {
	m := &Mapping{tables: make(map[key.Namespace]Table, len(key.Namespaces))}
	for _, ns := range key.Namespaces {
		m.tables[ns] = Table{}
	}
	return m
}

// Set replaces the table for a namespace wholesale.
// Unknown namespaces and invalid tables leave the mapping untouched.
func (m *Mapping) Set(ns key.Namespace, t Table) error {
	if !ns.Valid() {
		return &NamespaceError{Namespace: string(ns)}
	}
	if err := t.Validate(ns); err != nil {
		return fmt.Errorf("namespace %s: %w", ns, err)
	}

	clone := t.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[ns] = clone
	return nil
}

// SetNamed is Set for a namespace given by name.
func (m *Mapping) SetNamed(name string, t Table) error {
	ns, err := key.ParseNamespace(name)
	if err != nil {
		return &NamespaceError{Namespace: name}
	}
	return m.Set(ns, t)
}

// Table returns a copy of the table for a namespace.
func (m *Mapping) Table(ns key.Namespace) Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[ns].Clone()
}

// Keys returns the logical keys of a namespace in sorted order.
func (m *Mapping) Keys(ns key.Namespace) []key.Logical {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[ns].Keys()
}

// Resolve returns every logical key whose entry in the namespace equals or
// contains raw. For the axes namespace, containment is range containment.
// The result is sorted by logical key and empty when nothing matches.
func (m *Mapping) Resolve(raw int, ns key.Namespace) []key.Logical {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t := m.tables[ns]
	var out []key.Logical
	for _, k := range t.Keys() {
		ix := t[k]
		if ns == key.NamespaceAxes {
			if len(ix) == 2 && raw >= ix[0] && raw < ix[1] {
				out = append(out, k)
			}
			continue
		}
		if ix.Contains(raw) {
			out = append(out, k)
		}
	}
	return out
}

// AxisRange returns the raw axis range of a logical axis key.
func (m *Mapping) AxisRange(k key.Logical) (start, end int, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ix, found := m.tables[key.NamespaceAxes][k]
	if !found || len(ix) != 2 {
		return 0, 0, false
	}
	return ix[0], ix[1], true
}

// Clone creates a deep copy of the mapping.
func (m *Mapping) Clone() *Mapping {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clone := &Mapping{tables: make(map[key.Namespace]Table, len(m.tables))}
	for ns, t := range m.tables {
		clone.tables[ns] = t.Clone()
	}
	return clone
}
