package phase

import "github.com/dshills/joyride/internal/input/key"

// Record is the phase state of one logical key within one store.
// At sweep time exactly one flag is meaningful, checked in the order
// Pressed, Hold, Released.
type Record struct {
	Pressed  bool
	Hold     bool
	Released bool
	Value    key.Value
}

// Phase returns the transition the next sweep will emit for the record.
func (r Record) Phase() key.EventType {
	switch {
	case r.Pressed:
		return key.Press
	case r.Hold:
		return key.Hold
	case r.Released:
		return key.Release
	default:
		return ""
	}
}

// Store holds records in insertion order.
// It is not safe for concurrent use; the owner serializes access.
type Store struct {
	order   []key.Logical
	records map[key.Logical]*Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{records: make(map[key.Logical]*Record)}
}

// Get returns a copy of the record for k.
func (s *Store) Get(k key.Logical) (Record, bool) {
	r, ok := s.records[k]
	if !ok {
		return Record{}, false
	}
	c := *r
	c.Value = r.Value.Clone()
	return c, true
}

// Has reports whether a record exists for k.
func (s *Store) Has(k key.Logical) bool {
	_, ok := s.records[k]
	return ok
}

// Begin creates a record in the pressed state.
// It returns false and leaves the store untouched if a record exists.
func (s *Store) Begin(k key.Logical, v key.Value) bool {
	if _, ok := s.records[k]; ok {
		return false
	}
	s.records[k] = &Record{Pressed: true, Value: v.Clone()}
	s.order = append(s.order, k)
	return true
}

// Refresh updates the value of an existing record without changing its
// phase.
func (s *Store) Refresh(k key.Logical, v key.Value) bool {
	r, ok := s.records[k]
	if !ok {
		return false
	}
	r.Value = v.Clone()
	return true
}

// Release marks an existing record as released and clears hold.
// A nil value keeps the current one.
func (s *Store) Release(k key.Logical, v key.Value) bool {
	r, ok := s.records[k]
	if !ok {
		return false
	}
	r.Released = true
	r.Hold = false
	if v != nil {
		r.Value = v.Clone()
	}
	return true
}

// Delete removes the record for k.
func (s *Store) Delete(k key.Logical) {
	if _, ok := s.records[k]; !ok {
		return
	}
	delete(s.records, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Keys returns the logical keys with records, in insertion order.
func (s *Store) Keys() []key.Logical {
	keys := make([]key.Logical, len(s.order))
	copy(keys, s.order)
	return keys
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.order)
}

// Reset removes every record.
func (s *Store) Reset() {
	s.order = nil
	s.records = make(map[key.Logical]*Record)
}

// advance emits the record's transition and moves it one state forward.
func (s *Store) advance(k key.Logical) (key.EventType, key.Value, bool) {
	r, ok := s.records[k]
	if !ok {
		return "", nil, false
	}
	v := r.Value.Clone()
	switch {
	case r.Pressed:
		// Released before the press was swept: skip hold.
		r.Pressed = false
		r.Hold = !r.Released
		return key.Press, v, true
	case r.Hold:
		return key.Hold, v, true
	case r.Released:
		s.Delete(k)
		return key.Release, v, true
	default:
		return "", nil, false
	}
}
