package event

import (
	"sync"

	"github.com/dshills/joyride/internal/input/key"
)

// Registry stores listeners in registration order.
// It is thread-safe for concurrent access.
type Registry struct {
	mu        sync.RWMutex
	listeners []Listener
	byID      map[ID]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ID]int)}
}

// Subscribe stores one listener per (type, key) pair of the expanded
// lists and returns their IDs in storage order.
func (r *Registry) Subscribe(types, keys []string, h Handler, opts Options) ([]ID, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	ts := key.ParseTypes(types...)
	if len(ts) == 0 {
		return nil, ErrEmptyType
	}
	ks := key.ParseKeys(keys...)
	if len(ks) == 0 {
		return nil, ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]ID, 0, len(ts)*len(ks))
	for _, t := range ts {
		for _, k := range ks {
			l := Listener{ID: NewID(), Type: t, Key: k, Handler: h, Options: opts}
			r.byID[l.ID] = len(r.listeners)
			r.listeners = append(r.listeners, l)
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}

// Unsubscribe removes every listener whose type and key both appear in the
// expanded lists. It returns the number removed.
func (r *Registry) Unsubscribe(types, keys []string) int {
	ts := make(map[key.EventType]bool)
	for _, t := range key.ParseTypes(types...) {
		ts[t] = true
	}
	ks := make(map[key.Logical]bool)
	for _, k := range key.ParseKeys(keys...) {
		ks[k] = true
	}

	return r.removeWhere(func(l Listener) bool {
		return ts[l.Type] && ks[l.Key]
	})
}

// Remove removes a listener by ID.
func (r *Registry) Remove(id ID) bool {
	return r.removeWhere(func(l Listener) bool { return l.ID == id }) > 0
}

// RemoveTag removes every listener registered with the given tag.
func (r *Registry) RemoveTag(tag string) int {
	return r.removeWhere(func(l Listener) bool { return l.Options.Tag == tag })
}

func (r *Registry) removeWhere(match func(Listener) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.listeners[:0]
	removed := 0
	for _, l := range r.listeners {
		if match(l) {
			delete(r.byID, l.ID)
			removed++
			continue
		}
		kept = append(kept, l)
	}
	// Clear the tail so removed handlers can be collected.
	for i := len(kept); i < len(r.listeners); i++ {
		r.listeners[i] = Listener{}
	}
	r.listeners = kept
	if removed > 0 {
		for i, l := range r.listeners {
			r.byID[l.ID] = i
		}
	}
	return removed
}

// Get returns a listener by ID.
func (r *Registry) Get(id ID) (Listener, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return Listener{}, false
	}
	return r.listeners[i], true
}

// Match returns the listeners for one (type, key) pair in registration
// order. The result is a snapshot; later registry changes do not affect it.
func (r *Registry) Match(t key.EventType, k key.Logical) []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Listener
	for _, l := range r.listeners {
		if l.Type == t && l.Key == k {
			out = append(out, l)
		}
	}
	return out
}

// All returns every listener in registration order.
func (r *Registry) All() []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}

// Len returns the number of listeners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Clear removes every listener.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = nil
	r.byID = make(map[ID]int)
}
