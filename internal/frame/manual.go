package frame

import "sync"

// Manual runs scheduled callbacks when Step is called.
// It is safe for concurrent use.
type Manual struct {
	mu      sync.Mutex
	next    Handle
	order   []Handle
	pending map[Handle]func()
}

// NewManual creates a manual scheduler with nothing pending.
func NewManual() *Manual {
	return &Manual{pending: make(map[Handle]func())}
}

// Schedule stores fn until the next Step.
func (m *Manual) Schedule(fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	m.pending[m.next] = fn
	m.order = append(m.order, m.next)
	return m.next
}

// Cancel drops a pending callback.
func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, h)
}

// Step runs the callbacks pending when it was called, in scheduling order,
// and returns how many ran. Callbacks scheduled during the step wait for
// the next one.
func (m *Manual) Step() int {
	m.mu.Lock()
	order := m.order
	m.order = nil
	fns := make([]func(), 0, len(order))
	for _, h := range order {
		if fn, ok := m.pending[h]; ok {
			fns = append(fns, fn)
			delete(m.pending, h)
		}
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Frames calls Step n times and returns the total number of callbacks run.
func (m *Manual) Frames(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += m.Step()
	}
	return total
}

// Pending returns the number of callbacks waiting for Step.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
