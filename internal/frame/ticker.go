package frame

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultRate is the frame rate used when none is given.
const DefaultRate = 60

// Ticker schedules callbacks one frame interval in the future.
// It is safe for concurrent use.
type Ticker struct {
	clock    clock.Clock
	interval time.Duration

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*clock.Timer
}

// TickerOption configures a Ticker.
type TickerOption func(*Ticker)

// WithClock sets the clock. The default is the wall clock.
func WithClock(c clock.Clock) TickerOption {
	return func(t *Ticker) {
		t.clock = c
	}
}

// NewTicker creates a ticker running at rate frames per second.
// A rate of zero or less selects DefaultRate.
func NewTicker(rate int, opts ...TickerOption) *Ticker {
	if rate <= 0 {
		rate = DefaultRate
	}
	t := &Ticker{
		clock:    clock.New(),
		interval: time.Second / time.Duration(rate),
		timers:   make(map[Handle]*clock.Timer),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Interval returns the frame interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Schedule runs fn once after one frame interval.
func (t *Ticker) Schedule(fn func()) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	h := t.next
	// The lock is held while arming so the callback cannot observe the
	// timer before it is recorded.
	t.timers[h] = t.clock.AfterFunc(t.interval, func() {
		t.mu.Lock()
		_, ok := t.timers[h]
		delete(t.timers, h)
		t.mu.Unlock()
		if ok {
			fn()
		}
	})
	return h
}

// Cancel stops a pending callback.
func (t *Ticker) Cancel(h Handle) {
	t.mu.Lock()
	timer, ok := t.timers[h]
	delete(t.timers, h)
	t.mu.Unlock()

	if ok {
		timer.Stop()
	}
}

// Pending returns the number of callbacks waiting to run.
func (t *Ticker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}
