package dispatch

import (
	"context"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/dshills/joyride/internal/event"
)

// SyncDispatcher delivers an event to its listeners in the caller's
// goroutine, in order.
type SyncDispatcher struct {
	isolate      bool
	panicHandler PanicHandler
	errorHandler ErrorHandler

	dispatched atomic.Uint64
	succeeded  atomic.Uint64
	failed     atomic.Uint64
	panicked   atomic.Uint64
	skipped    atomic.Uint64
	totalNs    atomic.Int64
}

// SyncOption configures a SyncDispatcher.
type SyncOption func(*SyncDispatcher)

// NewSyncDispatcher creates a dispatcher that aborts on the first
// listener error unless isolation is enabled.
func NewSyncDispatcher(opts ...SyncOption) *SyncDispatcher {
	d := &SyncDispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithIsolation runs every listener even when earlier ones fail or panic.
func WithIsolation(enabled bool) SyncOption {
	return func(d *SyncDispatcher) {
		d.isolate = enabled
	}
}

// WithPanicHandler sets the handler for panics recovered under isolation.
func WithPanicHandler(h PanicHandler) SyncOption {
	return func(d *SyncDispatcher) {
		d.panicHandler = h
	}
}

// WithErrorHandler sets the handler for errors returned under isolation.
func WithErrorHandler(h ErrorHandler) SyncOption {
	return func(d *SyncDispatcher) {
		d.errorHandler = h
	}
}

// Dispatch delivers ev to every listener in order.
//
// By default the first error is returned and the remaining listeners are
// skipped; a panic propagates to the caller. Under isolation every
// listener runs and Dispatch returns only a context error.
func (d *SyncDispatcher) Dispatch(ctx context.Context, ev event.Event, listeners []event.Listener) error {
	for i, l := range listeners {
		if err := ctx.Err(); err != nil {
			d.skipped.Add(uint64(len(listeners) - i))
			return err
		}
		d.dispatched.Add(1)

		if d.isolate {
			d.deliverIsolated(ev, l)
			continue
		}

		start := time.Now()
		err := l.Deliver(ev)
		d.totalNs.Add(time.Since(start).Nanoseconds())
		if err != nil {
			d.failed.Add(1)
			d.skipped.Add(uint64(len(listeners) - i - 1))
			return err
		}
		d.succeeded.Add(1)
	}
	return nil
}

// deliverIsolated calls one listener, reporting an error or a recovered
// panic to the configured handlers instead of returning it.
func (d *SyncDispatcher) deliverIsolated(ev event.Event, l event.Listener) {
	start := time.Now()
	defer func() {
		d.totalNs.Add(time.Since(start).Nanoseconds())
		r := recover()
		if r == nil {
			return
		}
		d.panicked.Add(1)
		if d.panicHandler == nil {
			return
		}
		stack := debug.Stack()
		// A panicking panic handler must not take the frame down with it.
		defer func() { _ = recover() }()
		d.panicHandler(ev, l, r, stack)
	}()

	if err := l.Deliver(ev); err != nil {
		d.failed.Add(1)
		if d.errorHandler != nil {
			d.errorHandler(ev, l, err)
		}
		return
	}
	d.succeeded.Add(1)
}

// Stats returns delivery counters. They are read without a lock, so a
// snapshot taken during a dispatch may be slightly inconsistent.
func (d *SyncDispatcher) Stats() Stats {
	dispatched := d.dispatched.Load()
	totalNs := d.totalNs.Load()

	var avgNs int64
	if dispatched > 0 {
		avgNs = totalNs / int64(dispatched)
	}

	return Stats{
		Dispatched:    dispatched,
		Succeeded:     d.succeeded.Load(),
		Failed:        d.failed.Load(),
		Panicked:      d.panicked.Load(),
		Skipped:       d.skipped.Load(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}
