package dispatch

import (
	"time"

	"github.com/dshills/joyride/internal/event"
)

// PanicHandler is called when a listener panics under isolation. It
// receives the event being delivered, the listener, the panic value and
// the stack trace.
type PanicHandler func(ev event.Event, l event.Listener, v any, stack []byte)

// ErrorHandler is called when a listener returns an error under isolation.
type ErrorHandler func(ev event.Event, l event.Listener, err error)

// Stats counts listener deliveries.
type Stats struct {
	// Dispatched is the number of listener calls made.
	Dispatched uint64

	// Succeeded is the number of calls that returned nil.
	Succeeded uint64

	// Failed is the number of calls that returned an error.
	Failed uint64

	// Panicked is the number of calls that panicked under isolation.
	Panicked uint64

	// Skipped is the number of listeners not called because an earlier
	// one failed or the context was done.
	Skipped uint64

	// TotalDuration is the cumulative time spent in listeners.
	TotalDuration time.Duration

	// AvgDuration is the average listener call time.
	AvgDuration time.Duration
}
