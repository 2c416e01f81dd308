package input

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/device"
	"github.com/dshills/joyride/internal/event/dispatch"
	"github.com/dshills/joyride/internal/frame"
	"github.com/dshills/joyride/internal/input/key"
	"github.com/dshills/joyride/internal/input/keymap"
	"github.com/dshills/joyride/internal/input/mapper"
)

// DeviceProvider reports the gamepads present this frame, one entry per
// slot. A nil entry is an empty slot.
type DeviceProvider interface {
	Devices() []*device.Snapshot
}

// FrameScheduler runs a callback once on the next frame.
type FrameScheduler interface {
	Schedule(fn func()) frame.Handle
	Cancel(h frame.Handle)
}

// KeyboardSource delivers physical key codes as keys go down and up.
type KeyboardSource interface {
	OnKeyDown(h device.KeyHandler) device.Subscription
	OnKeyUp(h device.KeyHandler) device.Subscription
}

// ConnectionHandler is called with the slot of a gamepad that connected
// or disconnected.
type ConnectionHandler func(slot key.Slot)

// ConnectionObserver sees every connection transition, with the device
// name when one is known. Unlike a ConnectionHandler it cannot be
// replaced at runtime.
type ConnectionObserver func(t key.EventType, slot key.Slot, name string)

type options struct {
	provider     DeviceProvider
	scheduler    FrameScheduler
	keyboard     KeyboardSource
	logger       *zap.Logger
	clock        clock.Clock
	mapping      *keymap.Mapping
	threshold    float64
	isolate      bool
	panicHandler dispatch.PanicHandler
	observers    []ConnectionObserver
	frameRate    int
}

func defaultOptions() options {
	return options{
		logger:    zap.NewNop(),
		clock:     clock.New(),
		threshold: mapper.DefaultThreshold,
		frameRate: frame.DefaultRate,
	}
}

// Option configures a Controller.
type Option func(*options)

// WithProvider sets the gamepad provider. Without one the controller is
// keyboard-only.
func WithProvider(p DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithScheduler sets the frame scheduler. The default is a frame.Ticker
// on the controller's clock.
func WithScheduler(s FrameScheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithFrameRate sets the rate of the default scheduler.
func WithFrameRate(rate int) Option {
	return func(o *options) {
		o.frameRate = rate
	}
}

// WithKeyboard sets the keyboard source.
func WithKeyboard(k KeyboardSource) Option {
	return func(o *options) {
		o.keyboard = k
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock used for event timestamps, metrics and the
// default scheduler.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMapping sets the initial mapping. The controller keeps its own copy.
func WithMapping(m *keymap.Mapping) Option {
	return func(o *options) {
		o.mapping = m
	}
}

// WithThreshold sets the initial axis threshold.
func WithThreshold(v float64) Option {
	return func(o *options) {
		o.threshold = v
	}
}

// WithIsolation runs every listener even when earlier ones fail or panic.
// Failures are logged instead of returned from Tick.
func WithIsolation(enabled bool) Option {
	return func(o *options) {
		o.isolate = enabled
	}
}

// WithPanicHandler is called for listener panics recovered under
// isolation, after they are logged.
func WithPanicHandler(h dispatch.PanicHandler) Option {
	return func(o *options) {
		o.panicHandler = h
	}
}

// WithConnectionObserver adds an observer of connection transitions.
func WithConnectionObserver(fn ConnectionObserver) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}
