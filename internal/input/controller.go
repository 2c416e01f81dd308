package input

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/device"
	"github.com/dshills/joyride/internal/event"
	"github.com/dshills/joyride/internal/event/dispatch"
	"github.com/dshills/joyride/internal/frame"
	"github.com/dshills/joyride/internal/input/key"
	"github.com/dshills/joyride/internal/input/keymap"
	"github.com/dshills/joyride/internal/input/phase"
)

// Controller owns all input state: mapping, threshold, phase records,
// listeners, connection handlers and the poll loop.
// It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	provider  DeviceProvider
	scheduler FrameScheduler
	keyboard  KeyboardSource
	observers []ConnectionObserver

	logger     *zap.Logger
	clock      clock.Clock
	metrics    *Metrics
	registry   *event.Registry
	dispatcher *dispatch.SyncDispatcher

	mapping   *keymap.Mapping
	threshold float64
	tracker   *phase.Tracker
	names     map[key.Slot]string

	onConnect    ConnectionHandler
	onDisconnect ConnectionHandler

	running   bool
	gen       uint64
	handle    frame.Handle
	subs      []device.Subscription
	destroyed bool
}

// New creates a paused controller with the default mapping.
// Call Resume to start the poll loop.
func New(opts ...Option) (*Controller, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateThreshold(o.threshold); err != nil {
		return nil, err
	}

	mapping := keymap.Default()
	if o.mapping != nil {
		mapping = o.mapping.Clone()
	}

	scheduler := o.scheduler
	if scheduler == nil {
		scheduler = frame.NewTicker(o.frameRate, frame.WithClock(o.clock))
	}

	c := &Controller{
		provider:  o.provider,
		scheduler: scheduler,
		keyboard:  o.keyboard,
		observers: o.observers,
		logger:    o.logger,
		clock:     o.clock,
		metrics:   NewMetrics(o.clock),
		registry:  event.NewRegistry(),
		mapping:   mapping,
		threshold: o.threshold,
		tracker:   phase.NewTracker(),
		names:     make(map[key.Slot]string),
	}

	panicHandler := o.panicHandler
	c.dispatcher = dispatch.NewSyncDispatcher(
		dispatch.WithIsolation(o.isolate),
		dispatch.WithPanicHandler(func(ev event.Event, l event.Listener, v any, stack []byte) {
			c.logger.Error("listener panicked",
				zap.Stringer("event", ev),
				zap.String("listener", string(l.ID)),
				zap.Any("panic", v),
				zap.ByteString("stack", stack),
			)
			if panicHandler != nil {
				panicHandler(ev, l, v, stack)
			}
		}),
		dispatch.WithErrorHandler(func(ev event.Event, l event.Listener, err error) {
			c.logger.Warn("listener failed",
				zap.Stringer("event", ev),
				zap.String("listener", string(l.ID)),
				zap.Error(err),
			)
		}),
	)

	if o.provider == nil {
		c.logger.Debug("no device provider, keyboard only")
	}
	return c, nil
}

func validateThreshold(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, v)
	}
	return nil
}

// On subscribes h to every (type, key) pair of the whitespace-separated
// lists. Options, if given, are handed back with each event.
func (c *Controller) On(types, keys string, h event.Handler, opts ...event.Options) ([]event.ID, error) {
	return c.OnList([]string{types}, []string{keys}, h, opts...)
}

// OnList is On for list arguments; each element may itself be a
// whitespace-separated list.
func (c *Controller) OnList(types, keys []string, h event.Handler, opts ...event.Options) ([]event.ID, error) {
	if c.isDestroyed() {
		return nil, ErrDestroyed
	}
	var o event.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	ids, err := c.registry.Subscribe(types, keys, h, o)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return ids, nil
}

// OnConnection sets (replacing) the connect or disconnect handler. A nil
// fn clears it. Gamepad phase state is reset so every connected device is
// reported as a fresh connection on the next frame.
func (c *Controller) OnConnection(t key.EventType, fn ConnectionHandler) error {
	if !t.IsConnection() {
		return fmt.Errorf("%w: %q", ErrNotConnectionEvent, t)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrDestroyed
	}
	if t == key.Connect {
		c.onConnect = fn
	} else {
		c.onDisconnect = fn
	}
	c.tracker.ResetGamepads()
	c.names = make(map[key.Slot]string)
	return nil
}

// Off removes the listeners whose type and key both appear in the
// whitespace-separated lists and returns how many were removed.
func (c *Controller) Off(types, keys string) int {
	return c.OffList([]string{types}, []string{keys})
}

// OffList is Off for list arguments.
func (c *Controller) OffList(types, keys []string) int {
	if c.isDestroyed() {
		return 0
	}
	return c.registry.Unsubscribe(types, keys)
}

// OffID removes one listener.
func (c *Controller) OffID(id event.ID) bool {
	if c.isDestroyed() {
		return false
	}
	return c.registry.Remove(id)
}

// OffTag removes every listener registered with tag.
func (c *Controller) OffTag(tag string) int {
	if c.isDestroyed() {
		return 0
	}
	return c.registry.RemoveTag(tag)
}

// Listeners returns the number of registered listeners.
func (c *Controller) Listeners() int {
	return c.registry.Len()
}

// SetCustomMapping replaces the table of one namespace wholesale.
// An unknown namespace or invalid table leaves the mapping unchanged.
// Records of keys the new table drops or rebinds are released, so the
// next frame emits their release instead of holding them forever.
func (c *Controller) SetCustomMapping(ns string, table keymap.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrDestroyed
	}
	n, err := key.ParseNamespace(ns)
	if err != nil {
		return fmt.Errorf("set mapping: %w", &keymap.NamespaceError{Namespace: ns})
	}
	prev := c.mapping.Table(n)
	if err := c.mapping.Set(n, table); err != nil {
		return fmt.Errorf("set mapping: %w", err)
	}

	released := 0
	for _, s := range c.tracker.Stores(n) {
		for _, k := range s.Keys() {
			if slices.Equal(prev[k], table[k]) {
				continue
			}
			if s.Release(k, nil) {
				released++
			}
		}
	}
	c.logger.Debug("mapping replaced",
		zap.String("namespace", ns),
		zap.Int("keys", len(table)),
		zap.Int("released", released),
	)
	return nil
}

// Mapping returns a copy of the current mapping.
func (c *Controller) Mapping() *keymap.Mapping {
	return c.mapping.Clone()
}

// SetGlobalThreshold sets the axis activation threshold used from the
// next frame on.
func (c *Controller) SetGlobalThreshold(v float64) error {
	if err := validateThreshold(v); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrDestroyed
	}
	c.threshold = v
	return nil
}

// Threshold returns the axis activation threshold.
func (c *Controller) Threshold() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threshold
}

// Trigger delivers an event to the listeners of (t, k) immediately.
// It is also how synthetic events are injected.
func (c *Controller) Trigger(ctx context.Context, t key.EventType, k key.Logical, v key.Value, slot key.Slot) error {
	if c.isDestroyed() {
		return ErrDestroyed
	}
	ev := event.Event{
		Type:      t,
		Button:    k,
		Value:     v.Clone(),
		Player:    slot,
		Timestamp: c.clock.Now(),
	}
	return c.deliver(ctx, ev)
}

func (c *Controller) deliver(ctx context.Context, ev event.Event) error {
	listeners := c.registry.Match(ev.Type, ev.Button)
	if len(listeners) == 0 {
		return nil
	}
	if err := c.dispatcher.Dispatch(ctx, ev, listeners); err != nil {
		return fmt.Errorf("%s %s (player %s): %w", ev.Type, ev.Button, ev.Player, err)
	}
	return nil
}

// Metrics returns the poll loop metrics.
func (c *Controller) Metrics() *Metrics {
	return c.metrics
}

// DispatchStats returns listener delivery statistics.
func (c *Controller) DispatchStats() dispatch.Stats {
	return c.dispatcher.Stats()
}

// Slots returns the tracked gamepad slots in ascending order.
func (c *Controller) Slots() []key.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Slots()
}

func (c *Controller) isDestroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}
