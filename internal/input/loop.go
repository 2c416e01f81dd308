package input

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/event"
	"github.com/dshills/joyride/internal/input/key"
	"github.com/dshills/joyride/internal/input/mapper"
	"github.com/dshills/joyride/internal/input/phase"
)

type notification struct {
	typ     key.EventType
	slot    key.Slot
	name    string
	handler ConnectionHandler
}

// Tick runs one poll loop iteration: read devices, map their signals,
// sweep every record and deliver the resulting events.
//
// Connection notifications are delivered before phase events. Under the
// default dispatch policy the first listener error stops delivery for the
// rest of the frame and is returned; the frame's state changes are kept.
func (c *Controller) Tick(ctx context.Context) error {
	start := c.clock.Now()

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	notes := c.poll()
	transitions := c.tracker.Sweep()
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	err := c.notify(ctx, notes, observers, transitions)

	c.metrics.RecordFrame(c.clock.Since(start))
	return err
}

// poll reads the provider and updates slot tracking. c.mu must be held.
func (c *Controller) poll() []notification {
	if c.provider == nil {
		return nil
	}
	devices := c.provider.Devices()

	var notes []notification
	for i, d := range devices {
		slot := key.Slot(i)
		tracked := c.tracker.Has(slot)
		switch {
		case d != nil:
			if !tracked {
				c.tracker.Attach(slot)
				c.names[slot] = d.Name
				notes = append(notes, notification{typ: key.Connect, slot: slot, name: d.Name, handler: c.onConnect})
			}
			pad, _ := c.tracker.Pad(slot)
			mapper.Snapshot(pad, d, c.mapping, c.threshold)
		case tracked:
			notes = append(notes, c.detach(slot))
		}
	}
	// Slots beyond the end of a shorter device list are gone too.
	for _, slot := range c.tracker.Slots() {
		if int(slot) >= len(devices) {
			notes = append(notes, c.detach(slot))
		}
	}
	return notes
}

func (c *Controller) detach(slot key.Slot) notification {
	c.tracker.Detach(slot)
	name := c.names[slot]
	delete(c.names, slot)
	return notification{typ: key.Disconnect, slot: slot, name: name, handler: c.onDisconnect}
}

func (c *Controller) notify(ctx context.Context, notes []notification, observers []ConnectionObserver, transitions []phase.Transition) error {
	for _, n := range notes {
		if n.typ == key.Connect {
			c.metrics.RecordConnect()
		} else {
			c.metrics.RecordDisconnect()
		}
		c.logger.Info("gamepad "+n.typ.String(), zap.Int("slot", int(n.slot)), zap.String("name", n.name))
		for _, o := range observers {
			o(n.typ, n.slot, n.name)
		}
		if n.handler != nil {
			n.handler(n.slot)
		}
	}

	now := c.clock.Now()
	for i, t := range transitions {
		ev := event.Event{
			Type:      t.Type,
			Button:    t.Key,
			Value:     t.Value,
			Player:    t.Slot,
			Timestamp: now,
		}
		if err := c.deliver(ctx, ev); err != nil {
			c.metrics.RecordTransitions(i + 1)
			return err
		}
	}
	c.metrics.RecordTransitions(len(transitions))
	return nil
}

// Resume starts the poll loop and attaches the keyboard source.
// Phase records kept from before a Pause are picked up again.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrDestroyed
	}
	if c.running {
		return nil
	}
	c.running = true
	c.gen++
	c.handle = c.scheduler.Schedule(c.frame(c.gen))
	if c.keyboard != nil {
		c.subs = append(c.subs,
			c.keyboard.OnKeyDown(c.keyDown),
			c.keyboard.OnKeyUp(c.keyUp),
		)
	}
	c.logger.Debug("input resumed")
	return nil
}

// Pause stops the poll loop and detaches the keyboard source.
// Phase records persist.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrDestroyed
	}
	c.pause()
	return nil
}

// pause requires c.mu.
func (c *Controller) pause() {
	if !c.running {
		return
	}
	c.running = false
	c.scheduler.Cancel(c.handle)
	c.handle = 0
	for _, s := range c.subs {
		s.Cancel()
	}
	c.subs = nil
	c.logger.Debug("input paused")
}

// Destroy stops the controller and releases every listener, record and
// handler. Every later operation returns ErrDestroyed.
func (c *Controller) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrDestroyed
	}
	c.pause()
	c.registry.Clear()
	c.tracker.Reset()
	c.names = make(map[key.Slot]string)
	c.onConnect = nil
	c.onDisconnect = nil
	c.observers = nil
	c.destroyed = true
	c.logger.Debug("input destroyed")
	return nil
}

// Running reports whether the poll loop is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// frame returns the scheduled callback for one Resume generation. A frame
// from an older generation stops instead of rescheduling.
func (c *Controller) frame(gen uint64) func() {
	var run func()
	run = func() {
		c.mu.Lock()
		live := c.running && c.gen == gen
		c.mu.Unlock()
		if !live {
			return
		}

		if err := c.Tick(context.Background()); err != nil {
			if errors.Is(err, ErrDestroyed) {
				return
			}
			c.metrics.RecordFrameError()
			c.logger.Error("frame failed", zap.Error(err))
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.running && c.gen == gen {
			c.handle = c.scheduler.Schedule(run)
		}
	}
	return run
}

func (c *Controller) keyDown(code int) {
	c.keyEvent(code, true)
}

func (c *Controller) keyUp(code int) {
	c.keyEvent(code, false)
}

func (c *Controller) keyEvent(code int, down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}
	c.metrics.RecordKeyEvent()
	if down {
		mapper.KeyDown(c.tracker.Keyboard(), code, c.mapping)
	} else {
		mapper.KeyUp(c.tracker.Keyboard(), code, c.mapping)
	}
}
