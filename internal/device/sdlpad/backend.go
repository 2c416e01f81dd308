package sdlpad

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/device"
)

// DefaultPollRate is how many times per second Run pumps SDL events.
const DefaultPollRate = 120

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock sets the clock driving the pump.
func WithClock(c clock.Clock) Option {
	return func(b *Backend) {
		if c != nil {
			b.clock = c
		}
	}
}

// WithPollRate sets the pump rate in Hz.
func WithPollRate(hz int) Option {
	return func(b *Backend) {
		if hz > 0 {
			b.interval = time.Second / time.Duration(hz)
		}
	}
}

// WithWindow opens a small window with the given title so that SDL
// delivers keyboard events.
func WithWindow(title string) Option {
	return func(b *Backend) {
		b.title = title
	}
}

// Backend is a gamepad provider and keyboard source backed by SDL2.
type Backend struct {
	device.Keyboard

	logger   *zap.Logger
	clock    clock.Clock
	interval time.Duration
	title    string

	mu        sync.RWMutex
	snapshots []*device.Snapshot

	// owned by the Run goroutine
	pads []*sdl.GameController
}

// New creates a backend. Nothing touches SDL until Run.
func New(opts ...Option) *Backend {
	b := &Backend{
		logger:   zap.NewNop(),
		clock:    clock.New(),
		interval: time.Second / DefaultPollRate,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Devices returns the snapshots from the latest pump, one per slot.
func (b *Backend) Devices() []*device.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*device.Snapshot, len(b.snapshots))
	for i, s := range b.snapshots {
		out[i] = s.Clone()
	}
	return out
}

// Run initializes SDL and pumps events until ctx is done or the window is
// closed, in which case it returns device.ErrQuit.
func (b *Backend) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	flags := uint32(sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK | sdl.INIT_EVENTS)
	if b.title != "" {
		flags |= sdl.INIT_VIDEO
	}
	if err := sdl.Init(flags); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	if b.title != "" {
		w, err := sdl.CreateWindow(b.title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			320, 120, sdl.WINDOW_SHOWN)
		if err != nil {
			return fmt.Errorf("sdl window: %w", err)
		}
		defer w.Destroy()
	}
	defer b.closeAll()

	ticker := b.clock.Ticker(b.interval)
	defer ticker.Stop()

	for {
		if quit := b.pump(); quit {
			return device.ErrQuit
		}
		b.publish()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// pump drains the SDL event queue. It reports whether quit was requested.
func (b *Backend) pump() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.ControllerDeviceEvent:
			switch e.Type {
			case sdl.CONTROLLERDEVICEADDED:
				b.open(int(e.Which))
			case sdl.CONTROLLERDEVICEREMOVED:
				b.close(sdl.JoystickID(e.Which))
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			code, ok := keyCode(e.Keysym.Sym)
			if !ok {
				continue
			}
			b.Emit(e.Type == sdl.KEYDOWN, code)
		}
	}
	return false
}

// open attaches the controller at device index to the lowest free slot.
// SDL reports controllers present at startup as added events too.
func (b *Backend) open(index int) {
	if !sdl.IsGameController(index) {
		return
	}
	id := sdl.JoystickGetDeviceInstanceID(index)
	if b.slotOf(id) >= 0 {
		return
	}
	gc := sdl.GameControllerOpen(index)
	if gc == nil {
		b.logger.Warn("open controller", zap.Int("index", index), zap.Error(sdl.GetError()))
		return
	}

	slot := -1
	for i, p := range b.pads {
		if p == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		slot = len(b.pads)
		b.pads = append(b.pads, nil)
	}
	b.pads[slot] = gc
	b.logger.Debug("controller opened", zap.Int("slot", slot), zap.String("name", gc.Name()))
}

func (b *Backend) close(id sdl.JoystickID) {
	slot := b.slotOf(id)
	if slot < 0 {
		return
	}
	b.pads[slot].Close()
	b.pads[slot] = nil
	b.logger.Debug("controller closed", zap.Int("slot", slot))
}

func (b *Backend) slotOf(id sdl.JoystickID) int {
	for i, p := range b.pads {
		if p != nil && p.Joystick().InstanceID() == id {
			return i
		}
	}
	return -1
}

func (b *Backend) closeAll() {
	for i, p := range b.pads {
		if p != nil {
			p.Close()
			b.pads[i] = nil
		}
	}
	b.mu.Lock()
	b.snapshots = nil
	b.mu.Unlock()
}

// publish reads every open controller into a fresh snapshot list.
func (b *Backend) publish() {
	snaps := make([]*device.Snapshot, len(b.pads))
	for i, p := range b.pads {
		if p != nil {
			snaps[i] = read(p)
		}
	}
	b.mu.Lock()
	b.snapshots = snaps
	b.mu.Unlock()
}

func read(gc *sdl.GameController) *device.Snapshot {
	s := &device.Snapshot{
		Name:      gc.Name(),
		Connected: gc.Attached(),
		Buttons:   make([]device.Button, len(standardButtons)),
		Axes:      make([]float64, len(standardAxes)),
	}
	for i, c := range standardButtons {
		if c.analog {
			v := triggerValue(gc.Axis(c.trigger))
			s.Buttons[i] = device.Button{Pressed: v > TriggerThreshold, Value: v}
			continue
		}
		if gc.Button(c.button) != 0 {
			s.Buttons[i] = device.Button{Pressed: true, Value: 1}
		}
	}
	for i, a := range standardAxes {
		s.Axes[i] = normalizeAxis(gc.Axis(a))
	}
	return s
}
