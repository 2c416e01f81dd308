package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/device"
	"github.com/dshills/joyride/internal/input/key"
)

// DefaultReleaseDelay is the silence after which a pressed key is released.
const DefaultReleaseDelay = 200 * time.Millisecond

// Option configures a Source.
type Option func(*Source)

// WithClock sets the clock used for release timers.
func WithClock(c clock.Clock) Option {
	return func(s *Source) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReleaseDelay sets the release delay.
func WithReleaseDelay(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.delay = d
		}
	}
}

// Source is a keyboard source reading a tcell screen.
type Source struct {
	device.Keyboard

	screen tcell.Screen
	clock  clock.Clock
	logger *zap.Logger
	delay  time.Duration

	mu   sync.Mutex
	held map[int]*clock.Timer
}

// New creates a source on screen. Call Init before Run.
func New(screen tcell.Screen, opts ...Option) *Source {
	s := &Source{
		screen: screen,
		clock:  clock.New(),
		logger: zap.NewNop(),
		delay:  DefaultReleaseDelay,
		held:   make(map[int]*clock.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init initializes the screen.
func (s *Source) Init() error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	s.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (s *Source) Shutdown() {
	s.screen.Fini()
}

// Run reads terminal events until ctx is done or Ctrl-C is pressed, in
// which case it returns device.ErrQuit. Keys still held when Run returns
// are released.
func (s *Source) Run(ctx context.Context) error {
	defer s.releaseAll()

	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		switch e := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventKey:
			if e.Key() == tcell.KeyCtrlC {
				return device.ErrQuit
			}
			code, ok := keyCode(e)
			if !ok {
				s.logger.Debug("unmapped key", zap.String("key", e.Name()))
				continue
			}
			s.press(code)
		}
	}
}

// press emits key-down for a new key, or pushes back the release of a
// held one.
func (s *Source) press(code int) {
	s.mu.Lock()
	if t, ok := s.held[code]; ok {
		t.Reset(s.delay)
		s.mu.Unlock()
		return
	}
	s.held[code] = s.clock.AfterFunc(s.delay, func() { s.release(code) })
	s.mu.Unlock()

	s.Emit(true, code)
}

func (s *Source) release(code int) {
	s.mu.Lock()
	if _, ok := s.held[code]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.held, code)
	s.mu.Unlock()

	s.Emit(false, code)
}

func (s *Source) releaseAll() {
	s.mu.Lock()
	codes := make([]int, 0, len(s.held))
	for code, t := range s.held {
		t.Stop()
		codes = append(codes, code)
	}
	s.held = make(map[int]*clock.Timer)
	s.mu.Unlock()

	for _, code := range codes {
		s.Emit(false, code)
	}
}

// Held returns the number of keys currently held.
func (s *Source) Held() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}

var namedKeys = map[tcell.Key]int{
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyPause:      key.CodePause,
}

// keyCode converts a tcell key event into a key code. Letters are folded
// to lower case since terminals do not report shift as a key.
func keyCode(e *tcell.EventKey) (int, bool) {
	k := e.Key()
	if k == tcell.KeyRune {
		r := unicode.ToLower(e.Rune())
		switch {
		case r >= 'a' && r <= 'z':
			return key.CodeA + int(r-'a'), true
		case r >= '0' && r <= '9':
			return key.Code0 + int(r-'0'), true
		case r == ' ':
			return key.CodeSpace, true
		}
		return 0, false
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.CodeF1 + int(k-tcell.KeyF1), true
	}
	c, ok := namedKeys[k]
	return c, ok
}
