//go:build linux

package evdev

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/device"
	"github.com/dshills/joyride/internal/input/key"
)

// ErrNoKeyboard is returned by Find when no keyboard device exists.
var ErrNoKeyboard = errors.New("no keyboard device found")

// Key event values.
const (
	valueUp     = 0
	valueDown   = 1
	valueRepeat = 2
)

// Find returns the path of the first device that reports key and repeat
// events and names itself a keyboard.
func Find() (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("list devices: %w", err)
	}
	for _, p := range paths {
		if isKeyboard(p.Path) {
			return p.Path, nil
		}
	}
	return "", ErrNoKeyboard
}

func isKeyboard(path string) bool {
	dev, err := evdev.Open(path)
	if err != nil {
		return false
	}
	defer dev.Close()

	types := dev.CapableTypes()
	if !slices.Contains(types, evdev.EV_KEY) || !slices.Contains(types, evdev.EV_REP) {
		return false
	}
	name, err := dev.Name()
	return err == nil && strings.Contains(strings.ToLower(name), "keyboard")
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGrab takes exclusive access to the device while running, so key
// presses do not also reach other programs.
func WithGrab(grab bool) Option {
	return func(s *Source) {
		s.grab = grab
	}
}

// Source is a keyboard source reading one evdev device.
type Source struct {
	device.Keyboard

	path   string
	logger *zap.Logger
	grab   bool
}

// New creates a source for the device at path.
func New(path string, opts ...Option) *Source {
	s := &Source{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the device path.
func (s *Source) Path() string {
	return s.path
}

// Run reads the device until ctx is done or the device fails.
func (s *Source) Run(ctx context.Context) error {
	dev, err := evdev.Open(s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	if s.grab {
		if err := dev.Grab(); err != nil {
			dev.Close()
			return fmt.Errorf("grab %s: %w", s.path, err)
		}
	}
	if name, err := dev.Name(); err == nil {
		s.logger.Info("keyboard opened", zap.String("path", s.path), zap.String("name", name))
	}

	// Closing the device unblocks ReadOne.
	stop := context.AfterFunc(ctx, func() { dev.Close() })
	defer func() {
		if stop() {
			if s.grab {
				_ = dev.Ungrab()
			}
			dev.Close()
		}
	}()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		s.handle(ev.Code, ev.Value)
	}
}

func (s *Source) handle(c evdev.EvCode, value int32) {
	if value == valueRepeat {
		return
	}
	code, ok := keyCode(c)
	if !ok {
		return
	}
	switch value {
	case valueDown:
		s.Emit(true, code)
	case valueUp:
		s.Emit(false, code)
	}
}

var keyCodes = buildKeyCodes()

func buildKeyCodes() map[evdev.EvCode]int {
	m := map[evdev.EvCode]int{
		evdev.KEY_BACKSPACE:  key.CodeBackspace,
		evdev.KEY_TAB:        key.CodeTab,
		evdev.KEY_ENTER:      key.CodeEnter,
		evdev.KEY_KPENTER:    key.CodeEnter,
		evdev.KEY_LEFTSHIFT:  key.CodeShift,
		evdev.KEY_RIGHTSHIFT: key.CodeShift,
		evdev.KEY_LEFTCTRL:   key.CodeCtrl,
		evdev.KEY_RIGHTCTRL:  key.CodeCtrl,
		evdev.KEY_LEFTALT:    key.CodeAlt,
		evdev.KEY_RIGHTALT:   key.CodeAlt,
		evdev.KEY_PAUSE:      key.CodePause,
		evdev.KEY_CAPSLOCK:   key.CodeCapsLock,
		evdev.KEY_ESC:        key.CodeEscape,
		evdev.KEY_SPACE:      key.CodeSpace,
		evdev.KEY_PAGEUP:     key.CodePageUp,
		evdev.KEY_PAGEDOWN:   key.CodePageDown,
		evdev.KEY_END:        key.CodeEnd,
		evdev.KEY_HOME:       key.CodeHome,
		evdev.KEY_LEFT:       key.CodeLeft,
		evdev.KEY_UP:         key.CodeUp,
		evdev.KEY_RIGHT:      key.CodeRight,
		evdev.KEY_DOWN:       key.CodeDown,
		evdev.KEY_SYSRQ:      key.CodePrintScreen,
		evdev.KEY_INSERT:     key.CodeInsert,
		evdev.KEY_DELETE:     key.CodeDelete,
		evdev.KEY_NUMLOCK:    key.CodeNumLock,
		evdev.KEY_SCROLLLOCK: key.CodeScrollLock,
	}
	// Letter, digit and function key codes are not contiguous in evdev
	// numbering, so resolve them by name.
	for r := 'A'; r <= 'Z'; r++ {
		if c, ok := evdev.KEYFromString["KEY_"+string(r)]; ok {
			m[c] = key.CodeA + int(r-'A')
		}
	}
	for d := 0; d <= 9; d++ {
		if c, ok := evdev.KEYFromString[fmt.Sprintf("KEY_%d", d)]; ok {
			m[c] = key.Code0 + d
		}
		if c, ok := evdev.KEYFromString[fmt.Sprintf("KEY_KP%d", d)]; ok {
			m[c] = key.CodeKP0 + d
		}
	}
	for f := 1; f <= 12; f++ {
		if c, ok := evdev.KEYFromString[fmt.Sprintf("KEY_F%d", f)]; ok {
			m[c] = key.CodeF1 + f - 1
		}
	}
	return m
}

// keyCode converts an evdev key code into a key code.
func keyCode(c evdev.EvCode) (int, bool) {
	code, ok := keyCodes[c]
	return code, ok
}
