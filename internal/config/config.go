package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dshills/joyride/internal/input/key"
	"github.com/dshills/joyride/internal/input/keymap"
	"github.com/dshills/joyride/internal/logging"
)

// Backends.
const (
	BackendSDL      = "sdl"
	BackendTerminal = "terminal"
	BackendEvdev    = "evdev"
	BackendNone     = "none"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendSDL, BackendTerminal, BackendEvdev, BackendNone}

// Config is the complete joyride configuration.
type Config struct {
	// Threshold is the global axis activation threshold.
	Threshold float64 `mapstructure:"threshold"`
	// FrameRate is the poll loop rate in Hz.
	FrameRate int `mapstructure:"frame_rate"`
	// Backend selects the input backend.
	Backend string `mapstructure:"backend"`
	// IsolateListeners keeps dispatching after a listener fails.
	IsolateListeners bool `mapstructure:"isolate_listeners"`
	// Monitor prints every event of the default keys.
	Monitor bool `mapstructure:"monitor"`
	// Watch reloads the config file when it changes.
	Watch bool `mapstructure:"watch"`

	Logging logging.Config `mapstructure:"logging"`

	// Mapping holds inline tables keyed by namespace, applied after
	// MappingFile.
	Mapping map[string]any `mapstructure:"mapping"`
	// MappingFile is a separate mapping document.
	MappingFile string `mapstructure:"mapping_file"`

	// Scripts are Lua files loaded at startup.
	Scripts []string `mapstructure:"scripts"`

	Terminal TerminalConfig `mapstructure:"terminal"`
	Evdev    EvdevConfig    `mapstructure:"evdev"`
	SDL      SDLConfig      `mapstructure:"sdl"`

	// Path is the file the configuration was loaded from, if any.
	Path string `mapstructure:"-"`
}

// TerminalConfig configures the terminal backend.
type TerminalConfig struct {
	ReleaseDelay time.Duration `mapstructure:"release_delay"`
}

// EvdevConfig configures the evdev backend.
type EvdevConfig struct {
	// Device is the input device path; empty means the first keyboard.
	Device string `mapstructure:"device"`
	Grab   bool   `mapstructure:"grab"`
}

// SDLConfig configures the SDL backend.
type SDLConfig struct {
	// Window opens a window so SDL delivers keyboard events.
	Window   bool `mapstructure:"window"`
	PollRate int  `mapstructure:"poll_rate"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Threshold: 0.3,
		FrameRate: 60,
		Backend:   BackendSDL,
		Logging:   logging.DefaultConfig(),
		Terminal:  TerminalConfig{ReleaseDelay: 200 * time.Millisecond},
		SDL:       SDLConfig{Window: true, PollRate: 120},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) || c.Threshold < 0 {
		fail("threshold", "must be a finite non-negative number", c.Threshold)
	}
	if c.FrameRate <= 0 {
		fail("frame_rate", "must be positive", c.FrameRate)
	}
	if !slices.Contains(Backends, c.Backend) {
		fail("backend", fmt.Sprintf("must be one of %v", Backends), c.Backend)
	}
	if f := c.Logging.Format; f != "" && f != logging.FormatConsole && f != logging.FormatJSON {
		fail("logging.format", "must be console or json", f)
	}
	if c.Terminal.ReleaseDelay <= 0 {
		fail("terminal.release_delay", "must be positive", c.Terminal.ReleaseDelay)
	}
	if c.SDL.PollRate <= 0 {
		fail("sdl.poll_rate", "must be positive", c.SDL.PollRate)
	}
	if c.Mapping != nil {
		if _, err := c.inlineTables(); err != nil {
			fail("mapping", err.Error(), nil)
		}
	}

	return errors.Join(errs...)
}

// Tables returns the mapping tables from MappingFile and then Mapping,
// inline tables replacing file tables of the same namespace.
func (c *Config) Tables() (map[key.Namespace]keymap.Table, error) {
	tables := make(map[key.Namespace]keymap.Table)
	if c.MappingFile != "" {
		ft, err := keymap.LoadFile(c.MappingFile)
		if err != nil {
			return nil, err
		}
		for ns, t := range ft {
			tables[ns] = t
		}
	}
	it, err := c.inlineTables()
	if err != nil {
		return nil, err
	}
	for ns, t := range it {
		tables[ns] = t
	}
	return tables, nil
}

func (c *Config) inlineTables() (map[key.Namespace]keymap.Table, error) {
	if len(c.Mapping) == 0 {
		return nil, nil
	}
	tables, err := keymap.ParseTables(c.Mapping)
	if err != nil {
		return nil, err
	}
	for ns, t := range tables {
		if err := t.Validate(ns); err != nil {
			return nil, fmt.Errorf("%s: %w", ns, err)
		}
	}
	return tables, nil
}
