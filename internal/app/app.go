// Package app wires the joyride components together and manages the
// process lifecycle: configuration, logging, the input backend, the
// controller, scripts, the config watcher and the event monitor.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/config"
	"github.com/dshills/joyride/internal/config/watcher"
	"github.com/dshills/joyride/internal/input"
	"github.com/dshills/joyride/internal/input/macro"
	"github.com/dshills/joyride/internal/logging"
	"github.com/dshills/joyride/internal/script"
)

// Application is the central coordinator for all joyride components.
type Application struct {
	mu sync.RWMutex

	opts   Options
	loader *config.Loader
	config *config.Config
	logger *logging.Logger

	backend    *inputBackend
	controller *input.Controller
	scripts    *script.Runtime
	watcher    *watcher.Watcher
	monitor    *Monitor
	recorder   *macro.Recorder
	player     *macro.Player
	replay     []macro.Macro

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
}

// Options configures the application. Non-zero fields override the
// configuration file.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Backend overrides the configured input backend.
	Backend string

	// LogLevel overrides the configured logging level.
	LogLevel string

	// Scripts are loaded after the configured scripts.
	Scripts []string

	// Monitor enables the event monitor.
	Monitor bool

	// RecordPath, if set, records every key event into the macro
	// RecordName (default "session") and saves it there on Shutdown.
	// Other macros already in the file are kept.
	RecordPath string
	RecordName string

	// ReplayPath, if set, plays every macro in the file once, in name
	// order, when Run starts.
	ReplayPath string

	// Stdout receives monitor output. Defaults to os.Stdout.
	Stdout io.Writer

	// Logger replaces the logger built from the configuration.
	Logger *zap.Logger

	// Loader replaces the default configuration loader.
	Loader *config.Loader

	// Provider, Keyboard and Scheduler replace the devices of the none
	// backend and the frame scheduler. They let embedders and tests drive
	// the controller directly.
	Provider  input.DeviceProvider
	Keyboard  input.KeyboardSource
	Scheduler input.FrameScheduler
}

// New creates a new Application with the given options.
// Every component is ready when New returns; call Run to start input.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// IsRunning returns true if Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration currently in effect.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Controller returns the input controller.
func (app *Application) Controller() *input.Controller {
	return app.controller
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Scripts returns the script runtime.
func (app *Application) Scripts() *script.Runtime {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.scripts
}

// Recorder returns the macro recorder, or nil when not recording.
func (app *Application) Recorder() *macro.Recorder {
	return app.recorder
}

// Monitor returns the event monitor, or nil when it is disabled.
func (app *Application) Monitor() *Monitor {
	return app.monitor
}
