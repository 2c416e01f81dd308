package app

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/config"
	"github.com/dshills/joyride/internal/config/watcher"
	"github.com/dshills/joyride/internal/input"
	"github.com/dshills/joyride/internal/input/key"
	"github.com/dshills/joyride/internal/input/keymap"
	"github.com/dshills/joyride/internal/input/macro"
	"github.com/dshills/joyride/internal/logging"
	"github.com/dshills/joyride/internal/script"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		init func() error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"backend", b.initBackend},
		{"monitor", b.initMonitor},
		{"controller", b.initController},
		{"scripts", b.initScripts},
		{"macros", b.initMacros},
		{"watcher", b.initWatcher},
	}

	for _, step := range steps {
		if err := step.init(); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}

	b.app.logger.Info("joyride ready",
		zap.String("backend", b.app.config.Backend),
		zap.Float64("threshold", b.app.config.Threshold),
		zap.Int("frame_rate", b.app.config.FrameRate),
		zap.String("config", b.app.config.Path),
	)
	return nil
}

func (b *bootstrapper) initConfig() error {
	loader := b.opts.Loader
	if loader == nil {
		loader = config.NewLoader()
	}
	cfg, err := loader.Load(b.opts.ConfigPath)
	if err != nil {
		return err
	}
	b.opts.override(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	b.app.loader = loader
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogging() error {
	if b.opts.Logger != nil {
		b.app.logger = logging.Wrap(b.opts.Logger)
		return nil
	}
	l, err := logging.New(b.app.config.Logging)
	if err != nil {
		return err
	}
	b.app.logger = l
	return nil
}

func (b *bootstrapper) initBackend() error {
	be, err := newBackend(b.app.config, b.opts, b.app.logger.Logger)
	if err != nil {
		return err
	}
	b.app.backend = be
	return nil
}

func (b *bootstrapper) initMonitor() error {
	if !b.app.config.Monitor {
		return nil
	}
	out := b.app.backend.out
	if out == nil {
		out = b.opts.Stdout
	}
	if out == nil {
		out = os.Stdout
	}
	b.app.monitor = NewMonitor(out)
	return nil
}

func (b *bootstrapper) initController() error {
	cfg := b.app.config
	logger := logging.Component(b.app.logger.Logger, "input")

	opts := []input.Option{
		input.WithLogger(logger),
		input.WithThreshold(cfg.Threshold),
		input.WithIsolation(cfg.IsolateListeners),
	}
	if p := b.app.backend.provider; p != nil {
		opts = append(opts, input.WithProvider(p))
	}
	if k := b.app.backend.keyboard; k != nil {
		opts = append(opts, input.WithKeyboard(k))
	}
	if b.opts.Scheduler != nil {
		opts = append(opts, input.WithScheduler(b.opts.Scheduler))
	} else {
		opts = append(opts, input.WithFrameRate(cfg.FrameRate))
	}
	if m := b.app.monitor; m != nil {
		opts = append(opts, input.WithConnectionObserver(m.Connection))
	}

	c, err := input.New(opts...)
	if err != nil {
		return err
	}
	b.app.controller = c

	if err := applyMapping(c, cfg); err != nil {
		return err
	}
	if m := b.app.monitor; m != nil {
		if err := m.Attach(c); err != nil {
			return fmt.Errorf("attaching monitor: %w", err)
		}
	}
	return nil
}

func (b *bootstrapper) initScripts() error {
	rt, err := loadScripts(b.app.controller, b.app.config.Scripts, b.app.logger.Logger)
	if err != nil {
		return err
	}
	b.app.scripts = rt
	return nil
}

// defaultRecordName is the macro a session is recorded into.
const defaultRecordName = "session"

func (b *bootstrapper) initMacros() error {
	c := b.app.controller
	logger := logging.Component(b.app.logger.Logger, "macro")

	if path := b.opts.RecordPath; path != "" {
		name := b.opts.RecordName
		if name == "" {
			name = defaultRecordName
		}
		rec := macro.NewRecorder()
		if err := macro.Load(rec, path); err != nil {
			return err
		}
		if err := rec.Attach(c, phaseTypes, mappedKeys(c)); err != nil {
			return err
		}
		if err := rec.Start(name); err != nil {
			rec.Detach(c)
			return err
		}
		b.app.recorder = rec
		logger.Info("recording", zap.String("macro", name), zap.String("path", path))
	}

	if path := b.opts.ReplayPath; path != "" {
		src := macro.NewRecorder()
		if err := macro.Load(src, path); err != nil {
			return err
		}
		for _, name := range src.Names() {
			m, _ := src.Get(name)
			b.app.replay = append(b.app.replay, m)
		}
		if len(b.app.replay) == 0 {
			return fmt.Errorf("%w in %s", macro.ErrNotFound, path)
		}
		b.app.player = macro.NewPlayer(c.Trigger)
	}
	return nil
}

func (b *bootstrapper) initWatcher() error {
	cfg := b.app.config
	if !cfg.Watch || cfg.Path == "" {
		return nil
	}
	logger := logging.Component(b.app.logger.Logger, "config")
	w, err := b.app.loader.Watch(cfg.Path,
		config.LogReload(logger, b.app.reload),
		watcher.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	b.app.watcher = w
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.app.closeComponent(b.initOrder[i])
	}
}

// closeComponent releases a single component.
func (app *Application) closeComponent(component string) error {
	var err error
	switch component {
	case "watcher":
		if app.watcher != nil {
			app.watcher.Stop()
			app.watcher = nil
		}
	case "macros":
		if app.recorder != nil {
			err = app.saveRecording()
			app.recorder = nil
		}
	case "scripts":
		if app.scripts != nil {
			err = app.scripts.Close()
			app.scripts = nil
		}
	case "controller":
		if app.controller != nil {
			app.reportInput()
			err = app.controller.Destroy()
		}
	case "backend":
		if app.backend != nil {
			app.backend.Close()
		}
	case "logging":
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	}
	if err != nil {
		return &ComponentError{Component: component, Action: "close", Err: err}
	}
	return nil
}

// reportInput logs the controller's activity and, with a monitor, prints
// it as a closing line.
func (app *Application) reportInput() {
	snap := app.controller.Metrics().Snapshot()
	stats := app.controller.DispatchStats()
	fields := append(snap.Fields(),
		zap.Uint64("listener_calls", stats.Dispatched),
		zap.Uint64("listener_failures", stats.Failed+stats.Panicked),
		zap.Uint64("listeners_skipped", stats.Skipped),
	)
	app.logger.Info("input summary", fields...)
	if m := app.monitor; m != nil {
		m.Summary(snap, stats)
	}
}

// saveRecording stops the recorder and writes its macros to RecordPath.
func (app *Application) saveRecording() error {
	rec := app.recorder
	m, err := rec.Stop()
	if err != nil && !errors.Is(err, macro.ErrNotRecording) {
		return err
	}
	rec.Detach(app.controller)
	if err := macro.Save(rec, app.opts.RecordPath); err != nil {
		return err
	}
	app.logger.Info("recording saved",
		zap.String("macro", m.Name),
		zap.Int("steps", len(m.Steps)),
		zap.Duration("duration", m.Duration()),
		zap.String("path", app.opts.RecordPath),
	)
	return nil
}

// override writes the non-zero options onto cfg.
func (o Options) override(cfg *config.Config) {
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.Monitor {
		cfg.Monitor = true
	}
	cfg.Scripts = append(cfg.Scripts, o.Scripts...)
}

// applyMapping installs cfg's tables on c. Namespaces cfg leaves out get
// the default table, so a reload that drops a table restores it.
func applyMapping(c *input.Controller, cfg *config.Config) error {
	tables, err := cfg.Tables()
	if err != nil {
		return err
	}
	for _, ns := range key.Namespaces {
		table, ok := tables[ns]
		if !ok {
			if table, err = keymap.DefaultTable(ns); err != nil {
				return err
			}
		}
		if err := c.SetCustomMapping(string(ns), table); err != nil {
			return err
		}
	}
	return nil
}

// loadScripts starts a runtime on c and runs each script in order.
func loadScripts(c *input.Controller, paths []string, logger *zap.Logger) (*script.Runtime, error) {
	rt := script.New(c, script.WithLogger(logging.Component(logger, "script")))
	for _, path := range paths {
		if err := rt.LoadFile(path); err != nil {
			_ = rt.Close()
			return nil, &ComponentError{Component: "script", Action: "load " + path, Err: err}
		}
	}
	return rt, nil
}
