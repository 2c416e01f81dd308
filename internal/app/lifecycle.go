package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/config"
	"github.com/dshills/joyride/internal/input"
	"github.com/dshills/joyride/internal/logging"
)

// Run starts the poll loop and blocks until ctx is done, Shutdown is
// called or the backend quits. A user quit returns ErrQuit; a cancelled
// context returns nil.
func (app *Application) Run(ctx context.Context) error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return ErrShutdown
	}
	if !app.running.CompareAndSwap(false, true) {
		app.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	app.cancel = cancel
	app.wg.Add(1)
	app.mu.Unlock()

	defer func() {
		cancel()
		app.running.Store(false)
		app.wg.Done()
	}()

	if err := app.controller.Resume(); err != nil {
		return &ComponentError{Component: "controller", Action: "resume", Err: err}
	}
	defer func() {
		if err := app.controller.Pause(); err != nil && !errors.Is(err, input.ErrDestroyed) {
			app.logger.Warn("pausing input", zap.Error(err))
		}
	}()

	if app.player != nil {
		replayed := make(chan struct{})
		go func() {
			defer close(replayed)
			app.runReplay(ctx)
		}()
		defer func() {
			cancel()
			<-replayed
		}()
	}

	if app.backend.run == nil {
		<-ctx.Done()
		return nil
	}

	err := app.backend.run(ctx)
	switch {
	case errors.Is(err, ErrQuit):
		app.logger.Info("quit requested", zap.String("backend", app.backend.name))
		return ErrQuit
	case err != nil && ctx.Err() == nil:
		return &ComponentError{Component: "backend", Action: "run", Err: err}
	}
	return nil
}

// Shutdown stops Run, then releases every component in reverse
// initialization order. It is safe to call more than once.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	cancel := app.cancel
	app.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	app.wg.Wait()

	var errs []error
	for _, component := range []string{"watcher", "macros", "scripts", "controller", "backend", "logging"} {
		app.mu.Lock()
		err := app.closeComponent(component)
		app.mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// reload applies a reloaded configuration. Threshold, mappings, log level,
// scripts and monitor keys change in place; backend, frame rate and
// listener isolation need a restart.
func (app *Application) reload(cfg *config.Config) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return
	}
	app.opts.override(cfg)
	if err := cfg.Validate(); err != nil {
		app.logger.Warn("reloaded config is invalid", zap.Error(err))
		return
	}

	prev := app.config
	if cfg.Backend != prev.Backend || cfg.FrameRate != prev.FrameRate || cfg.IsolateListeners != prev.IsolateListeners {
		app.logger.Warn("backend, frame_rate and isolate_listeners take effect on restart")
	}

	app.logger.SetLevel(cfg.Logging.Level)

	if err := app.controller.SetGlobalThreshold(cfg.Threshold); err != nil {
		app.logger.Warn("applying threshold", zap.Error(err))
	}
	if err := applyMapping(app.controller, cfg); err != nil {
		app.logger.Warn("applying mapping", zap.Error(err))
	}
	if m := app.monitor; m != nil {
		m.Detach(app.controller)
		if err := m.Attach(app.controller); err != nil {
			app.logger.Warn("attaching monitor", zap.Error(err))
		}
	}
	if rec := app.recorder; rec != nil {
		rec.Detach(app.controller)
		if err := rec.Attach(app.controller, phaseTypes, mappedKeys(app.controller)); err != nil {
			app.logger.Warn("attaching recorder", zap.Error(err))
		}
	}
	if len(cfg.Scripts) > 0 || len(prev.Scripts) > 0 {
		app.reloadScripts(cfg.Scripts)
	}

	app.config = cfg
}

// reloadScripts replaces the script runtime, picking up edits to the
// script files as well as to the list. On failure no scripts run
// until the next successful reload. Requires app.mu.
func (app *Application) reloadScripts(paths []string) {
	if app.scripts != nil {
		if err := app.scripts.Close(); err != nil {
			app.logger.Warn("closing scripts", zap.Error(err))
		}
		app.scripts = nil
	}
	rt, err := loadScripts(app.controller, paths, app.logger.Logger)
	if err != nil {
		app.logger.Error("reloading scripts", zap.Error(err))
		return
	}
	app.scripts = rt
}

// runReplay plays the loaded macros in order until they finish or ctx
// ends.
func (app *Application) runReplay(ctx context.Context) {
	logger := logging.Component(app.logger.Logger, "macro")
	for _, m := range app.replay {
		logger.Info("replaying", zap.String("macro", m.Name), zap.Int("steps", len(m.Steps)))
		if err := app.player.Play(ctx, m, 1); err != nil {
			if ctx.Err() == nil {
				logger.Warn("replay failed", zap.String("macro", m.Name), zap.Error(err))
			}
			return
		}
	}
	logger.Info("replay finished")
}
