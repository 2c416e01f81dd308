package config

import (
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/config/watcher"
)

// ReloadFunc receives the reloaded configuration, or the error that kept
// it from loading. The previous configuration stays in effect on error.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the file at path with l whenever it changes and passes
// the result to fn. The returned watcher is running; Stop it when done.
func (l *Loader) Watch(path string, fn ReloadFunc, opts ...watcher.Option) (*watcher.Watcher, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		fn(l.Load(path))
	})
	w.Start()
	return w, nil
}

// LogReload returns a ReloadFunc that logs failures and passes good
// configurations to apply.
func LogReload(logger *zap.Logger, apply func(*Config)) ReloadFunc {
	return func(cfg *Config, err error) {
		if err != nil {
			logger.Warn("config reload failed; keeping previous settings", zap.Error(err))
			return
		}
		logger.Info("config reloaded", zap.String("path", cfg.Path))
		apply(cfg)
	}
}
