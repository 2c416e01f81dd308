//go:build linux

package app

import (
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/config"
	"github.com/dshills/joyride/internal/device/evdev"
)

func newEvdevBackend(cfg *config.Config, opts Options, log *zap.Logger) (*inputBackend, error) {
	path := cfg.Evdev.Device
	if path == "" {
		found, err := evdev.Find()
		if err != nil {
			return nil, err
		}
		path = found
	}
	src := evdev.New(path, evdev.WithLogger(log), evdev.WithGrab(cfg.Evdev.Grab))
	log.Info("using keyboard device", zap.String("path", src.Path()))
	return &inputBackend{
		name:     cfg.Backend,
		provider: opts.Provider,
		keyboard: src,
		run:      src.Run,
	}, nil
}
