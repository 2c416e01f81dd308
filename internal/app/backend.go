package app

import (
	"context"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/config"
	"github.com/dshills/joyride/internal/device/sdlpad"
	"github.com/dshills/joyride/internal/device/terminal"
	"github.com/dshills/joyride/internal/input"
	"github.com/dshills/joyride/internal/logging"
)

// windowTitle is the title of the SDL window that receives keyboard focus.
const windowTitle = "joyride"

// inputBackend is the device side of the application: what the controller
// polls, what delivers key codes and what runs until the user quits.
type inputBackend struct {
	name     string
	provider input.DeviceProvider
	keyboard input.KeyboardSource

	// run blocks until ctx ends or the backend quits. Nil means the
	// backend has nothing to drive.
	run func(ctx context.Context) error

	// out, if set, replaces stdout for the monitor while the backend owns
	// the terminal.
	out io.Writer

	close func()
}

// Close releases the backend.
func (b *inputBackend) Close() {
	if b.close != nil {
		b.close()
	}
}

// newBackend builds the backend cfg selects.
func newBackend(cfg *config.Config, opts Options, logger *zap.Logger) (*inputBackend, error) {
	log := logging.Component(logger, "backend."+cfg.Backend)

	switch cfg.Backend {
	case config.BackendNone:
		return &inputBackend{
			name:     cfg.Backend,
			provider: opts.Provider,
			keyboard: opts.Keyboard,
		}, nil

	case config.BackendSDL:
		sdlOpts := []sdlpad.Option{
			sdlpad.WithLogger(log),
			sdlpad.WithPollRate(cfg.SDL.PollRate),
		}
		if cfg.SDL.Window {
			sdlOpts = append(sdlOpts, sdlpad.WithWindow(windowTitle))
		}
		b := sdlpad.New(sdlOpts...)
		return &inputBackend{
			name:     cfg.Backend,
			provider: b,
			keyboard: b,
			run:      b.Run,
		}, nil

	case config.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
		src := terminal.New(screen,
			terminal.WithLogger(log),
			terminal.WithReleaseDelay(cfg.Terminal.ReleaseDelay),
		)
		if err := src.Init(); err != nil {
			return nil, err
		}
		return &inputBackend{
			name:     cfg.Backend,
			provider: opts.Provider,
			keyboard: src,
			run:      src.Run,
			out:      newScreenWriter(screen),
			close:    src.Shutdown,
		}, nil

	case config.BackendEvdev:
		return newEvdevBackend(cfg, opts, log)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}
