//go:build !linux

package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/config"
)

func newEvdevBackend(cfg *config.Config, _ Options, _ *zap.Logger) (*inputBackend, error) {
	return nil, fmt.Errorf("%w: %q is only available on linux", ErrUnknownBackend, cfg.Backend)
}
