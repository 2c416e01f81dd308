package keymap

import (
	"errors"

	"github.com/dshills/joyride/internal/input/key"
)

// Sentinel errors for the keymap package.
var (
	// ErrUnknownNamespace is returned when a namespace is not one of the
	// three known kinds.
	ErrUnknownNamespace = key.ErrUnknownNamespace

	// ErrInvalidTable is returned when a table contains unusable entries.
	ErrInvalidTable = errors.New("invalid mapping table")

	// ErrUnsupportedFormat is returned for mapping files of an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported mapping format")
)
