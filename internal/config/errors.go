package config

import (
	"errors"
	"fmt"

	"github.com/dshills/joyride/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrUnsupportedFormat indicates a config file with an unknown extension.
	ErrUnsupportedFormat = loader.ErrUnsupportedFormat

	// ErrDecode indicates the merged configuration does not fit Config,
	// such as a misspelled key or a value of the wrong type.
	ErrDecode = errors.New("invalid configuration")

	// ErrValidationFailed indicates a value fails validation.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
