package macro

import "errors"

var (
	// ErrInvalidName is returned for an empty or malformed macro name.
	ErrInvalidName = errors.New("invalid macro name")

	// ErrNotFound is returned when no macro has the requested name.
	ErrNotFound = errors.New("macro not found")

	// ErrEmpty is returned when playing a macro without steps.
	ErrEmpty = errors.New("macro is empty")

	// ErrAlreadyRecording is returned by Start while a recording is active.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrNotRecording is returned by Stop without an active recording.
	ErrNotRecording = errors.New("not recording")

	// ErrAlreadyPlaying is returned by Play while another macro plays.
	ErrAlreadyPlaying = errors.New("already playing a macro")

	// ErrUnsupportedVersion is returned by Load for files written by a
	// newer version.
	ErrUnsupportedVersion = errors.New("unsupported macros file version")
)
