package device

import "errors"

// ErrQuit is returned by a backend's Run when the user asked to quit
// through the backend itself (closing the window, pressing Ctrl-C in the
// terminal).
var ErrQuit = errors.New("quit requested")
