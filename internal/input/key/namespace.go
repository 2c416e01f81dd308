package key

import (
	"errors"
	"fmt"
)

// ErrUnknownNamespace is returned for a mapping namespace that is not one of
// gamepad, axes or keyboard.
var ErrUnknownNamespace = errors.New("unknown namespace")

// Namespace selects one of the three mapping tables.
type Namespace string

const (
	// NamespaceGamepad maps logical keys to gamepad button indices.
	NamespaceGamepad Namespace = "gamepad"

	// NamespaceAxes maps logical axis keys to half-open raw axis ranges.
	NamespaceAxes Namespace = "axes"

	// NamespaceKeyboard maps logical keys to physical key codes.
	NamespaceKeyboard Namespace = "keyboard"
)

// Namespaces lists every namespace in a fixed order.
var Namespaces = []Namespace{NamespaceGamepad, NamespaceAxes, NamespaceKeyboard}

// String returns the namespace name.
func (n Namespace) String() string {
	return string(n)
}

// Valid reports whether n is one of the three known namespaces.
func (n Namespace) Valid() bool {
	switch n {
	case NamespaceGamepad, NamespaceAxes, NamespaceKeyboard:
		return true
	default:
		return false
	}
}

// ParseNamespace validates a namespace name.
func ParseNamespace(s string) (Namespace, error) {
	n := Namespace(s)
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNamespace, s)
	}
	return n, nil
}
