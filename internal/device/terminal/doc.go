// Package terminal turns terminal key presses into key-down and key-up
// events.
//
// Terminals report key presses and auto-repeats but never releases. A key
// is held from its first press until no repeat has arrived for the release
// delay, at which point a key-up is synthesized. The delay must exceed the
// terminal's auto-repeat interval or a held key will flicker.
package terminal
