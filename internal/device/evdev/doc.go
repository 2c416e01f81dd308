//go:build linux

// Package evdev reads key-down and key-up events straight from a Linux
// input device. Unlike a terminal, evdev reports releases, so no timing
// heuristics are needed. Reading /dev/input usually requires membership in
// the input group.
package evdev
