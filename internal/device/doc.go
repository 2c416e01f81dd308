// Package device defines the data the input system reads from physical
// sources and the helpers shared by the backends.
//
// A DeviceProvider returns one Snapshot per gamepad slot each frame; a nil
// entry means the slot is empty. Keyboards are event driven instead of
// polled: a keyboard source calls registered KeyHandlers with a key code on
// every key-down and key-up.
//
// Backends live in subpackages:
//
//	device/fake      scripted provider and keyboard for tests
//	device/sdl       SDL game controllers and keyboard
//	device/terminal  tcell keyboard with synthesized key-up
//	device/evdev     linux input device keyboard
package device
