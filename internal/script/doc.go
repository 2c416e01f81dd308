// Package script runs Lua listeners against the input controller.
//
// A Runtime owns one sandboxed gopher-lua state. Scripts see a global
// joyride table:
//
//	joyride.on(types, keys, fn)      -- subscribe; returns the listener count
//	joyride.off(types, keys)         -- unsubscribe; returns the removed count
//	joyride.trigger(type, key, value, player)
//	joyride.threshold([v])           -- get, or set and get
//	joyride.on_connect(fn)           -- fn(player)
//	joyride.on_disconnect(fn)
//	joyride.log(msg)
//
// types and keys are whitespace-separated strings or arrays of strings.
// Listener functions receive an event table with type, button, value
// (an array), player and timestamp (milliseconds since the epoch).
//
// An LState is not goroutine-safe, so the runtime serializes every entry
// into Lua. trigger calls made while Lua runs are queued and delivered
// once the running chunk or callback returns.
package script
