// Package keymap provides the key mapping tables of the input system.
//
// A mapping translates raw source indices into logical keys. There are
// exactly three namespaces, each with its own table:
//
//	gamepad   logical key -> gamepad button index (or indices)
//	axes      logical key -> half-open raw axis range [start, end)
//	keyboard  logical key -> physical key code (or codes)
//
// One raw index may drive several logical keys, and one logical key may be
// driven by several raw indices.
//
// # Replacement
//
// Tables are replaced wholesale. Set never merges: a logical key absent from
// the new table no longer resolves, even if the old table had it.
//
// # Usage
//
//	m := keymap.Default()
//	keys := m.Resolve(0, key.NamespaceGamepad) // [button_1]
//
//	err := m.Set(key.NamespaceKeyboard, keymap.Table{
//	    key.Button1: {key.CodeEnter},
//	})
//
// Tables can also be loaded from JSON, YAML or TOML documents whose
// top-level keys are namespace names:
//
//	keyboard:
//	  button_1: space
//	  d_pad_up: [up, w]
package keymap
