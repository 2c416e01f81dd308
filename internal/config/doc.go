// Package config loads joyride configuration.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  3. Environment (JOYRIDE_)  │
//	├─────────────────────────────┤
//	│  2. Config file             │  ← YAML, TOML or JSON
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │
//	└─────────────────────────────┘
//
// Layers are merged as generic maps and decoded into Config with
// mapstructure, then validated.
//
//	cfg, err := config.Load("joyride.yaml")
//	if err != nil {
//	    return err
//	}
//
// # Sub-packages
//
//   - loader: file parsing, environment variables, map merging
//   - watcher: file watching for live reload
package config
