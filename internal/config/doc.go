// Package config provides the editor settings: their defaults, their
// validation, and loading them from TOML, YAML, or JSON files.
//
// # Layers
//
// Settings are resolved from layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Settings Files          │  ← ~/.config/linecore/settings.toml, ...
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each file is parsed into a generic map by package loader, the maps are
// deep-merged in order, and the result is decoded onto Default() and
// validated. Invalid values are reported as *buffer.ConfigError, so that
// errors.Is(err, buffer.ErrInvalidConfig) holds for every rejected
// setting.
//
// # Example
//
//	[indent]
//	width = 2
//	use_tabs = false
//
//	eol = "lf"
//
//	[completion]
//	threshold = 3
//
//	[[languages]]
//	pattern = "*.{c,h}"
//	policy = "brackets"
//
// # Sub-packages
//
//   - loader: parsing settings files into maps
//   - watcher: reloading settings when files change
package config
