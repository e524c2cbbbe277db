// Package config provides the configuration for vignette.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← VIGNETTE_*, highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← .toml, .yaml or .json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Settings use dot-separated camelCase paths:
//
//	logging.level           debug | info | warn | error
//	account.name            label used in logs and notifications
//	account.initialBalance  starting balance
//	history.maxEntries      snapshot limit, 0 for unbounded
//	tree.values             integers used to build the demo tree
//	tree.layout             "levelorder" or "balanced"
//	script.timeout          Lua execution timeout, e.g. "5s"
//
// # Sub-packages
//
//   - loader: file and environment loading, merging
//   - watcher: fsnotify-based file watching for live reload
package config
