// Package app wires the vignette components together.
//
// An Application loads the layered configuration, builds the logger and
// the change notifier, and owns one history-backed account. It offers the
// operations the command line exposes:
//
//   - Walk produces the in-order sequence of a tree built from values.
//   - Eval and RunScript run Lua code against the account and tree bindings.
//   - ExportHistory renders the account's snapshot log as JSON.
//   - Shutdown stops the config watcher and drains the notifier.
package app
