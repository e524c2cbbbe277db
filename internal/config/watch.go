package config

import (
	"time"

	"github.com/dshills/vignette/internal/config/watcher"
)

// ReloadFunc receives the reloaded configuration, or the error that
// prevented reloading it.
type ReloadFunc func(cfg Config, err error)

// Watch reloads the configuration at path whenever the file changes and
// passes the result to fn. Removal of the file is not reported.
// A zero debounce keeps the watcher default. Close the returned watcher to
// stop.
func Watch(path string, fn ReloadFunc, debounce time.Duration) (*watcher.Watcher, error) {
	var opts []watcher.Option
	if debounce > 0 {
		opts = append(opts, watcher.WithDebounce(debounce))
	}
	return watcher.New(path, func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		fn(Load(path))
	}, opts...)
}
