package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/vignette/internal/account"
	"github.com/dshills/vignette/internal/config"
	"github.com/dshills/vignette/internal/config/watcher"
	"github.com/dshills/vignette/internal/logging"
	"github.com/dshills/vignette/internal/notify"
	"github.com/dshills/vignette/internal/script"
	"github.com/dshills/vignette/internal/tree"
)

// Options configures application startup.
type Options struct {
	// ConfigPath is the configuration file. Empty uses defaults and the
	// environment only.
	ConfigPath string

	// LogLevel overrides logging.level when non-empty.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Output receives script print output. Defaults to os.Stdout.
	Output io.Writer

	// Watch reloads ConfigPath when it changes.
	Watch bool

	// WatchDebounce overrides the watcher's debounce interval.
	WatchDebounce time.Duration

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config
}

// Application owns the account and the supporting infrastructure.
type Application struct {
	mu   sync.RWMutex
	opts Options
	cfg  config.Config

	logger   *logging.Logger
	notifier *notify.Notifier
	account  *account.Account
	metrics  *Metrics

	subscription *notify.Subscription
	watcher      *watcher.Watcher

	closed atomic.Bool
}

// New creates an application from opts.
func New(opts Options) (*Application, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Logger
	app.logger = logging.NewLogger(logging.Config{
		Level:  cfg.LogLevel(),
		Output: app.opts.LogOutput,
		Prefix: "vignette",
	})

	// 3. Notifier
	app.notifier = notify.New(notify.WithLogger(app.logger))
	app.subscription = app.notifier.SubscribeTopic("account", app.metrics.RecordChange)

	// 4. Account
	app.account = account.New(cfg.Account.InitialBalance,
		account.WithName(cfg.Account.Name),
		account.WithMaxHistory(cfg.History.MaxEntries),
		account.WithNotifier(app.notifier),
		account.WithLogger(app.logger),
	)

	// 5. Config watcher
	if app.opts.Watch {
		if err := app.startWatcher(); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
	}

	app.logger.WithFields(map[string]any{
		"account": cfg.Account.Name,
		"balance": cfg.Account.InitialBalance,
	}).Debug("application ready")
	return nil
}

func (app *Application) loadConfig() (config.Config, error) {
	var cfg config.Config
	if app.opts.Config != nil {
		cfg = *app.opts.Config
	} else {
		loaded, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if app.opts.LogLevel != "" {
		if !logging.ValidLevel(app.opts.LogLevel) {
			return config.Config{}, &config.SettingError{
				Path:  "logging.level",
				Value: app.opts.LogLevel,
				Err:   config.ErrInvalidConfig,
			}
		}
		cfg.Logging.Level = app.opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (app *Application) startWatcher() error {
	if app.opts.ConfigPath == "" {
		return ErrNoConfigFile
	}
	w, err := config.Watch(app.opts.ConfigPath, app.reload, app.opts.WatchDebounce)
	if err != nil {
		return err
	}
	app.watcher = w
	return nil
}

// reload applies a changed configuration. Logging, tree and script settings
// take effect immediately; account settings only apply to a new account.
func (app *Application) reload(cfg config.Config, err error) {
	if app.closed.Load() {
		return
	}
	if err != nil {
		app.logger.Warn("config reload failed: %v", err)
		return
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}

	app.mu.Lock()
	app.cfg.Logging = cfg.Logging
	app.cfg.Tree = cfg.Tree
	app.cfg.Script = cfg.Script
	app.mu.Unlock()

	app.logger.SetLevel(cfg.LogLevel())
	app.logger.Info("config reloaded from %s", app.opts.ConfigPath)
}

// Config returns a copy of the active configuration.
func (app *Application) Config() config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Account returns the application's account.
func (app *Application) Account() *account.Account {
	return app.account
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Notifier returns the change notifier.
func (app *Application) Notifier() *notify.Notifier {
	return app.notifier
}

// Metrics returns the metrics tracker.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Walk builds a tree from values using the configured layout and returns
// its in-order sequence. A nil values slice walks the configured tree.
func (app *Application) Walk(values []int64) []int64 {
	cfg := app.Config()
	if values == nil {
		values = cfg.Tree.Values
	}

	var root *tree.Node[int64]
	switch cfg.Tree.Layout {
	case config.LayoutBalanced:
		root = tree.Balanced(values)
	default:
		root = tree.FromLevelOrder(values)
	}

	app.logger.WithComponent("tree").Debug("walking %d values (%s, height %d)",
		tree.Size(root), cfg.Tree.Layout, tree.Height(root))
	return tree.Values(root)
}

// Eval runs a chunk of Lua code against the account.
func (app *Application) Eval(code string) error {
	return app.runScript("eval", func(s *script.State) error {
		return s.DoString(code)
	})
}

// RunScript runs the Lua file at path against the account.
func (app *Application) RunScript(path string) error {
	return app.runScript(path, func(s *script.State) error {
		return s.DoFile(path)
	})
}

func (app *Application) runScript(name string, fn func(*script.State) error) error {
	if app.closed.Load() {
		return ErrShutdown
	}

	cfg := app.Config()
	state := script.NewState(
		script.WithTimeout(cfg.Script.Timeout),
		script.WithOutput(app.opts.Output),
		script.WithLogger(app.logger),
	)
	defer state.Close()

	state.BindAccount(app.account)
	state.BindTree()

	start := time.Now()
	err := fn(state)
	app.metrics.RecordScript(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// Shutdown stops the watcher and drains the notifier. It is safe to call
// more than once.
func (app *Application) Shutdown() {
	if app.closed.Swap(true) {
		return
	}

	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil && app.logger != nil {
			app.logger.Warn("closing config watcher: %v", err)
		}
	}
	if app.subscription != nil {
		app.subscription.Unsubscribe()
	}
	if app.notifier != nil {
		app.notifier.Close()
	}
	if app.logger != nil {
		app.logger.Debug("shutdown complete")
	}
}
