package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/vignette/internal/config/loader"
	"github.com/dshills/vignette/internal/logging"
)

// Tree layouts accepted by tree.layout.
const (
	LayoutLevelOrder = "levelorder"
	LayoutBalanced   = "balanced"
)

// Config is the typed view of the merged configuration.
type Config struct {
	Logging LoggingConfig
	Account AccountConfig
	History HistoryConfig
	Tree    TreeConfig
	Script  ScriptConfig
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is the minimum level written ("debug", "info", "warn", "error").
	Level string
}

// AccountConfig configures the demo account.
type AccountConfig struct {
	Name           string
	InitialBalance int64
}

// HistoryConfig configures snapshot retention.
type HistoryConfig struct {
	// MaxEntries bounds the snapshot log. Zero means unbounded.
	MaxEntries int
}

// TreeConfig configures the demo tree.
type TreeConfig struct {
	Values []int64
	Layout string
}

// ScriptConfig configures Lua execution.
type ScriptConfig struct {
	Timeout time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Account: AccountConfig{Name: "default", InitialBalance: 100},
		History: HistoryConfig{MaxEntries: 0},
		Tree:    TreeConfig{Values: []int64{1, 2, 3}, Layout: LayoutLevelOrder},
		Script:  ScriptConfig{Timeout: 5 * time.Second},
	}
}

// defaultMap returns Default as a nested map, the lowest layer.
func defaultMap() map[string]any {
	d := Default()
	values := make([]any, len(d.Tree.Values))
	for i, v := range d.Tree.Values {
		values[i] = v
	}
	return map[string]any{
		"logging": map[string]any{"level": d.Logging.Level},
		"account": map[string]any{"name": d.Account.Name, "initialBalance": d.Account.InitialBalance},
		"history": map[string]any{"maxEntries": d.History.MaxEntries},
		"tree":    map[string]any{"values": values, "layout": d.Tree.Layout},
		"script":  map[string]any{"timeout": d.Script.Timeout},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path skips the file layer; a missing file is not an
// error.
func Load(path string) (Config, error) {
	return LoadWith(path, loader.DefaultFS(), loader.NewEnvLoader(loader.DefaultEnvPrefix))
}

// LoadWith is Load with an explicit file system and environment loader.
// A nil env skips the environment layer.
func LoadWith(path string, fsys loader.FileSystem, env loader.Loader) (Config, error) {
	merged := defaultMap()

	if path != "" {
		fl, err := loader.ForPathWithFS(fsys, path)
		if err != nil {
			return Config{}, err
		}
		fileConfig, err := fl.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, fileConfig)
	}

	if env != nil {
		envConfig, err := env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envConfig)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap decodes a merged configuration map. Settings absent from data
// keep their default values.
func FromMap(data map[string]any) (Config, error) {
	cfg := Default()
	d := decoder{data: data}

	d.stringVal("logging.level", &cfg.Logging.Level)
	d.stringVal("account.name", &cfg.Account.Name)
	d.int64Val("account.initialBalance", &cfg.Account.InitialBalance)
	d.intVal("history.maxEntries", &cfg.History.MaxEntries)
	d.int64List("tree.values", &cfg.Tree.Values)
	d.stringVal("tree.layout", &cfg.Tree.Layout)
	d.durationVal("script.timeout", &cfg.Script.Timeout)

	if d.err != nil {
		return Config{}, d.err
	}
	return cfg, nil
}

// Validate checks that every setting is within range.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return &SettingError{Path: "logging.level", Value: c.Logging.Level, Err: ErrInvalidConfig}
	}
	if c.Account.InitialBalance < 0 {
		return &SettingError{Path: "account.initialBalance", Value: c.Account.InitialBalance, Err: ErrInvalidConfig}
	}
	if c.History.MaxEntries < 0 {
		return &SettingError{Path: "history.maxEntries", Value: c.History.MaxEntries, Err: ErrInvalidConfig}
	}
	switch c.Tree.Layout {
	case LayoutLevelOrder, LayoutBalanced:
	default:
		return &SettingError{Path: "tree.layout", Value: c.Tree.Layout, Err: ErrInvalidConfig}
	}
	if c.Script.Timeout <= 0 {
		return &SettingError{Path: "script.timeout", Value: c.Script.Timeout, Err: ErrInvalidConfig}
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c Config) LogLevel() logging.LogLevel {
	return logging.ParseLogLevel(c.Logging.Level)
}

// decoder reads typed values out of a nested map, keeping the first error.
type decoder struct {
	data map[string]any
	err  error
}

func (d *decoder) fail(path string, v any) {
	if d.err == nil {
		d.err = &SettingError{Path: path, Value: v, Err: ErrTypeMismatch}
	}
}

func (d *decoder) stringVal(path string, dst *string) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		d.fail(path, v)
		return
	}
	*dst = s
}

func (d *decoder) int64Val(path string, dst *int64) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return
	}
	n, ok := toInt64(v)
	if !ok {
		d.fail(path, v)
		return
	}
	*dst = n
}

func (d *decoder) intVal(path string, dst *int) {
	var n int64
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return
	}
	n, ok = toInt64(v)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		d.fail(path, v)
		return
	}
	*dst = int(n)
}

func (d *decoder) int64List(path string, dst *[]int64) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return
	}

	var items []any
	switch val := v.(type) {
	case []any:
		items = val
	case []int64:
		*dst = append([]int64(nil), val...)
		return
	case string:
		// Comma-separated list, as given on the command line
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	default:
		n, ok := toInt64(v)
		if !ok {
			d.fail(path, v)
			return
		}
		*dst = []int64{n}
		return
	}

	out := make([]int64, 0, len(items))
	for _, item := range items {
		n, ok := toInt64(item)
		if !ok {
			d.fail(path, v)
			return
		}
		out = append(out, n)
	}
	*dst = out
}

func (d *decoder) durationVal(path string, dst *time.Duration) {
	v, ok := loader.Lookup(d.data, path)
	if !ok {
		return
	}
	switch val := v.(type) {
	case time.Duration:
		*dst = val
	case string:
		dur, err := time.ParseDuration(strings.TrimSpace(val))
		if err != nil {
			// Bare numbers are seconds
			n, ok := toInt64(val)
			if !ok {
				d.fail(path, v)
				return
			}
			dur = time.Duration(n) * time.Second
		}
		*dst = dur
	default:
		// Bare numbers are seconds
		n, ok := toInt64(v)
		if !ok {
			d.fail(path, v)
			return
		}
		*dst = time.Duration(n) * time.Second
	}
}

// toInt64 converts the integer shapes produced by the loaders.
// Floats are accepted only when integral (JSON numbers decode as float64).
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, so compare against 2^63.
		if n != math.Trunc(n) || n >= 1<<63 || n < -(1<<63) {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
