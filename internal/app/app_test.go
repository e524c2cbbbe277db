package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/vignette/internal/account"
	"github.com/dshills/vignette/internal/config"
	"github.com/dshills/vignette/internal/logging"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) (*Application, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	var out bytes.Buffer
	app, err := New(Options{
		Config:    &cfg,
		Output:    &out,
		LogOutput: &bytes.Buffer{},
	})
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return app, &out
}

func TestNew(t *testing.T) {
	app, _ := newTestApp(t, nil)

	assert.Equal(t, int64(100), app.Account().Balance())
	assert.Equal(t, "default", app.Account().Name())
	assert.Equal(t, logging.LogLevelInfo, app.Logger().Level())
	assert.NotNil(t, app.Notifier())
}

func TestNewLogLevelOverride(t *testing.T) {
	cfg := config.Default()
	app, err := New(Options{Config: &cfg, LogLevel: "debug", LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, logging.LogLevelDebug, app.Logger().Level())
	assert.Equal(t, "debug", app.Config().Logging.Level)
}

func TestNewErrors(t *testing.T) {
	cfg := config.Default()

	_, err := New(Options{Config: &cfg, LogLevel: "loud"})
	var initErr *InitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, "config", initErr.Component)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	bad := config.Default()
	bad.Account.InitialBalance = -1
	_, err = New(Options{Config: &bad})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = New(Options{Config: &cfg, Watch: true})
	assert.ErrorIs(t, err, ErrNoConfigFile)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vignette.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[account]
name = "savings"
initialBalance = 250

[tree]
layout = "balanced"
`), 0o644))

	app, err := New(Options{ConfigPath: path, LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, int64(250), app.Account().Balance())
	assert.Equal(t, "savings", app.Account().Name())
	assert.Equal(t, config.LayoutBalanced, app.Config().Tree.Layout)
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		values []int64
		want   []int64
	}{
		{"level order", config.LayoutLevelOrder, []int64{1, 2, 3}, []int64{2, 1, 3}},
		{"level order full", config.LayoutLevelOrder, []int64{4, 2, 6, 1, 3, 5, 7}, []int64{1, 2, 3, 4, 5, 6, 7}},
		{"balanced keeps order", config.LayoutBalanced, []int64{5, 1, 9, 3}, []int64{5, 1, 9, 3}},
		{"single", config.LayoutLevelOrder, []int64{42}, []int64{42}},
		{"empty", config.LayoutLevelOrder, []int64{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, func(c *config.Config) { c.Tree.Layout = tt.layout })
			assert.Equal(t, tt.want, app.Walk(tt.values))
		})
	}
}

func TestWalkConfiguredValues(t *testing.T) {
	app, _ := newTestApp(t, func(c *config.Config) { c.Tree.Values = []int64{10, 20, 30, 40} })

	assert.Equal(t, []int64{40, 20, 10, 30}, app.Walk(nil))
}

func TestEval(t *testing.T) {
	app, out := newTestApp(t, nil)

	require.NoError(t, app.Eval(`
account.deposit(50)
account.withdraw(30)
account.undo()
print(account.balance())
`))

	assert.Equal(t, "150\n", out.String())
	assert.Equal(t, int64(150), app.Account().Balance())

	m := app.Metrics().Snapshot()
	assert.Equal(t, uint64(3), m.Changes)
	assert.Equal(t, uint64(1), m.ChangesByOp[account.TopicDeposit])
	assert.Equal(t, uint64(1), m.ChangesByOp[account.TopicWithdraw])
	assert.Equal(t, uint64(1), m.ChangesByOp[account.TopicUndo])
	assert.Equal(t, uint64(1), m.Scripts)
	assert.Zero(t, m.ScriptErrors)
}

func TestEvalError(t *testing.T) {
	app, _ := newTestApp(t, nil)

	err := app.Eval(`error("boom")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, uint64(1), app.Metrics().Snapshot().ScriptErrors)
}

func TestRunScript(t *testing.T) {
	app, out := newTestApp(t, nil)

	path := filepath.Join(t.TempDir(), "session.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
account.deposit(5)
print(table.concat(tree.inorder({2, 1, 3}), " "))
`), 0o644))

	require.NoError(t, app.RunScript(path))
	assert.Equal(t, "1 2 3\n", out.String())
	assert.Equal(t, int64(105), app.Account().Balance())

	assert.Error(t, app.RunScript(filepath.Join(t.TempDir(), "missing.lua")))
}

func TestExportHistory(t *testing.T) {
	app, _ := newTestApp(t, func(c *config.Config) { c.Account.Name = "checking" })

	acct := app.Account()
	_, err := acct.Deposit(50)
	require.NoError(t, err)
	_, err = acct.Withdraw(20)
	require.NoError(t, err)
	_, ok := acct.Undo()
	require.True(t, ok)

	doc, err := app.ExportHistory()
	require.NoError(t, err)
	require.True(t, gjson.Valid(doc))

	assert.Equal(t, "checking", gjson.Get(doc, "account").String())
	assert.Equal(t, int64(150), gjson.Get(doc, "balance").Int())
	assert.Equal(t, int64(1), gjson.Get(doc, "position").Int())
	assert.Equal(t, int64(3), gjson.Get(doc, "length").Int())

	snaps := gjson.Get(doc, "snapshots").Array()
	require.Len(t, snaps, 3)
	assert.Equal(t, "initial", snaps[0].Get("kind").String())
	assert.Equal(t, int64(100), snaps[0].Get("value").Int())
	assert.Equal(t, int64(130), snaps[2].Get("value").Int())
	assert.True(t, snaps[1].Get("current").Bool())
	assert.False(t, snaps[2].Get("current").Bool())

	first := acct.History().Snapshots()[0]
	assert.Equal(t, first.ID().String(), snaps[0].Get("id").String())
}

func TestWatchReloadsLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vignette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644))

	app, err := New(Options{
		ConfigPath:    path,
		Watch:         true,
		WatchDebounce: 20 * time.Millisecond,
		LogOutput:     &bytes.Buffer{},
	})
	require.NoError(t, err)
	defer app.Shutdown()
	require.Equal(t, logging.LogLevelWarn, app.Logger().Level())

	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\ntree:\n  layout: balanced\n"), 0o644))

	require.Eventually(t, func() bool {
		return app.Logger().Level() == logging.LogLevelDebug
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, config.LayoutBalanced, app.Config().Tree.Layout)
}

func TestShutdown(t *testing.T) {
	cfg := config.Default()
	app, err := New(Options{Config: &cfg, LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)

	app.Shutdown()
	app.Shutdown()

	assert.ErrorIs(t, app.Eval(`print(1)`), ErrShutdown)
	_, err = app.ExportHistory()
	assert.ErrorIs(t, err, ErrShutdown)
}
