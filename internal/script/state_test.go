package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestNewState(t *testing.T) {
	s := NewState()
	defer s.Close()

	assert.False(t, s.IsClosed())
	require.NoError(t, s.DoString(`x = 1 + 1`))
	assert.Equal(t, lua.LNumber(2), s.GetGlobal("x"))
}

func TestStateSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "require"} {
		assert.Equal(t, lua.LNil, s.GetGlobal(name), name)
	}
	for _, name := range []string{"table", "string", "math", "pairs"} {
		assert.NotEqual(t, lua.LNil, s.GetGlobal(name), name)
	}
}

func TestStatePrint(t *testing.T) {
	var out bytes.Buffer
	s := NewState(WithOutput(&out))
	defer s.Close()

	require.NoError(t, s.DoString(`print("balance", 150)`))
	assert.Equal(t, "balance\t150\n", out.String())
}

func TestStateSyntaxError(t *testing.T) {
	s := NewState()
	defer s.Close()

	assert.Error(t, s.DoString(`this is not lua`))
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(`while true do end`)
	assert.ErrorIs(t, err, ErrTimeout)

	// The state stays usable after a timeout.
	require.NoError(t, s.DoString(`y = 3`))
	assert.Equal(t, lua.LNumber(3), s.GetGlobal("y"))
}

func TestStateDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lua")
	require.NoError(t, os.WriteFile(path, []byte(`z = "from file"`), 0o644))

	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoFile(path))
	assert.Equal(t, lua.LString("from file"), s.GetGlobal("z"))

	assert.Error(t, s.DoFile(filepath.Join(t.TempDir(), "missing.lua")))
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(`x = 1`), ErrStateClosed)
	assert.Equal(t, lua.LNil, s.GetGlobal("x"))
}
