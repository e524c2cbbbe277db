package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/vignette/internal/notify"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordChange(notify.Change{Topic: "account.deposit"})
	m.RecordChange(notify.Change{Topic: "account.deposit"})
	m.RecordChange(notify.Change{Topic: "account.undo"})
	m.RecordScript(10*time.Millisecond, nil)
	m.RecordScript(30*time.Millisecond, errors.New("boom"))

	s := m.Snapshot()
	assert.Equal(t, uint64(3), s.Changes)
	assert.Equal(t, map[string]uint64{"account.deposit": 2, "account.undo": 1}, s.ChangesByOp)
	assert.Equal(t, uint64(2), s.Scripts)
	assert.Equal(t, uint64(1), s.ScriptErrors)
	assert.Equal(t, 20*time.Millisecond, s.AvgScript)

	// The snapshot is a copy.
	s.ChangesByOp["account.undo"] = 99
	assert.Equal(t, uint64(1), m.Snapshot().ChangesByOp["account.undo"])
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordChange(notify.Change{Topic: "account.withdraw"})
	m.RecordScript(time.Millisecond, nil)

	m.Reset()

	s := m.Snapshot()
	assert.Zero(t, s.Changes)
	assert.Empty(t, s.ChangesByOp)
	assert.Zero(t, s.Scripts)
	assert.Zero(t, s.AvgScript)
}
