package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	calls   int
	lastArg int
	deleted int64
}

func (f *fakePruner) Prune(retentionDays int) (int64, error) {
	f.calls++
	f.lastArg = retentionDays
	return f.deleted, nil
}

func TestAuditRetentionSchedulerDisabled(t *testing.T) {
	pruner := &fakePruner{}
	s := NewAuditRetentionScheduler(pruner, 0, "0 3 * * *")

	require.NoError(t, s.Start())
	assert.False(t, s.isRunning)
	s.Stop()
}

func TestAuditRetentionSchedulerRunNow(t *testing.T) {
	pruner := &fakePruner{deleted: 4}
	s := NewAuditRetentionScheduler(pruner, 90, "0 3 * * *")

	deleted, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.Equal(t, 90, pruner.lastArg)
}

func TestAuditRetentionSchedulerStartStop(t *testing.T) {
	pruner := &fakePruner{}
	s := NewAuditRetentionScheduler(pruner, 30, "0 3 * * *")

	require.NoError(t, s.Start())
	assert.True(t, s.isRunning)

	// Starting twice is a no-op.
	require.NoError(t, s.Start())

	s.Stop()
	assert.False(t, s.isRunning)
}

func TestAuditRetentionSchedulerBadSchedule(t *testing.T) {
	s := NewAuditRetentionScheduler(&fakePruner{}, 30, "not a schedule")
	assert.Error(t, s.Start())
}
