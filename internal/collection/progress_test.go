package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTrackerUpsertSemantics(t *testing.T) {
	saved := map[uint][]int{}
	tracker := NewProgressTracker(func(ctx context.Context, bookID uint, seconds int) error {
		saved[bookID] = append(saved[bookID], seconds)
		return nil
	})

	require.NoError(t, tracker.UpdateProgress(context.Background(), 1, 120))
	require.NoError(t, tracker.UpdateProgress(context.Background(), 1, 300))

	// Two saves for one book leave exactly one position, the second.
	assert.Equal(t, 300, tracker.ProgressSeconds(1))
	assert.Len(t, saved[1], 2)
}

func TestProgressTrackerFailedSaveKeepsLocalState(t *testing.T) {
	fail := false
	tracker := NewProgressTracker(func(ctx context.Context, bookID uint, seconds int) error {
		if fail {
			return errors.New("offline")
		}
		return nil
	})

	require.NoError(t, tracker.UpdateProgress(context.Background(), 1, 60))
	fail = true
	require.Error(t, tracker.UpdateProgress(context.Background(), 1, 999))
	assert.Equal(t, 60, tracker.ProgressSeconds(1))
}

func TestProgressPercentage(t *testing.T) {
	tracker := NewProgressTracker(func(ctx context.Context, bookID uint, seconds int) error {
		return nil
	})
	tracker.SetLocal(1, 30)
	tracker.SetLocal(2, 500)
	tracker.SetLocal(3, -5)

	assert.InDelta(t, 50.0, tracker.ProgressPercentage(1, 60), 0.0001)
	// Progress beyond the duration clamps to 100.
	assert.Equal(t, 100.0, tracker.ProgressPercentage(2, 60))
	// Negative stored progress clamps to 0.
	assert.Equal(t, 0.0, tracker.ProgressPercentage(3, 60))
	// Zero or negative duration is exactly 0, not NaN or Inf.
	assert.Equal(t, 0.0, tracker.ProgressPercentage(1, 0))
	assert.Equal(t, 0.0, tracker.ProgressPercentage(1, -10))
	// Unknown book is 0 progress.
	assert.Equal(t, 0.0, tracker.ProgressPercentage(99, 60))
}
