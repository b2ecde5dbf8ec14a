package collection

import (
	"context"
	"sync"
)

// ProgressTracker mirrors the user's listening positions. Saves go
// through the server's upsert, so there is never more than one
// position per book and concurrent saves resolve to the last write.
type ProgressTracker struct {
	save func(ctx context.Context, bookID uint, seconds int) error

	mu        sync.Mutex
	positions map[uint]int
}

func NewProgressTracker(save func(ctx context.Context, bookID uint, seconds int) error) *ProgressTracker {
	return &ProgressTracker{save: save, positions: make(map[uint]int)}
}

// UpdateProgress stores the position remotely and locally. A second
// call for the same book replaces the first.
func (t *ProgressTracker) UpdateProgress(ctx context.Context, bookID uint, seconds int) error {
	if err := t.save(ctx, bookID, seconds); err != nil {
		return err
	}

	t.mu.Lock()
	t.positions[bookID] = seconds
	t.mu.Unlock()
	return nil
}

// ProgressSeconds returns the locally known position for a book.
func (t *ProgressTracker) ProgressSeconds(bookID uint) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.positions[bookID]
}

// SetLocal seeds a position without a remote call, for hydration from
// a fetched progress list.
func (t *ProgressTracker) SetLocal(bookID uint, seconds int) {
	t.mu.Lock()
	t.positions[bookID] = seconds
	t.mu.Unlock()
}

// ProgressPercentage derives the playback percentage for a book with
// the given total duration: clamp(p/d*100, 0, 100), exactly 0 when the
// duration is zero or negative.
func (t *ProgressTracker) ProgressPercentage(bookID uint, totalSeconds int) float64 {
	if totalSeconds <= 0 {
		return 0
	}

	pct := float64(t.ProgressSeconds(bookID)) / float64(totalSeconds) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
