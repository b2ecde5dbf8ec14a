package collection

import (
	"context"
	"sync"
)

// FavoritesSet mirrors the signed-in user's favorite books. Toggle is
// the sole mutation entry point; the server flips the row atomically
// and the set follows the reported state, keeping at most one entry
// per book.
type FavoritesSet struct {
	toggle func(ctx context.Context, bookID uint) (bool, error)
	list   func(ctx context.Context) ([]uint, error)

	mu      sync.Mutex
	members map[uint]bool
}

func NewFavoritesSet(
	toggle func(ctx context.Context, bookID uint) (bool, error),
	list func(ctx context.Context) ([]uint, error),
) *FavoritesSet {
	return &FavoritesSet{toggle: toggle, list: list, members: make(map[uint]bool)}
}

// Refresh replaces the set with the remote membership.
func (s *FavoritesSet) Refresh(ctx context.Context) error {
	ids, err := s.list(ctx)
	if err != nil {
		return err
	}

	members := make(map[uint]bool, len(ids))
	for _, id := range ids {
		members[id] = true
	}

	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
	return nil
}

// Toggle flips membership for one book and returns the new state. On
// failure the local set is left unchanged.
func (s *FavoritesSet) Toggle(ctx context.Context, bookID uint) (bool, error) {
	favorited, err := s.toggle(ctx, bookID)
	if err != nil {
		return s.IsFavorite(bookID), err
	}

	s.mu.Lock()
	if favorited {
		s.members[bookID] = true
	} else {
		delete(s.members, bookID)
	}
	s.mu.Unlock()
	return favorited, nil
}

// IsFavorite reports current membership.
func (s *FavoritesSet) IsFavorite(bookID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[bookID]
}

// Count reports the number of favorites currently held.
func (s *FavoritesSet) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
