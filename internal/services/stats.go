package services

import (
	"time"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// The aggregate sources the stats service reads from. Each is
// satisfied by its repository under internal/database.
type bookCounter interface {
	CountBooks() (int64, error)
	CountBooksByStatus() (map[entities.BookStatus]int64, error)
	TotalDurationSeconds() (int64, error)
}

type categoryCounter interface {
	CountCategories() (int64, error)
}

type authorCounter interface {
	CountAuthors() (int64, error)
}

type userCounter interface {
	CountUsers() (int64, error)
	CountUsersSince(since time.Time) (int64, error)
}

type favoriteCounter interface {
	CountFavorites() (int64, error)
}

type progressCounter interface {
	TotalListenedSeconds() (int64, error)
}

// StatsService fans dashboard counter queries out to the individual
// repositories behind one value.
type StatsService struct {
	books      bookCounter
	categories categoryCounter
	authors    authorCounter
	users      userCounter
	favorites  favoriteCounter
	progress   progressCounter
}

func NewStatsService(
	books bookCounter,
	categories categoryCounter,
	authors authorCounter,
	users userCounter,
	favorites favoriteCounter,
	progress progressCounter,
) *StatsService {
	return &StatsService{
		books:      books,
		categories: categories,
		authors:    authors,
		users:      users,
		favorites:  favorites,
		progress:   progress,
	}
}

func (s *StatsService) CountBooks() (int64, error) { return s.books.CountBooks() }

func (s *StatsService) CountBooksByStatus() (map[entities.BookStatus]int64, error) {
	return s.books.CountBooksByStatus()
}

func (s *StatsService) TotalDurationSeconds() (int64, error) {
	return s.books.TotalDurationSeconds()
}

func (s *StatsService) CountCategories() (int64, error) { return s.categories.CountCategories() }

func (s *StatsService) CountAuthors() (int64, error) { return s.authors.CountAuthors() }

func (s *StatsService) CountUsers() (int64, error) { return s.users.CountUsers() }

func (s *StatsService) CountUsersSince(since time.Time) (int64, error) {
	return s.users.CountUsersSince(since)
}

func (s *StatsService) CountFavorites() (int64, error) { return s.favorites.CountFavorites() }

func (s *StatsService) TotalListenedSeconds() (int64, error) {
	return s.progress.TotalListenedSeconds()
}
