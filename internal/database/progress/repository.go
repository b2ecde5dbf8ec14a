// Package progress provides database operations for listening progress.
//
// Writes are upserts keyed on the (user_id, book_id) unique index, so a
// pair never has more than one row and the race a client-side
// check-then-act would leave open is closed at the storage layer.
package progress

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Repository handles all listening progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert records the user's position in a book, replacing any prior row
// for the same (user, book).
func (r *Repository) Upsert(userID, bookID uint, seconds int) error {
	now := time.Now().UTC()
	row := entities.ListeningProgress{
		UserID:          userID,
		BookID:          bookID,
		ProgressSeconds: seconds,
		LastListenedAt:  now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"progress_in_seconds": seconds,
			"last_listened_at":    now,
		}),
	}).Create(&row).Error
}

// Get returns the progress row for (user, book), or gorm.ErrRecordNotFound.
func (r *Repository) Get(userID, bookID uint) (*entities.ListeningProgress, error) {
	var row entities.ListeningProgress
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetForUser returns all progress rows for a user with books preloaded,
// most recently listened first.
func (r *Repository) GetForUser(userID uint) ([]entities.ListeningProgress, error) {
	var rows []entities.ListeningProgress
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("last_listened_at DESC").
		Find(&rows).Error
	return rows, err
}

// Delete removes the progress row for (user, book).
func (r *Repository) Delete(userID, bookID uint) error {
	return r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.ListeningProgress{}).Error
}

// GetAll returns every progress row, most recently listened first.
// Used by the CSV export.
func (r *Repository) GetAll() ([]entities.ListeningProgress, error) {
	var rows []entities.ListeningProgress
	err := r.db.Order("last_listened_at DESC").Find(&rows).Error
	return rows, err
}

// TotalListenedSeconds sums progress across all users and books.
func (r *Repository) TotalListenedSeconds() (int64, error) {
	var total int64
	err := r.db.Model(&entities.ListeningProgress{}).
		Select("COALESCE(SUM(progress_in_seconds), 0)").
		Scan(&total).Error
	return total, err
}

// Percentage converts a progress position into a completion percentage,
// clamped to [0, 100]. A zero or negative total duration yields exactly 0.
func Percentage(progressSeconds, totalSeconds int) float64 {
	if totalSeconds <= 0 {
		return 0
	}
	pct := float64(progressSeconds) / float64(totalSeconds) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
