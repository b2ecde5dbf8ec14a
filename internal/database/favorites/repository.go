// Package favorites provides database operations for user favorites.
//
// Toggle is the sole mutation entry point; the composite unique index on
// (user_id, book_id) guarantees at most one row per pair even if two
// toggles race.
//
// # Usage
//
//	repo := favorites.NewRepository(db)
//	nowFavorite, err := repo.Toggle(userID, bookID)
package favorites

import (
	"errors"

	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Repository handles all favorites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle inverts the favorite state for (user, book) and returns the new
// membership: true when the book is now a favorite. The delete-then-insert
// runs in one transaction so a concurrent toggle sees either the old or
// the new state, never a duplicate.
func (r *Repository) Toggle(userID, bookID uint) (bool, error) {
	var nowFavorite bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Favorite
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err == nil {
			nowFavorite = false
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		nowFavorite = true
		return tx.Create(&entities.Favorite{UserID: userID, BookID: bookID}).Error
	})
	return nowFavorite, err
}

// IsFavorite reports whether the book is a favorite for the user.
func (r *Repository) IsFavorite(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// GetFavoritesForUser returns the user's favorites with books preloaded,
// newest first.
func (r *Repository) GetFavoritesForUser(userID uint) ([]entities.Favorite, error) {
	var favorites []entities.Favorite
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// CountFavorites returns the total number of favorite rows.
func (r *Repository) CountFavorites() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Favorite{}).Count(&count).Error
	return count, err
}

// CountFavoritesForBook returns how many users favorited the book.
func (r *Repository) CountFavoritesForBook(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Favorite{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
