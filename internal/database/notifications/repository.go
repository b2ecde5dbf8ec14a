// Package notifications provides database operations for user
// notifications. UserID 0 marks a broadcast visible to everyone.
package notifications

import (
	"time"

	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Repository handles all notification database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notifications repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a notification. A zero UserID broadcasts it.
func (r *Repository) Create(notification *entities.Notification) error {
	return r.db.Create(notification).Error
}

// GetForUser returns the user's notifications plus broadcasts, newest
// first.
func (r *Repository) GetForUser(userID uint) ([]entities.Notification, error) {
	var rows []entities.Notification
	err := r.db.Where("user_id = ? OR user_id = 0", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// GetAll returns every notification, newest first.
func (r *Repository) GetAll() ([]entities.Notification, error) {
	var rows []entities.Notification
	err := r.db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// MarkRead stamps a notification as read. Marking twice keeps the first
// timestamp.
func (r *Repository) MarkRead(id uint) error {
	return r.db.Model(&entities.Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", time.Now().UTC()).Error
}

// Delete removes a notification by ID.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Notification{}, id).Error
}
