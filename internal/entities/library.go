package entities

import "time"

// Favorite links a user to a book. The composite unique index backs the
// at-most-one-favorite-per-(user, book) invariant so a toggle racing
// itself cannot produce duplicates.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorites_user_book" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_favorites_user_book" json:"book_id"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListeningProgress holds the single progress row per (user, book).
// Writes go through an upsert keyed on the composite unique index.
type ListeningProgress struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex:idx_progress_user_book" json:"user_id"`
	BookID          uint      `gorm:"uniqueIndex:idx_progress_user_book" json:"book_id"`
	ProgressSeconds int       `gorm:"column:progress_in_seconds" json:"progress_in_seconds"`
	LastListenedAt  time.Time `json:"last_listened_at"`
	Book            Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Notification is either addressed to one user or broadcast (UserID 0).
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index" json:"user_id"`
	Title     string     `gorm:"size:256" json:"title"`
	Body      string     `gorm:"type:text" json:"body,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (ListeningProgress) TableName() string {
	return "listening_progress"
}

func (Notification) TableName() string {
	return "notifications"
}
