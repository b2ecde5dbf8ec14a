package entities

import (
	"time"

	"gorm.io/gorm"
)

type BookStatus string

const (
	BookStatusDraft     BookStatus = "draft"
	BookStatusPublished BookStatus = "published"
	BookStatusArchived  BookStatus = "archived"
)

type Book struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"index;size:512" json:"title"`
	Author     string `gorm:"index;size:256" json:"author"` // free text, not a foreign key
	CategoryID *uint  `gorm:"index" json:"category_id,omitempty"`
	// Denormalized category name; kept in sync on create/update, used by
	// list views that don't preload the relation.
	Category        string     `gorm:"size:100" json:"category,omitempty"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	CoverURL        string     `gorm:"size:2048" json:"cover_url,omitempty"`
	AudioURL        string     `gorm:"size:2048" json:"audio_url,omitempty"`
	DurationSeconds int        `gorm:"column:duration_in_seconds" json:"duration_in_seconds"`
	Status          BookStatus `gorm:"size:20;index;default:'draft'" json:"status"`

	CategoryRef *Category `gorm:"foreignKey:CategoryID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Derived per fetch, never persisted.
	BookCount int64 `gorm:"-" json:"book_count"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256" json:"name"`
	Biography string    `gorm:"type:text" json:"biography,omitempty"`
	ImageURL  string    `gorm:"size:2048" json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Derived by free-text name match against books; never persisted.
	BookCount int64 `gorm:"-" json:"book_count"`
}

func (Book) TableName() string {
	return "books"
}

func (Category) TableName() string {
	return "categories"
}

func (Author) TableName() string {
	return "authors"
}
