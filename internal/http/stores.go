package http

import (
	"time"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// This file consolidates the store interfaces consumed by the HTTP
// controllers. Each controller depends only on the operations it uses;
// the repository packages under internal/database satisfy them.

// BookStore provides catalog access for the books controller.
type BookStore interface {
	GetAllBooks() ([]entities.Book, error)
	GetPublishedBooks() ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	GetBooksByCategory(categoryID uint) ([]entities.Book, error)
	SearchBooks(query string) ([]entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(id uint, fields map[string]any) (*entities.Book, error)
	DeleteBook(id uint) error
}

// CategoryStore provides category access for the categories controller.
type CategoryStore interface {
	GetAllCategories() ([]entities.Category, error)
	GetCategoryByID(id uint) (*entities.Category, error)
	CreateCategory(category *entities.Category) error
	UpdateCategory(id uint, fields map[string]any) (*entities.Category, error)
	DeleteCategory(id uint) error
}

// AuthorStore provides author access for the authors controller.
type AuthorStore interface {
	GetAllAuthors() ([]entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	SearchAuthors(query string) ([]entities.Author, error)
	CreateAuthor(author *entities.Author) error
	UpdateAuthor(id uint, fields map[string]any) (*entities.Author, error)
	DeleteAuthor(id uint) error
}

// UserStore provides account access for the users controller.
type UserStore interface {
	GetUserByID(id uint) (*entities.User, error)
	GetAllUsers() ([]entities.User, error)
	SearchUsers(query string) ([]entities.User, error)
	UpdateUser(id uint, fields map[string]any) (*entities.User, error)
	SetBanned(id uint, banned bool) error
	DeleteUser(id uint) error
	GrantAdmin(userID uint) error
	RevokeAdmin(userID uint) error
}

// FavoriteStore provides per-user favorites for the favorites controller.
type FavoriteStore interface {
	Toggle(userID, bookID uint) (bool, error)
	IsFavorite(userID, bookID uint) (bool, error)
	GetFavoritesForUser(userID uint) ([]entities.Favorite, error)
}

// ProgressStore provides listening positions for the progress controller.
type ProgressStore interface {
	Upsert(userID, bookID uint, seconds int) error
	Get(userID, bookID uint) (*entities.ListeningProgress, error)
	GetForUser(userID uint) ([]entities.ListeningProgress, error)
	Delete(userID, bookID uint) error
}

// NotificationStore provides notifications for users and admins.
type NotificationStore interface {
	Create(notification *entities.Notification) error
	GetForUser(userID uint) ([]entities.Notification, error)
	GetAll() ([]entities.Notification, error)
	MarkRead(id uint) error
	Delete(id uint) error
}

// SettingStore provides per-user key/value settings.
type SettingStore interface {
	GetSetting(userID uint, key string) (*entities.Setting, error)
	SetSetting(userID uint, key, value string) error
	DeleteSetting(userID uint, key string) error
}

// StatsStore aggregates catalog and account counters for the admin
// dashboard.
type StatsStore interface {
	CountBooks() (int64, error)
	CountBooksByStatus() (map[entities.BookStatus]int64, error)
	TotalDurationSeconds() (int64, error)
	CountCategories() (int64, error)
	CountAuthors() (int64, error)
	CountUsers() (int64, error)
	CountUsersSince(since time.Time) (int64, error)
	CountFavorites() (int64, error)
	TotalListenedSeconds() (int64, error)
}

// Auditor records admin and auth activity.
type Auditor interface {
	LogAdminAction(adminID uint, eventType entities.AuditEventType, action, description string, entityID uint, err error)
	LogAuth(userID uint, action, description, ipAddress string, err error)
	LogExport(adminID uint, resource string, rows int, err error)
	GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}
