// Package books provides database operations for the audiobook catalog.
//
// This package implements the BookStore interface defined in internal/http.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllBooks retrieves the full catalog, newest first.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("created_at DESC").Find(&books).Error
	return books, err
}

// GetPublishedBooks retrieves only books visible to end users, newest first.
func (r *Repository) GetPublishedBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("status = ?", entities.BookStatusPublished).
		Order("created_at DESC").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBooksByCategory retrieves all books in a category, newest first.
func (r *Repository) GetBooksByCategory(categoryID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("category_id = ?", categoryID).
		Order("created_at DESC").Find(&books).Error
	return books, err
}

// SearchBooks searches by title, author or description (case-insensitive
// partial match), newest first.
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			searchPattern, searchPattern, searchPattern).
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

// CreateBook inserts a new book.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// UpdateBook applies exactly the provided fields to the book and returns
// the updated row.
func (r *Repository) UpdateBook(id uint, fields map[string]any) (*entities.Book, error) {
	if err := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetBookByID(id)
}

// DeleteBook removes a book by ID.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// CountBooks returns the total number of books.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// CountBooksByStatus returns book counts keyed by status.
func (r *Repository) CountBooksByStatus() (map[entities.BookStatus]int64, error) {
	type row struct {
		Status entities.BookStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&entities.Book{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[entities.BookStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountBooksByCategory returns the number of books in a category.
func (r *Repository) CountBooksByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// CountBooksByAuthorName counts books whose free-text author field matches
// the given name. Book.Author is not a foreign key; this is the only
// relation authors have to the catalog.
func (r *Repository) CountBooksByAuthorName(name string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("author = ?", name).Count(&count).Error
	return count, err
}

// TotalDurationSeconds sums the duration of all published books.
func (r *Repository) TotalDurationSeconds() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Book{}).
		Where("status = ?", entities.BookStatusPublished).
		Select("COALESCE(SUM(duration_in_seconds), 0)").
		Scan(&total).Error
	return total, err
}
