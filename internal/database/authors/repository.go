// Package authors provides database operations for author profiles.
//
// Authors are related to books only through the free-text Book.Author
// field; there is no foreign key. Derived book counts match on name.
package authors

import (
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllAuthors retrieves all authors ordered by name, with derived book
// counts filled in per row.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	if err != nil {
		return nil, err
	}
	for i := range authors {
		var count int64
		if err := r.db.Model(&entities.Book{}).
			Where("author = ?", authors[i].Name).
			Count(&count).Error; err != nil {
			return nil, err
		}
		authors[i].BookCount = count
	}
	return authors, nil
}

// GetAuthorByID retrieves an author by ID.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// SearchAuthors searches authors by name (case-insensitive partial match).
func (r *Repository) SearchAuthors(query string) ([]entities.Author, error) {
	var authors []entities.Author
	searchPattern := "%" + query + "%"
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", searchPattern).
		Order("name ASC").Find(&authors).Error
	return authors, err
}

// CreateAuthor inserts a new author.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Create(author).Error
}

// UpdateAuthor applies exactly the provided fields and returns the
// updated row.
func (r *Repository) UpdateAuthor(id uint, fields map[string]any) (*entities.Author, error) {
	if err := r.db.Model(&entities.Author{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetAuthorByID(id)
}

// DeleteAuthor removes an author by ID. Books referencing the name are
// untouched; the relation is free text only.
func (r *Repository) DeleteAuthor(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

// CountAuthors returns the total number of authors.
func (r *Repository) CountAuthors() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Count(&count).Error
	return count, err
}
