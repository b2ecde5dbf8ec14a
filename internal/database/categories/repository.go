// Package categories provides database operations for catalog categories.
//
// # Usage
//
//	repo := categories.NewRepository(db)
//	cats, err := repo.GetAllCategories()
package categories

import (
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllCategories retrieves all categories ordered by name, with the
// derived book count filled in per row. BookCount is never persisted; it
// is only as fresh as this fetch.
func (r *Repository) GetAllCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	for i := range categories {
		var count int64
		if err := r.db.Model(&entities.Book{}).
			Where("category_id = ?", categories[i].ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		categories[i].BookCount = count
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (r *Repository) GetCategoryByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category.
func (r *Repository) CreateCategory(category *entities.Category) error {
	return r.db.Create(category).Error
}

// UpdateCategory applies exactly the provided fields and returns the
// updated row.
func (r *Repository) UpdateCategory(id uint, fields map[string]any) (*entities.Category, error) {
	if err := r.db.Model(&entities.Category{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetCategoryByID(id)
}

// DeleteCategory removes a category. Books keep their denormalized
// category name but lose the reference.
func (r *Repository) DeleteCategory(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Book{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Category{}, id).Error
	})
}

// CountCategories returns the total number of categories.
func (r *Repository) CountCategories() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Category{}).Count(&count).Error
	return count, err
}
