package categories

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_categories_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Category{},
		&entities.Book{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_DerivedBookCounts(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	a := entities.Category{Name: "A"}
	b := entities.Category{Name: "B"}
	require.NoError(t, repo.CreateCategory(&a))
	require.NoError(t, repo.CreateCategory(&b))

	require.NoError(t, db.Create(&entities.Book{Title: "1", Author: "x", CategoryID: &a.ID}).Error)
	require.NoError(t, db.Create(&entities.Book{Title: "2", Author: "x", CategoryID: &a.ID}).Error)
	require.NoError(t, db.Create(&entities.Book{Title: "3", Author: "x", CategoryID: &b.ID}).Error)

	categories, err := repo.GetAllCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)

	// Name-ascending order: A then B, with counts 2 and 1.
	assert.Equal(t, "A", categories[0].Name)
	assert.Equal(t, int64(2), categories[0].BookCount)
	assert.Equal(t, "B", categories[1].Name)
	assert.Equal(t, int64(1), categories[1].BookCount)
}

func TestRepository_UpdateCategory(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	category := entities.Category{Name: "روايات", Description: "قديم"}
	require.NoError(t, repo.CreateCategory(&category))

	updated, err := repo.UpdateCategory(category.ID, map[string]any{"description": "روايات عربية"})
	require.NoError(t, err)
	assert.Equal(t, "روايات", updated.Name)
	assert.Equal(t, "روايات عربية", updated.Description)
}

func TestRepository_DeleteCategoryDetachesBooks(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	category := entities.Category{Name: "Doomed"}
	require.NoError(t, repo.CreateCategory(&category))

	book := entities.Book{Title: "Orphan", Author: "x", CategoryID: &category.ID, Category: "Doomed"}
	require.NoError(t, db.Create(&book).Error)

	require.NoError(t, repo.DeleteCategory(category.ID))

	_, err := repo.GetCategoryByID(category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The book survives with its reference cleared.
	var survivor entities.Book
	require.NoError(t, db.First(&survivor, book.ID).Error)
	assert.Nil(t, survivor.CategoryID)
	assert.Equal(t, "Doomed", survivor.Category)
}
