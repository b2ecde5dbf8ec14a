package books

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
	dbPath := "./test_books_" + t.Name() + ".db"

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

func TestRepository_CreateAndGet(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{
		Title:           "دع القلق وابدأ الحياة",
		Author:          "ديل كارنيجي",
		Description:     "كتاب في التنمية الذاتية",
		DurationSeconds: 14400,
		Status:          entities.BookStatusPublished,
	}
	require.NoError(t, repo.CreateBook(book))
	require.NotZero(t, book.ID)

	got, err := repo.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "دع القلق وابدأ الحياة", got.Title)
	assert.Equal(t, 14400, got.DurationSeconds)
}

func TestRepository_GetPublishedBooks(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateBook(&entities.Book{Title: "Draft", Author: "A", Status: entities.BookStatusDraft}))
	require.NoError(t, repo.CreateBook(&entities.Book{Title: "Published", Author: "A", Status: entities.BookStatusPublished}))
	require.NoError(t, repo.CreateBook(&entities.Book{Title: "Archived", Author: "A", Status: entities.BookStatusArchived}))

	published, err := repo.GetPublishedBooks()
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Published", published[0].Title)

	all, err := repo.GetAllBooks()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_SearchBooks(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateBook(&entities.Book{Title: "الأيام", Author: "طه حسين", Status: entities.BookStatusPublished}))
	require.NoError(t, repo.CreateBook(&entities.Book{Title: "Clean Code", Author: "Robert Martin", Description: "software craftsmanship", Status: entities.BookStatusPublished}))

	byTitle, err := repo.SearchBooks("الأيام")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "طه حسين", byTitle[0].Author)

	byAuthorCaseInsensitive, err := repo.SearchBooks("robert")
	require.NoError(t, err)
	require.Len(t, byAuthorCaseInsensitive, 1)

	byDescription, err := repo.SearchBooks("craftsmanship")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)

	none, err := repo.SearchBooks("nonexistent")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_UpdateBookPatchesOnlyGivenFields(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{
		Title:           "Original",
		Author:          "Author",
		Description:     "Original description",
		DurationSeconds: 600,
		Status:          entities.BookStatusDraft,
	}
	require.NoError(t, repo.CreateBook(book))

	updated, err := repo.UpdateBook(book.ID, map[string]any{
		"title":  "Renamed",
		"status": entities.BookStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, entities.BookStatusPublished, updated.Status)
	// Untouched fields survive the patch.
	assert.Equal(t, "Original description", updated.Description)
	assert.Equal(t, 600, updated.DurationSeconds)
}

func TestRepository_DeleteBook(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Doomed", Author: "A"}
	require.NoError(t, repo.CreateBook(book))

	require.NoError(t, repo.DeleteBook(book.ID))

	_, err := repo.GetBookByID(book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CountBooksByStatus(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateBook(&entities.Book{Title: "A", Author: "X", Status: entities.BookStatusPublished}))
	require.NoError(t, repo.CreateBook(&entities.Book{Title: "B", Author: "X", Status: entities.BookStatusPublished}))
	require.NoError(t, repo.CreateBook(&entities.Book{Title: "C", Author: "Y", Status: entities.BookStatusDraft}))

	counts, err := repo.CountBooksByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entities.BookStatusPublished])
	assert.Equal(t, int64(1), counts[entities.BookStatusDraft])

	byAuthor, err := repo.CountBooksByAuthorName("X")
	require.NoError(t, err)
	assert.Equal(t, int64(2), byAuthor)
}
