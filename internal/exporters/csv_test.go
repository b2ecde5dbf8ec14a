package exporters

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IslamGh2004/sawtlib/internal/database/authors"
	"github.com/IslamGh2004/sawtlib/internal/database/books"
	"github.com/IslamGh2004/sawtlib/internal/database/categories"
	"github.com/IslamGh2004/sawtlib/internal/database/progress"
	"github.com/IslamGh2004/sawtlib/internal/database/users"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

func setupExporter(t *testing.T) (*gorm.DB, *CSVExporter, func()) {
	dbPath := "./test_exporters_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entities.Book{}, &entities.Category{}, &entities.Author{},
		&entities.User{}, &entities.Admin{},
		&entities.Favorite{}, &entities.ListeningProgress{}, &entities.Setting{},
	))

	exporter := NewCSVExporter(
		books.NewRepository(db),
		users.NewRepository(db),
		categories.NewRepository(db),
		authors.NewRepository(db),
		progress.NewRepository(db),
	)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return db, exporter, cleanup
}

func TestCSVExporter_Books(t *testing.T) {
	db, exporter, cleanup := setupExporter(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Book{
		Title:  "رحلة ابن بطوطة",
		Author: "ابن بطوطة",
		// Commas and quotes must survive the round trip.
		Description:     `وصف يحوي فاصلة، و"اقتباس" وسطر`,
		DurationSeconds: 7200,
		Status:          entities.BookStatusPublished,
	}).Error)

	var buf bytes.Buffer
	rows, err := exporter.Write(&buf, ResourceBooks)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "title", records[0][1])
	assert.Equal(t, "رحلة ابن بطوطة", records[1][1])
	assert.Equal(t, `وصف يحوي فاصلة، و"اقتباس" وسطر`, records[1][4])
	assert.Equal(t, "7200", records[1][5])
}

func TestCSVExporter_Users(t *testing.T) {
	db, exporter, cleanup := setupExporter(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.User{
		Email: "sara@example.com",
		Name:  "سارة",
		City:  "القاهرة",
	}).Error)

	var buf bytes.Buffer
	rows, err := exporter.Write(&buf, ResourceUsers)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "sara@example.com", records[1][1])
	// Password hashes never appear in exports.
	for _, field := range records[0] {
		assert.NotEqual(t, "password_hash", field)
	}
}

func TestCSVExporter_Progress(t *testing.T) {
	db, exporter, cleanup := setupExporter(t)
	defer cleanup()

	progressRepo := progress.NewRepository(db)
	require.NoError(t, progressRepo.Upsert(7, 3, 1200))
	require.NoError(t, progressRepo.Upsert(8, 3, 45))

	var buf bytes.Buffer
	rows, err := exporter.Write(&buf, ResourceProgress)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "progress_in_seconds", records[0][3])
}

func TestCSVExporter_UnknownResource(t *testing.T) {
	_, exporter, cleanup := setupExporter(t)
	defer cleanup()

	var buf bytes.Buffer
	_, err := exporter.Write(&buf, "podcasts")
	assert.Error(t, err)
	assert.False(t, IsExportable("podcasts"))
	assert.True(t, IsExportable(ResourceBooks))
}
