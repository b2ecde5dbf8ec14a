package database

import (
	"fmt"
	"log"

	// Registers the sqlite3 driver for database/sql consumers
	// (the scs session store shares GORM's connection pool).
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Seeded on first start so the catalog is browsable before an admin
// creates any category of their own.
var defaultCategories = []entities.Category{
	{Name: "روايات", Description: "روايات عربية وعالمية"},
	{Name: "تنمية ذاتية", Description: "كتب تطوير الذات والمهارات"},
	{Name: "تاريخ", Description: "كتب التاريخ والسير"},
	{Name: "دين", Description: "كتب دينية"},
	{Name: "أطفال", Description: "قصص وكتب للأطفال"},
	{Name: "علوم", Description: "كتب علمية مبسطة"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Admin{},
		&entities.Category{},
		&entities.Author{},
		&entities.Book{},
		&entities.Favorite{},
		&entities.ListeningProgress{},
		&entities.Notification{},
		&entities.AuditEvent{},
		&entities.Setting{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedCategories(); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedCategories() error {
	var count int64
	if err := d.DB.Model(&entities.Category{}).Count(&count).Error; err != nil {
		return err
	}
	// Only seed an empty catalog; never re-create categories an admin
	// deliberately removed.
	if count > 0 {
		return nil
	}
	for _, category := range defaultCategories {
		if err := d.DB.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category %s: %w", category.Name, err)
		}
		log.Printf("Created category: %s", category.Name)
	}
	return nil
}
