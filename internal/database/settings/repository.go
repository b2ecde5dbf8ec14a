// Package settings provides database operations for per-user settings
// blobs (player settings, profile drafts). Values are opaque JSON with
// last-write-wins semantics.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	setting, err := repo.GetSetting(userID, entities.SettingKeyPlayerSettings)
package settings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by user and key.
func (r *Repository) GetSetting(userID uint, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("user_id = ? AND key = ?", userID, key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting creates or replaces a setting.
func (r *Repository) SetSetting(userID uint, key, value string) error {
	var setting entities.Setting
	result := r.db.Where("user_id = ? AND key = ?", userID, key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			UserID: userID,
			Key:    key,
			Value:  value,
		}
		return r.db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return r.db.Save(&setting).Error
}

// DeleteSetting removes a setting by user and key.
func (r *Repository) DeleteSetting(userID uint, key string) error {
	return r.db.Where("user_id = ? AND key = ?", userID, key).Delete(&entities.Setting{}).Error
}
