package entities

import (
	"time"
)

// Setting stores one JSON value per (user, key). Values are plain JSON
// blobs with last-write-wins semantics, no versioning.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_settings_user_key" json:"user_id"`
	Key       string    `gorm:"uniqueIndex:idx_settings_user_key;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Player settings blob (theme, notifications, autoplay, download
	// quality, default volume, skip silence, playback speed, sleep
	// timer, offline mode) stored as one JSON object.
	SettingKeyPlayerSettings = "player_settings"

	// Profile edit draft, saved as the user types and cleared on submit.
	SettingKeyProfileDraft = "profile_draft"
)
