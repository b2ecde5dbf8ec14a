package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// SettingsController stores per-user JSON blobs keyed by setting name:
// player preferences (speed, sleep timer) and unsaved profile drafts.
type SettingsController struct {
	settings SettingStore
}

func NewSettingsController(settings SettingStore) *SettingsController {
	return &SettingsController{settings: settings}
}

// defaultPlayerSettings are returned before the user has saved any.
var defaultPlayerSettings = map[string]any{
	"playback_speed": 1.0,
	"sleep_timer":    0,
	"autoplay_next":  true,
}

// GetPlayerSettings returns the user's saved player preferences, or
// the defaults when none exist.
func (controller *SettingsController) GetPlayerSettings(c *gin.Context) {
	setting, err := controller.settings.GetSetting(GetUserID(c), entities.SettingKeyPlayerSettings)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, defaultPlayerSettings)
			return
		}
		respondInternalError(c, err, "get player settings")
		return
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(setting.Value), &value); err != nil {
		// A corrupted blob falls back to defaults instead of breaking playback.
		c.JSON(http.StatusOK, defaultPlayerSettings)
		return
	}
	c.JSON(http.StatusOK, value)
}

// SavePlayerSettings replaces the user's player preferences.
func (controller *SettingsController) SavePlayerSettings(c *gin.Context) {
	var value map[string]any
	if err := c.ShouldBindJSON(&value); err != nil {
		respondBadRequest(c, "invalid settings payload")
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		respondBadRequest(c, "settings payload is not serializable")
		return
	}

	if err := controller.settings.SetSetting(GetUserID(c), entities.SettingKeyPlayerSettings, string(raw)); err != nil {
		respondInternalError(c, err, "save player settings")
		return
	}
	c.JSON(http.StatusOK, value)
}

// GetProfileDraft returns an unsaved profile edit, if one was stashed.
func (controller *SettingsController) GetProfileDraft(c *gin.Context) {
	setting, err := controller.settings.GetSetting(GetUserID(c), entities.SettingKeyProfileDraft)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		respondInternalError(c, err, "get profile draft")
		return
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(setting.Value), &value); err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, value)
}

// SaveProfileDraft stashes an in-progress profile edit.
func (controller *SettingsController) SaveProfileDraft(c *gin.Context) {
	var value map[string]any
	if err := c.ShouldBindJSON(&value); err != nil {
		respondBadRequest(c, "invalid draft payload")
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		respondBadRequest(c, "draft payload is not serializable")
		return
	}

	if err := controller.settings.SetSetting(GetUserID(c), entities.SettingKeyProfileDraft, string(raw)); err != nil {
		respondInternalError(c, err, "save profile draft")
		return
	}
	c.JSON(http.StatusOK, value)
}

// DeleteProfileDraft discards the stash after a successful save.
func (controller *SettingsController) DeleteProfileDraft(c *gin.Context) {
	if err := controller.settings.DeleteSetting(GetUserID(c), entities.SettingKeyProfileDraft); err != nil {
		respondInternalError(c, err, "delete profile draft")
		return
	}
	respondSuccess(c, "draft discarded")
}
