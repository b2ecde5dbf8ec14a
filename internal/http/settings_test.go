package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IslamGh2004/sawtlib/internal/database/settings"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

func setupSettingsRouter(t *testing.T) (*gin.Engine, *settings.Repository, func()) {
	t.Helper()
	db, cleanup := setupControllerTestDB(t)

	settingRepo := settings.NewRepository(db.DB)
	controller := NewSettingsController(settingRepo)

	router := gin.New()
	router.Use(asUser(7, false))
	router.GET("/api/settings/player", controller.GetPlayerSettings)
	router.PUT("/api/settings/player", controller.SavePlayerSettings)
	return router, settingRepo, cleanup
}

func getPlayerSettings(t *testing.T, router *gin.Engine) map[string]any {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/settings/player", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var value map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &value))
	return value
}

func TestSettingsController_PlayerDefaults(t *testing.T) {
	router, _, cleanup := setupSettingsRouter(t)
	defer cleanup()

	value := getPlayerSettings(t, router)
	assert.Equal(t, 1.0, value["playback_speed"])
	assert.Equal(t, true, value["autoplay_next"])
}

func TestSettingsController_SaveAndReload(t *testing.T) {
	router, _, cleanup := setupSettingsRouter(t)
	defer cleanup()

	body := []byte(`{"playback_speed":1.5,"sleep_timer":900,"autoplay_next":false}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/settings/player", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	value := getPlayerSettings(t, router)
	assert.Equal(t, 1.5, value["playback_speed"])
	assert.Equal(t, false, value["autoplay_next"])
}

func TestSettingsController_CorruptedBlobFallsBack(t *testing.T) {
	router, settingRepo, cleanup := setupSettingsRouter(t)
	defer cleanup()

	require.NoError(t, settingRepo.SetSetting(7, entities.SettingKeyPlayerSettings, "{not json"))

	value := getPlayerSettings(t, router)
	assert.Equal(t, 1.0, value["playback_speed"])
}
