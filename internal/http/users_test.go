package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IslamGh2004/sawtlib/internal/auth"
	"github.com/IslamGh2004/sawtlib/internal/database"
	"github.com/IslamGh2004/sawtlib/internal/database/users"
)

// testAdminID is the acting admin in these tests.
const testAdminID uint = 9001

func setupUsersRouter(t *testing.T, db *database.Database) (*gin.Engine, *users.Repository) {
	t.Helper()

	userRepo := users.NewRepository(db.DB)
	authService := auth.NewService(db.DB, testAuthConfig())
	controller := NewUsersController(userRepo, authService, testAuditor(db))

	// Act as a high user ID so accounts created inside a test (which
	// start at ID 1 in a fresh database) never collide with the actor.
	router := gin.New()
	router.Use(asUser(testAdminID, true))
	router.POST("/api/functions/create-user", controller.CreateUser)
	router.POST("/api/admin/users/:id/ban", controller.SetBanned)
	router.DELETE("/api/admin/users/:id", controller.Delete)
	return router, userRepo
}

func TestUsersController_CreateUser(t *testing.T) {
	t.Run("creates account with profile fields", func(t *testing.T) {
		db, cleanup := setupControllerTestDB(t)
		defer cleanup()

		router, userRepo := setupUsersRouter(t, db)

		body, _ := json.Marshal(map[string]any{
			"email":     "listener@example.com",
			"password":  "password123",
			"full_name": "مستمع جديد",
			"city":      "القاهرة",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/functions/create-user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var response struct {
			Success bool `json:"success"`
			User    struct {
				ID    uint   `json:"id"`
				Email string `json:"email"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, "listener@example.com", response.User.Email)
		assert.NotZero(t, response.User.ID)

		user, err := userRepo.GetUserByEmail("listener@example.com")
		require.NoError(t, err)
		assert.Equal(t, "مستمع جديد", user.Name)
		assert.Equal(t, "القاهرة", user.City)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		db, cleanup := setupControllerTestDB(t)
		defer cleanup()

		router, _ := setupUsersRouter(t, db)

		body := []byte(`{"email":"dup@example.com","password":"password123"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/functions/create-user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest("POST", "/api/functions/create-user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		db, cleanup := setupControllerTestDB(t)
		defer cleanup()

		router, _ := setupUsersRouter(t, db)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/functions/create-user", bytes.NewReader([]byte(`{"email":"x@example.com","password":"short"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUsersController_SelfProtection(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	router, _ := setupUsersRouter(t, db)

	// The acting admin cannot ban or delete their own account.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/admin/users/%d/ban", testAdminID), bytes.NewReader([]byte(`{"banned":true}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/admin/users/%d", testAdminID), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersController_BanUser(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	router, userRepo := setupUsersRouter(t, db)

	authService := auth.NewService(db.DB, testAuthConfig())
	user, err := authService.CreateUser("banned@example.com", "password123", "محظور")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/admin/users/%d/ban", user.ID), bytes.NewReader([]byte(`{"banned":true}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := userRepo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsBanned)
}
