package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IslamGh2004/sawtlib/internal/database"
	"github.com/IslamGh2004/sawtlib/internal/database/authors"
	"github.com/IslamGh2004/sawtlib/internal/database/books"
	"github.com/IslamGh2004/sawtlib/internal/database/categories"
	"github.com/IslamGh2004/sawtlib/internal/database/favorites"
	"github.com/IslamGh2004/sawtlib/internal/database/progress"
	"github.com/IslamGh2004/sawtlib/internal/database/users"
	"github.com/IslamGh2004/sawtlib/internal/entities"
	"github.com/IslamGh2004/sawtlib/internal/services"
)

func setupDashboardRouter(t *testing.T, db *database.Database) *gin.Engine {
	t.Helper()

	userRepo := users.NewRepository(db.DB)
	stats := services.NewStatsService(
		books.NewRepository(db.DB),
		categories.NewRepository(db.DB),
		authors.NewRepository(db.DB),
		userRepo,
		favorites.NewRepository(db.DB),
		progress.NewRepository(db.DB),
	)
	controller := NewDashboardController(stats, userRepo)

	router := gin.New()
	router.Use(asUser(1, true))
	router.GET("/api/functions/get-admin-dashboard-data", controller.GetData)
	return router
}

func TestDashboardController_Stats(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	bookRepo := books.NewRepository(db.DB)
	require.NoError(t, bookRepo.CreateBook(&entities.Book{Title: "أ", Author: "كاتب", DurationSeconds: 7200, Status: entities.BookStatusPublished}))
	require.NoError(t, bookRepo.CreateBook(&entities.Book{Title: "ب", Author: "كاتب", DurationSeconds: 1800, Status: entities.BookStatusDraft}))
	require.NoError(t, users.NewRepository(db.DB).CreateUser(&entities.User{Email: "listener@example.com", PasswordHash: "x"}))

	router := setupDashboardRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/functions/get-admin-dashboard-data?type=stats", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalBooks           int64 `json:"total_books"`
		PublishedBooks       int64 `json:"published_books"`
		DraftBooks           int64 `json:"draft_books"`
		TotalUsers           int64 `json:"total_users"`
		CatalogDurationHours int64 `json:"catalog_duration_hours"`
		NewUsersThisMonth    int64 `json:"new_users_this_month"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))

	assert.Equal(t, int64(2), stats.TotalBooks)
	assert.Equal(t, int64(1), stats.PublishedBooks)
	assert.Equal(t, int64(1), stats.DraftBooks)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.CatalogDurationHours)
	assert.Equal(t, int64(1), stats.NewUsersThisMonth)
}

func TestDashboardController_Users(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	require.NoError(t, users.NewRepository(db.DB).CreateUser(&entities.User{Email: "a@example.com", PasswordHash: "x"}))
	require.NoError(t, users.NewRepository(db.DB).CreateUser(&entities.User{Email: "b@example.com", PasswordHash: "x"}))

	router := setupDashboardRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/functions/get-admin-dashboard-data?type=users", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
}

func TestDashboardController_UnknownType(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	router := setupDashboardRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/functions/get-admin-dashboard-data?type=revenue", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
