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

	"github.com/IslamGh2004/sawtlib/internal/database/books"
	"github.com/IslamGh2004/sawtlib/internal/database/favorites"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

func toggleFavorite(t *testing.T, router *gin.Engine, bookID uint) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"book_id": bookID})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/favorites/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestFavoritesController_Toggle(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	bookRepo := books.NewRepository(db.DB)
	book := &entities.Book{Title: "الخيميائي", Author: "باولو كويلو", Status: entities.BookStatusPublished}
	require.NoError(t, bookRepo.CreateBook(book))

	controller := NewFavoritesController(favorites.NewRepository(db.DB), bookRepo)
	router := gin.New()
	router.Use(asUser(7, false))
	router.POST("/api/favorites/toggle", controller.Toggle)
	router.GET("/api/favorites/:id", controller.Status)

	// First toggle favorites the book.
	w := toggleFavorite(t, router, book.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		BookID    uint `json:"book_id"`
		Favorited bool `json:"favorited"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Favorited)

	// Second toggle restores the original state.
	w = toggleFavorite(t, router, book.ID)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Favorited)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/favorites/%d", book.ID), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Favorited)
}

func TestFavoritesController_ToggleUnknownBook(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	controller := NewFavoritesController(favorites.NewRepository(db.DB), books.NewRepository(db.DB))
	router := gin.New()
	router.Use(asUser(7, false))
	router.POST("/api/favorites/toggle", controller.Toggle)

	w := toggleFavorite(t, router, 12345)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoritesController_ListIsPerUser(t *testing.T) {
	db, cleanup := setupControllerTestDB(t)
	defer cleanup()

	bookRepo := books.NewRepository(db.DB)
	book := &entities.Book{Title: "كتاب", Author: "كاتب", Status: entities.BookStatusPublished}
	require.NoError(t, bookRepo.CreateBook(book))

	favoriteRepo := favorites.NewRepository(db.DB)
	_, err := favoriteRepo.Toggle(7, book.ID)
	require.NoError(t, err)

	controller := NewFavoritesController(favoriteRepo, bookRepo)

	listFor := func(userID uint) int {
		router := gin.New()
		router.Use(asUser(userID, false))
		router.GET("/api/favorites", controller.List)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/favorites", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response.Count
	}

	assert.Equal(t, 1, listFor(7))
	assert.Equal(t, 0, listFor(8))
}
