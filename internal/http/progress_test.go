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
	"github.com/IslamGh2004/sawtlib/internal/database/progress"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

func setupProgressRouter(t *testing.T) (*gin.Engine, *books.Repository, func()) {
	t.Helper()
	db, cleanup := setupControllerTestDB(t)

	bookRepo := books.NewRepository(db.DB)
	controller := NewProgressController(progress.NewRepository(db.DB), bookRepo)

	router := gin.New()
	router.Use(asUser(7, false))
	router.PUT("/api/progress", controller.Save)
	router.GET("/api/progress/:id", controller.Get)

	return router, bookRepo, cleanup
}

func saveProgress(t *testing.T, router *gin.Engine, bookID uint, seconds int) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"book_id": bookID, "progress_in_seconds": seconds})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/progress", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestProgressController_SaveAndGet(t *testing.T) {
	router, bookRepo, cleanup := setupProgressRouter(t)
	defer cleanup()

	book := &entities.Book{Title: "كتاب", Author: "كاتب", DurationSeconds: 3600, Status: entities.BookStatusPublished}
	require.NoError(t, bookRepo.CreateBook(book))

	w := saveProgress(t, router, book.ID, 900)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		BookID     uint    `json:"book_id"`
		Seconds    int     `json:"progress_in_seconds"`
		Percentage float64 `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 900, response.Seconds)
	assert.InDelta(t, 25.0, response.Percentage, 0.001)

	// A later save overwrites the row instead of adding a second one.
	w = saveProgress(t, router, book.ID, 1800)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/progress/%d", book.ID), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1800, response.Seconds)
	assert.InDelta(t, 50.0, response.Percentage, 0.001)
}

func TestProgressController_SaveRejectsNegative(t *testing.T) {
	router, bookRepo, cleanup := setupProgressRouter(t)
	defer cleanup()

	book := &entities.Book{Title: "كتاب", Author: "كاتب", Status: entities.BookStatusPublished}
	require.NoError(t, bookRepo.CreateBook(book))

	w := saveProgress(t, router, book.ID, -5)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressController_SaveUnknownBook(t *testing.T) {
	router, _, cleanup := setupProgressRouter(t)
	defer cleanup()

	w := saveProgress(t, router, 4242, 30)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgressController_GetWithoutRowReturnsZero(t *testing.T) {
	router, bookRepo, cleanup := setupProgressRouter(t)
	defer cleanup()

	book := &entities.Book{Title: "كتاب", Author: "كاتب", DurationSeconds: 600, Status: entities.BookStatusPublished}
	require.NoError(t, bookRepo.CreateBook(book))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/progress/%d", book.ID), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Seconds    int     `json:"progress_in_seconds"`
		Percentage float64 `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Seconds)
	assert.Equal(t, 0.0, response.Percentage)
}
