package demo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewMiddleware(enabled).Handler())

	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/api/books", handler)
	router.POST("/api/admin/books", handler)
	router.DELETE("/api/admin/books/1", handler)
	router.POST("/api/auth/sign-in", handler)
	router.POST("/api/favorites/toggle", handler)
	router.PUT("/api/progress", handler)

	return router
}

func request(t *testing.T, router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestDisabledPassesEverything(t *testing.T) {
	router := setupTestRouter(false)

	assert.Equal(t, http.StatusOK, request(t, router, http.MethodPost, "/api/admin/books").Code)
	assert.Equal(t, http.StatusOK, request(t, router, http.MethodDelete, "/api/admin/books/1").Code)
}

func TestBlocksAdminWrites(t *testing.T) {
	router := setupTestRouter(true)

	w := request(t, router, http.MethodPost, "/api/admin/books")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "demo_mode")

	assert.Equal(t, http.StatusForbidden, request(t, router, http.MethodDelete, "/api/admin/books/1").Code)
}

func TestAllowsReads(t *testing.T) {
	router := setupTestRouter(true)

	assert.Equal(t, http.StatusOK, request(t, router, http.MethodGet, "/api/books").Code)
}

func TestAllowsAuthAndUserState(t *testing.T) {
	router := setupTestRouter(true)

	assert.Equal(t, http.StatusOK, request(t, router, http.MethodPost, "/api/auth/sign-in").Code)
	assert.Equal(t, http.StatusOK, request(t, router, http.MethodPost, "/api/favorites/toggle").Code)
	assert.Equal(t, http.StatusOK, request(t, router, http.MethodPut, "/api/progress").Code)
}
