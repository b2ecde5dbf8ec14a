package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

func TestClientList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"books": []entities.Book{{ID: 1, Title: "الأيام"}},
			"count": 1,
		})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	var books []entities.Book
	require.NoError(t, c.List(context.Background(), "/api/books", "books", &books))
	require.Len(t, books, 1)
	assert.Equal(t, "الأيام", books[0].Title)
}

func TestClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "administrator access required"})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	err = c.Delete(context.Background(), "/api/admin/books", 1)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "administrator access required", apiErr.Message)
}

func TestClientBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	c.SetToken("test-token")

	var out map[string]any
	require.NoError(t, c.Invoke(context.Background(), http.MethodGet, "get-admin-dashboard-data", nil, nil, &out))
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClientInsertDecodesCreated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "قصص الأنبياء", body["title"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entities.Book{ID: 7, Title: "قصص الأنبياء"})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	var created entities.Book
	require.NoError(t, c.Insert(context.Background(), "/api/admin/books",
		map[string]any{"title": "قصص الأنبياء", "author": "ابن كثير"}, &created))
	assert.Equal(t, uint(7), created.ID)
}
