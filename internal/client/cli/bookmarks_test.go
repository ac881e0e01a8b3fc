package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookmarksBackend(t *testing.T, items []map[string]string) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /bookmarks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(items)
	})

	mux.HandleFunc("POST /bookmarks", func(w http.ResponseWriter, r *http.Request) {
		var b map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		b["id"] = "b-new"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(b)
	})

	mux.HandleFunc("DELETE /bookmarks/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "b-1" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func TestApp_List(t *testing.T) {
	items := []map[string]string{
		{"id": "b-1", "title": "Go blog", "link": "https://go.dev/blog"},
		{"id": "b-2", "title": "Go spec", "link": "https://go.dev/ref/spec"},
	}
	a, out := newTestApp(t, bookmarksBackend(t, items), "", "")

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "b-1  Go blog  https://go.dev/blog")
	assert.Contains(t, out.String(), "b-2  Go spec  https://go.dev/ref/spec")
}

func TestApp_List_Empty(t *testing.T) {
	a, out := newTestApp(t, bookmarksBackend(t, []map[string]string{}), "", "")

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "No bookmarks yet")
}

func TestApp_Add(t *testing.T) {
	script := "Go blog\nhttps://go.dev/blog\nofficial blog\n"
	a, out := newTestApp(t, bookmarksBackend(t, nil), script, "")

	require.NoError(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "Added b-new")
}

func TestApp_Rm(t *testing.T) {
	a, out := newTestApp(t, bookmarksBackend(t, nil), "b-1\n", "")

	require.NoError(t, a.Rm(context.Background()))
	assert.Contains(t, out.String(), "Deleted")
}

func TestApp_Rm_NotFound(t *testing.T) {
	a, out := newTestApp(t, bookmarksBackend(t, nil), "b-missing\n", "")

	assert.Error(t, a.Rm(context.Background()))
	assert.Contains(t, out.String(), "Error")
}
