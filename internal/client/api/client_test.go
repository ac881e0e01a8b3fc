package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		if c.Email == "taken@test.com" {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "Credentials taken"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(User{ID: "u-1", Email: c.Email})
	})

	mux.HandleFunc("POST /auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		if c.Password != "123456" {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "invalid credentials"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(signInResponse{AccessToken: "tok-123"})
	})

	mux.HandleFunc("GET /bookmarks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]Bookmark{{ID: "b-1", Title: "Go blog", Link: "https://go.dev/blog"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, NewClient(srv.URL)
}

func TestClient_SignUp(t *testing.T) {
	_, c := newTestBackend(t)

	u, err := c.SignUp(context.Background(), "test@test.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "test@test.com", u.Email)
}

func TestClient_SignUp_Conflict(t *testing.T) {
	_, c := newTestBackend(t)

	_, err := c.SignUp(context.Background(), "taken@test.com", "123456")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_SignIn_KeepsToken(t *testing.T) {
	_, c := newTestBackend(t)

	require.NoError(t, c.SignIn(context.Background(), "test@test.com", "123456"))
	assert.Equal(t, "tok-123", c.Token())

	list, err := c.ListBookmarks(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Go blog", list[0].Title)
}

func TestClient_SignIn_BadCredentials(t *testing.T) {
	_, c := newTestBackend(t)

	err := c.SignIn(context.Background(), "test@test.com", "wrong")
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, c.Token())
}

func TestClient_ListWithoutToken(t *testing.T) {
	_, c := newTestBackend(t)

	_, err := c.ListBookmarks(context.Background())
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
