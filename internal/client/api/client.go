// Package api implements the HTTP client for the LinkKeeper backend. It
// mirrors the server's JSON surface and keeps the access token obtained at
// signin for subsequent requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthorized is returned when the server rejects the credentials or the
// stored access token.
var ErrUnauthorized = errors.New("unauthorized")

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Bookmark struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"accessToken"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the access token obtained by SignIn, or "".
func (c *Client) Token() string { return c.token }

// SetToken installs a previously obtained access token.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return ErrUnauthorized
		}
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("server error: %s", e.Error)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{Email: email, Password: password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SignIn exchanges the credentials for an access token and keeps it on the
// client for subsequent requests.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	var resp signInResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signin", credentials{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListBookmarks(ctx context.Context) ([]Bookmark, error) {
	var list []Bookmark
	if err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) AddBookmark(ctx context.Context, title, link, description string) (*Bookmark, error) {
	in := Bookmark{Title: title, Link: link, Description: description}
	var b Bookmark
	if err := c.do(ctx, http.MethodPost, "/bookmarks", in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookmarks/"+id, nil, nil)
}
