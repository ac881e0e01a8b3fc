package models

import "time"

// Bookmark is owned by exactly one user via UserID; every query against
// bookmarks is scoped by that column.
type Bookmark struct {
	ID          string
	UserID      string
	Title       string
	Link        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
