package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/linkkeeper/internal/server/models"
)

// Repository is the persistence contract for bookmarks. Every operation is
// scoped by the owning user id, so rows belonging to another user behave
// exactly like absent rows.
type Repository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	GetAllByUser(ctx context.Context, userID string) ([]*models.Bookmark, error)
	GetByID(ctx context.Context, id, userID string) (*models.Bookmark, error)
	Update(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	Delete(ctx context.Context, id, userID string) error
}
