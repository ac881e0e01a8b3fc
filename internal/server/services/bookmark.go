package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkkeeper/internal/common"
	"github.com/dmitrijs2005/linkkeeper/internal/dbx"
	"github.com/dmitrijs2005/linkkeeper/internal/server/models"
	"github.com/dmitrijs2005/linkkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// BookmarkPatch carries the optional fields of a partial bookmark update.
// Nil means "leave unchanged".
type BookmarkPatch struct {
	Title       *string
	Link        *string
	Description *string
}

// BookmarkService implements owner-scoped CRUD over bookmarks. Every
// operation takes the authenticated subject id resolved by the access guard;
// rows of other users are indistinguishable from absent rows.
type BookmarkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookmarkService(db *sql.DB, m repomanager.RepositoryManager) *BookmarkService {
	return &BookmarkService{db: db, repomanager: m}
}

// List returns all bookmarks of the user, oldest first. A fresh account gets
// an empty (non-nil) slice.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	repo := s.repomanager.Bookmarks(s.db)

	result, err := repo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID, title, link, description string) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Link:        link,
		Description: description,
	}

	repo := s.repomanager.Bookmarks(s.db)

	b, err := repo.Create(ctx, bookmark)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return b, nil
}

func (s *BookmarkService) Get(ctx context.Context, userID, id string) (*models.Bookmark, error) {
	repo := s.repomanager.Bookmarks(s.db)

	b, err := repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return b, nil
}

// Update applies a partial update transactionally: the owned row is loaded,
// patch fields overlaid, and the result written back under the same owner
// scope.
func (s *BookmarkService) Update(ctx context.Context, userID, id string, patch BookmarkPatch) (*models.Bookmark, error) {
	var updated *models.Bookmark

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookmarks(tx)

		b, err := repo.GetByID(ctx, id, userID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			b.Title = *patch.Title
		}
		if patch.Link != nil {
			b.Link = *patch.Link
		}
		if patch.Description != nil {
			b.Description = *patch.Description
		}

		updated, err = repo.Update(ctx, b)
		if err != nil {
			return fmt.Errorf("error updating bookmark: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return updated, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Bookmarks(s.db)

	if err := repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
