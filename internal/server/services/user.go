// Package services contains server-side business logic. This file implements
// UserService, which handles signup (hash + uniqueness-checked insert),
// signin (lookup + hash verification + token issuance), and profile access.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/linkkeeper/internal/common"
	"github.com/dmitrijs2005/linkkeeper/internal/cryptox"
	"github.com/dmitrijs2005/linkkeeper/internal/dbx"
	"github.com/dmitrijs2005/linkkeeper/internal/server/auth"
	"github.com/dmitrijs2005/linkkeeper/internal/server/config"
	"github.com/dmitrijs2005/linkkeeper/internal/server/models"
	"github.com/dmitrijs2005/linkkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ProfilePatch carries the optional profile fields of a partial update.
// Nil means "leave unchanged". Email is immutable and has no patch field.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
}

// UserService provides authentication-related operations:
// - SignUp: hash the password and create the user
// - SignIn: verify credentials and mint an access token
// - GetByID / UpdateProfile: profile access for authenticated users
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// SignUp hashes the password and inserts a new user. A uniqueness conflict on
// the email column surfaces as common.ErrorAlreadyExists; any other storage
// failure collapses to common.ErrorInternal. The returned user has its
// password hash stripped; the stored secret never crosses the service
// boundary outward.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)

	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return sanitize(u), nil
}

// SignIn verifies the credentials and mints an access token. An unknown email
// and a wrong password are indistinguishable to the caller: both yield
// common.ErrorUnauthorized.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	// A malformed stored hash and a mismatch are both a denial.
	if err := cryptox.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetByID loads the user for the authenticated subject id. The result is
// sanitized.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return sanitize(user), nil
}

// UpdateProfile applies a partial profile update inside a transaction:
// the current row is loaded, patch fields overlaid, and the result written
// back. The result is sanitized.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*models.User, error) {
	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.FirstName != nil {
			user.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			user.LastName = *patch.LastName
		}

		updated, err = repo.UpdateProfile(ctx, user)
		if err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return sanitize(updated), nil
}

func sanitize(u *models.User) *models.User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}
