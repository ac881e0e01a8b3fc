package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/linkkeeper/internal/common"
	"github.com/dmitrijs2005/linkkeeper/internal/cryptox"
	"github.com/dmitrijs2005/linkkeeper/internal/dbx"
	"github.com/dmitrijs2005/linkkeeper/internal/server/auth"
	"github.com/dmitrijs2005/linkkeeper/internal/server/config"
	"github.com/dmitrijs2005/linkkeeper/internal/server/models"
	bookmarksrepo "github.com/dmitrijs2005/linkkeeper/internal/server/repositories/bookmarks"
	usersrepo "github.com/dmitrijs2005/linkkeeper/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getByEmailOut *models.User
	getByEmailErr error

	getByIDOut *models.User
	getByIDErr error

	updateOut *models.User
	updateErr error

	lastCreated *models.User
	lastUpdated *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.lastCreated = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, u *models.User) (*models.User, error) {
	f.lastUpdated = u
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return u, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	b *fakeBookmarksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Bookmarks(db dbx.DBTX) bookmarksrepo.Repository { return m.b }

// --- SignUp ---

func TestSignUp_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	u, err := s.SignUp(context.Background(), "test@test.com", "123456")
	if err != nil {
		t.Fatalf("SignUp error: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected assigned id, got empty")
	}
	if u.Email != "test@test.com" {
		t.Fatalf("unexpected email: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must be stripped from the result")
	}
	if repo.lastCreated == nil || repo.lastCreated.PasswordHash == "" {
		t.Fatalf("expected hashed password to be persisted")
	}
	if repo.lastCreated.PasswordHash == "123456" {
		t.Fatalf("plaintext password must not be persisted")
	}
}

func TestSignUp_EmailTaken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{createErr: common.ErrorAlreadyExists}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.SignUp(context.Background(), "test@test.com", "another-password")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestSignUp_StoreFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{createErr: errors.New("db down")}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.SignUp(context.Background(), "test@test.com", "123456")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

// --- SignIn ---

func TestSignIn_SuccessRoundtrip(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := cryptox.HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	repo := &fakeUsersRepo{getByEmailOut: &models.User{ID: "u-1", Email: "test@test.com", PasswordHash: hash}}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	token, err := s.SignIn(context.Background(), "test@test.com", "123456")
	if err != nil {
		t.Fatalf("SignIn error: %v", err)
	}

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if userID != "u-1" {
		t.Fatalf("token subject mismatch: got %q want %q", userID, "u-1")
	}
}

func TestSignIn_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := cryptox.HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	// unknown email
	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{getByEmailErr: common.ErrorNotFound}})
	_, errUnknown := s.SignIn(context.Background(), "ghost@test.com", "123456")

	// wrong password
	s = newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{
		getByEmailOut: &models.User{ID: "u-1", Email: "test@test.com", PasswordHash: hash},
	}})
	_, errWrong := s.SignIn(context.Background(), "test@test.com", "wrong")

	if !errors.Is(errUnknown, common.ErrorUnauthorized) {
		t.Fatalf("unknown email: want common.ErrorUnauthorized, got %v", errUnknown)
	}
	if !errors.Is(errWrong, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: want common.ErrorUnauthorized, got %v", errWrong)
	}
	if errUnknown != errWrong {
		t.Fatalf("both failures must collapse to the same error: %v vs %v", errUnknown, errWrong)
	}
}

func TestSignIn_MalformedStoredHash(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getByEmailOut: &models.User{ID: "u-1", Email: "test@test.com", PasswordHash: "garbage"}}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.SignIn(context.Background(), "test@test.com", "123456")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestSignIn_StoreFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getByEmailErr: errors.New("db down")}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.SignIn(context.Background(), "test@test.com", "123456")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

// --- GetByID / UpdateProfile ---

func TestGetByID_Sanitized(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getByIDOut: &models.User{ID: "u-1", Email: "test@test.com", PasswordHash: "hash"}}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	u, err := s.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must be stripped from the result")
	}
}

func TestUpdateProfile_AppliesPatch(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeUsersRepo{getByIDOut: &models.User{ID: "u-1", Email: "test@test.com", PasswordHash: "hash", FirstName: "Old"}}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	first := "New"
	u, err := s.UpdateProfile(context.Background(), "u-1", ProfilePatch{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if u.FirstName != "New" {
		t.Fatalf("patch not applied: %+v", u)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must be stripped from the result")
	}
	if repo.lastUpdated == nil || repo.lastUpdated.FirstName != "New" {
		t.Fatalf("expected patched row to be written back")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeUsersRepo{getByIDErr: common.ErrorNotFound}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.UpdateProfile(context.Background(), "missing", ProfilePatch{})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
