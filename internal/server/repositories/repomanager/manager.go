package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/linkkeeper/internal/dbx"
	"github.com/dmitrijs2005/linkkeeper/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/linkkeeper/internal/server/repositories/users"
)

// RepositoryManager builds repositories over an arbitrary DBTX handle, so
// services can run the same repository code against the pooled connection or
// inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Bookmarks(db dbx.DBTX) bookmarks.Repository
}
