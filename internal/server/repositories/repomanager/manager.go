package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsemenov/authkeeper/internal/dbx"
	"github.com/dsemenov/authkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
