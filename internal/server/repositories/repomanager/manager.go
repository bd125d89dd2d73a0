package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/imagetags/internal/dbx"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/features"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/images"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can choose the scope of each write.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Images(db dbx.DBTX) images.Repository
	Features(db dbx.DBTX) features.Repository
}
