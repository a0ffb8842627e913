package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notesapp/internal/dbx"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/collaborations"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code runs
// against the pool or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
	Collaborations(db dbx.DBTX) collaborations.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
