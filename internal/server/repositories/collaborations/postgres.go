package collaborations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/dbx"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Collaboration) (string, error) {
	query :=
		`INSERT INTO collaborations (id, note_id, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	var id string
	err := r.db.QueryRowContext(ctx, query, c.ID, c.NoteID, c.UserID).Scan(&id)
	if err != nil {
		if dbx.IsUniqueViolation(err) || errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: collaboration could not be added", common.ErrorInvariant)
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, noteID, userID string) error {
	query :=
		`DELETE FROM collaborations
		 WHERE note_id = $1 AND user_id = $2
		 RETURNING id`

	var id string
	if err := r.db.QueryRowContext(ctx, query, noteID, userID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: collaboration could not be deleted", common.ErrorInvariant)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, noteID, userID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		     SELECT 1 FROM collaborations WHERE note_id = $1 AND user_id = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, noteID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}
