package notes

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

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (string, error) {
	query :=
		`INSERT INTO notes (id, title, body, tags, created_at, updated_at, owner)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.Title, note.Body, note.Tags, note.CreatedAt, note.UpdatedAt, note.Owner).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: note could not be added", common.ErrorInvariant)
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: note could not be added", common.ErrorInvariant)
	}

	return id, nil
}

func (r *PostgresRepository) GetOwner(ctx context.Context, id string) (string, error) {
	query := `SELECT owner FROM notes WHERE id = $1`

	var owner string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: note not found", common.ErrorNotFound)
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return owner, nil
}

func (r *PostgresRepository) ListAccessible(ctx context.Context, userID string) ([]*models.Note, error) {
	query :=
		`SELECT notes.id, notes.title, notes.body, notes.tags, notes.owner, notes.created_at, notes.updated_at
		 FROM notes
		 LEFT JOIN collaborations ON collaborations.note_id = notes.id
		 WHERE notes.owner = $1 OR collaborations.user_id = $1
		 GROUP BY notes.id
		 ORDER BY notes.created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		n := &models.Note{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Tags, &n.Owner, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT notes.id, notes.title, notes.body, notes.tags, notes.owner, notes.created_at, notes.updated_at,
		        COALESCE(users.username, '')
		 FROM notes
		 LEFT JOIN users ON users.id = notes.owner
		 WHERE notes.id = $1`

	n := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.Title, &n.Body, &n.Tags, &n.Owner, &n.CreatedAt, &n.UpdatedAt, &n.Username)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: note not found", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) error {
	query :=
		`UPDATE notes SET title = $2, body = $3, tags = $4, updated_at = $5
		 WHERE id = $1
		 RETURNING id`

	var id string
	err := r.db.QueryRowContext(ctx, query, note.ID, note.Title, note.Body, note.Tags, note.UpdatedAt).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: note could not be updated, id not found", common.ErrorNotFound)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = $1 RETURNING id`

	var deleted string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: note could not be deleted, id not found", common.ErrorNotFound)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
