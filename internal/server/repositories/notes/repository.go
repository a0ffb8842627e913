// Package notes declares the note repository contract and its PostgreSQL
// implementation.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notesapp/internal/server/models"
)

type Repository interface {
	// Create inserts note (ID pre-assigned) and returns the stored id.
	Create(ctx context.Context, note *models.Note) (string, error)
	// GetOwner returns the owner id of the note or common.ErrorNotFound.
	GetOwner(ctx context.Context, id string) (string, error)
	// ListAccessible returns notes owned by userID or shared with it.
	ListAccessible(ctx context.Context, userID string) ([]*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}
