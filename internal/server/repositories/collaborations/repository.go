// Package collaborations declares the note-sharing repository contract and
// its PostgreSQL implementation.
package collaborations

import (
	"context"

	"github.com/dmitrijs2005/notesapp/internal/server/models"
)

type Repository interface {
	// Create inserts c (ID pre-assigned); a duplicate pair is
	// common.ErrorInvariant.
	Create(ctx context.Context, c *models.Collaboration) (string, error)
	// Delete removes the (noteID, userID) pair; nothing removed is
	// common.ErrorInvariant.
	Delete(ctx context.Context, noteID, userID string) error
	Exists(ctx context.Context, noteID, userID string) (bool, error)
}
