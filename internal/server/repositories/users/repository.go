// Package users declares the user repository contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/notesapp/internal/server/models"
)

type Repository interface {
	// Create inserts user (ID pre-assigned) and returns it. A taken username
	// is reported as common.ErrorInvariant.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SearchByUsername(ctx context.Context, fragment string) ([]*models.User, error)
}
