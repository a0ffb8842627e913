package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/repomanager"
)

// CollaborationService manages who a note is shared with. Only the note
// owner may add or remove collaborators.
type CollaborationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	access      AccessVerifier
}

func NewCollaborationService(db *sql.DB, m repomanager.RepositoryManager, access AccessVerifier) *CollaborationService {
	return &CollaborationService{db: db, repomanager: m, access: access}
}

func (s *CollaborationService) AddCollaboration(ctx context.Context, ownerID, noteID, collaboratorID string) (string, error) {
	if err := s.access.VerifyOwner(ctx, noteID, ownerID); err != nil {
		return "", err
	}
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, collaboratorID); err != nil {
		return "", err
	}

	id, err := s.repomanager.Collaborations(s.db).Create(ctx, &models.Collaboration{
		ID:     common.NewID(common.CollaborationIDPrefix),
		NoteID: noteID,
		UserID: collaboratorID,
	})
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: collaboration could not be added", common.ErrorInvariant)
	}
	return id, nil
}

func (s *CollaborationService) DeleteCollaboration(ctx context.Context, ownerID, noteID, collaboratorID string) error {
	if err := s.access.VerifyOwner(ctx, noteID, ownerID); err != nil {
		return err
	}
	return s.repomanager.Collaborations(s.db).Delete(ctx, noteID, collaboratorID)
}

func (s *CollaborationService) VerifyCollaboration(ctx context.Context, noteID, userID string) error {
	return NewCollaborationChecker(s.repomanager.Collaborations(s.db)).VerifyCollaboration(ctx, noteID, userID)
}
