package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notesapp/internal/timex"
)

// AccessVerifier is satisfied by *NoteAuthorizer.
type AccessVerifier interface {
	VerifyOwner(ctx context.Context, noteID, userID string) error
	VerifyAccess(ctx context.Context, noteID, userID string) error
}

// NewNote carries the caller-supplied fields of a note.
type NewNote struct {
	Title string
	Body  string
	Tags  []string
	Owner string
}

type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	access      AccessVerifier
	now         timex.Clock
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, access AccessVerifier, now timex.Clock) *NoteService {
	if now == nil {
		now = timex.SystemClock
	}
	return &NoteService{db: db, repomanager: m, access: access, now: now}
}

func (s *NoteService) AddNote(ctx context.Context, n NewNote) (string, error) {
	if strings.TrimSpace(n.Title) == "" {
		return "", fmt.Errorf("%w: title is required", common.ErrorInvariant)
	}

	now := s.now()
	note := &models.Note{
		ID:        common.NewID(common.NoteIDPrefix),
		Title:     n.Title,
		Body:      n.Body,
		Tags:      models.Tags(n.Tags),
		Owner:     n.Owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repomanager.Notes(s.db).Create(ctx, note)
}

// GetNotes lists notes owned by userID or shared with it.
func (s *NoteService) GetNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListAccessible(ctx, userID)
}

func (s *NoteService) GetNoteByID(ctx context.Context, noteID, userID string) (*models.Note, error) {
	if err := s.access.VerifyAccess(ctx, noteID, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).GetByID(ctx, noteID)
}

func (s *NoteService) EditNoteByID(ctx context.Context, noteID, userID, title, body string, tags []string) error {
	if err := s.access.VerifyAccess(ctx, noteID, userID); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorInvariant)
	}

	return s.repomanager.Notes(s.db).Update(ctx, &models.Note{
		ID:        noteID,
		Title:     title,
		Body:      body,
		Tags:      models.Tags(tags),
		UpdatedAt: s.now(),
	})
}

// DeleteNoteByID is owner-only; collaborators get common.ErrorForbidden.
func (s *NoteService) DeleteNoteByID(ctx context.Context, noteID, userID string) error {
	if err := s.access.VerifyOwner(ctx, noteID, userID); err != nil {
		return err
	}
	return s.repomanager.Notes(s.db).Delete(ctx, noteID)
}
