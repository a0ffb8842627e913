package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/logging"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/collaborations"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// NoteOwnerLookup returns the owner of a note or common.ErrorNotFound.
type NoteOwnerLookup interface {
	GetOwner(ctx context.Context, noteID string) (string, error)
}

// CollaborationLookup returns nil when userID collaborates on noteID.
type CollaborationLookup interface {
	VerifyCollaboration(ctx context.Context, noteID, userID string) error
}

// NoteAuthorizer decides whether a user may touch a note.
type NoteAuthorizer struct {
	notes   NoteOwnerLookup
	collabs CollaborationLookup
	log     logging.Logger
}

func NewNoteAuthorizer(notes NoteOwnerLookup, collabs CollaborationLookup, log logging.Logger) *NoteAuthorizer {
	return &NoteAuthorizer{notes: notes, collabs: collabs, log: log.With("module", "authorization")}
}

// VerifyOwner fails with common.ErrorNotFound when the note does not exist
// and common.ErrorForbidden when it belongs to someone else.
func (a *NoteAuthorizer) VerifyOwner(ctx context.Context, noteID, userID string) error {
	ctx, span := tracer.Start(ctx, "NoteAuthorizer.VerifyOwner")
	defer span.End()
	span.SetAttributes(attribute.String("note.id", noteID))

	owner, err := a.notes.GetOwner(ctx, noteID)
	if err != nil {
		span.SetStatus(codes.Error, "owner lookup failed")
		return err
	}
	if owner != userID {
		span.SetStatus(codes.Error, "not owner")
		return fmt.Errorf("%w: you are not allowed to access this resource", common.ErrorForbidden)
	}
	return nil
}

// VerifyAccess allows the owner and any collaborator.
//
// A missing note is reported as missing, never as forbidden. When the user is
// not the owner the collaboration lookup decides; if it does not grant access
// the ownership error is returned and the lookup's own error is dropped.
func (a *NoteAuthorizer) VerifyAccess(ctx context.Context, noteID, userID string) error {
	ctx, span := tracer.Start(ctx, "NoteAuthorizer.VerifyAccess")
	defer span.End()
	span.SetAttributes(attribute.String("note.id", noteID))

	ownerErr := a.VerifyOwner(ctx, noteID, userID)
	if ownerErr == nil {
		span.SetAttributes(attribute.String("access.via", "owner"))
		return nil
	}
	if !errors.Is(ownerErr, common.ErrorForbidden) {
		span.SetStatus(codes.Error, "owner check failed")
		return ownerErr
	}

	if collabErr := a.collabs.VerifyCollaboration(ctx, noteID, userID); collabErr != nil {
		a.log.Debug(ctx, "collaboration did not grant access", "note_id", noteID, "user_id", userID, "error", collabErr)
		span.SetStatus(codes.Error, "forbidden")
		return ownerErr
	}

	span.SetAttributes(attribute.String("access.via", "collaboration"))
	return nil
}

// CollaborationChecker answers collaboration lookups from the repository.
type CollaborationChecker struct {
	repo collaborations.Repository
}

func NewCollaborationChecker(repo collaborations.Repository) *CollaborationChecker {
	return &CollaborationChecker{repo: repo}
}

// VerifyCollaboration fails with common.ErrorInvariant when no collaboration
// links userID to noteID.
func (c *CollaborationChecker) VerifyCollaboration(ctx context.Context, noteID, userID string) error {
	ok, err := c.repo.Exists(ctx, noteID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: collaboration could not be verified", common.ErrorInvariant)
	}
	return nil
}
