package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/server/exports"
)

// ExportPublisher is satisfied by *exports.Publisher.
type ExportPublisher interface {
	Publish(ctx context.Context, req exports.Request) error
}

type ExportService struct {
	publisher ExportPublisher
}

func NewExportService(publisher ExportPublisher) *ExportService {
	return &ExportService{publisher: publisher}
}

// RequestNotesExport queues an export of userID's notes to targetEmail.
// Surrounding whitespace is dropped; display names are rejected.
func (s *ExportService) RequestNotesExport(ctx context.Context, userID, targetEmail string) error {
	targetEmail = strings.TrimSpace(targetEmail)
	addr, err := mail.ParseAddress(targetEmail)
	if err != nil || addr.Address != targetEmail {
		return fmt.Errorf("%w: targetEmail must be a bare email address such as name@example.com", common.ErrorInvariant)
	}

	if err := s.publisher.Publish(ctx, exports.Request{UserID: userID, TargetEmail: targetEmail}); err != nil {
		return fmt.Errorf("publish export request: %w", err)
	}
	return nil
}
