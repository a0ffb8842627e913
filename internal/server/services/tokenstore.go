package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/refreshtokens"
)

// RefreshTokenStore tracks the refresh tokens that are issued and not yet
// revoked. Membership is the revocation signal; signatures are checked
// elsewhere.
type RefreshTokenStore struct {
	repo refreshtokens.Repository
}

func NewRefreshTokenStore(repo refreshtokens.Repository) *RefreshTokenStore {
	return &RefreshTokenStore{repo: repo}
}

// Add records token as valid. Adding a token twice is common.ErrorInvariant.
func (s *RefreshTokenStore) Add(ctx context.Context, token string) error {
	return s.repo.Create(ctx, token)
}

func (s *RefreshTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	return s.repo.Exists(ctx, token)
}

// AssertValid fails with common.ErrorNotFound unless token is stored.
func (s *RefreshTokenStore) AssertValid(ctx context.Context, token string) error {
	ok, err := s.repo.Exists(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: refresh token not found", common.ErrorNotFound)
	}
	return nil
}

// Remove deletes token; an absent token is common.ErrorNotFound.
func (s *RefreshTokenStore) Remove(ctx context.Context, token string) error {
	return s.repo.Delete(ctx, token)
}
