package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/logging"
	"github.com/dmitrijs2005/notesapp/internal/server/auth"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type CredentialChecker interface {
	VerifyCredentials(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer is satisfied by *auth.TokenManager.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyRefreshToken(token string) (*auth.Claims, error)
}

type TokenStore interface {
	Add(ctx context.Context, token string) error
	AssertValid(ctx context.Context, token string) error
	Remove(ctx context.Context, token string) error
}

// AuthService implements login, access token refresh and logout over a
// session that moves Unauthenticated -> Authenticated -> Revoked.
type AuthService struct {
	credentials CredentialChecker
	tokens      TokenIssuer
	store       TokenStore
	log         logging.Logger
}

func NewAuthService(credentials CredentialChecker, tokens TokenIssuer, store TokenStore, log logging.Logger) *AuthService {
	return &AuthService{
		credentials: credentials,
		tokens:      tokens,
		store:       store,
		log:         log.With("module", "auth"),
	}
}

// Login verifies credentials and returns a fresh token pair whose refresh
// token has been recorded in the store. Unknown users and wrong passwords
// are the same common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	userID, err := s.credentials.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorUnauthorized) {
			return nil, fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
		}
		return nil, err
	}

	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.store.Add(ctx, refresh); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "user logged in", "user_id", userID)
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh returns a new access token for the user behind refreshToken. The
// store is consulted before the signature, since a revoked token must fail
// with common.ErrorNotFound even when it is still cryptographically valid.
// The refresh token itself is neither rotated nor re-stored.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := s.store.AssertValid(ctx, refreshToken); err != nil {
		return "", err
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	access, err := s.tokens.IssueAccessToken(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// Logout revokes refreshToken. Revoking twice is common.ErrorNotFound.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.store.AssertValid(ctx, refreshToken); err != nil {
		return err
	}
	return s.store.Remove(ctx, refreshToken)
}
