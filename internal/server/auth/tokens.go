// Package auth mints and verifies the HS256 tokens used by the notes server.
//
// Access and refresh tokens are signed with separate keys, so one kind never
// verifies as the other. Every verification failure (bad structure, wrong
// algorithm or key, expiry, missing user id) is reported as
// common.ErrInvalidToken without further detail.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload: {"id": userID} plus iat, exp and a random jti.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenConfig configures a TokenManager.
type TokenConfig struct {
	AccessKey  []byte
	RefreshKey []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
	// Now defaults to time.Now.
	Now func() time.Time
}

// TokenManager is stateless after construction and safe for concurrent use.
type TokenManager struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if len(cfg.AccessKey) == 0 || len(cfg.RefreshKey) == 0 {
		return nil, errors.New("token keys must not be empty")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &TokenManager{
		accessKey:  cfg.AccessKey,
		refreshKey: cfg.RefreshKey,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		now:        now,
	}, nil
}

func (m *TokenManager) IssueAccessToken(userID string) (string, error) {
	return m.issue(userID, m.accessKey, m.accessTTL)
}

func (m *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return m.issue(userID, m.refreshKey, m.refreshTTL)
}

func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return m.verify(token, m.accessKey)
}

func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return m.verify(token, m.refreshKey)
}

// RefreshTTL is the lifetime given to refresh tokens; stores use it to expire
// their records.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func (m *TokenManager) issue(userID string, key []byte, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id must not be empty")
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
	})

	return token.SignedString(key)
}

func (m *TokenManager) verify(tokenString string, key []byte) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
