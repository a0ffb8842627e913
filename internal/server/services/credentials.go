package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
)

// UserFinder looks a user up by username, returning common.ErrorNotFound
// when there is none.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// PasswordHasher is satisfied by *cryptox.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
	VerifyDummy(plain string) bool
}

type CredentialVerifier struct {
	users  UserFinder
	hasher PasswordHasher
}

func NewCredentialVerifier(users UserFinder, hasher PasswordHasher) *CredentialVerifier {
	return &CredentialVerifier{users: users, hasher: hasher}
}

// VerifyCredentials returns the id of the user owning username when password
// matches. An unknown username is common.ErrorNotFound, a wrong password is
// common.ErrorUnauthorized. Both paths run one bcrypt comparison.
func (v *CredentialVerifier) VerifyCredentials(ctx context.Context, username, password string) (string, error) {
	user, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			v.hasher.VerifyDummy(password)
			return "", fmt.Errorf("%w: user not found", common.ErrorNotFound)
		}
		return "", err
	}

	if !v.hasher.Verify(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	}

	return user.ID, nil
}
