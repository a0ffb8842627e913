package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/dbx"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/repomanager"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: hasher}
}

// Register creates a user and returns its id. A taken username is
// common.ErrorInvariant.
func (s *UserService) Register(ctx context.Context, username, password, fullname string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || strings.TrimSpace(fullname) == "" {
		return "", fmt.Errorf("%w: username, password and fullname are required", common.ErrorInvariant)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: password could not be hashed", common.ErrorInvariant)
	}

	var userID string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByUsername(ctx, username)
		switch {
		case err == nil:
			return fmt.Errorf("%w: username already used", common.ErrorInvariant)
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		user, err := repo.Create(ctx, &models.User{
			ID:           common.NewID(common.UserIDPrefix),
			UserName:     username,
			PasswordHash: hash,
			FullName:     fullname,
		})
		if err != nil {
			return err
		}
		if user.ID == "" {
			return fmt.Errorf("%w: user could not be added", common.ErrorInvariant)
		}

		userID = user.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	return userID, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

func (s *UserService) SearchByUsername(ctx context.Context, fragment string) ([]models.UserProfile, error) {
	users, err := s.repomanager.Users(s.db).SearchByUsername(ctx, fragment)
	if err != nil {
		return nil, err
	}

	result := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		result = append(result, u.Profile())
	}
	return result, nil
}
