package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/dbx"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/collaborations"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/users"
)

// --- in-memory repositories ---

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	err   error
	calls int
}

func newMemUsers(us ...*models.User) *memUsers {
	m := &memUsers{byID: map[string]*models.User{}}
	for _, u := range us {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, existing := range m.byID {
		if existing.UserName == u.UserName {
			return nil, fmt.Errorf("%w: username already used", common.ErrorInvariant)
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return &cp, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.UserName == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user not found", common.ErrorNotFound)
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: user not found", common.ErrorNotFound)
}

func (m *memUsers) SearchByUsername(ctx context.Context, fragment string) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.User, 0)
	for _, u := range m.byID {
		if strings.Contains(strings.ToLower(u.UserName), strings.ToLower(fragment)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	return out, nil
}

type memNotes struct {
	mu      sync.Mutex
	byID    map[string]*models.Note
	collabs *memCollabs
	err     error
}

func newMemNotes(collabs *memCollabs, ns ...*models.Note) *memNotes {
	m := &memNotes{byID: map[string]*models.Note{}, collabs: collabs}
	for _, n := range ns {
		m.byID[n.ID] = n
	}
	return m
}

func (m *memNotes) Create(ctx context.Context, n *models.Note) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	cp := *n
	m.byID[n.ID] = &cp
	return n.ID, nil
}

func (m *memNotes) GetOwner(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	n, ok := m.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: note not found", common.ErrorNotFound)
	}
	return n.Owner, nil
}

func (m *memNotes) ListAccessible(ctx context.Context, userID string) ([]*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Note, 0)
	for _, n := range m.byID {
		shared := false
		if m.collabs != nil {
			shared, _ = m.collabs.Exists(ctx, n.ID, userID)
		}
		if n.Owner == userID || shared {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memNotes) GetByID(ctx context.Context, id string) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: note not found", common.ErrorNotFound)
	}
	return n, nil
}

func (m *memNotes) Update(ctx context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[n.ID]
	if !ok {
		return fmt.Errorf("%w: note could not be updated, id not found", common.ErrorNotFound)
	}
	cur.Title, cur.Body, cur.Tags, cur.UpdatedAt = n.Title, n.Body, n.Tags, n.UpdatedAt
	return nil
}

func (m *memNotes) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("%w: note could not be deleted, id not found", common.ErrorNotFound)
	}
	delete(m.byID, id)
	return nil
}

type memCollabs struct {
	mu    sync.Mutex
	pairs map[[2]string]string
	err   error
}

func newMemCollabs() *memCollabs {
	return &memCollabs{pairs: map[[2]string]string{}}
}

func (m *memCollabs) Create(ctx context.Context, c *models.Collaboration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	key := [2]string{c.NoteID, c.UserID}
	if _, ok := m.pairs[key]; ok {
		return "", fmt.Errorf("%w: collaboration could not be added", common.ErrorInvariant)
	}
	m.pairs[key] = c.ID
	return c.ID, nil
}

func (m *memCollabs) Delete(ctx context.Context, noteID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{noteID, userID}
	if _, ok := m.pairs[key]; !ok {
		return fmt.Errorf("%w: collaboration could not be deleted", common.ErrorInvariant)
	}
	delete(m.pairs, key)
	return nil
}

func (m *memCollabs) Exists(ctx context.Context, noteID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.pairs[[2]string{noteID, userID}]
	return ok, nil
}

type memTokens struct {
	mu        sync.Mutex
	tokens    map[string]struct{}
	createErr error
	existsErr error
}

func newMemTokens() *memTokens {
	return &memTokens{tokens: map[string]struct{}{}}
}

func (m *memTokens) Create(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.tokens[token]; ok {
		return fmt.Errorf("%w: refresh token already stored", common.ErrorInvariant)
	}
	m.tokens[token] = struct{}{}
	return nil
}

func (m *memTokens) Exists(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.tokens[token]
	return ok, nil
}

func (m *memTokens) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[token]; !ok {
		return fmt.Errorf("%w: refresh token not found", common.ErrorNotFound)
	}
	delete(m.tokens, token)
	return nil
}

// --- repository manager ---

type fakeRepoManager struct {
	users   *memUsers
	notes   *memNotes
	collabs *memCollabs
	tokens  *memTokens
}

func newFakeRepoManager() *fakeRepoManager {
	collabs := newMemCollabs()
	return &fakeRepoManager{
		users:   newMemUsers(),
		notes:   newMemNotes(collabs),
		collabs: collabs,
		tokens:  newMemTokens(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error         { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                   { return m.users }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notes.Repository                   { return m.notes }
func (m *fakeRepoManager) Collaborations(db dbx.DBTX) collaborations.Repository { return m.collabs }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository   { return m.tokens }

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
