package notes

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+notes\s*\(id,\s*title,\s*body,\s*tags,\s*created_at,\s*updated_at,\s*owner\).+RETURNING\s+id$`
	ownerQ  = `^SELECT owner FROM notes WHERE id = \$1$`
	listQ   = `(?s)^SELECT\s+notes\.id.+LEFT\s+JOIN\s+collaborations.+WHERE\s+notes\.owner\s*=\s*\$1\s+OR\s+collaborations\.user_id\s*=\s*\$1\s+GROUP\s+BY\s+notes\.id.+$`
	byIDQ   = `(?s)^SELECT\s+notes\.id.+LEFT\s+JOIN\s+users\s+ON\s+users\.id\s*=\s*notes\.owner\s+WHERE\s+notes\.id\s*=\s*\$1$`
	updateQ = `(?s)^UPDATE\s+notes\s+SET\s+title\s*=\s*\$2,\s*body\s*=\s*\$3,\s*tags\s*=\s*\$4,\s*updated_at\s*=\s*\$5\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id$`
	deleteQ = `^DELETE FROM notes WHERE id = \$1 RETURNING id$`
)

var ts = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

func sampleNote() *models.Note {
	return &models.Note{
		ID: "note-1", Title: "t", Body: "b", Tags: models.Tags{"x"},
		Owner: "user-1", CreatedAt: ts, UpdatedAt: ts,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs("note-1", "t", "b", `["x"]`, ts, ts, "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("note-1"))

	id, err := repo.Create(context.Background(), sampleNote())
	require.NoError(t, err)
	assert.Equal(t, "note-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NoIDIsInvariant(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err := repo.Create(context.Background(), sampleNote())
	assert.ErrorIs(t, err, common.ErrorInvariant)

	mock.ExpectQuery(insertQ).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(""))
	_, err = repo.Create(context.Background(), sampleNote())
	assert.ErrorIs(t, err, common.ErrorInvariant)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))
	_, err := repo.Create(context.Background(), sampleNote())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(ownerQ).WithArgs("note-1").WillReturnRows(sqlmock.NewRows([]string{"owner"}).AddRow("user-1"))
	mock.ExpectQuery(ownerQ).WithArgs("note-x").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(ownerQ).WithArgs("note-y").WillReturnError(errors.New("conn reset"))

	owner, err := repo.GetOwner(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	_, err = repo.GetOwner(context.Background(), "note-x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "note not found", common.Message(err))

	_, err = repo.GetOwner(context.Background(), "note-y")
	require.Error(t, err)
	assert.False(t, common.IsClientError(err))
}

func TestListAccessible(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "title", "body", "tags", "owner", "created_at", "updated_at"}).
		AddRow("note-1", "mine", "b", []byte(`["a"]`), "user-1", ts, ts).
		AddRow("note-2", "shared", "b", []byte(`[]`), "user-2", ts, ts)
	mock.ExpectQuery(listQ).WithArgs("user-1").WillReturnRows(rows)

	got, err := repo.ListAccessible(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Tags{"a"}, got[0].Tags)
	assert.Equal(t, "user-2", got[1].Owner)
}

func TestListAccessible_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WithArgs("user-1").WillReturnError(errors.New("db err"))
	_, err := repo.ListAccessible(context.Background(), "user-1")
	assert.Error(t, err)

	bad := sqlmock.NewRows([]string{"id", "title", "body", "tags", "owner", "created_at", "updated_at"}).
		AddRow("note-1", "t", "b", []byte(`not json`), "user-1", ts, ts)
	mock.ExpectQuery(listQ).WithArgs("user-1").WillReturnRows(bad)
	_, err = repo.ListAccessible(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "title", "body", "tags", "owner", "created_at", "updated_at", "username"}).
		AddRow("note-1", "t", "b", []byte(`["x"]`), "user-1", ts, ts, "alice")
	mock.ExpectQuery(byIDQ).WithArgs("note-1").WillReturnRows(rows)
	mock.ExpectQuery(byIDQ).WithArgs("note-x").WillReturnError(sql.ErrNoRows)

	n, err := repo.GetByID(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", n.Username)
	assert.Equal(t, models.Tags{"x"}, n.Tags)

	_, err = repo.GetByID(context.Background(), "note-x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(updateQ).
		WithArgs("note-1", "t", "b", `["x"]`, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("note-1"))
	mock.ExpectQuery(updateQ).
		WithArgs("note-1", "t", "b", `["x"]`, ts).
		WillReturnError(sql.ErrNoRows)

	require.NoError(t, repo.Update(context.Background(), sampleNote()))

	err := repo.Update(context.Background(), sampleNote())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(deleteQ).WithArgs("note-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("note-1"))
	mock.ExpectQuery(deleteQ).WithArgs("note-1").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(deleteQ).WithArgs("note-2").WillReturnError(errors.New("db err"))

	require.NoError(t, repo.Delete(context.Background(), "note-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "note-1"), common.ErrorNotFound)

	err := repo.Delete(context.Background(), "note-2")
	require.Error(t, err)
	assert.False(t, common.IsClientError(err))
}
