package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/notes/internal/domain"
	"github.com/Tomlord1122/notes/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func TestCreateNoteDefaultsStatus(t *testing.T) {
	svc := NewNoteService(repository.NewMemoryNoteRepository(), nil)

	note, err := svc.CreateNote(context.Background(), CreateNoteRequest{
		Title:   ptr("Buy milk"),
		Content: ptr("2%, 1 gallon"),
		Status:  ptr(domain.StatusUnset),
	})
	require.NoError(t, err)
	assert.NotZero(t, note.ID)
	assert.Equal(t, domain.StatusPending, note.Status)

	done, err := svc.CreateNote(context.Background(), CreateNoteRequest{Title: ptr("t"), Content: ptr("c"), Status: ptr(domain.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, done.Status)
}

func TestCreateNoteNotNull(t *testing.T) {
	svc := NewNoteService(repository.NewMemoryNoteRepository(), nil)

	_, err := svc.CreateNote(context.Background(), CreateNoteRequest{Content: ptr("c")})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "23502", apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, `"title"`)
}

func TestUpdateNotes(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(repository.NewMemoryNoteRepository(), nil)
	note, err := svc.CreateNote(ctx, CreateNoteRequest{Title: ptr("old"), Content: ptr("body")})
	require.NoError(t, err)

	rows, err := svc.UpdateNotes(ctx, note.ID, NotePatch{Title: ptr("new"), Status: ptr(domain.StatusUnset)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].Title)
	assert.Equal(t, "body", rows[0].Content, "absent columns are untouched")
	assert.Equal(t, domain.StatusUnset, rows[0].Status)

	rows, err = svc.UpdateNotes(ctx, 999, NotePatch{Title: ptr("x")})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = svc.UpdateNotes(ctx, note.ID, NotePatch{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDeleteNotes(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(repository.NewMemoryNoteRepository(), nil)
	note, err := svc.CreateNote(ctx, CreateNoteRequest{Title: ptr("t"), Content: ptr("c")})
	require.NoError(t, err)

	rows, err := svc.DeleteNotes(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, note.ID, rows[0].ID)

	rows, err = svc.DeleteNotes(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	list, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

type failingRepo struct {
	repository.NoteRepository
	err error
}

func (f failingRepo) GetAll(ctx context.Context) ([]domain.Note, error) { return nil, f.err }

func TestTranslatePgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint", Detail: "Key (id)=(1) already exists."}
	svc := NewNoteService(failingRepo{err: pgErr}, nil)

	_, err := svc.ListNotes(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "23505", apiErr.Code)
	assert.Equal(t, "Key (id)=(1) already exists.", apiErr.Details)
}

func TestTranslateUnknownError(t *testing.T) {
	svc := NewNoteService(failingRepo{err: errors.New("connection refused")}, nil)

	_, err := svc.ListNotes(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.NotContains(t, apiErr.Message, "connection refused")
}

func TestStatusForSQLState(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusForSQLState("22P02"))
	assert.Equal(t, http.StatusForbidden, statusForSQLState("42501"))
	assert.Equal(t, http.StatusInternalServerError, statusForSQLState("08006"))
}
