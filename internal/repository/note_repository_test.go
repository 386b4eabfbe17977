package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tomlord1122/notes/internal/domain"
)

func newMockRepository(t *testing.T) (NoteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormNoteRepository(gormDB), mock
}

func TestGormGetAll(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notes" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "status", "created_at"}).
			AddRow(1, "Buy milk", "2%, 1 gallon", "pending", created).
			AddRow(2, "Call mom", "Sunday", "", created))

	notes, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, domain.StatusPending, notes[0].Status)
	assert.Equal(t, domain.StatusUnset, notes[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCreateAssignsID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "notes"`)).
		WithArgs("Buy milk", "2%, 1 gallon", "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))

	note := &domain.Note{Title: "Buy milk", Content: "2%, 1 gallon", Status: domain.StatusPending}
	require.NoError(t, repo.Create(context.Background(), note))
	assert.Equal(t, int64(17), note.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFindByIDMissing(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notes" WHERE "notes"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "status", "created_at"}))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUpdateReportsRows(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notes" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.Update(context.Background(), 42, map[string]any{"title": "t", "content": "c", "status": ""})
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDelete(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "notes" WHERE id = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNoteRepository()

	a := &domain.Note{Title: "a", Content: "1", Status: domain.StatusPending}
	b := &domain.Note{Title: "b", Content: "2"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	rows, err := repo.Update(ctx, a.ID, map[string]any{"status": "done"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, "a", got.Title)

	rows, err = repo.Update(ctx, 999, map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.Zero(t, rows)

	_, err = repo.Update(ctx, a.ID, map[string]any{"priority": 1})
	assert.Error(t, err)

	rows, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	rows, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)

	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, a.ID, all[0].ID)
}
