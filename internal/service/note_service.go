package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Tomlord1122/notes/internal/domain"
	"github.com/Tomlord1122/notes/internal/repository"
)

// CreateNoteRequest holds the columns of a new row. Nil means the column was absent
// from the request body.
type CreateNoteRequest struct {
	Title   *string        `json:"title"`
	Content *string        `json:"content"`
	Status  *domain.Status `json:"status"`
}

// NotePatch lists the columns a PATCH touches. A non-nil Status pointing at
// StatusUnset clears the column.
type NotePatch struct {
	Title   *string
	Content *string
	Status  *domain.Status
}

func (p NotePatch) empty() bool {
	return p.Title == nil && p.Content == nil && p.Status == nil
}

// Error is what the HTTP layer renders; the fields follow the table API's error body.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NoteService defines the operations behind the notes table endpoint.
// Every read and write returns the affected rows, as the table API does.
type NoteService interface {
	ListNotes(ctx context.Context) ([]domain.Note, error)
	// GetNotes returns the rows matching id, zero or one.
	GetNotes(ctx context.Context, id int64) ([]domain.Note, error)
	CreateNote(ctx context.Context, req CreateNoteRequest) (*domain.Note, error)
	UpdateNotes(ctx context.Context, id int64, patch NotePatch) ([]domain.Note, error)
	DeleteNotes(ctx context.Context, id int64) ([]domain.Note, error)
}

type noteService struct {
	repo repository.NoteRepository
	log  *zap.Logger
}

// NewNoteService creates a new instance of noteService.
func NewNoteService(repo repository.NoteRepository, log *zap.Logger) NoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &noteService{repo: repo, log: log}
}

func (s *noteService) ListNotes(ctx context.Context) ([]domain.Note, error) {
	notes, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("list notes", zap.Error(err))
		return nil, translate(err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

func (s *noteService) GetNotes(ctx context.Context, id int64) ([]domain.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.Note{}, nil
	}
	if err != nil {
		s.log.Error("get note", zap.Int64("id", id), zap.Error(err))
		return nil, translate(err)
	}
	return []domain.Note{*note}, nil
}

func (s *noteService) CreateNote(ctx context.Context, req CreateNoteRequest) (*domain.Note, error) {
	// Mirror the table's NOT NULL constraints; empty strings are accepted like the remote does.
	if req.Title == nil {
		return nil, notNull("title")
	}
	if req.Content == nil {
		return nil, notNull("content")
	}

	note := &domain.Note{
		Title:   *req.Title,
		Content: *req.Content,
		Status:  domain.StatusPending, // column default
	}
	if req.Status != nil && *req.Status != domain.StatusUnset {
		note.Status = *req.Status
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.log.Error("create note", zap.Error(err))
		return nil, translate(err)
	}
	s.log.Debug("note created", zap.Int64("id", note.ID))
	return note, nil
}

func (s *noteService) UpdateNotes(ctx context.Context, id int64, patch NotePatch) ([]domain.Note, error) {
	if patch.empty() {
		return s.GetNotes(ctx, id)
	}

	fields := make(map[string]any, 3)
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if patch.Status != nil {
		fields["status"] = string(*patch.Status)
	}

	rows, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.log.Error("update note", zap.Int64("id", id), zap.Error(err))
		return nil, translate(err)
	}
	if rows == 0 {
		return []domain.Note{}, nil
	}
	return s.GetNotes(ctx, id)
}

func (s *noteService) DeleteNotes(ctx context.Context, id int64) ([]domain.Note, error) {
	existing, err := s.GetNotes(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		// Nothing matched; the table API answers success for an empty delete.
		return existing, nil
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete note", zap.Int64("id", id), zap.Error(err))
		return nil, translate(err)
	}
	return existing, nil
}

func notNull(column string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    "23502",
		Message: `null value in column "` + column + `" of relation "notes" violates not-null constraint`,
	}
}

// translate turns storage errors into API errors, keeping the SQLSTATE when postgres
// reported one.
func translate(err error) *Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{
			Status:  statusForSQLState(pgErr.Code),
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Hint:    pgErr.Hint,
		}
	}
	return &Error{Status: http.StatusInternalServerError, Code: "XX000", Message: "internal error"}
}

func statusForSQLState(code string) int {
	switch {
	case code == "23505":
		return http.StatusConflict
	case code == "23503" || code == "23502" || code == "23514":
		return http.StatusBadRequest
	case strings.HasPrefix(code, "22"):
		return http.StatusBadRequest
	case code == "42501":
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
