package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tomlord1122/notes/internal/domain"
)

// NoteRepository defines the data operations behind the notes table.
// FindByID returns gorm.ErrRecordNotFound for a missing row, whatever the backend.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	GetAll(ctx context.Context) ([]domain.Note, error)
	// Update applies the given column values and reports how many rows matched.
	Update(ctx context.Context, id int64, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// gormNoteRepository implements NoteRepository using GORM
type gormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GORM note repository
func NewGormNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{db: db}
}

func (r *gormNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	// GORM fills note.ID from the RETURNING clause
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *gormNoteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	var note domain.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// GetAll returns every note ordered by id, the order the client displays.
func (r *gormNoteRepository) GetAll(ctx context.Context) ([]domain.Note, error) {
	var notes []domain.Note
	if err := r.db.WithContext(ctx).Order("id").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *gormNoteRepository) Update(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	// Updates with a map writes zero values too, so an unset status really clears it
	result := r.db.WithContext(ctx).Model(&domain.Note{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *gormNoteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	// Hard delete: the model has no DeletedAt column
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Note{})
	return result.RowsAffected, result.Error
}
