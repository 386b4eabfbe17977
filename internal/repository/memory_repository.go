package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Tomlord1122/notes/internal/domain"
)

// memoryNoteRepository keeps notes in a map. It backs the server when no database
// is configured and serves as the fixture for handler tests.
type memoryNoteRepository struct {
	mu     sync.RWMutex
	notes  map[int64]domain.Note
	nextID int64
	now    func() time.Time
}

func NewMemoryNoteRepository() NoteRepository {
	return &memoryNoteRepository{
		notes: make(map[int64]domain.Note),
		now:   time.Now,
	}
}

func (r *memoryNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	note.ID = r.nextID
	if note.CreatedAt.IsZero() {
		note.CreatedAt = r.now().UTC()
	}
	r.notes[note.ID] = *note
	return nil
}

func (r *memoryNoteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &note, nil
}

func (r *memoryNoteRepository) GetAll(ctx context.Context) ([]domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notes := make([]domain.Note, 0, len(r.notes))
	for _, n := range r.notes {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (r *memoryNoteRepository) Update(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[id]
	if !ok {
		return 0, nil
	}
	for column, value := range fields {
		switch column {
		case "title":
			note.Title = fmt.Sprint(value)
		case "content":
			note.Content = fmt.Sprint(value)
		case "status":
			note.Status = domain.Status(fmt.Sprint(value))
		default:
			return 0, fmt.Errorf("unknown column %q", column)
		}
	}
	r.notes[id] = note
	return 1, nil
}

func (r *memoryNoteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return 0, nil
	}
	delete(r.notes, id)
	return 1, nil
}
