package controller

import "github.com/Tomlord1122/notes/internal/domain"

// View is a snapshot of everything a renderer shows.
type View struct {
	Notes    []domain.Note
	Draft    domain.Draft
	EditMode bool
	EditID   int64
	Loading  bool
	State    State
	// Message is the error or success line. It is empty while loading.
	Message string
	// ConfirmDelete is true while PendingDeleteID awaits confirmation.
	ConfirmDelete   bool
	PendingDeleteID int64
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Notes:    append([]domain.Note(nil), c.notes...),
		Draft:    c.draft,
		EditMode: c.editMode,
		EditID:   c.editID,
		Loading:  c.loading,
		State:    c.state(),
	}
	switch v.State {
	case StateError:
		v.Message = c.errMsg
	case StateSuccess:
		v.Message = c.successMsg
	}
	if c.pendingDelete != nil {
		v.ConfirmDelete = true
		v.PendingDeleteID = *c.pendingDelete
	}
	return v
}
