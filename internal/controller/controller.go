// Package controller sequences user actions on the notes page against the remote
// notes table and keeps the state a renderer needs: the list, the form draft, edit
// mode, the loading flag and one transient message.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tomlord1122/notes/internal/domain"
	"github.com/Tomlord1122/notes/internal/notesapi"
)

// SuccessTTL is how long a success message stays visible.
const SuccessTTL = 3 * time.Second

const (
	msgLoadFailed = "failed to load notes"
	msgAdded      = "note added"
	msgUpdated    = "note updated"
)

var (
	// ErrBusy is returned when an operation is started while another one is in flight.
	ErrBusy            = errors.New("another request is in progress")
	ErrNoPendingDelete = errors.New("no delete is awaiting confirmation")
	ErrUnknownField    = errors.New("unknown form field")
)

// State is the user-visible status of the page. Exactly one is active at a time.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithScrollHook sets the callback fired when a note is opened for editing, so the
// view can bring the form into sight.
func WithScrollHook(f func()) Option {
	return func(c *Controller) { c.onScroll = f }
}

func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) { c.afterFunc = f }
}

func WithSuccessTTL(d time.Duration) Option {
	return func(c *Controller) { c.successTTL = d }
}

// Controller is safe for concurrent use. Network calls run outside the lock; only one
// of Mount, Reload, Submit and ConfirmDelete may be in flight at once.
type Controller struct {
	client     notesapi.NotesClient
	log        *zap.Logger
	onScroll   func()
	afterFunc  AfterFunc
	successTTL time.Duration

	mu            sync.Mutex
	notes         []domain.Note
	draft         domain.Draft
	editMode      bool
	editID        int64
	loading       bool
	inFlight      bool
	errMsg        string
	successMsg    string
	successSeq    uint64
	stopSuccess   func() bool
	pendingDelete *int64
}

func New(client notesapi.NotesClient, opts ...Option) *Controller {
	c := &Controller{
		client:     client,
		log:        zap.NewNop(),
		onScroll:   func() {},
		afterFunc:  realAfterFunc,
		successTTL: SuccessTTL,
		notes:      []domain.Note{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount loads the list the first time the page is shown.
func (c *Controller) Mount(ctx context.Context) error {
	return c.Reload(ctx)
}

// Reload replaces the list with the remote's current contents. On failure the
// previous list is kept.
func (c *Controller) Reload(ctx context.Context) error {
	if err := c.begin(nil); err != nil {
		return err
	}
	defer c.end()
	return c.load(ctx)
}

// Submit creates a note from the draft, or updates the note being edited. The list
// is reloaded only after the mutation succeeded.
func (c *Controller) Submit(ctx context.Context) error {
	var (
		draft    domain.Draft
		editMode bool
		editID   int64
	)
	err := c.begin(func() error {
		c.clearSuccess()
		if err := c.draft.Validate(); err != nil {
			c.errMsg = err.Error()
			return err
		}
		draft, editMode, editID = c.draft, c.editMode, c.editID
		return nil
	})
	if err != nil {
		return err
	}
	defer c.end()

	msg := msgAdded
	if editMode {
		msg = msgUpdated
		_, err = c.client.Update(ctx, editID, draft)
	} else {
		_, err = c.client.Create(ctx, draft.WithDefaultStatus())
	}
	if err != nil {
		c.log.Error("submit note failed", zap.Bool("edit", editMode), zap.Int64("id", editID), zap.Error(err))
		c.mu.Lock()
		c.setError("something went wrong: " + err.Error())
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.draft = domain.Draft{}
	c.editMode = false
	c.editID = 0
	c.setSuccess(msg)
	c.mu.Unlock()
	c.log.Info(msg, zap.Int64("id", editID))

	if err := c.load(ctx); err != nil {
		return fmt.Errorf("reload notes: %w", err)
	}
	return nil
}

// RequestDelete asks for confirmation before the note with id is deleted.
// Nothing is sent until ConfirmDelete.
func (c *Controller) RequestDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = &id
}

// CancelDelete drops a pending delete request.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = nil
}

// ConfirmDelete deletes the note named by the last RequestDelete and reloads the list.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	var id int64
	err := c.begin(func() error {
		if c.pendingDelete == nil {
			return ErrNoPendingDelete
		}
		id = *c.pendingDelete
		c.pendingDelete = nil
		return nil
	})
	if err != nil {
		return err
	}
	defer c.end()

	if err := c.client.Delete(ctx, id); err != nil {
		c.log.Error("delete note failed", zap.Int64("id", id), zap.Error(err))
		c.mu.Lock()
		c.setError("something went wrong: " + err.Error())
		c.mu.Unlock()
		return err
	}
	c.log.Info("note deleted", zap.Int64("id", id))
	return c.load(ctx)
}

// Edit loads note into the form and switches to edit mode.
func (c *Controller) Edit(note domain.Note) {
	c.mu.Lock()
	c.draft = domain.DraftFrom(note)
	c.editMode = true
	c.editID = note.ID
	c.mu.Unlock()
	c.onScroll()
}

// CancelEdit empties the form and leaves edit mode.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = domain.Draft{}
	c.editMode = false
	c.editID = 0
}

func (c *Controller) SetDraft(d domain.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// SetField updates one form field by name: title, content or status.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch name {
	case "title":
		c.draft.Title = value
	case "content":
		c.draft.Content = value
	case "status":
		c.draft.Status = domain.Status(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Notes returns a copy of the current list.
func (c *Controller) Notes() []domain.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Note(nil), c.notes...)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) state() State {
	switch {
	case c.loading:
		return StateLoading
	case c.errMsg != "":
		return StateError
	case c.successMsg != "":
		return StateSuccess
	}
	return StateIdle
}

// begin claims the in-flight slot. pre runs under the lock before anything changes;
// an error from it aborts the operation.
func (c *Controller) begin(pre func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrBusy
	}
	c.errMsg = ""
	if pre != nil {
		if err := pre(); err != nil {
			return err
		}
	}
	c.inFlight = true
	c.loading = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.inFlight = false
}

func (c *Controller) load(ctx context.Context) error {
	notes, err := c.client.List(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Error("load notes failed", zap.Error(err))
		c.setError(msgLoadFailed)
		return err
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	c.notes = notes
	c.log.Debug("notes loaded", zap.Int("count", len(notes)))
	return nil
}

// setError and setSuccess must be called with mu held.
func (c *Controller) setError(msg string) {
	c.clearSuccess()
	c.errMsg = msg
}

func (c *Controller) setSuccess(msg string) {
	c.clearSuccess()
	c.errMsg = ""
	c.successMsg = msg
	c.successSeq++
	seq := c.successSeq
	c.stopSuccess = c.afterFunc(c.successTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.successSeq == seq {
			c.successMsg = ""
			c.stopSuccess = nil
		}
	})
}

func (c *Controller) clearSuccess() {
	if c.stopSuccess != nil {
		c.stopSuccess()
		c.stopSuccess = nil
	}
	c.successMsg = ""
}
