package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle marker of a note. The zero value means the status was never set.
type Status string

const (
	StatusUnset   Status = ""
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrEmptyContent  = errors.New("content cannot be empty")
	ErrInvalidStatus = errors.New("status must be pending or done")
)

// Valid reports whether s is one of the known statuses or unset.
func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusPending, StatusDone:
		return true
	}
	return false
}

// MarshalJSON encodes an unset status as null, the way the remote table stores it.
func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StatusUnset
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	*s = Status(raw)
	return nil
}

// Note is a row of the remote notes table.
type Note struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	Status    Status    `json:"status" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft holds the editable fields of a note while it is being composed.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}

// DraftFrom copies the editable fields of n.
func DraftFrom(n Note) Draft {
	return Draft{Title: n.Title, Content: n.Content, Status: n.Status}
}

// IsZero reports whether every field of the draft is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// WithDefaultStatus returns a copy of d whose blank status is pending.
func (d Draft) WithDefaultStatus() Draft {
	if d.Status == StatusUnset {
		d.Status = StatusPending
	}
	return d
}

// Validate checks the fields a form requires before submission.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
