package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"ok without status", Draft{Title: "Buy milk", Content: "2%, 1 gallon"}, nil},
		{"ok done", Draft{Title: "a", Content: "b", Status: StatusDone}, nil},
		{"blank title", Draft{Title: "  ", Content: "b"}, ErrEmptyTitle},
		{"blank content", Draft{Title: "a", Content: "\n"}, ErrEmptyContent},
		{"bad status", Draft{Title: "a", Content: "b", Status: "archived"}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.draft.Validate(), tt.want)
		})
	}
}

func TestDraftWithDefaultStatus(t *testing.T) {
	d := Draft{Title: "a", Content: "b"}
	assert.Equal(t, StatusPending, d.WithDefaultStatus().Status)
	assert.Equal(t, StatusUnset, d.Status, "receiver must not change")

	d.Status = StatusDone
	assert.Equal(t, StatusDone, d.WithDefaultStatus().Status)
}

func TestStatusJSONNull(t *testing.T) {
	var n Note
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"title":"t","content":"c","status":null}`), &n))
	assert.Equal(t, StatusUnset, n.Status)

	out, err := json.Marshal(Draft{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","content":"c","status":null}`, string(out))

	out, err = json.Marshal(Draft{Title: "t", Content: "c", Status: StatusDone})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","content":"c","status":"done"}`, string(out))
}

func TestDraftFrom(t *testing.T) {
	n := Note{ID: 7, Title: "t", Content: "c", Status: StatusPending}
	assert.Equal(t, Draft{Title: "t", Content: "c", Status: StatusPending}, DraftFrom(n))
	assert.True(t, Draft{}.IsZero())
}
