// Package notesapi talks to the remote notes table over its REST interface.
package notesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tomlord1122/notes/internal/domain"
	"github.com/Tomlord1122/notes/internal/filter"
)

const DefaultTimeout = 10 * time.Second

// Config carries everything the client needs to reach the remote table.
type Config struct {
	// BaseURL is the collection resource, e.g. https://<project>.supabase.co/rest/v1/notes.
	BaseURL string
	// APIKey is sent both as the apikey header and as the bearer credential.
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NotesClient is the set of operations the controller needs from the remote.
type NotesClient interface {
	List(ctx context.Context) ([]domain.Note, error)
	Create(ctx context.Context, draft domain.Draft) (domain.Note, error)
	Update(ctx context.Context, id int64, draft domain.Draft) (domain.Note, error)
	Delete(ctx context.Context, id int64) error
}

// Client issues exactly one HTTP request per operation, with no retries or caching.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ NotesClient = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("notesapi: base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("notesapi: API key is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: base, apiKey: cfg.APIKey, http: hc}, nil
}

// List returns every note stored remotely, in the order the remote returns them.
func (c *Client) List(ctx context.Context) ([]domain.Note, error) {
	var notes []domain.Note
	if err := c.do(ctx, "list", http.MethodGet, c.baseURL, nil, false, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// Create stores draft as a new note and returns the remote's representation of it.
func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Note, error) {
	var rows []domain.Note
	if err := c.do(ctx, "create", http.MethodPost, c.baseURL, draft, true, &rows); err != nil {
		return domain.Note{}, err
	}
	if len(rows) == 0 {
		return domain.Note{}, &TransportError{Op: "create", Method: http.MethodPost, URL: c.baseURL, StatusCode: http.StatusOK, Message: "remote returned no row"}
	}
	return rows[0], nil
}

// Update replaces the editable fields of the note identified by id.
func (c *Client) Update(ctx context.Context, id int64, draft domain.Draft) (domain.Note, error) {
	target := c.rowURL(id)
	var rows []domain.Note
	if err := c.do(ctx, "update", http.MethodPatch, target, draft, true, &rows); err != nil {
		return domain.Note{}, err
	}
	if len(rows) == 0 {
		return domain.Note{}, &TransportError{Op: "update", Method: http.MethodPatch, URL: target, StatusCode: http.StatusNotFound, Message: fmt.Sprintf("no note matched id=%d", id)}
	}
	return rows[0], nil
}

// Delete removes the note identified by id. A missing id is not reported by the remote.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, c.rowURL(id), nil, false, nil)
}

func (c *Client) rowURL(id int64) string {
	return c.baseURL + "?" + filter.EqInt64("id", id).Encode()
}

func (c *Client) do(ctx context.Context, op, method, target string, body any, representation bool, out any) error {
	fail := func(status int, msg string, err error) error {
		return &TransportError{Op: op, Method: method, URL: target, StatusCode: status, Message: msg, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(0, "encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fail(0, "build request", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if representation {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, "request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, remoteMessage(resp.StatusCode, data), nil)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, "malformed JSON response", err)
	}
	return nil
}

// remoteError is the error body the remote table answers with.
type remoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func remoteMessage(status int, body []byte) string {
	var re remoteError
	if err := json.Unmarshal(body, &re); err == nil && re.Message != "" {
		if re.Code != "" {
			return fmt.Sprintf("%s (%s)", re.Message, re.Code)
		}
		return re.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}
