package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Tomlord1122/notes/internal/domain"
	"github.com/Tomlord1122/notes/internal/filter"
	"github.com/Tomlord1122/notes/internal/service"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Prefer", "apikey", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Range"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route(NotesPath, func(r chi.Router) {
		if s.jwtSecret != nil {
			r.Use(s.authMiddleware)
		}
		r.Get("/", s.listNotesHandler)
		r.Post("/", s.createNoteHandler)
		r.Patch("/", s.updateNotesHandler)
		r.Delete("/", s.deleteNotesHandler)
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "up", "storage": "memory"})
		return
	}
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) listNotesHandler(w http.ResponseWriter, r *http.Request) {
	id, filtered, err := filter.ParseEqInt64(r.URL.Query(), "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "PGRST100")
		return
	}

	var notes []domain.Note
	if filtered {
		notes, err = s.noteService.GetNotes(r.Context(), id)
	} else {
		notes, err = s.noteService.ListNotes(r.Context())
	}
	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, notes)
}

func (s *Server) createNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNoteRequest
	if ok := decodeBody(w, r, &req); !ok {
		return
	}

	note, err := s.noteService.CreateNote(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	if !wantsRepresentation(r) {
		w.WriteHeader(http.StatusCreated)
		return
	}
	respondWithJSON(w, http.StatusCreated, []domain.Note{*note})
}

func (s *Server) updateNotesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireRowFilter(w, r)
	if !ok {
		return
	}

	var fields map[string]json.RawMessage
	if ok := decodeBody(w, r, &fields); !ok {
		return
	}
	patch, err := patchFromFields(fields)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "PGRST204")
		return
	}

	notes, err := s.noteService.UpdateNotes(r.Context(), id, patch)
	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}
	respondWithRows(w, r, notes)
}

func (s *Server) deleteNotesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireRowFilter(w, r)
	if !ok {
		return
	}

	notes, err := s.noteService.DeleteNotes(r.Context(), id)
	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}
	respondWithRows(w, r, notes)
}

// requireRowFilter reads the id=eq.<id> filter that PATCH and DELETE must carry.
func requireRowFilter(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, filtered, err := filter.ParseEqInt64(r.URL.Query(), "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "PGRST100")
		return 0, false
	}
	if !filtered {
		respondWithError(w, http.StatusBadRequest, "UPDATE/DELETE requires a WHERE clause", "21000")
		return 0, false
	}
	return id, true
}

func patchFromFields(fields map[string]json.RawMessage) (service.NotePatch, error) {
	var patch service.NotePatch
	for column, raw := range fields {
		switch column {
		case "title", "content":
			var v string
			if err := json.Unmarshal(raw, &v); err != nil || string(raw) == "null" {
				return service.NotePatch{}, fmt.Errorf("column %q must be a string", column)
			}
			if column == "title" {
				patch.Title = &v
			} else {
				patch.Content = &v
			}
		case "status":
			var st domain.Status
			if err := json.Unmarshal(raw, &st); err != nil {
				return service.NotePatch{}, fmt.Errorf("column %q must be a string or null", column)
			}
			patch.Status = &st
		default:
			return service.NotePatch{}, fmt.Errorf("Could not find the '%s' column of 'notes' in the schema cache", column)
		}
	}
	return patch, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err == nil {
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset), "PGRST102")
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON", "PGRST102")
	case errors.As(err, &unmarshalTypeError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset), "PGRST102")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		column := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Could not find the '%s' column of 'notes' in the schema cache", column), "PGRST204")
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty", "PGRST102")
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "PGRST102")
	}
	return false
}

func wantsRepresentation(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Prefer"), "return=representation")
}

// respondWithRows answers a PATCH or DELETE: the affected rows when asked for, otherwise no body.
func respondWithRows(w http.ResponseWriter, r *http.Request, notes []domain.Note) {
	if !wantsRepresentation(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondWithJSON(w, http.StatusOK, notes)
}

func (s *Server) respondWithServiceError(w http.ResponseWriter, err error) {
	var apiErr *service.Error
	if errors.As(err, &apiErr) {
		respondWithJSON(w, apiErr.Status, apiErr)
		return
	}
	s.log.Error("unexpected service error", zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "internal error", "XX000")
}

func respondWithError(w http.ResponseWriter, code int, message, pgCode string) {
	respondWithJSON(w, code, service.Error{Status: code, Code: pgCode, Message: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
