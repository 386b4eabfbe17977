package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Tomlord1122/notes/internal/database"
	"github.com/Tomlord1122/notes/internal/service"
)

// NotesPath is where the notes table is served, matching the hosted layout.
const NotesPath = "/rest/v1/notes"

type Server struct {
	port        int
	noteService service.NoteService
	db          database.Service
	jwtSecret   []byte
	log         *zap.Logger
}

// Options wires a Server. DB may be nil when notes are kept in memory; JWTSecret may
// be empty to serve without authentication.
type Options struct {
	Port        int
	NoteService service.NoteService
	DB          database.Service
	JWTSecret   string
	Logger      *zap.Logger
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		port:        opts.Port,
		noteService: opts.NoteService,
		db:          opts.DB,
		log:         log,
	}
	if opts.JWTSecret != "" {
		s.jwtSecret = []byte(opts.JWTSecret)
	}
	return s
}

// NewHTTPServer wraps the routes in an http.Server with the usual timeouts.
func NewHTTPServer(s *Server) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
