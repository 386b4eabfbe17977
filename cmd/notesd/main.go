package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Tomlord1122/notes/internal/config"
	"github.com/Tomlord1122/notes/internal/database"
	"github.com/Tomlord1122/notes/internal/logger"
	"github.com/Tomlord1122/notes/internal/repository"
	"github.com/Tomlord1122/notes/internal/server"
	"github.com/Tomlord1122/notes/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, log *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if dbService != nil {
		log.Info("closing database connection pool")
		if err := dbService.Close(); err != nil {
			log.Error("close database connection pool", zap.Error(err))
		}
	}

	log.Info("server exiting")
	done <- true
}

func openStorage(cfg config.Server, log *zap.Logger) (repository.NoteRepository, database.Service, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("notes are kept in memory and are lost on restart")
		return repository.NewMemoryNoteRepository(), nil, nil
	}

	dbService, err := database.New(cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	// Auto-migrate keeps the single notes table in step with domain.Note.
	log.Info("running database auto-migration")
	if err := database.Migrate(dbService.GetDB()); err != nil {
		dbService.Close()
		return nil, nil, err
	}
	return repository.NewGormNoteRepository(dbService.GetDB()), dbService, nil
}

func main() {
	log := logger.New(false)
	defer log.Sync()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal("load server config", zap.Error(err))
	}

	noteRepo, dbService, err := openStorage(cfg, log)
	if err != nil {
		log.Fatal("open storage", zap.String("storage", cfg.Storage), zap.Error(err))
	}

	noteService := service.NewNoteService(noteRepo, log)

	if cfg.JWTSecret == "" {
		log.Warn("NOTES_JWT_SECRET is not set, serving notes without authentication")
	}
	apiServer := server.NewHTTPServer(server.New(server.Options{
		Port:        cfg.Port,
		NoteService: noteService,
		DB:          dbService,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
	}))

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, log, done)

	log.Info("starting server", zap.String("addr", apiServer.Addr), zap.String("storage", cfg.Storage))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server", zap.Error(err))
	}

	<-done
	log.Info("graceful shutdown complete")
}
