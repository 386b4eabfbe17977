// Package config loads settings for the notes CLI and server from the environment,
// a .env file and an optional TOML file. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	_ "github.com/joho/godotenv/autoload"
)

const (
	DefaultCatalogURL  = "https://dummyjson.com"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultPort        = 8080
)

// Client configures the notes CLI.
type Client struct {
	APIURL     string
	APIKey     string
	Timeout    time.Duration
	CatalogURL string
}

// File is the on-disk shape of config.toml.
type File struct {
	API     APIFile     `toml:"api"`
	Catalog CatalogFile `toml:"catalog"`
}

type APIFile struct {
	URL string `toml:"url"`
	Key string `toml:"key"`
	// Timeout is a Go duration string such as "5s".
	Timeout string `toml:"timeout"`
}

type CatalogFile struct {
	URL string `toml:"url"`
}

// DefaultPath returns ~/.config/notes/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "notes", "config.toml"), nil
}

// LoadClient reads the file at path (the default path when empty) and overlays the
// environment. A missing file is not an error.
func LoadClient(path string) (Client, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Client{}, err
		}
		path = p
	}

	file, err := loadFile(path)
	if err != nil {
		return Client{}, err
	}

	cfg := Client{
		APIURL:     firstNonEmpty(os.Getenv("NOTES_API_URL"), file.API.URL),
		APIKey:     firstNonEmpty(os.Getenv("NOTES_API_KEY"), file.API.Key),
		CatalogURL: firstNonEmpty(os.Getenv("CATALOG_API_URL"), file.Catalog.URL, DefaultCatalogURL),
		Timeout:    DefaultHTTPTimeout,
	}
	if raw := firstNonEmpty(os.Getenv("NOTES_HTTP_TIMEOUT"), file.API.Timeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Client{}, fmt.Errorf("invalid HTTP timeout %q", raw)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// Validate reports missing settings needed to reach the notes table.
func (c Client) Validate() error {
	var missing []string
	if c.APIURL == "" {
		missing = append(missing, "NOTES_API_URL")
	}
	if c.APIKey == "" {
		missing = append(missing, "NOTES_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func loadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return File{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return f, nil
}

// Database holds the postgres connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Server configures notesd.
type Server struct {
	Port int
	// Storage is "postgres" or "memory".
	Storage string
	// JWTSecret verifies the apikey and bearer tokens. Empty disables auth.
	JWTSecret string
	DB        Database
}

func LoadServer() (Server, error) {
	cfg := Server{
		Port:      DefaultPort,
		Storage:   strings.ToLower(firstNonEmpty(os.Getenv("NOTES_STORAGE"), StoragePostgres)),
		JWTSecret: os.Getenv("NOTES_JWT_SECRET"),
		DB: Database{
			Host:     firstNonEmpty(os.Getenv("NOTES_DB_HOST"), "localhost"),
			Port:     firstNonEmpty(os.Getenv("NOTES_DB_PORT"), "5432"),
			User:     os.Getenv("NOTES_DB_USER"),
			Password: os.Getenv("NOTES_DB_PASSWORD"),
			Name:     os.Getenv("NOTES_DB_NAME"),
			SSLMode:  firstNonEmpty(os.Getenv("NOTES_DB_SSLMODE"), "disable"),
		},
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Server{}, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}

	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return Server{}, fmt.Errorf("invalid NOTES_STORAGE %q: want %s or %s", cfg.Storage, StoragePostgres, StorageMemory)
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
