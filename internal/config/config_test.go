package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NOTES_API_URL", "NOTES_API_KEY", "NOTES_HTTP_TIMEOUT", "CATALOG_API_URL",
		"PORT", "NOTES_STORAGE", "NOTES_JWT_SECRET", "NOTES_DB_HOST", "NOTES_DB_PORT", "NOTES_DB_USER",
		"NOTES_DB_PASSWORD", "NOTES_DB_NAME", "NOTES_DB_SSLMODE"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadClientMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadClient(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Timeout)
	assert.Equal(t, DefaultCatalogURL, cfg.CatalogURL)
	assert.Error(t, cfg.Validate())
}

func TestLoadClientFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
[api]
url = "https://file.example/rest/v1/notes"
key = "file-key"
timeout = "3s"

[catalog]
url = "https://catalog.example"
`)

	cfg, err := LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example/rest/v1/notes", cfg.APIURL)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "https://catalog.example", cfg.CatalogURL)
	assert.NoError(t, cfg.Validate())

	t.Setenv("NOTES_API_KEY", "env-key")
	t.Setenv("NOTES_HTTP_TIMEOUT", "250ms")
	cfg, err = LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoadClientBadInput(t *testing.T) {
	clearEnv(t)
	_, err := LoadClient(writeFile(t, `[api`))
	assert.Error(t, err)

	t.Setenv("NOTES_HTTP_TIMEOUT", "soon")
	_, err = LoadClient(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadServer(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)

	t.Setenv("PORT", "9090")
	t.Setenv("NOTES_STORAGE", "Memory")
	t.Setenv("NOTES_DB_NAME", "notes")
	cfg, err = LoadServer()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Contains(t, cfg.DB.DSN(), "dbname=notes")

	t.Setenv("PORT", "http")
	_, err = LoadServer()
	assert.Error(t, err)

	t.Setenv("PORT", "")
	t.Setenv("NOTES_STORAGE", "sqlite")
	_, err = LoadServer()
	assert.Error(t, err)
}
