package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "bookmarks.db", cfg.Database.Path)
	assert.Equal(t, BackendSQLite, cfg.Settings.Backend)
	assert.Equal(t, "https://api.trello.com", cfg.Trello.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Trello.Timeout)
	assert.Equal(t, "http://127.0.0.1:9222", cfg.Browser.DevToolsURL)
	assert.Equal(t, 5*time.Second, cfg.Browser.Timeout)
	assert.True(t, cfg.Popup.Debug)
	assert.Equal(t, 5*time.Second, cfg.Popup.StatusClearAfter)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	toml := `
[server]
port = "9090"

[settings]
backend = "keyring"

[popup]
debug = false
status_clear_after = "3s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, BackendKeyring, cfg.Settings.Backend)
	assert.False(t, cfg.Popup.Debug)
	assert.Equal(t, 3*time.Second, cfg.Popup.StatusClearAfter)
	assert.Equal(t, "bookmarks.db", cfg.Database.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BOOKMARK_DATABASE_PATH", "/tmp/other.db")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
}

func TestLoad_BadBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[settings]\nbackend = \"cloud\"\n"), 0o600))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "settings.backend")
}
