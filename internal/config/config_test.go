package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, DefaultMaxFileSize, cfg.MaxFileSize)
	assert.Equal(t, DefaultMaxRepoSize, cfg.MaxRepoSize)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 2*time.Minute, cfg.ItemTimeout)
	assert.Equal(t, 1024, cfg.RegistryCapacity)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIBase)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUARRY_MAX_FILE_SIZE", "1048576")
	t.Setenv("QUARRY_BATCH_SIZE", "5")
	t.Setenv("QUARRY_ITEM_TIMEOUT", "30s")
	t.Setenv("QUARRY_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, int64(1<<20), cfg.MaxFileSize)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.ItemTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("QUARRY_BATCH_SIZE", "not-a-number")
	t.Setenv("QUARRY_MAX_FILE_SIZE", "-5")
	t.Setenv("QUARRY_LOG_LEVEL", "loud")

	cfg := Load()
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, DefaultMaxFileSize, cfg.MaxFileSize)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
formats:
  ".log": documents
  ".proto": code
ignore_dirs:
  - .git
  - tmp
`), 0o644))

	overlay, err := LoadOverlay(path)
	require.NoError(t, err)
	assert.Equal(t, "documents", overlay.Formats[".log"])
	assert.Equal(t, "code", overlay.Formats[".proto"])
	assert.Equal(t, []string{".git", "tmp"}, overlay.IgnoreDirs)
}

func TestLoadOverlay_Missing(t *testing.T) {
	_, err := LoadOverlay("/does/not/exist.yaml")
	assert.Error(t, err)
}
