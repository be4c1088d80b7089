package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerWithWriters_FansOut(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("job finished", "job", "abc123", "processed", 4)

	assert.Contains(t, stderr.String(), "job finished")
	assert.Contains(t, stderr.String(), "abc123")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &entry))
	assert.Equal(t, "job finished", entry["msg"])
	assert.Equal(t, "abc123", entry["job"])
}

func TestSetupLoggerWithWriters_RespectsLevel(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelWarn)

	logger.Info("too quiet")
	logger.Warn("loud enough")

	assert.NotContains(t, stderr.String(), "too quiet")
	assert.Contains(t, stderr.String(), "loud enough")
	assert.NotContains(t, file.String(), "too quiet")
}
