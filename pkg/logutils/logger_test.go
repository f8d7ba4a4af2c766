package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_writes_json_to_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.Info().Str("k", "v").Msg("hello")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "v", entry["k"])
}

func TestNew_rejects_invalid_level(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestNewConsole(t *testing.T) {
	logger, err := NewConsole("info")
	require.NoError(t, err)

	// Debug events are below the configured level and must be discarded.
	assert.Nil(t, logger.Debug())
}

func TestNewConsole_rejects_invalid_level(t *testing.T) {
	_, err := NewConsole("loud")
	assert.Error(t, err)
}
