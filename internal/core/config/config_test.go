package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_missing_file_returns_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/tmp/data")

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Server.URL)
	assert.Equal(t, 120*time.Second, cfg.Timeout())
	assert.Equal(t, "/tmp/data", cfg.DataDir)
}

func TestLoad_reads_yaml_and_fills_gaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  url: https://librarian.example.com
ui:
  toast_seconds: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)

	require.NoError(t, err)
	assert.Equal(t, "https://librarian.example.com", cfg.Server.URL)
	assert.Equal(t, 2*time.Second, cfg.ToastTTL())
	// Unset values come from defaults.
	assert.Equal(t, 120, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "tokyo-night", cfg.UI.Theme)
}

func TestLoad_rejects_invalid_url_scheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  url: ftp://x\n"), 0o644))

	_, err := Load(path, dir)

	assert.Error(t, err)
}

func TestLoad_rejects_unknown_theme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: solarized\n"), 0o644))

	_, err := Load(path, dir)

	require.Error(t, err)
	// The error names the valid choices.
	assert.Contains(t, err.Error(), "solarized")
	assert.Contains(t, err.Error(), "tokyo-night")
}

func TestLoad_rejects_malformed_yaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))

	_, err := Load(path, dir)

	assert.Error(t, err)
}
