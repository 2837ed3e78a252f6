package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "color: false\ntab_width: 8\nhistory_file: /tmp/h\n")

	cfg, err := ReadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Color)
	assert.Equal(t, 8, cfg.TabWidth)
	assert.Equal(t, 120, cfg.MaxWidth, "unset keys keep their default")
	assert.Equal(t, "/tmp/h", cfg.HistoryFile)
	assert.False(t, cfg.JSON)
}

func TestReadFileRejectsBadValues(t *testing.T) {
	_, err := ReadFile(writeConfig(t, "tab_width: 0\n"))
	assert.ErrorContains(t, err, "tab_width must be positive")

	_, err = ReadFile(writeConfig(t, "max_width: -1\n"))
	assert.ErrorContains(t, err, "max_width must not be negative")

	_, err = ReadFile(writeConfig(t, "color: [unclosed\n"))
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadUsesEnvPath(t *testing.T) {
	path := writeConfig(t, "json: true\n")
	t.Setenv(EnvPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.JSON)
	assert.Equal(t, []string{path}, Paths())
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv(EnvPath, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
