package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config lookup at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	return dir
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.ElevationHandler)
	assert.Equal(t, []string{"fzf", "sk"}, cfg.Selectors)
	assert.Equal(t, "right:66%:wrap", cfg.PreviewWindow)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.ShowProgress)
}

func TestLoad_GlobalThenLocal(t *testing.T) {
	dir := isolate(t)

	writeJSON(t, filepath.Join(dir, ".config", "xsuper", "config.json"), `{
		"elevation_handler": "doas",
		"preview_window": "down:40%"
	}`)
	localPath := filepath.Join(dir, "local.json")
	writeJSON(t, localPath, `{"preview_window": "up:30%", "log_file": "~/xsuper.log"}`)

	cfg, err := Load(localPath)
	require.NoError(t, err)
	assert.Equal(t, "doas", cfg.ElevationHandler)
	assert.Equal(t, "up:30%", cfg.PreviewWindow)
	assert.Equal(t, filepath.Join(dir, "xsuper.log"), cfg.LogFile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	localPath := filepath.Join(dir, "local.json")
	writeJSON(t, localPath, `{"elevation_handler": "doas"}`)

	t.Setenv("XSUPER_ELEVATION_HANDLER", "please")
	t.Setenv("XSUPER_SELECTORS", "sk,fzf")
	t.Setenv("XSUPER_SHOW_PROGRESS", "false")
	t.Setenv("XSUPER_LOG_LEVEL", "debug")

	cfg, err := Load(localPath)
	require.NoError(t, err)
	assert.Equal(t, "please", cfg.ElevationHandler)
	assert.Equal(t, []string{"sk", "fzf"}, cfg.Selectors)
	assert.False(t, cfg.ShowProgress)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := isolate(t)
	localPath := filepath.Join(dir, "local.json")
	writeJSON(t, localPath, `{"preview_window": `)

	_, err := Load(localPath)
	assert.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	dir := isolate(t)
	localPath := filepath.Join(dir, "local.json")
	writeJSON(t, localPath, `{"log_level": "loud", "selectors": []}`)

	_, err := Load(localPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/xsuper/config.json", GlobalConfigPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, "/home/someone/.config/xsuper/config.json", GlobalConfigPath())
}
