package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("app:\n  env: test\n"), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Viper.GetString("app.env"))
	assert.Equal(t, "json", cfg.Viper.GetString("storage.driver"))
	assert.Equal(t, "db.json", cfg.Viper.GetString("storage.json_path"))
	assert.Equal(t, "plain", cfg.Viper.GetString("session.mode"))
	assert.Equal(t, 8000, cfg.Viper.GetInt("server.port"))
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("storage:\n  driver: sqlite\nserver:\n  port: 9100\n"), 0o644))

	t.Setenv("LABELER_SESSION_MODE", "jwt")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Viper.GetString("storage.driver"))
	assert.Equal(t, 9100, cfg.Viper.GetInt("server.port"))
	assert.Equal(t, "jwt", cfg.Viper.GetString("session.mode"))
	assert.True(t, cfg.Viper.GetBool("session.protect_api"))
	assert.Equal(t, "whiteboard_annotations", cfg.Viper.GetString("redis.channel"))
}

func TestLoadReturnsIndependentConfigs(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte("storage:\n  driver: json\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("storage:\n  driver: sqlite\n"), 0o644))

	a, err := Load(first)
	require.NoError(t, err)
	b, err := Load(second)
	require.NoError(t, err)

	assert.NotSame(t, a.Viper, b.Viper)
	assert.Equal(t, "json", a.Viper.GetString("storage.driver"))
	assert.Equal(t, "sqlite", b.Viper.GetString("storage.driver"))
}
