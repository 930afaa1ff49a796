package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sparks/internal/platform/config"
)

func TestNewRequiresDataDir(t *testing.T) {
	_, err := config.New("  ", config.Overrides{})
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir, config.Overrides{})
	require.NoError(t, err)
	require.Equal(t, config.DefaultAPIBaseURL, cfg.APIBaseURL)
	require.Equal(t, filepath.Join(dir, "sparks.db"), cfg.DBPath)
	require.Equal(t, filepath.Join(dir, "logs", "sparks.log"), cfg.LogPath)
	require.Equal(t, filepath.Join(dir, "journal"), cfg.JournalDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Zero(t, cfg.Timeout)
}

func TestNewReadsConfigFileAndFlagsWin(t *testing.T) {
	dir := t.TempDir()
	raw := "api_url: http://localhost:9000/api/\ntimeout: 5s\nlog_level: debug\njournal_dir: /tmp/notes\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644))

	cfg, err := config.New(dir, config.Overrides{})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/api", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/tmp/notes", cfg.JournalDir)

	cfg, err = config.New(dir, config.Overrides{APIBaseURL: "http://override/api", LogLevel: "warn"})
	require.NoError(t, err)
	require.Equal(t, "http://override/api", cfg.APIBaseURL)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestNewEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: http://file/api\n"), 0o644))
	t.Setenv("SPARKS_API_URL", "http://env/api")

	cfg, err := config.New(dir, config.Overrides{})
	require.NoError(t, err)
	require.Equal(t, "http://env/api", cfg.APIBaseURL)
}

func TestNewRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [unterminated\n"), 0o644))
	_, err := config.New(dir, config.Overrides{})
	require.Error(t, err)
}
